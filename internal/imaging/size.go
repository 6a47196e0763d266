package imaging

const bytesPerMB = 1024 * 1024

// SizeMB approximates the decoded size of a base64 payload (data URI or
// raw) as len(payload)*3/4 bytes.
func SizeMB(dataURI string) float64 {
	return float64(len(payload(dataURI))) * 3 / 4 / bytesPerMB
}

// Exceeds reports whether the decoded payload is larger than limitMB.
// Call it on the compressed value, never on the upload.
func Exceeds(dataURI string, limitMB float64) bool {
	return SizeMB(dataURI) > limitMB
}
