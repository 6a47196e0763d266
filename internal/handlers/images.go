package handlers

import (
	"context"
	"net/http"

	"menu-api/internal/apperr"
	"menu-api/internal/imaging"
)

// compressImage compresses input with p. Empty input stays empty. A hard
// codec failure is IMAGE_COMPRESSION_FAILED; a fail-open result is returned
// as is and still goes through the size check.
func compressImage(ctx context.Context, input string, p imaging.Profile) (string, error) {
	if input == "" {
		return "", nil
	}
	out, err := imaging.Compress(ctx, input, p)
	if err != nil {
		return "", apperr.Wrap(http.StatusInternalServerError, apperr.CodeImageCompressionFailed, err)
	}
	return out, nil
}

func compressImages(ctx context.Context, inputs []string, p imaging.Profile) ([]string, error) {
	out, err := imaging.CompressAll(ctx, inputs, p)
	if err != nil {
		return nil, apperr.Wrap(http.StatusInternalServerError, apperr.CodeImageCompressionFailed, err)
	}
	return out, nil
}

// checkSize rejects a compressed image over the profile limit with code.
func checkSize(image string, p imaging.Profile, code string) error {
	if image != "" && imaging.Exceeds(image, p.LimitMB) {
		return apperr.BadRequest(code)
	}
	return nil
}
