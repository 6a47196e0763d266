package imaging

// Profile is the compression policy for one asset class. LimitMB is checked
// against the compressed output.
type Profile struct {
	Name     string
	MaxWidth int
	Quality  int
	LimitMB  float64
}

var (
	CategoryImage = Profile{Name: "category", MaxWidth: 200, Quality: 85, LimitMB: 1}
	ProductImage  = Profile{Name: "product", MaxWidth: 300, Quality: 85, LimitMB: 1}
	Logo          = Profile{Name: "logo", MaxWidth: 400, Quality: 85, LimitMB: 1}
	HeaderImage   = Profile{Name: "header", MaxWidth: 800, Quality: 80, LimitMB: 4}
	Background    = Profile{Name: "background", MaxWidth: 1200, Quality: 80, LimitMB: 4}
)
