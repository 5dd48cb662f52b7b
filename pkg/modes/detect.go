package modes

import "strings"

var (
	imageHints = []string{
		"image", "picture", "photo", "visual", "design", "artwork", "illustration",
		"drawing", "render", "graphic", "logo", "icon", "banner", "poster",
	}
	devHints = []string{
		"code", "function", "class", "method", "api", "database", "algorithm",
		"programming", "develop", "implement", "build", "create app", "software",
	}
)

// Detect chooses between image generation and development from the hints a
// prompt contains. Anything that is not clearly about images is AIDev.
func Detect(prompt string) Mode {
	lower := strings.ToLower(prompt)
	image := countHints(lower, imageHints)
	dev := countHints(lower, devHints)
	if image > dev && image > 0 {
		return ImageGeneration
	}
	return AIDev
}

func countHints(s string, hints []string) int {
	var n int
	for _, h := range hints {
		if strings.Contains(s, h) {
			n++
		}
	}
	return n
}
