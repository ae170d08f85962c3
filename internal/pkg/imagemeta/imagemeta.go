package imagemeta

import (
	"io"

	"github.com/disintegration/imaging"
)

// Dimensions decodes the image and returns its pixel width and height.
// Formats the decoder does not understand yield (0, 0); dimensions are
// best-effort metadata, not part of upload validation.
func Dimensions(r io.Reader) (int, int) {
	img, err := imaging.Decode(r)
	if err != nil {
		return 0, 0
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy()
}
