package media

import (
	"fmt"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Thumbnailer writes a downscaled JPEG copy of an uploaded image
type Thumbnailer struct {
	size int
}

func NewThumbnailer(size int) *Thumbnailer {
	if size <= 0 {
		size = 600
	}
	return &Thumbnailer{size: size}
}

// Create fits src into a size×size box, honouring EXIF orientation, and saves
// the result to dst. Images already smaller than the box are not upscaled.
func (t *Thumbnailer) Create(src, dst string) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fit(img, t.size, t.size, imaging.Lanczos)
	if err := imaging.Save(thumb, dst, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("save thumbnail: %w", err)
	}
	return nil
}
