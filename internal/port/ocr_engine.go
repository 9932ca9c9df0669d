package port

import (
	"context"
	"image"
)

// OCREngine extracts plain text from a decoded image.
type OCREngine interface {
	ExtractText(ctx context.Context, img image.Image) (string, error)
	Version(ctx context.Context) (string, error)
}
