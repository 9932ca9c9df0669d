package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// Formats Tesseract users commonly upload, registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gabriel-vasile/mimetype"

	"gretutor/internal/domain"
)

// DecodeImage decodes raw upload bytes into a pixel image. It returns the
// decoded image and its format name ("png", "jpeg", ...).
func DecodeImage(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty upload", domain.ErrImageDecode)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: cannot identify image file (detected %s): %v",
			domain.ErrImageDecode, mimetype.Detect(data).String(), err)
	}
	return img, format, nil
}

// EncodePNG re-encodes img losslessly for handing to the OCR binary.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}
