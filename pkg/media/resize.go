package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
)

const jpegQuality = 80

// Downscale shrinks JPEG and PNG images wider than maxWidth, keeping the
// aspect ratio. Anything else is returned untouched.
func Downscale(f File, maxWidth uint) (File, error) {
	if maxWidth == 0 {
		return f, nil
	}
	contentType := f.DetectContentType()
	if contentType != "image/jpeg" && contentType != "image/png" {
		return f, nil
	}

	img, format, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return f, fmt.Errorf("decode %s: %w", f.Name, err)
	}
	if uint(img.Bounds().Dx()) <= maxWidth {
		return f, nil
	}

	resized := resize.Resize(maxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, resized)
	default:
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return f, fmt.Errorf("encode %s: %w", f.Name, err)
	}

	f.Data = buf.Bytes()
	f.ContentType = "image/" + format
	return f, nil
}

type resizing struct {
	next     Uploader
	maxWidth uint
}

// WithDownscale wraps u so every image is downscaled before upload.
func WithDownscale(u Uploader, maxWidth uint) Uploader {
	if maxWidth == 0 {
		return u
	}
	return &resizing{next: u, maxWidth: maxWidth}
}

func (r *resizing) Upload(ctx context.Context, f File) (Asset, error) {
	small, err := Downscale(f, r.maxWidth)
	if err != nil {
		return Asset{}, err
	}
	return r.next.Upload(ctx, small)
}
