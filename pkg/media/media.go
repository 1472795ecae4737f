package media

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// File is one image selected in a form, held in memory until submit.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Asset is what the media host returns for an upload.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Uploader stores one file per call.
type Uploader interface {
	Upload(ctx context.Context, f File) (Asset, error)
}

// UploadAll uploads files in parallel and returns assets in input order. If any
// upload fails the whole batch fails and no partial result is returned.
func UploadAll(ctx context.Context, u Uploader, files []File) ([]Asset, error) {
	if len(files) == 0 {
		return nil, nil
	}

	assets := make([]Asset, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, f := range files {
		g.Go(func() error {
			asset, err := u.Upload(gctx, f)
			if err != nil {
				return fmt.Errorf("upload %s: %w", f.Name, err)
			}
			if asset.URL == "" {
				return fmt.Errorf("upload %s: media host returned no url", f.Name)
			}
			assets[i] = asset
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assets, nil
}

// DetectContentType fills ContentType from the bytes when the browser sent none.
func (f File) DetectContentType() string {
	if f.ContentType != "" && f.ContentType != "application/octet-stream" {
		return f.ContentType
	}
	return http.DetectContentType(f.Data)
}

// IsImage reports whether the file looks like an image.
func (f File) IsImage() bool {
	return strings.HasPrefix(f.DetectContentType(), "image/")
}

func (f File) ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}
