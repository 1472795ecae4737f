package usecase

import (
	"errors"
	"net/url"
	"testing"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/dto/request"
	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

func TestCreateWithoutCategoryNeverCallsBackend(t *testing.T) {
	products := &MockProductRepository{}
	uploader := &MockUploader{}
	svc := NewProductService(testDeps(t, &repository.Repository{Product: products}, uploader))

	form := request.BindProduct(url.Values{"name": {"Shirt"}, "price": {"10"}})
	_, err := svc.Create(sessionCtx("sid"), &form, []media.File{{Name: "a.png", Data: pngHeader}})

	require.Error(t, err)
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))
	assert.Equal(t, "At least one category is required", apperr.PublicMessage(err, ""))
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestCreateStoresOnlyResolvedURLs(t *testing.T) {
	products := &MockProductRepository{}
	uploader := &MockUploader{}
	uploader.On("Upload", mock.Anything, mock.MatchedBy(func(f media.File) bool { return f.Name == "a.png" })).
		Return(media.Asset{URL: "https://cdn.example.com/a.png", PublicID: "a"}, nil)
	uploader.On("Upload", mock.Anything, mock.MatchedBy(func(f media.File) bool { return f.Name == "b.png" })).
		Return(media.Asset{URL: "https://cdn.example.com/b.png", PublicID: "b"}, nil)

	var sent *entity.ProductInput
	products.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(*entity.ProductInput)
	}).Return(&entity.Product{Base: entity.Base{ID: "p1"}}, nil)

	svc := NewProductService(testDeps(t, &repository.Repository{Product: products}, uploader))
	form := request.BindProduct(url.Values{
		"name":          {"Shirt"},
		"category":      {"Apparel"},
		"price":         {"499.50"},
		"originalPrice": {"599"},
		"images":        {"https://cdn.example.com/kept.png"},
	})
	p, err := svc.Create(sessionCtx("sid"), &form, []media.File{
		{Name: "a.png", Data: pngHeader},
		{Name: "b.png", Data: pngHeader},
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	require.NotNil(t, sent)
	assert.Equal(t, []string{
		"https://cdn.example.com/kept.png",
		"https://cdn.example.com/a.png",
		"https://cdn.example.com/b.png",
	}, sent.Images)
	assert.Equal(t, "99.5", sent.Earnings().String())
}

func TestCreateAbortsWhenAnUploadFails(t *testing.T) {
	products := &MockProductRepository{}
	uploader := &MockUploader{}
	uploader.On("Upload", mock.Anything, mock.Anything).Return(media.Asset{}, errors.New("media host down"))

	svc := NewProductService(testDeps(t, &repository.Repository{Product: products}, uploader))
	form := request.BindProduct(url.Values{"name": {"Shirt"}, "category": {"Apparel"}})
	_, err := svc.Create(sessionCtx("sid"), &form, []media.File{{Name: "a.png", Data: pngHeader}})

	require.Error(t, err)
	assert.Equal(t, "Image upload failed, please try again.", apperr.PublicMessage(err, ""))
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRejectsTooManyImages(t *testing.T) {
	products := &MockProductRepository{}
	svc := NewProductService(testDeps(t, &repository.Repository{Product: products}, &MockUploader{}))

	form := request.BindProduct(url.Values{"name": {"Shirt"}, "category": {"Apparel"}})
	files := make([]media.File, 5)
	for i := range files {
		files[i] = media.File{Name: "x.png", Data: pngHeader}
	}
	_, err := svc.Create(sessionCtx("sid"), &form, files)
	require.Error(t, err)
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, ae.Fields, "images")
}

func TestCreateSurfacesServerMessage(t *testing.T) {
	products := &MockProductRepository{}
	products.On("Create", mock.Anything, mock.Anything).Return(nil, apperr.FromStatus(400, "Store not verified", nil))
	svc := NewProductService(testDeps(t, &repository.Repository{Product: products}, &MockUploader{}))

	form := request.BindProduct(url.Values{"name": {"Shirt"}, "category": {"Apparel"}})
	_, err := svc.Create(sessionCtx("sid"), &form, nil)
	assert.Equal(t, "Store not verified", apperr.PublicMessage(err, ""))

	products.ExpectedCalls = nil
	products.On("Create", mock.Anything, mock.Anything).Return(nil, &apperr.AppError{Kind: apperr.Internal, Err: errors.New("boom")})
	_, err = svc.Create(sessionCtx("sid"), &form, nil)
	assert.Equal(t, productFallback, apperr.PublicMessage(err, ""))
}

func TestToggleIsOptimisticAndRevertsOnFailure(t *testing.T) {
	products := &MockProductRepository{}
	products.On("FindAll", mock.Anything).Return([]entity.Product{
		{Base: entity.Base{ID: "p1"}, Settings: entity.ProductSettings{IsActive: true}},
	}, nil)
	products.On("SetActive", mock.Anything, "p1", false).Return(nil).Once()

	svc := NewProductService(testDeps(t, &repository.Repository{Product: products}, nil)).(*productService)
	ctx := sessionCtx("sid")

	page, err := svc.AdminList(ctx)
	require.NoError(t, err)
	require.True(t, page.Rows[0].Active)

	require.NoError(t, svc.Toggle(ctx, "p1"))
	snap, _ := svc.admin.Snapshot(ctx, "sid")
	assert.False(t, snap.Items[0].Settings.IsActive, "patched before the next fetch")

	products.On("SetActive", mock.Anything, "p1", true).Return(apperr.FromStatus(500, "", errors.New("down"))).Once()
	err = svc.Toggle(ctx, "p1")
	require.Error(t, err)
	snap, _ = svc.admin.Snapshot(ctx, "sid")
	assert.False(t, snap.Items[0].Settings.IsActive, "reverted after failure")
	products.AssertExpectations(t)
}
