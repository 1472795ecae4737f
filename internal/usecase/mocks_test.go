package usecase

import (
	"context"
	"net/url"
	"testing"
	"time"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/data/repository"
	"marketplace-console/pkg/cache"
	"marketplace-console/pkg/media"
	"marketplace-console/pkg/utils"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockSessionRepository) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSessionRepository) WhoAmI(ctx context.Context) (*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockSellerRepository struct{ mock.Mock }

func (m *MockSellerRepository) FindAll(ctx context.Context, query url.Values) (*repository.ListResult[entity.Seller], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListResult[entity.Seller]), args.Error(1)
}

func (m *MockSellerRepository) Verify(ctx context.Context, sellerID string, approve bool, notes string) error {
	return m.Called(ctx, sellerID, approve, notes).Error(0)
}

func (m *MockSellerRepository) SetActive(ctx context.Context, sellerID string, activate bool, reason string) error {
	return m.Called(ctx, sellerID, activate, reason).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) FindAll(ctx context.Context, query url.Values) (*repository.ListResult[entity.Order], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListResult[entity.Order]), args.Error(1)
}

func (m *MockOrderRepository) Cancel(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) FindMine(ctx context.Context) ([]entity.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]entity.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]entity.Product)
	return products, args.Error(1)
}

func (m *MockProductRepository) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockProductRepository) AdminDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) FindMine(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]entity.Product)
	return products, args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, in *entity.ProductInput) (*entity.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id string, in *entity.ProductInput) (*entity.Product, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]entity.Category)
	return cats, args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, in any) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, slug string, in any) error {
	return m.Called(ctx, slug, in).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

type MockAttributeRepository struct{ mock.Mock }

func (m *MockAttributeRepository) FindAll(ctx context.Context) ([]entity.Attribute, error) {
	args := m.Called(ctx)
	attrs, _ := args.Get(0).([]entity.Attribute)
	return attrs, args.Error(1)
}

func (m *MockAttributeRepository) Create(ctx context.Context, in any) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockAttributeRepository) Update(ctx context.Context, id string, in any) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockAttributeRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockStoreRepository struct{ mock.Mock }

func (m *MockStoreRepository) FindAll(ctx context.Context, query url.Values) (*repository.ListResult[entity.Store], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListResult[entity.Store]), args.Error(1)
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id string) (*entity.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreRepository) Verify(ctx context.Context, storeID string, approve bool) error {
	return m.Called(ctx, storeID, approve).Error(0)
}

func (m *MockStoreRepository) SetActive(ctx context.Context, storeID string, activate bool) error {
	return m.Called(ctx, storeID, activate).Error(0)
}

func (m *MockStoreRepository) FindMine(ctx context.Context) (*entity.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreRepository) UpdateMine(ctx context.Context, update any) error {
	return m.Called(ctx, update).Error(0)
}

type MockUploader struct{ mock.Mock }

func (m *MockUploader) Upload(ctx context.Context, f media.File) (media.Asset, error) {
	args := m.Called(ctx, f)
	asset, _ := args.Get(0).(media.Asset)
	return asset, args.Error(1)
}

// testDeps returns deps over a fresh memory cache with the given repository.
func testDeps(t *testing.T, repo *repository.Repository, uploader media.Uploader) Deps {
	t.Helper()
	mem := cache.NewMemory(0)
	t.Cleanup(func() { mem.Close() })
	if repo.ShippingZone == nil {
		repo.ShippingZone = repository.NewShippingZoneRepository(mem, time.Hour, zap.NewNop())
	}
	return Deps{
		Repo:     repo,
		Uploader: uploader,
		Cache:    mem,
		Config:   &utils.Config{Media: utils.MediaConfig{MaxFiles: 4}},
		Log:      zap.NewNop(),
	}
}

func sessionCtx(sid string) context.Context {
	return utils.SetSessionIDContext(context.Background(), sid)
}
