package usecase

import (
	"context"
	"strconv"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/dto/response"
	"marketplace-console/internal/listing"

	"go.uber.org/zap"
)

const (
	SellerTabVerified   = "verified"
	SellerTabUnverified = "unverified"
)

type SellerService interface {
	// List returns the page even when err is set; it then holds the last
	// good rows.
	List(ctx context.Context, q request.ListQuery) (*response.ListPage[response.SellerRow], error)
	Verify(ctx context.Context, sellerID string, approve bool) error
	SetActive(ctx context.Context, sellerID string, activate bool) error
}

type sellerService struct {
	repo *repository.Repository
	list *listing.Controller[entity.Seller]
	log  *zap.Logger
}

func NewSellerService(d Deps) SellerService {
	s := &sellerService{
		repo: d.Repo,
		log:  d.Log.With(zap.String("service", "seller")),
	}
	s.list = newController(d, "sellers", func(ctx context.Context, q request.ListQuery) (*repository.ListResult[entity.Seller], error) {
		return s.repo.Seller.FindAll(ctx, q.Backend())
	})
	return s
}

func (s *sellerService) List(ctx context.Context, q request.ListQuery) (*response.ListPage[response.SellerRow], error) {
	if q.Tab != SellerTabUnverified {
		q.Tab = SellerTabVerified
	}
	snap, err := s.list.Load(ctx, sessionKey(ctx), q)
	// the tab filters the fetched page; the page count stays the backend's
	tab := q.Tab
	return listPage(snap, func(seller entity.Seller) (response.SellerRow, bool) {
		if seller.IsSellerVerified != (tab == SellerTabVerified) {
			return response.SellerRow{}, false
		}
		return response.SellerRow{Seller: seller, Actions: sellerActions(seller)}, true
	}), err
}

// sellerActions: an unverified seller can only be approved.
func sellerActions(seller entity.Seller) []response.Action {
	base := "/admin/sellers/" + seller.ID
	if !seller.IsSellerVerified {
		return []response.Action{
			{Label: "Approve", Path: base + "/verify", Fields: map[string]string{"approve": "true"}, Style: "primary"},
		}
	}
	toggle := response.Action{Label: "Activate", Path: base + "/status", Fields: map[string]string{"activate": "true"}, Style: "primary"}
	if seller.IsActive {
		toggle = response.Action{Label: "Deactivate", Path: base + "/status", Fields: map[string]string{"activate": "false"}, Style: "danger"}
	}
	return []response.Action{
		toggle,
		{Label: "Revoke", Path: base + "/verify", Fields: map[string]string{"approve": "false"}, Style: "muted", Confirm: true},
	}
}

func (s *sellerService) Verify(ctx context.Context, sellerID string, approve bool) error {
	notes := "Unverified by admin"
	if approve {
		notes = "Verified by admin"
	}
	err := s.list.Mutate(ctx, sessionKey(ctx), "verify:"+sellerID+":"+strconv.FormatBool(approve), func(ctx context.Context) error {
		return s.repo.Seller.Verify(ctx, sellerID, approve, notes)
	})
	if err != nil {
		s.log.Error("Seller verification failed", zap.String("seller_id", sellerID), zap.Bool("approve", approve), zap.Error(err))
		return withFallback(err, "Verification failed")
	}
	s.log.Info("Seller verification changed", zap.String("seller_id", sellerID), zap.Bool("approve", approve))
	return nil
}

func (s *sellerService) SetActive(ctx context.Context, sellerID string, activate bool) error {
	reason := "Deactivated by admin"
	if activate {
		reason = "Re-activated by admin"
	}
	err := s.list.Mutate(ctx, sessionKey(ctx), "status:"+sellerID+":"+strconv.FormatBool(activate), func(ctx context.Context) error {
		return s.repo.Seller.SetActive(ctx, sellerID, activate, reason)
	})
	if err != nil {
		s.log.Error("Seller status change failed", zap.String("seller_id", sellerID), zap.Bool("activate", activate), zap.Error(err))
		return withFallback(err, "Activation failed")
	}
	return nil
}
