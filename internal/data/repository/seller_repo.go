package repository

import (
	"context"
	"fmt"
	"net/url"

	"marketplace-console/internal/data/entity"
	"marketplace-console/pkg/backend"

	"go.uber.org/zap"
)

type SellerRepository interface {
	FindAll(ctx context.Context, query url.Values) (*ListResult[entity.Seller], error)
	Verify(ctx context.Context, sellerID string, approve bool, notes string) error
	SetActive(ctx context.Context, sellerID string, activate bool, reason string) error
}

type sellerRepository struct {
	api backend.Client
	log *zap.Logger
}

func NewSellerRepository(api backend.Client, log *zap.Logger) SellerRepository {
	return &sellerRepository{
		api: api,
		log: log.With(zap.String("repository", "seller")),
	}
}

func (r *sellerRepository) FindAll(ctx context.Context, query url.Values) (*ListResult[entity.Seller], error) {
	var out struct {
		Sellers []entity.Seller `json:"sellers"`
		Pages   int             `json:"pages"`
		Total   int64           `json:"total"`
	}
	if err := r.api.Get(ctx, "/api/admin/sellers", query, &out); err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	return &ListResult[entity.Seller]{Items: out.Sellers, Pages: out.Pages, Total: out.Total}, nil
}

type sellerVerifyBody struct {
	SellerID string `json:"sellerId"`
	Approve  bool   `json:"approve"`
	Notes    string `json:"notes,omitempty"`
}

func (r *sellerRepository) Verify(ctx context.Context, sellerID string, approve bool, notes string) error {
	body := sellerVerifyBody{SellerID: sellerID, Approve: approve, Notes: notes}
	if err := r.api.Post(ctx, "/api/admin/sellers/verify", body, nil); err != nil {
		r.log.Warn("Seller verify rejected", zap.String("seller_id", sellerID), zap.Bool("approve", approve), zap.Error(err))
		return fmt.Errorf("verify seller %s: %w", sellerID, err)
	}
	return nil
}

type sellerStatusBody struct {
	SellerID string `json:"sellerId"`
	Activate bool   `json:"activate"`
	Reason   string `json:"reason,omitempty"`
}

func (r *sellerRepository) SetActive(ctx context.Context, sellerID string, activate bool, reason string) error {
	body := sellerStatusBody{SellerID: sellerID, Activate: activate, Reason: reason}
	if err := r.api.Put(ctx, "/api/admin/sellers/status", body, nil); err != nil {
		r.log.Warn("Seller status rejected", zap.String("seller_id", sellerID), zap.Bool("activate", activate), zap.Error(err))
		return fmt.Errorf("set seller %s active=%t: %w", sellerID, activate, err)
	}
	return nil
}
