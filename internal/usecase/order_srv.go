package usecase

import (
	"context"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/dto/response"
	"marketplace-console/internal/listing"
	"marketplace-console/pkg/apperr"

	"go.uber.org/zap"
)

// AdminOrdersPerPage is the page size of the admin orders list.
const AdminOrdersPerPage = 10

type OrderService interface {
	AdminList(ctx context.Context, q request.ListQuery) (*response.ListPage[response.OrderRow], error)
	Cancel(ctx context.Context, orderID string) error

	VendorList(ctx context.Context) (*response.ListPage[response.OrderRow], error)
	Detail(ctx context.Context, orderID string) (*entity.Order, error)
}

type orderService struct {
	repo   *repository.Repository
	admin  *listing.Controller[entity.Order]
	vendor *listing.Controller[entity.Order]
	log    *zap.Logger
}

func NewOrderService(d Deps) OrderService {
	s := &orderService{
		repo: d.Repo,
		log:  d.Log.With(zap.String("service", "order")),
	}
	s.admin = newController(d, "admin-orders", func(ctx context.Context, q request.ListQuery) (*repository.ListResult[entity.Order], error) {
		return s.repo.Order.FindAll(ctx, q.Backend())
	})
	s.vendor = newController(d, "vendor-orders", func(ctx context.Context, _ request.ListQuery) (*repository.ListResult[entity.Order], error) {
		return all(s.repo.Order.FindMine(ctx))
	})
	return s
}

func (s *orderService) AdminList(ctx context.Context, q request.ListQuery) (*response.ListPage[response.OrderRow], error) {
	q.PerPage = AdminOrdersPerPage
	if q.Status != "" && !entity.OrderStatus(q.Status).Valid() {
		q.Status = ""
	}
	snap, err := s.admin.Load(ctx, sessionKey(ctx), q)
	return listPage(snap, func(o entity.Order) (response.OrderRow, bool) {
		row := response.OrderRow{Order: o, CanCancel: o.Status.Cancellable()}
		if row.CanCancel {
			row.Actions = []response.Action{{
				Label:   "Cancel",
				Path:    "/admin/orders/" + o.ID + "/cancel",
				Confirm: true,
				Style:   "danger",
			}}
		}
		return row, true
	}), err
}

// Cancel refuses orders the last snapshot shows as already shipped; the
// backend has the final say for everything else.
func (s *orderService) Cancel(ctx context.Context, orderID string) error {
	sid := sessionKey(ctx)
	if snap, ok := s.admin.Snapshot(ctx, sid); ok {
		for _, o := range snap.Items {
			if o.ID == orderID && !o.Status.Cancellable() {
				return apperr.InvalidErr("Only pending or processing orders can be cancelled.", nil)
			}
		}
	}

	err := s.admin.Mutate(ctx, sid, "cancel:"+orderID, func(ctx context.Context) error {
		return s.repo.Order.Cancel(ctx, orderID)
	})
	if err != nil {
		s.log.Error("Order cancel failed", zap.String("order_id", orderID), zap.Error(err))
		return withFallback(err, "Failed to cancel order.")
	}
	s.log.Info("Order cancelled", zap.String("order_id", orderID))
	return nil
}

func (s *orderService) VendorList(ctx context.Context) (*response.ListPage[response.OrderRow], error) {
	snap, err := s.vendor.Load(ctx, sessionKey(ctx), request.ListQuery{Page: 1})
	return listPage(snap, func(o entity.Order) (response.OrderRow, bool) {
		return response.OrderRow{Order: o}, true
	}), err
}

func (s *orderService) Detail(ctx context.Context, orderID string) (*entity.Order, error) {
	o, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to load order", zap.String("order_id", orderID), zap.Error(err))
		return nil, withFallback(err, "Order not found")
	}
	return o, nil
}
