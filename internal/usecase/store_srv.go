package usecase

import (
	"context"
	"strconv"

	"marketplace-console/internal/data/entity"
	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/dto/request"
	"marketplace-console/internal/dto/response"
	"marketplace-console/internal/listing"
	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/media"
	"marketplace-console/pkg/utils"

	"go.uber.org/zap"
)

type StoreService interface {
	// admin
	List(ctx context.Context, q request.ListQuery) (*response.ListPage[response.StoreRow], error)
	Detail(ctx context.Context, storeID string) (*entity.Store, error)
	Verify(ctx context.Context, storeID string, approve bool) error
	SetActive(ctx context.Context, storeID string, activate bool) error

	// seller
	Mine(ctx context.Context) (*entity.Store, error)
	UpdateMine(ctx context.Context, form *request.StoreInfoForm, logo, banner *media.File) error
}

type storeService struct {
	repo     *repository.Repository
	uploader media.Uploader
	list     *listing.Controller[entity.Store]
	log      *zap.Logger
}

func NewStoreService(d Deps) StoreService {
	s := &storeService{
		repo:     d.Repo,
		uploader: d.Uploader,
		log:      d.Log.With(zap.String("service", "store")),
	}
	s.list = newController(d, "stores", func(ctx context.Context, q request.ListQuery) (*repository.ListResult[entity.Store], error) {
		return s.repo.Store.FindAll(ctx, q.Backend())
	})
	return s
}

func (s *storeService) List(ctx context.Context, q request.ListQuery) (*response.ListPage[response.StoreRow], error) {
	snap, err := s.list.Load(ctx, sessionKey(ctx), q)
	return listPage(snap, func(st entity.Store) (response.StoreRow, bool) {
		return response.StoreRow{Store: st, Actions: storeActions(&st)}, true
	}), err
}

func storeActions(st *entity.Store) []response.Action {
	base := "/admin/stores/" + st.ID
	actions := make([]response.Action, 0, 2)
	if st.Verified() {
		actions = append(actions, response.Action{Label: "Revoke", Path: base + "/verify", Fields: map[string]string{"approve": "false"}, Style: "danger", Confirm: true})
	} else {
		actions = append(actions, response.Action{Label: "Approve", Path: base + "/verify", Fields: map[string]string{"approve": "true"}, Style: "primary"})
	}
	if st.Active() {
		actions = append(actions, response.Action{Label: "Deactivate", Path: base + "/status", Fields: map[string]string{"activate": "false"}, Style: "muted"})
	} else {
		actions = append(actions, response.Action{Label: "Activate", Path: base + "/status", Fields: map[string]string{"activate": "true"}, Style: "muted"})
	}
	return actions
}

func (s *storeService) Detail(ctx context.Context, storeID string) (*entity.Store, error) {
	st, err := s.repo.Store.FindByID(ctx, storeID)
	if err != nil {
		s.log.Error("Failed to load store", zap.String("store_id", storeID), zap.Error(err))
		return nil, withFallback(err, "Store not found")
	}
	return st, nil
}

func (s *storeService) Verify(ctx context.Context, storeID string, approve bool) error {
	err := s.list.Mutate(ctx, sessionKey(ctx), "verify:"+storeID+":"+strconv.FormatBool(approve), func(ctx context.Context) error {
		return s.repo.Store.Verify(ctx, storeID, approve)
	})
	if err != nil {
		s.log.Error("Store verification failed", zap.String("store_id", storeID), zap.Error(err))
		return withFallback(err, "Verification failed")
	}
	return nil
}

func (s *storeService) SetActive(ctx context.Context, storeID string, activate bool) error {
	err := s.list.Mutate(ctx, sessionKey(ctx), "status:"+storeID+":"+strconv.FormatBool(activate), func(ctx context.Context) error {
		return s.repo.Store.SetActive(ctx, storeID, activate)
	})
	if err != nil {
		s.log.Error("Store status change failed", zap.String("store_id", storeID), zap.Error(err))
		return withFallback(err, "Activation failed")
	}
	return nil
}

func (s *storeService) Mine(ctx context.Context) (*entity.Store, error) {
	st, err := s.repo.Store.FindMine(ctx)
	if err != nil {
		if apperr.KindOf(err) != apperr.NotFound {
			s.log.Error("Failed to load own store", zap.Error(err))
		}
		return nil, withFallback(err, "Could not load your store.")
	}
	return st, nil
}

// UpdateMine uploads a new logo and banner when given, then saves the store.
func (s *storeService) UpdateMine(ctx context.Context, form *request.StoreInfoForm, logo, banner *media.File) error {
	if errs := form.Validate(); len(errs) > 0 {
		return invalid("Please fix the highlighted fields.", errs)
	}

	var files []media.File
	var targets []*entity.Image
	for _, pick := range []struct {
		file *media.File
		dst  *entity.Image
	}{{logo, &form.Logo}, {banner, &form.Banner}} {
		if pick.file == nil {
			continue
		}
		if !pick.file.IsImage() {
			return invalid("Only image files can be uploaded.", map[string]string{"media": pick.file.Name + " is not an image"})
		}
		files = append(files, *pick.file)
		targets = append(targets, pick.dst)
	}

	if len(files) > 0 {
		assets, err := media.UploadAll(ctx, s.uploader, files)
		if err != nil {
			s.log.Error("Store media upload failed", zap.Error(err))
			return withFallback(err, "Image upload failed, please try again.")
		}
		for i, a := range assets {
			*targets[i] = entity.Image{URL: a.URL, PublicID: a.PublicID}
		}
	}

	if err := s.repo.Store.UpdateMine(ctx, form.Update()); err != nil {
		s.log.Error("Store update failed", zap.String("user_id", userID(ctx)), zap.Error(err))
		return withFallback(err, "Error updating store.")
	}
	return nil
}

func userID(ctx context.Context) string {
	id, _ := utils.GetUserIDFromContext(ctx)
	return id
}
