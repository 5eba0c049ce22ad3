package store

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/omnipos-terminal/internal/category"
	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/internal/store"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
	"go.uber.org/zap"
)

const listWindow = 30 * time.Second

// listKey is the params key for the category listing; the endpoint takes no
// parameters so the key is constant.
const listKey = "categories"

type categoryStore struct {
	svc    category.Service
	logger logger.ZapLogger
	now    func() time.Time

	mu         sync.Mutex
	loading    bool
	lastErr    string
	categories store.Collection[model.Category]
}

func NewStore(svc category.Service, log logger.ZapLogger) category.Store {
	return &categoryStore{
		svc:    svc,
		logger: log,
		now:    time.Now,
	}
}

func (s *categoryStore) Fetch(ctx context.Context, forceRefresh bool) ([]model.Category, error) {
	s.mu.Lock()
	if s.loading && !forceRefresh {
		items := s.categories.Items
		s.mu.Unlock()
		return items, nil
	}
	if !forceRefresh && s.categories.Fresh(s.now(), listWindow, listKey) {
		items := s.categories.Items
		s.mu.Unlock()
		return items, nil
	}
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	items, pagination, err := s.svc.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to load categories")
		s.logger.Error("category fetch failed", zap.Error(err))
		return nil, err
	}
	s.categories.Replace(items, pagination, s.now(), listKey)
	return items, nil
}

func (s *categoryStore) Create(ctx context.Context, input *category.CreateCategoryInput) (*model.Category, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	c, err := s.svc.Create(ctx, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to create category")
		return nil, err
	}
	s.categories.Invalidate()
	return c, nil
}

func (s *categoryStore) Update(ctx context.Context, id string, input *category.UpdateCategoryInput) (*model.Category, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	c, err := s.svc.Update(ctx, id, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to update category")
		return nil, err
	}
	s.categories.ReplaceByID(id, *c)
	return c, nil
}

func (s *categoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	err := s.svc.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to delete category")
		return err
	}
	s.categories.RemoveByID(id)
	return nil
}

func (s *categoryStore) Category(id string) (model.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.Find(id)
}

func (s *categoryStore) Active() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.FilterFunc(func(c model.Category) bool { return c.Active })
}

func (s *categoryStore) All() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.Items
}

func (s *categoryStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *categoryStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *categoryStore) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *categoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.lastErr = ""
	s.categories.Clear()
}
