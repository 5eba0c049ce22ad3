package store

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/internal/product"
	"github.com/fekuna/omnipos-terminal/internal/product/dto"
	"github.com/fekuna/omnipos-terminal/internal/store"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
	"go.uber.org/zap"
)

// Freshness windows differ by consumer: the top-selling list changes with
// every sale so it goes stale fast; the full listing is for administrative
// browsing and can ride longer; the search window only absorbs repeated
// keystrokes.
const (
	listWindow       = 30 * time.Second
	topSellingWindow = 10 * time.Second
	searchWindow     = 2 * time.Second

	searchPageSize  = 5
	minSearchLength = 2
)

type productStore struct {
	svc    product.Service
	logger logger.ZapLogger
	now    func() time.Time

	mu      sync.Mutex
	loading bool
	lastErr string

	products store.Collection[model.Product]
	top      store.Collection[model.Product]
	search   store.SearchSession[model.Product]
}

func NewStore(svc product.Service, log logger.ZapLogger) product.Store {
	return &productStore{
		svc:    svc,
		logger: log,
		now:    time.Now,
	}
}

// Fetch returns the full paginated listing, served from cache when the
// previous response is fresh and was fetched with identical params. The
// loading flag is a coarse, store-wide in-flight guard: a non-forced call
// during an outstanding fetch returns whatever is cached rather than piling
// on a second request.
func (s *productStore) Fetch(ctx context.Context, filters *dto.ProductFilters, forceRefresh bool) ([]model.Product, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}
	key := store.ParamsKey(filters)

	s.mu.Lock()
	if s.loading && !forceRefresh {
		items := s.products.Items
		s.mu.Unlock()
		return items, nil
	}
	if !forceRefresh && s.products.Fresh(s.now(), listWindow, key) {
		items := s.products.Items
		s.mu.Unlock()
		return items, nil
	}
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	items, pagination, err := s.svc.List(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to load products")
		s.logger.Error("product listing fetch failed", zap.Error(err))
		return nil, err
	}
	s.products.Replace(items, pagination, s.now(), key)
	return items, nil
}

func (s *productStore) FetchTopSelling(ctx context.Context, limit int, forceRefresh bool) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	key := store.ParamsKey(limit)

	s.mu.Lock()
	if s.loading && !forceRefresh {
		items := s.top.Items
		s.mu.Unlock()
		return items, nil
	}
	if !forceRefresh && s.top.Fresh(s.now(), topSellingWindow, key) {
		items := s.top.Items
		s.mu.Unlock()
		return items, nil
	}
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	items, err := s.svc.TopSelling(ctx, limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to load top selling products")
		s.logger.Error("top selling fetch failed", zap.Error(err))
		return nil, err
	}
	s.top.Replace(items, model.Pagination{}, s.now(), key)
	return items, nil
}

func (s *productStore) FetchByID(ctx context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	p, err := s.svc.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to load product")
		return nil, err
	}
	return p, nil
}

// Search runs the incremental product search used by the sales screen.
// Queries shorter than two characters clear the session without touching
// the network. Page 1 replaces results, later pages append.
func (s *productStore) Search(ctx context.Context, query string, page int, forceRefresh bool) ([]model.Product, error) {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < minSearchLength {
		s.mu.Lock()
		s.search.Clear()
		s.mu.Unlock()
		return []model.Product{}, nil
	}
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	if !forceRefresh && s.search.Fresh(s.now(), searchWindow, trimmed, page) {
		results := s.search.Results
		s.mu.Unlock()
		return results, nil
	}
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	active := true
	filters := &dto.ProductFilters{
		Search: trimmed,
		Active: &active,
		Page:   page,
		Limit:  searchPageSize,
	}
	items, pagination, err := s.svc.List(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "product search failed")
		s.search.Results = nil
		s.logger.Error("product search failed", zap.String("query", trimmed), zap.Error(err))
		return nil, err
	}
	results := s.search.Apply(trimmed, page, items, pagination, s.now())
	return results, nil
}

func (s *productStore) LoadMore(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	if !s.search.HasMore || s.loading {
		results := s.search.Results
		s.mu.Unlock()
		return results, nil
	}
	query := s.search.Query
	nextPage := s.search.Pagination.Page + 1
	s.mu.Unlock()

	return s.Search(ctx, query, nextPage, false)
}

func (s *productStore) Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	p, err := s.svc.Create(ctx, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to create product")
		return nil, err
	}
	// The new record changes what "top selling" and search should return,
	// so their freshness stamps go; the next read re-fetches.
	s.top.Invalidate()
	s.search.Invalidate()
	return p, nil
}

func (s *productStore) Update(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	p, err := s.svc.Update(ctx, id, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to update product")
		return nil, err
	}
	s.products.ReplaceByID(id, *p)
	s.top.ReplaceByID(id, *p)
	s.search.ReplaceByID(id, *p)
	s.top.Invalidate()
	s.search.Invalidate()
	return p, nil
}

// Delete reconciles the caches according to the outcome the server reports:
// a hard delete removes the record everywhere, a deactivation flips active
// in the primary collection and drops it from the point-of-sale subsets.
func (s *productStore) Delete(ctx context.Context, id string) (product.DeleteOutcome, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	outcome, err := s.svc.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = store.ErrorMessage(err, "failed to delete product")
		return 0, err
	}
	switch outcome {
	case product.OutcomeDeleted:
		s.products.RemoveByID(id)
	default:
		s.products.Patch(id, func(p *model.Product) { p.Active = false })
	}
	s.top.RemoveByID(id)
	s.search.RemoveByID(id)
	s.top.Invalidate()
	s.search.Invalidate()
	return outcome, nil
}

func (s *productStore) UpdateStock(id string, stock float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patch := func(p *model.Product) { p.Stock = stock }
	s.products.Patch(id, patch)
	s.top.Patch(id, patch)
	s.search.Patch(id, patch)
}

func (s *productStore) Product(id string) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.search.Find(id); ok {
		return p, true
	}
	if p, ok := s.top.Find(id); ok {
		return p, true
	}
	return s.products.Find(id)
}

func (s *productStore) ProductByBarcode(barcode string) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match := func(p model.Product) bool { return p.Barcode != "" && p.Barcode == barcode }
	if p, ok := s.search.FindFunc(match); ok {
		return p, true
	}
	if p, ok := s.top.FindFunc(match); ok {
		return p, true
	}
	return s.products.FindFunc(match)
}

func (s *productStore) ByCategory(categoryID string) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	match := func(p model.Product) bool { return p.CategoryID == categoryID && p.Active }
	if top := s.top.FilterFunc(match); len(top) > 0 {
		return top
	}
	return s.products.FilterFunc(match)
}

// Filter is a purely local search over the cached collections, used when a
// keystroke should narrow what is already on screen without a round trip.
func (s *productStore) Filter(query string) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if query == "" {
		if len(s.top.Items) > 0 {
			return s.top.Items
		}
		return s.products.Items
	}
	lowered := strings.ToLower(query)
	match := func(p model.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), lowered) ||
			strings.Contains(strings.ToLower(p.Description), lowered) ||
			strings.Contains(p.Barcode, query)
	}
	if top := s.top.FilterFunc(match); len(top) > 0 {
		return top
	}
	return s.products.FilterFunc(match)
}

func (s *productStore) Active() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.FilterFunc(func(p model.Product) bool { return p.Active })
}

func (s *productStore) All() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.Items
}

func (s *productStore) TopSelling() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top.Items
}

func (s *productStore) SearchResults() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.Results
}

func (s *productStore) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.HasMore
}

func (s *productStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *productStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *productStore) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// Reset drops all cached state. Each test constructs its own store, but an
// application logout goes through here too.
func (s *productStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.lastErr = ""
	s.products.Clear()
	s.top.Clear()
	s.search.Clear()
}
