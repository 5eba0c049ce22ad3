package store

import (
	"time"

	"github.com/fekuna/omnipos-terminal/internal/model"
)

// SearchSession tracks one incremental, paginated search: results accumulate
// across pages for a constant query and are replaced whenever the query
// changes or page 1 is re-fetched.
type SearchSession[T Entity] struct {
	Query      string
	Results    []T
	Pagination model.Pagination
	HasMore    bool
	LastFetch  time.Time
}

// Fresh reports whether the session can serve query/page locally. The
// window here is short; it exists to absorb rapid repeated keystrokes and
// re-renders, not to cache results for browsing.
func (s *SearchSession[T]) Fresh(now time.Time, window time.Duration, query string, page int) bool {
	return s.Query == query &&
		s.Pagination.Page == page &&
		!s.LastFetch.IsZero() &&
		now.Sub(s.LastFetch) < window
}

// Apply folds a server page into the session. Page 1 replaces the result
// sequence; later pages append in arrival order. HasMore is recomputed from
// the server's pagination block.
func (s *SearchSession[T]) Apply(query string, page int, items []T, p model.Pagination, now time.Time) []T {
	if page == 1 {
		s.Results = items
	} else {
		s.Results = append(s.Results, items...)
	}
	s.Query = query
	s.Pagination = p
	s.HasMore = p.HasMore()
	s.LastFetch = now
	return s.Results
}

// Invalidate clears the freshness stamp; the next identical search hits the
// network again.
func (s *SearchSession[T]) Invalidate() {
	s.LastFetch = time.Time{}
}

func (s *SearchSession[T]) Clear() {
	s.Query = ""
	s.Results = nil
	s.Pagination = model.Pagination{}
	s.HasMore = false
	s.LastFetch = time.Time{}
}

func (s *SearchSession[T]) Find(id string) (T, bool) {
	for _, item := range s.Results {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (s *SearchSession[T]) FindFunc(match func(T) bool) (T, bool) {
	for _, item := range s.Results {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (s *SearchSession[T]) ReplaceByID(id string, item T) {
	for i := range s.Results {
		if s.Results[i].EntityID() == id {
			s.Results[i] = item
		}
	}
}

func (s *SearchSession[T]) RemoveByID(id string) {
	kept := make([]T, 0, len(s.Results))
	for _, item := range s.Results {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	s.Results = kept
}

func (s *SearchSession[T]) Patch(id string, fn func(*T)) {
	for i := range s.Results {
		if s.Results[i].EntityID() == id {
			fn(&s.Results[i])
		}
	}
}
