package store

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-terminal/internal/model"
)

// Entity is anything with a stable server-issued identifier. Every model
// embedding model.BaseModel satisfies it.
type Entity interface {
	EntityID() string
}

// ParamsKey serializes request parameters into a cache key. A cache hit
// requires the key to match exactly; two logically equal but differently
// shaped params structs produce different keys on purpose.
func ParamsKey(params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%#v", params)
	}
	return fmt.Sprintf("%x", md5.Sum(data))
}

// Collection is one cached list of entities plus the bookkeeping needed to
// decide whether a read can be served locally. LastFetch and ParamsKey are
// only trusted together: freshness alone is not a hit if the params differ.
type Collection[T Entity] struct {
	Items      []T
	Pagination model.Pagination
	LastFetch  time.Time // zero means never fetched
	ParamsKey  string
}

// Fresh reports whether the cached items can serve a read for paramsKey at
// time now, given the collection's freshness window.
func (c *Collection[T]) Fresh(now time.Time, window time.Duration, paramsKey string) bool {
	return !c.LastFetch.IsZero() &&
		now.Sub(c.LastFetch) < window &&
		c.ParamsKey == paramsKey &&
		len(c.Items) > 0
}

// Replace swaps in a server response wholesale and stamps the freshness
// bookkeeping. Atomic with respect to the caller's lock.
func (c *Collection[T]) Replace(items []T, p model.Pagination, now time.Time, paramsKey string) {
	c.Items = items
	c.Pagination = p
	c.LastFetch = now
	c.ParamsKey = paramsKey
}

// Invalidate clears the freshness stamp so the next read re-fetches. The
// cached items stay available to local accessors until then.
func (c *Collection[T]) Invalidate() {
	c.LastFetch = time.Time{}
	c.ParamsKey = ""
}

func (c *Collection[T]) Clear() {
	c.Items = nil
	c.Pagination = model.Pagination{}
	c.Invalidate()
}

// ReplaceByID swaps the record with the same id in place, preserving order.
// Collections not holding the id are left untouched.
func (c *Collection[T]) ReplaceByID(id string, item T) {
	for i := range c.Items {
		if c.Items[i].EntityID() == id {
			c.Items[i] = item
		}
	}
}

// RemoveByID drops the record from the collection. Filters into a fresh
// slice so sequences previously handed to callers stay intact.
func (c *Collection[T]) RemoveByID(id string) {
	kept := make([]T, 0, len(c.Items))
	for _, item := range c.Items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// Patch applies fn to every record matching id.
func (c *Collection[T]) Patch(id string, fn func(*T)) {
	for i := range c.Items {
		if c.Items[i].EntityID() == id {
			fn(&c.Items[i])
		}
	}
}

func (c *Collection[T]) Find(id string) (T, bool) {
	for _, item := range c.Items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) FindFunc(match func(T) bool) (T, bool) {
	for _, item := range c.Items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) FilterFunc(match func(T) bool) []T {
	var out []T
	for _, item := range c.Items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}
