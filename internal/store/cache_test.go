package store

import (
	"testing"
	"time"

	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string
	Name string
}

func (r record) EntityID() string { return r.ID }

func recs(ids ...string) []record {
	out := make([]record, 0, len(ids))
	for _, id := range ids {
		out = append(out, record{ID: id, Name: "name-" + id})
	}
	return out
}

func TestParamsKeyStableAndDiscriminating(t *testing.T) {
	type filters struct {
		Search string
		Page   int
	}

	a := ParamsKey(filters{Search: "milk", Page: 1})
	b := ParamsKey(filters{Search: "milk", Page: 1})
	c := ParamsKey(filters{Search: "milk", Page: 2})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, ParamsKey(nil), ParamsKey(filters{}))
}

func TestCollectionFresh(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	window := 30 * time.Second

	var c Collection[record]
	assert.False(t, c.Fresh(now, window, "k"), "never-fetched collection is never fresh")

	c.Replace(recs("r1"), model.Pagination{}, now, "k")
	assert.True(t, c.Fresh(now.Add(29*time.Second), window, "k"))
	assert.False(t, c.Fresh(now.Add(30*time.Second), window, "k"), "window boundary is exclusive")
	assert.False(t, c.Fresh(now.Add(time.Second), window, "other"), "freshness means nothing without a key match")

	c.Replace(nil, model.Pagination{}, now, "k")
	assert.False(t, c.Fresh(now.Add(time.Second), window, "k"), "an empty response is not a servable hit")
}

func TestCollectionInvalidateKeepsItems(t *testing.T) {
	now := time.Now()
	var c Collection[record]
	c.Replace(recs("r1", "r2"), model.Pagination{}, now, "k")

	c.Invalidate()

	assert.False(t, c.Fresh(now, time.Minute, "k"))
	assert.Len(t, c.Items, 2, "invalidation drops the stamp, not the data")

	c.Clear()
	assert.Nil(t, c.Items)
}

func TestCollectionMutators(t *testing.T) {
	var c Collection[record]
	c.Items = recs("r1", "r2", "r3")

	c.ReplaceByID("r2", record{ID: "r2", Name: "renamed"})
	got, ok := c.Find("r2")
	require.True(t, ok)
	assert.Equal(t, "renamed", got.Name)

	c.ReplaceByID("missing", record{ID: "missing"})
	_, ok = c.Find("missing")
	assert.False(t, ok, "replace never inserts")

	c.Patch("r3", func(r *record) { r.Name = "patched" })
	got, _ = c.Find("r3")
	assert.Equal(t, "patched", got.Name)

	c.RemoveByID("r1")
	assert.Equal(t, []record{{ID: "r2", Name: "renamed"}, {ID: "r3", Name: "patched"}}, c.Items)

	_, ok = c.FindFunc(func(r record) bool { return r.Name == "patched" })
	assert.True(t, ok)
	assert.Len(t, c.FilterFunc(func(r record) bool { return r.ID != "r2" }), 1)
}

func TestRemoveByIDLeavesPriorSlicesIntact(t *testing.T) {
	var c Collection[record]
	c.Items = recs("r1", "r2", "r3")
	held := c.Items

	c.RemoveByID("r1")

	assert.Equal(t, []string{"r2", "r3"}, idsOf(c.Items))
	assert.Equal(t, []string{"r1", "r2", "r3"}, idsOf(held),
		"a page handed out before the delete must keep its records")

	var s SearchSession[record]
	s.Apply("re", 1, recs("r1", "r2"), model.Pagination{Page: 1, Pages: 1}, time.Now())
	heldResults := s.Results

	s.RemoveByID("r1")

	assert.Equal(t, []string{"r2"}, idsOf(s.Results))
	assert.Equal(t, []string{"r1", "r2"}, idsOf(heldResults))
}

func TestSearchSessionPagination(t *testing.T) {
	now := time.Now()
	var s SearchSession[record]

	got := s.Apply("mi", 1, recs("r1", "r2"), model.Pagination{Page: 1, Pages: 3}, now)
	assert.Len(t, got, 2)
	assert.True(t, s.HasMore)

	got = s.Apply("mi", 2, recs("r3", "r4"), model.Pagination{Page: 2, Pages: 3}, now)
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, idsOf(got))
	assert.True(t, s.HasMore)

	got = s.Apply("mi", 3, recs("r5"), model.Pagination{Page: 3, Pages: 3}, now)
	assert.Len(t, got, 5)
	assert.False(t, s.HasMore, "last page exhausts the session")

	// Page 1 of any query starts over, even the same one.
	got = s.Apply("mi", 1, recs("r9"), model.Pagination{Page: 1, Pages: 1}, now)
	assert.Equal(t, []string{"r9"}, idsOf(got))
}

func TestSearchSessionFresh(t *testing.T) {
	now := time.Now()
	window := 2 * time.Second

	var s SearchSession[record]
	assert.False(t, s.Fresh(now, window, "", 0), "untouched session is never fresh")

	s.Apply("mi", 1, recs("r1"), model.Pagination{Page: 1, Pages: 1}, now)
	assert.True(t, s.Fresh(now.Add(time.Second), window, "mi", 1))
	assert.False(t, s.Fresh(now.Add(3*time.Second), window, "mi", 1))
	assert.False(t, s.Fresh(now, window, "milk", 1))
	assert.False(t, s.Fresh(now, window, "mi", 2))

	s.Invalidate()
	assert.False(t, s.Fresh(now, window, "mi", 1))
	assert.Len(t, s.Results, 1)

	s.Clear()
	assert.Nil(t, s.Results)
	assert.Empty(t, s.Query)
}

func idsOf(items []record) []string {
	out := make([]string, 0, len(items))
	for _, r := range items {
		out = append(out, r.ID)
	}
	return out
}
