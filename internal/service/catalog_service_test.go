package service

import (
	"context"
	"testing"

	"hostelhunt/internal/domain"
	"hostelhunt/internal/events"
	"hostelhunt/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ids(hostels []models.Hostel) []string {
	out := make([]string, 0, len(hostels))
	for _, h := range hostels {
		out = append(out, h.ID)
	}
	return out
}

func TestCatalogService_Search(t *testing.T) {
	h := newHarness()
	h.seed()
	ctx := context.Background()

	tests := []struct {
		name string
		q    models.SearchQuery
		want []string
	}{
		{"location", models.SearchQuery{Location: "bhubaneswar"}, []string{"h1"}},
		{"case and spaces", models.SearchQuery{Location: "  CUTTACK "}, []string{"h2"}},
		{"by name", models.SearchQuery{Location: "campus"}, []string{"h2"}},
		{"max price", models.SearchQuery{MaxPrice: 2600}, []string{"h2"}},
		{"no filter", models.SearchQuery{}, []string{"h1", "h2"}},
		{"no match", models.SearchQuery{Location: "delhi"}, []string{}},
		{"price too low", models.SearchQuery{MaxPrice: 100}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.catalog.Search(ctx, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestCatalogService_SearchSkipsUnnamed(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	require.NoError(t, h.hostels.Replace(ctx, []models.Hostel{
		{ID: "x1", Price: 100},
		{ID: "x2", Location: "Puri", Price: 100},
	}))

	got, err := h.catalog.Search(ctx, models.SearchQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x2"}, ids(got))

	all, err := h.catalog.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCatalogService_SearchCorruptStore(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	require.NoError(t, h.kv.Set(ctx, models.KeyHostels, []byte("not json")))

	got, err := h.catalog.Search(ctx, models.SearchQuery{Location: "bhubaneswar"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatalogService_SelectForBooking(t *testing.T) {
	h := newHarness()
	h.seed()
	ctx := context.Background()

	got, err := h.catalog.SelectForBooking(ctx, "c1", "h2")
	require.NoError(t, err)
	assert.Equal(t, "Campus Stay", got.Name)

	selected, err := h.sessions.GetSelectedHostel(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, got, selected)
	h.bus.AssertCalled(t, "PublishJSON", events.EventHostelChosen, mock.Anything)

	_, err = h.catalog.SelectForBooking(ctx, "c1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Hostel not found", domain.UserMessage(err))

	// failed selection keeps the previous one
	selected, err = h.sessions.GetSelectedHostel(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "h2", selected.ID)
}
