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

func TestBookingService_BookRoom(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	in := models.BookingInput{
		Name: "Bob", Email: "bob@x.com", HostelName: "Typed Hostel", RoomType: "Single", From: "2026-06-01", To: "2026-06-30",
	}

	t.Run("TypedName", func(t *testing.T) {
		b, err := h.booking.BookRoom(ctx, in, nil)
		require.NoError(t, err)
		assert.Equal(t, "b1777627800000", b.ID)
		assert.Equal(t, "Typed Hostel", b.HostelName)
		assert.Equal(t, fixedNow, b.Created)
		h.bus.AssertCalled(t, "PublishJSON", events.EventBookingMade, mock.Anything)
	})

	t.Run("SelectedWins", func(t *testing.T) {
		b, err := h.booking.BookRoom(ctx, in, &models.Hostel{ID: "h1", Name: "Sunrise Hostel"})
		require.NoError(t, err)
		assert.Equal(t, "Sunrise Hostel", b.HostelName)
	})

	t.Run("SelectedWithoutName", func(t *testing.T) {
		b, err := h.booking.BookRoom(ctx, in, &models.Hostel{ID: "h9"})
		require.NoError(t, err)
		assert.Equal(t, "Typed Hostel", b.HostelName)
	})

	t.Run("SelectedFillsMissingName", func(t *testing.T) {
		noName := in
		noName.HostelName = ""
		b, err := h.booking.BookRoom(ctx, noName, &models.Hostel{Name: "Campus Stay"})
		require.NoError(t, err)
		assert.Equal(t, "Campus Stay", b.HostelName)
	})

	all, err := h.bookings.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestBookingService_BookRoomValidation(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	tests := []models.BookingInput{
		{Email: "a@b.c", HostelName: "H"},
		{Name: "A", HostelName: "H"},
		{Name: "A", Email: "a@b.c"},
	}
	for _, in := range tests {
		_, err := h.booking.BookRoom(ctx, in, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "Please fill required fields", domain.UserMessage(err))
	}

	ok, err := h.bookings.Initialized(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBookingService_Checkout(t *testing.T) {
	h := newHarness()
	h.seed()
	ctx := context.Background()

	_, err := h.catalog.SelectForBooking(ctx, "c1", "h1")
	require.NoError(t, err)

	b, err := h.booking.Checkout(ctx, "c1", models.BookingInput{Name: "Bob", Email: "bob@x.com", HostelName: "Other"})
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Hostel", b.HostelName)

	selected, err := h.sessions.GetSelectedHostel(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, selected)

	// without a selection the typed name is used
	b, err = h.booking.Checkout(ctx, "c1", models.BookingInput{Name: "Bob", Email: "bob@x.com", HostelName: "Other"})
	require.NoError(t, err)
	assert.Equal(t, "Other", b.HostelName)
}

func TestBookingService_CheckoutKeepsSelectionOnError(t *testing.T) {
	h := newHarness()
	h.seed()
	ctx := context.Background()

	_, err := h.catalog.SelectForBooking(ctx, "c1", "h2")
	require.NoError(t, err)

	_, err = h.booking.Checkout(ctx, "c1", models.BookingInput{Name: "Bob"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	selected, err := h.sessions.GetSelectedHostel(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, "h2", selected.ID)
}
