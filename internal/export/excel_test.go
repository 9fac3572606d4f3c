package export

import (
	"bytes"
	"testing"
	"time"

	"hostelhunt/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook(t *testing.T) {
	users := []models.User{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Password: "pass123", Role: models.RoleUser},
		{ID: 2, Name: "Admin", Email: "admin@example.com", Password: "admin123", Role: models.RoleAdmin},
	}
	hostels := []models.Hostel{
		{ID: "h1", Name: "Sunrise Hostel", Location: "Bhubaneswar", Price: 3000, Type: "Single/Double", OwnerEmail: "owner@example.com"},
	}
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{ID: "b1", UserName: "Bob", UserEmail: "bob@x.com", HostelName: "Sunrise Hostel", Created: created},
	}

	var buf bytes.Buffer
	require.NoError(t, Workbook(&buf, users, hostels, bookings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetUsers, SheetHostels, SheetBookings}, f.GetSheetList())

	userRows, err := f.GetRows(SheetUsers)
	require.NoError(t, err)
	require.Len(t, userRows, 3)
	assert.Equal(t, userHeaders, userRows[0])
	assert.Equal(t, "alice@example.com", userRows[1][2])
	for _, row := range userRows {
		assert.NotContains(t, row, "pass123")
	}

	hostelRows, err := f.GetRows(SheetHostels)
	require.NoError(t, err)
	require.Len(t, hostelRows, 2)
	assert.Equal(t, "3000", hostelRows[1][3])

	bookingRows, err := f.GetRows(SheetBookings)
	require.NoError(t, err)
	require.Len(t, bookingRows, 2)
	assert.Equal(t, created.Format(time.RFC3339), bookingRows[1][7])
}

func TestWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Workbook(&buf, nil, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	for _, sheet := range []string{SheetUsers, SheetHostels, SheetBookings} {
		rows, err := f.GetRows(sheet)
		require.NoError(t, err)
		assert.Len(t, rows, 1, sheet)
	}
}
