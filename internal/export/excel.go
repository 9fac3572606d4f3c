// Package export renders the admin tables as an XLSX workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"hostelhunt/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetUsers    = "Users"
	SheetHostels  = "Hostels"
	SheetBookings = "Bookings"
)

var (
	userHeaders    = []string{"ID", "Name", "Email", "Role"}
	hostelHeaders  = []string{"ID", "Name", "Location", "Price", "Type", "Owner", "Description"}
	bookingHeaders = []string{"ID", "Name", "Email", "Hostel", "Room type", "From", "To", "Created"}
)

// Workbook writes users, hostels and bookings to w, one sheet each.
// Passwords are not exported.
func Workbook(w io.Writer, users []models.User, hostels []models.Hostel, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetUsers); err != nil {
		return fmt.Errorf("error renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetHostels); err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetBookings); err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("error creating style: %w", err)
	}

	userRows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		userRows = append(userRows, []interface{}{u.ID, u.Name, u.Email, string(u.Role)})
	}
	hostelRows := make([][]interface{}, 0, len(hostels))
	for _, h := range hostels {
		hostelRows = append(hostelRows, []interface{}{h.ID, h.Name, h.Location, h.Price, h.Type, h.OwnerEmail, h.Description})
	}
	bookingRows := make([][]interface{}, 0, len(bookings))
	for _, b := range bookings {
		bookingRows = append(bookingRows, []interface{}{
			b.ID, b.UserName, b.UserEmail, b.HostelName, b.RoomType, b.From, b.To, b.Created.Format(time.RFC3339),
		})
	}

	sheets := []struct {
		name    string
		headers []string
		rows    [][]interface{}
	}{
		{SheetUsers, userHeaders, userRows},
		{SheetHostels, hostelHeaders, hostelRows},
		{SheetBookings, bookingHeaders, bookingRows},
	}
	for _, sh := range sheets {
		if err := writeSheet(f, sh.name, sh.headers, sh.rows, headerStyle); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing %s header: %w", sheet, err)
	}

	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing %s row %d: %w", sheet, i+2, err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(sheet, "A", lastCol, 18)
	return nil
}
