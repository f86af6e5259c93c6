package api

import (
	"fmt"
	"net/http"
	"time"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

// handleExportOwnerBookings streams the owner's bookings as an XLSX workbook.
// It accepts the same state and paging parameters as the owner listing.
func (s *HTTPServer) handleExportOwnerBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-Sharer-User-Id header is required")
		return
	}
	state, ok := models.ParseState(r.URL.Query().Get("state"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown state: "+r.URL.Query().Get("state"))
		return
	}
	from, size, ok := s.paging(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid paging parameters")
		return
	}

	bookings, err := s.bookings.ListByOwner(r.Context(), state, userID, from, size)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	f, err := s.buildBookingsWorkbook(bookings)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to build export workbook")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer f.Close()

	fileName := fmt.Sprintf("bookings_export_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	if err := f.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("failed to write export workbook")
	}
}

func (s *HTTPServer) buildBookingsWorkbook(bookings []*models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := s.cfg.Export.SheetName
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Item", "Booker", "Start", "End", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for i, booking := range bookings {
		row := i + 2
		itemName := ""
		if booking.Item != nil {
			itemName = booking.Item.Name
		}
		bookerName := ""
		if booking.Booker != nil {
			bookerName = booking.Booker.Name
		}

		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), booking.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), itemName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), bookerName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), booking.Start.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), booking.End.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), string(booking.Status))
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "C", 25)
	_ = f.SetColWidth(sheetName, "D", "E", 20)
	_ = f.SetColWidth(sheetName, "F", "F", 12)

	_ = f.DeleteSheet("Sheet1")
	return f, nil
}
