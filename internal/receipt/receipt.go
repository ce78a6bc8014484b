package receipt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Domenick1991/skyfly/internal/domain"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const (
	fileSuffix = "_Fare_Receipt.xlsx"
	sheetName  = "Fare Receipt"
)

type Exporter interface {
	Export(ctx context.Context, b domain.Booking) (string, error)
}

// ExcelExporter writes one spreadsheet fare receipt per booking.
type ExcelExporter struct {
	dir    string
	logger *zerolog.Logger
}

func NewExcelExporter(dir string, logger *zerolog.Logger) *ExcelExporter {
	return &ExcelExporter{dir: dir, logger: logger}
}

func PathFor(dir string, b domain.Booking) string {
	return filepath.Join(dir, b.BookingID+fileSuffix)
}

func (e *ExcelExporter) Export(ctx context.Context, b domain.Booking) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create receipts directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		e.logger.Warn().Err(err).Str("booking_id", b.BookingID).Msg("failed to drop default sheet")
	}

	if err := writeReceipt(f, b); err != nil {
		return "", err
	}
	// A styling failure does not block the save.
	if err := styleReceipt(f, sheetName, len(receiptRows(b))); err != nil {
		e.logger.Warn().Err(err).Str("booking_id", b.BookingID).Msg("fare receipt styling incomplete")
	}

	path := PathFor(e.dir, b)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save receipt: %w", err)
	}

	e.logger.Info().Str("booking_id", b.BookingID).Str("file_path", path).Msg("fare receipt created")
	return path, nil
}

func receiptRows(b domain.Booking) [][2]any {
	return [][2]any{
		{"Booking ID", b.BookingID},
		{"Passenger Name", b.Name},
		{"Flight Number", b.FlightNo},
		{"Route", b.From + " → " + b.To},
		{"Departure Time", b.Date},
		{"Seat Number", b.Seat},
		{"Fare Amount", fmt.Sprintf("₹%d", b.Price)},
		{"Booking Time", b.BookingTime},
		{"Status", "Confirmed"},
	}
}

func writeReceipt(f *excelize.File, b domain.Booking) error {
	rows := receiptRows(b)
	cells := map[string]any{
		"A1": "SKYFLY AIRLINES",
		"A2": "Fare Receipt for " + b.Name,
	}
	for i, row := range rows {
		cells[fmt.Sprintf("A%d", i+4)] = row[0]
		cells[fmt.Sprintf("B%d", i+4)] = row[1]
	}
	footerRow := len(rows) + 5
	cells[fmt.Sprintf("A%d", footerRow)] = "Thank you for flying with SkyFly Airlines!"

	for cell, value := range cells {
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}

	return nil
}

// styleReceipt applies every style it can and reports all failures together.
func styleReceipt(f *excelize.File, sheet string, rowCount int) error {
	footerCell := fmt.Sprintf("A%d", rowCount+5)
	errs := []error{
		f.MergeCell(sheet, "A1", "B1"),
		f.SetColWidth(sheet, "A", "A", 20),
		f.SetColWidth(sheet, "B", "B", 36),
	}

	styles := []struct {
		from, to string
		style    *excelize.Style
	}{
		{"A1", "B1", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 16},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{"A4", fmt.Sprintf("A%d", rowCount+3), &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{footerCell, footerCell, &excelize.Style{Font: &excelize.Font{Italic: true, Size: 10}}},
	}
	for _, s := range styles {
		id, err := f.NewStyle(s.style)
		if err != nil {
			errs = append(errs, fmt.Errorf("style %s: %w", s.from, err))
			continue
		}
		if err := f.SetCellStyle(sheet, s.from, s.to, id); err != nil {
			errs = append(errs, fmt.Errorf("style %s: %w", s.from, err))
		}
	}
	return errors.Join(errs...)
}

var _ Exporter = (*ExcelExporter)(nil)
