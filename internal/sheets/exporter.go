package sheets

import (
	"context"
	"fmt"
	"time"

	"loadmaster/internal/app"

	"github.com/rs/zerolog/log"
)

// HistorySheetName is the tab loadsheet rows are appended to.
const HistorySheetName = "Loadsheets"

// HistoryExporter appends each received loadsheet as one row to a
// spreadsheet, giving dispatch a shared view of past flights. Export
// failures are logged, not fatal; the spreadsheet is a convenience mirror of
// the local history database.
type HistoryExporter struct {
	api           SheetsAPI
	spreadsheetID string
}

// NewHistoryExporter creates an exporter over the given API and spreadsheet.
func NewHistoryExporter(api SheetsAPI, spreadsheetID string) (*HistoryExporter, error) {
	if api == nil {
		return nil, fmt.Errorf("sheets API is required")
	}
	if spreadsheetID == "" {
		return nil, &app.ConfigurationError{Msg: "spreadsheet ID is empty"}
	}
	return &HistoryExporter{api: api, spreadsheetID: spreadsheetID}, nil
}

// EnsureSheet creates the history tab with its header row if it is missing.
func (e *HistoryExporter) EnsureSheet(ctx context.Context) error {
	exists, err := e.api.SheetExists(ctx, e.spreadsheetID, HistorySheetName)
	if err != nil {
		return fmt.Errorf("failed to check history sheet: %w", err)
	}
	if exists {
		return nil
	}

	if err := e.api.CreateSheet(ctx, e.spreadsheetID, HistorySheetName); err != nil {
		return fmt.Errorf("failed to create history sheet: %w", err)
	}

	header := [][]interface{}{{
		"Received", "Flight", "Edition", "ZFW", "TOW", "LAW", "Fuel", "Pax", "MACZFW", "MACTOW",
	}}
	if err := e.api.AppendRows(ctx, e.spreadsheetID, HistorySheetName, header); err != nil {
		return fmt.Errorf("failed to write history header: %w", err)
	}

	log.Info().
		Str("sheet_name", HistorySheetName).
		Msg("Created loadsheet history sheet")
	return nil
}

// Export appends one received loadsheet to the history sheet.
func (e *HistoryExporter) Export(ctx context.Context, flight string, typ app.LoadsheetType, data app.LoadsheetData) error {
	row := [][]interface{}{{
		time.Now().UTC().Format(time.RFC3339),
		flight,
		string(typ),
		data.ZeroFuelWeight,
		data.TakeoffWeight,
		data.LandingWeight,
		data.FuelWeight,
		data.TotalPassengers,
		data.ZeroFuelWeightMac,
		data.TakeoffWeightMac,
	}}

	if err := e.api.AppendRows(ctx, e.spreadsheetID, HistorySheetName, row); err != nil {
		return fmt.Errorf("failed to export loadsheet: %w", err)
	}

	log.Debug().
		Str("flight", flight).
		Str("type", string(typ)).
		Msg("Exported loadsheet to spreadsheet")
	return nil
}
