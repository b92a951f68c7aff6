package sheets

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// API is the slice of spreadsheet operations the repositories need. The
// real implementation is Client; tests substitute a mock.
type API interface {
	ReadRows(readRange string) ([][]interface{}, error)
	AppendRow(appendRange string, row []interface{}) error
	UpdateCell(cellRange string, value interface{}) error
}

// Config holds the spreadsheet connection details.
type Config struct {
	SpreadsheetID   string
	CredentialsFile string
}

// Client wraps the Google Sheets v4 service for a single spreadsheet.
// Every method is one remote round trip; there is no local cache.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewClient authenticates with the service-account credentials file and
// returns a client bound to the configured spreadsheet.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}

	svc, err := gsheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	log.Println("Sheets client connected.")

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

// ReadRows fetches all values in the given A1-notation range. Rows are
// returned as the API delivers them: ragged, cells as interface{}.
func (c *Client) ReadRows(readRange string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", readRange, err)
	}
	return resp.Values, nil
}

// AppendRow appends a single row after the last non-empty row of the range.
func (c *Client) AppendRow(appendRange string, row []interface{}) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, appendRange, vr).
		ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to append row to %s: %w", appendRange, err)
	}
	return nil
}

// UpdateCell overwrites a single cell addressed in A1 notation.
func (c *Client) UpdateCell(cellRange string, value interface{}) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, cellRange, vr).
		ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to update cell %s: %w", cellRange, err)
	}
	return nil
}

// EnsureHeader writes the column header row if the sheet is still empty.
// Called once at startup.
func (c *Client) EnsureHeader(headerRange string, header []interface{}) error {
	existing, err := c.ReadRows(headerRange)
	if err != nil {
		return fmt.Errorf("failed to check header row: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	vr := &gsheets.ValueRange{Values: [][]interface{}{header}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, headerRange, vr).
		ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	log.Println("Sheet header initialized.")
	return nil
}
