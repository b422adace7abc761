package ingest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"keycrypt-backend/internal/apperror"
	"keycrypt-backend/internal/models"
)

// timestampLayouts are tried in order when parsing a timestamp cell.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01-02-06 15:04",
}

// ParseActivities reads the first worksheet of an .xlsx upload into activity
// entries. The header row names the fields; every following row becomes one
// entry at the matching slice index, so downstream per-index failures point
// at spreadsheet rows. A malformed cell leaves its field zero-valued instead
// of aborting the parse; validation downstream reports the row.
func ParseActivities(r io.Reader) ([]models.ActivityEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable xlsx file", apperror.ErrValidation)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no worksheets", apperror.ErrValidation)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: worksheet needs a header row and at least one data row", apperror.ErrValidation)
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(cell))
	}

	entries := make([]models.ActivityEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		entries = append(entries, entryFromRow(header, row))
	}
	return entries, nil
}

func entryFromRow(header, row []string) models.ActivityEntry {
	var entry models.ActivityEntry
	for i, name := range header {
		if i >= len(row) {
			break
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}
		switch name {
		case "device":
			entry.Device = value
		case "city":
			entry.City = value
		case "state":
			entry.State = value
		case "country":
			entry.Country = value
		case "ip":
			entry.IP = value
		case "timestamp":
			entry.Timestamp = parseTimestamp(value)
		case "suspicious":
			entry.Suspicious = parseBool(value)
		case "sessionactive", "session_active":
			entry.SessionActive = parseBool(value)
		}
	}
	return entry
}

// parseTimestamp returns the zero time when no layout matches; required-field
// validation then fails the row with its index intact.
func parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}
