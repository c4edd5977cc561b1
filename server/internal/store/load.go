package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/launchboard/launchboard/pkg/types"
)

// Column headers understood by the loader.
const (
	ColSite            = "Launch Site"
	ColPayload         = "Payload Mass (kg)"
	ColClass           = "class"
	ColBoosterCategory = "Booster Version Category"
	ColFlightNumber    = "Flight Number"
	ColBoosterVersion  = "Booster Version"
)

var requiredColumns = []string{ColSite, ColPayload, ColClass, ColBoosterCategory}

var (
	// ErrEmptyDataset is returned when the source has a header but no rows.
	ErrEmptyDataset = errors.New("dataset has no records")

	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMalformedRow is returned for a row that cannot be parsed.
	ErrMalformedRow = errors.New("malformed row")
)

// Load opens path and parses it with Read.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	st, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", path, err)
	}
	slog.Info("dataset loaded",
		"path", path,
		"records", st.Len(),
		"sites", len(st.Sites()),
		"payload_min", st.PayloadBounds().Min,
		"payload_max", st.PayloadBounds().Max,
	)
	return st, nil
}

// Read parses a launch CSV from r. The first line must be a header; column
// order is free and unknown columns are ignored.
func Read(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var records []types.LaunchRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		records = append(records, rec)
	}

	return New(records)
}

// indexColumns maps header names to field positions. Optional columns are
// -1 when absent.
func indexColumns(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		// Some exports prefix the first header with a UTF-8 BOM.
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		pos[h] = i
	}

	cols := make(map[string]int, len(requiredColumns)+2)
	for _, name := range requiredColumns {
		i, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		cols[name] = i
	}
	for _, name := range []string{ColFlightNumber, ColBoosterVersion} {
		if i, ok := pos[name]; ok {
			cols[name] = i
		} else {
			cols[name] = -1
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (types.LaunchRecord, error) {
	field := func(name string) string {
		i := cols[name]
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	site := field(ColSite)
	if site == "" {
		return types.LaunchRecord{}, fmt.Errorf("empty %q", ColSite)
	}

	payload, err := strconv.ParseFloat(field(ColPayload), 64)
	if err != nil {
		return types.LaunchRecord{}, fmt.Errorf("invalid %q: %w", ColPayload, err)
	}
	if payload < 0 || math.IsNaN(payload) || math.IsInf(payload, 0) {
		return types.LaunchRecord{}, fmt.Errorf("invalid %q: %v", ColPayload, payload)
	}

	class, err := strconv.Atoi(field(ColClass))
	if err != nil {
		return types.LaunchRecord{}, fmt.Errorf("invalid %q: %w", ColClass, err)
	}
	outcome := types.Outcome(class)
	if !outcome.Valid() {
		return types.LaunchRecord{}, fmt.Errorf("invalid %q: %d is not 0 or 1", ColClass, class)
	}

	rec := types.LaunchRecord{
		Site:            site,
		PayloadMassKg:   payload,
		Outcome:         outcome,
		BoosterCategory: field(ColBoosterCategory),
		BoosterVersion:  field(ColBoosterVersion),
	}
	if fn := field(ColFlightNumber); fn != "" {
		n, err := strconv.Atoi(fn)
		if err != nil {
			return types.LaunchRecord{}, fmt.Errorf("invalid %q: %w", ColFlightNumber, err)
		}
		rec.FlightNumber = n
	}
	return rec, nil
}
