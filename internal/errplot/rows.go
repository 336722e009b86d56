package errplot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names read from the validator CSV output
const (
	ColHRel       = "h_rel"
	ColErrDFD     = "err_D_fd"
	ColErrDCS     = "err_D_cs"
	ColErrGFD     = "err_G_fd"
	ColErrGCSReal = "err_G_cs_real"
	ColErrGCS45   = "err_G_cs_45"
)

var requiredColumns = []string{ColHRel, ColErrDFD, ColErrDCS, ColErrGFD, ColErrGCSReal, ColErrGCS45}

// ErrMissingColumn the CSV header lacks a required column
var ErrMissingColumn = errors.New("missing column")

// ErrorRow absolute errors of one step size
type ErrorRow struct {
	HRel           float64
	ErrDeltaFD     float64
	ErrDeltaCS     float64
	ErrGammaFD     float64
	ErrGammaCSReal float64
	ErrGammaCS45   float64
}

// LoadErrorRows reads the error columns of a scenario CSV. Extra columns are
// ignored.
func LoadErrorRows(path string) ([]ErrorRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadErrorRows(f)
}

// ReadErrorRows parses CSV content with a header row
func ReadErrorRows(r io.Reader) ([]ErrorRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty csv: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	rows := []ErrorRow{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		values := make([]float64, len(requiredColumns))
		for i, name := range requiredColumns {
			raw := strings.TrimSpace(record[index[name]])
			values[i], err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: invalid number %q", line, name, raw)
			}
		}

		rows = append(rows, ErrorRow{
			HRel:           values[0],
			ErrDeltaFD:     values[1],
			ErrDeltaCS:     values[2],
			ErrGammaFD:     values[3],
			ErrGammaCSReal: values[4],
			ErrGammaCS45:   values[5],
		})
	}

	return rows, nil
}
