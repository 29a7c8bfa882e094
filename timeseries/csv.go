package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("timeseries: missing column")

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	TimeColumn   string // Column name for time (default: "t"; optional in the file)
	InputColumn  string // Column name for the input u (default: "u")
	OutputColumn string // Column name for the output y (default: "y")
	HasHeader    bool   // Whether CSV has header row (default: true)
	Delimiter    rune   // Field delimiter (default: ',')
	SkipRows     int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		TimeColumn:   "t",
		InputColumn:  "u",
		OutputColumn: "y",
		HasHeader:    true,
		Delimiter:    ',',
	}
}

// LoadCSV loads a dataset from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	d, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return d, nil
}

// LoadCSVFromReader loads a dataset from an io.Reader.
//
// Unlike a single-channel series, a lagged input/output dataset cannot skip
// rows: a missing value is reported with its line number.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Dataset, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	line := 0
	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
		line++
	}

	// Without a header the columns are t,u,y in that order.
	tIdx, uIdx, yIdx := 0, 1, 2
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		line++
		tIdx, uIdx, yIdx = -1, -1, -1
		for i, h := range header {
			h = strings.TrimSpace(strings.Trim(h, "\""))
			switch h {
			case opts.TimeColumn:
				tIdx = i
			case opts.InputColumn:
				uIdx = i
			case opts.OutputColumn:
				yIdx = i
			}
		}
		if uIdx == -1 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, opts.InputColumn)
		}
		if yIdx == -1 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, opts.OutputColumn)
		}
	}

	var t, u, y []float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		// Skip blank lines
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		uv, err := parseField(record, uIdx)
		if err != nil {
			return nil, fmt.Errorf("line %d, column %q: %w", line, opts.InputColumn, err)
		}
		yv, err := parseField(record, yIdx)
		if err != nil {
			return nil, fmt.Errorf("line %d, column %q: %w", line, opts.OutputColumn, err)
		}
		u = append(u, uv)
		y = append(y, yv)

		if tIdx >= 0 {
			tv, err := parseField(record, tIdx)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", line, opts.TimeColumn, err)
			}
			t = append(t, tv)
		}
	}

	if len(y) == 0 {
		return nil, errors.New("no valid data found in CSV")
	}

	return NewDataset(t, u, y)
}

func parseField(record []string, idx int) (float64, error) {
	if idx < 0 || idx >= len(record) {
		return 0, errors.New("field missing")
	}
	s := strings.TrimSpace(strings.Trim(record[idx], "\""))
	switch s {
	case "", "NA", "NaN", "null":
		return 0, fmt.Errorf("missing value %q", s)
	}
	return strconv.ParseFloat(s, 64)
}

// Predicted is any aligned prediction series that can report whether an
// index carries a defined value.
type Predicted interface {
	At(k int) (float64, bool)
}

// SavePredictionsCSV writes t,u,y,y_pred rows to w. Indices without a defined
// prediction are written as empty cells.
func SavePredictionsCSV(w io.Writer, d *Dataset, pred Predicted) error {
	bw := bufio.NewWriter(w)
	writer := csv.NewWriter(bw)

	if err := writer.Write([]string{"t", "u", "y", "y_pred"}); err != nil {
		return err
	}
	for k := 0; k < d.Len(); k++ {
		p := ""
		if v, ok := pred.At(k); ok {
			p = formatFloat(v)
		}
		row := []string{formatFloat(d.T[k]), formatFloat(d.U[k]), formatFloat(d.Y[k]), p}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// SaveCSV saves a dataset to a CSV file with a t,u,y header.
func SaveCSV(d *Dataset, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"t", "u", "y"}); err != nil {
		return err
	}
	for k := 0; k < d.Len(); k++ {
		if err := writer.Write([]string{formatFloat(d.T[k]), formatFloat(d.U[k]), formatFloat(d.Y[k])}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
