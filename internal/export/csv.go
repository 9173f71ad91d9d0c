package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/fboinator/internal/series"
)

// CSVHeader names the exported columns.
var CSVHeader = []string{"n", "P_this_son_percent", "P_at_least_one_percent", "Expected_fraction_percent"}

// CSVPrecision is the number of decimals written for each percentage.
const CSVPrecision = 6

// WriteCSV writes the header and one line per row.
func WriteCSV(w io.Writer, rows []series.Row) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.N),
			strconv.FormatFloat(r.PerStep, 'f', CSVPrecision, 64),
			strconv.FormatFloat(r.Cumulative, 'f', CSVPrecision, 64),
			strconv.FormatFloat(r.Average, 'f', CSVPrecision, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file produced by WriteCSV.
func ReadCSV(r io.Reader) ([]series.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	if len(records) == 0 || records[0][0] != CSVHeader[0] {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedCSV)
	}

	rows := make([]series.Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		n, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: index %q", ErrMalformedCSV, i+2, rec[0])
		}
		var vals [3]float64
		for j := range vals {
			vals[j], err = strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: value %q", ErrMalformedCSV, i+2, rec[j+1])
			}
		}
		rows = append(rows, series.Row{N: n, PerStep: vals[0], Cumulative: vals[1], Average: vals[2]})
	}
	return rows, nil
}
