package risk

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Column names expected in the price files.
const (
	ColumnDate   = "Date"
	ColumnTicker = "Ticker"
	ColumnClose  = "Close"
)

// DecodePrices reads raw price records from a CSV stream.
//
// The first row is a header that must contain the Date, Ticker and Close columns, in any order.
// Other columns are ignored. Values are not validated here, see [BuildSeries].
// A row too short to hold a column gets an empty value for it, so that the record is
// rejected later with its line number. Unbalanced quotes abort the decoding.
func DecodePrices(r io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty price file: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	cols := map[string]int{ColumnDate: -1, ColumnTicker: -1, ColumnClose: -1}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, ok := cols[strings.TrimSpace(name)]; ok {
			cols[strings.TrimSpace(name)] = i
		}
	}
	for _, name := range []string{ColumnDate, ColumnTicker, ColumnClose} {
		if cols[name] < 0 {
			return nil, fmt.Errorf("missing column %q in header %q", name, strings.Join(header, ","))
		}
	}

	var records []RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read prices: %w", err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, RawRecord{
			Line:   line,
			Date:   field(row, cols[ColumnDate]),
			Ticker: field(row, cols[ColumnTicker]),
			Close:  field(row, cols[ColumnClose]),
		})
	}
	return records, nil
}

// field returns the i-th field of the row, or "" if the row is too short.
func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// OpenPrices opens a price file for reading.
//
// "-" stands for the standard input. Files with a ".zst" suffix are decompressed on the fly.
func OpenPrices(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q for reading: %w", path, err)
	}
	if !strings.HasSuffix(path, ".zst") {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("cannot decompress %q: %w", path, err)
	}
	return &zstdReader{Decoder: dec, f: f}, nil
}

// ReadPrices is a convenient function to open, decode and close a price file.
func ReadPrices(path string) ([]RawRecord, error) {
	r, err := OpenPrices(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	records, err := DecodePrices(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

type zstdReader struct {
	*zstd.Decoder
	f *os.File
}

func (r *zstdReader) Close() error {
	r.Decoder.Close()
	return r.f.Close()
}
