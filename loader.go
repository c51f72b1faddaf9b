package analyst

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DefaultRecordsPath is the JSONPath of the record array in a .json dataset.
const DefaultRecordsPath = "$.records"

// Load reads the full dataset at path into memory, on every invocation.
// The format is chosen by extension: .json datasets hold their records under
// recordsPath (DefaultRecordsPath when empty); anything else is read as CSV.
// Any failure to read or decode the source surfaces as a *DatasetError.
func Load(path, recordsPath string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DatasetError{Path: path, Err: err}
	}
	defer f.Close()

	var ledger *Ledger
	if strings.EqualFold(filepath.Ext(path), ".json") {
		ledger, err = DecodeJSONLedger(f, recordsPath)
	} else {
		ledger, err = DecodeLedger(f)
	}
	if err != nil {
		return nil, &DatasetError{Path: path, Err: err}
	}
	ledger.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ledger, nil
}

// DecodeJSONLedger decodes records from a JSON document. The record array is
// located with a JSONPath expression; each element must be an object with
// the same columns as the CSV form. Amounts may be JSON numbers or strings.
func DecodeJSONLedger(r io.Reader, recordsPath string) (*Ledger, error) {
	if recordsPath == "" {
		recordsPath = DefaultRecordsPath
	}

	var doc any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not parse JSON dataset: %w", err)
	}

	jval, err := jsonpath.Get(recordsPath, doc)
	if err != nil {
		return nil, fmt.Errorf("could not locate records at %q: %w", recordsPath, err)
	}
	rows, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("records at %q are not an array, got %T", recordsPath, jval)
	}

	ledger := NewLedger()
	for i, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d is not an object, got %T", i, row)
		}
		for _, required := range []string{colCustomer, colProject, colRevenue, colCOGS} {
			if _, ok := obj[required]; !ok {
				return nil, fmt.Errorf("record %d: missing required column %q", i, required)
			}
		}
		rec := Record{
			Customer: fmt.Sprint(obj[colCustomer]),
			Project:  fmt.Sprint(obj[colProject]),
		}
		if rec.Revenue, err = jsonAmount(obj[colRevenue]); err != nil {
			return nil, fmt.Errorf("record %d, column %s: %w", i, colRevenue, err)
		}
		if rec.COGS, err = jsonAmount(obj[colCOGS]); err != nil {
			return nil, fmt.Errorf("record %d, column %s: %w", i, colCOGS, err)
		}
		if opex, hasOPEX := obj[colOPEX]; hasOPEX {
			if rec.OPEX, err = jsonAmount(opex); err != nil {
				return nil, fmt.Errorf("record %d, column %s: %w", i, colOPEX, err)
			}
		} else {
			rec.OPEX = decimal.Zero
		}
		ledger.Append(rec)
	}
	return ledger, nil
}

// jsonAmount converts a decoded JSON value into a decimal amount.
func jsonAmount(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return parseAmount(n.String())
	case string:
		return parseAmount(n)
	case nil:
		return decimal.Zero, nil
	default:
		return decimal.Zero, fmt.Errorf("invalid amount %v (%T)", v, v)
	}
}
