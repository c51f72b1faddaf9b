package analyst

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Dataset column names. CustomerName, ProjectName, Revenue and COGS are
// required; OPEX is optional and treated as zero when the column is absent.
const (
	colCustomer = "CustomerName"
	colProject  = "ProjectName"
	colRevenue  = "Revenue"
	colCOGS     = "COGS"
	colOPEX     = "OPEX"
)

// DecodeLedger decodes records from CSV data. The header row must contain
// the required columns, in any order; unknown columns are ignored.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty dataset: missing header row")
		}
		return nil, fmt.Errorf("could not read header row: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colCustomer, colProject, colRevenue, colCOGS} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	_, hasOPEX := columns[colOPEX]

	ledger := NewLedger()
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read line %d: %w", line, err)
		}

		rec := Record{
			Customer: row[columns[colCustomer]],
			Project:  row[columns[colProject]],
			OPEX:     decimal.Zero,
		}
		if rec.Revenue, err = parseAmount(row[columns[colRevenue]]); err != nil {
			return nil, fmt.Errorf("line %d, column %s: %w", line, colRevenue, err)
		}
		if rec.COGS, err = parseAmount(row[columns[colCOGS]]); err != nil {
			return nil, fmt.Errorf("line %d, column %s: %w", line, colCOGS, err)
		}
		if hasOPEX {
			if rec.OPEX, err = parseAmount(row[columns[colOPEX]]); err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, colOPEX, err)
			}
		}
		ledger.Append(rec)
	}
	return ledger, nil
}

// parseAmount parses a monetary cell. An empty cell reads as zero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// EncodeLedger writes the ledger back as canonical CSV: the full column set
// in canonical order, one row per record, amounts in plain decimal notation.
func EncodeLedger(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{colCustomer, colProject, colRevenue, colCOGS, colOPEX}); err != nil {
		return fmt.Errorf("could not write header row: %w", err)
	}
	for i, r := range l.Records() {
		row := []string{r.Customer, r.Project, r.Revenue.String(), r.COGS.String(), r.OPEX.String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
