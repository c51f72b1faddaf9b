package analyst

import "github.com/shopspring/decimal"

// rec is a helper for tests to create a record from float constants.
func rec(customer, project string, revenue, cogs, opex float64) Record {
	return Record{
		Customer: customer,
		Project:  project,
		Revenue:  decimal.NewFromFloat(revenue),
		COGS:     decimal.NewFromFloat(cogs),
		OPEX:     decimal.NewFromFloat(opex),
	}
}

// d is a helper for tests to create a decimal from a float constant.
func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// testLedger returns a small ledger with three customers and overlapping
// projects, used across tests.
func testLedger() *Ledger {
	l := NewLedger()
	l.Append(
		rec("Acme Corporation", "Website Redesign", 100, 40, 10),
		rec("Acme Corporation", "Mobile App", 50, 10, 5),
		rec("Globex Inc", "Website Redesign", 30, 15, 5),
		rec("Globex Inc", "Data Migration", 20, 5, 5),
		rec("Initech LLC", "Data Migration", 10, 2, 1),
	)
	return l
}
