package analyst

import "fmt"

// Percent is a fraction of revenue: 0.25 reads as 25%.
type Percent float64

// Equal compares two percentages with a fixed precision.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", 100*float64(p))
}

// SignedString returns the percentage with an explicit sign, and "-" for zero.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", 100*float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
