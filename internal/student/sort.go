package student

import (
	"cmp"
	"slices"
)

// SortByName orders records by first name then last name using byte-wise
// comparison. Ties keep their incoming order.
func SortByName(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return cmp.Or(
			cmp.Compare(a.FirstName, b.FirstName),
			cmp.Compare(a.LastName, b.LastName),
		)
	})
}
