package forecast

import "time"

// Festival and month-end windows where discounting is common.
func isSalePeriod(day time.Time) bool {
	if day.Day() >= 28 {
		return true
	}
	switch day.Month() {
	case time.October, time.November:
		return true
	}
	return false
}

// featureRow builds the regression features for one day: intercept,
// ordinal index, day-of-year, month, quarter, and a sale-period flag.
// dropped marks days where a discount was actually observed.
func featureRow(t int, day time.Time, dropped bool) []float64 {
	sale := 0.0
	if dropped || isSalePeriod(day) {
		sale = 1
	}
	month := int(day.Month())
	return []float64{
		1,
		float64(t),
		float64(day.YearDay()),
		float64(month),
		float64((month-1)/3 + 1),
		sale,
	}
}
