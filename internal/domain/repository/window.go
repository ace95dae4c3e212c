package repository

// Trailing windows used by trend and deal classification, in days.
const (
	ShortWindowDays = 7
	LongWindowDays  = 30

	DefaultHorizonDays = 30
	MaxHorizonDays     = 90
)

// ClampHorizon converts a raw horizon to a valid one (or default).
func ClampHorizon(days int) int {
	if days <= 0 {
		return DefaultHorizonDays
	}
	if days > MaxHorizonDays {
		return MaxHorizonDays
	}
	return days
}
