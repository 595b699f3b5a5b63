package domain

// FlatRecord is the typed projection of one retained element.
type FlatRecord struct {
	ElementID string
	Category  string
	Level     *string
	Name      *string
	Area      *float64
}

// AreaValue returns the area, treating a missing value as zero.
func (r FlatRecord) AreaValue() float64 {
	if r.Area == nil {
		return 0
	}
	return *r.Area
}

// LevelSum is the summed area of one level.
type LevelSum struct {
	Level string
	Area  float64
}
