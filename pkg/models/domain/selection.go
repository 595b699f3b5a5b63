package domain

const (
	CategoryRooms = "Rooms"
	CategoryAreas = "Areas"
)

// Selection holds the two category toggles of a run.
type Selection struct {
	IncludeRooms bool
	IncludeAreas bool
}

// Categories returns the selected categories, rooms first.
func (s Selection) Categories() ([]string, error) {
	var categories []string
	if s.IncludeRooms {
		categories = append(categories, CategoryRooms)
	}
	if s.IncludeAreas {
		categories = append(categories, CategoryAreas)
	}
	if len(categories) == 0 {
		return nil, &ConfigurationError{
			Reason: "To make calculations you need to select one of the two options or both. Areas or/and Rooms",
		}
	}
	return categories, nil
}
