package domain

const (
	GroupNUA = "NUA" // Nett Usable Area
	GroupNIA = "NIA" // Nett Internal Area
	GroupNLA = "NLA" // Nett Leasable Area
	GroupGIA = "GIA" // Gross Internal Area
	GroupGEA = "GEA" // Gross External Area
	GroupGLA = "GLA" // Gross Leasable Area
	GroupGBA = "GBA" // Gross Building Area
)

// KPIGroupNames is the fixed column order of the KPI table.
var KPIGroupNames = []string{GroupNUA, GroupNIA, GroupNLA, GroupGIA, GroupGEA, GroupGLA, GroupGBA}

// Group is a named bucket of element names whose areas are summed together.
type Group struct {
	Name    string
	Members []string
}

type Groups []Group

// NewGroups builds the seven KPI groups from a name → members lookup.
// Names absent from members produce empty groups.
func NewGroups(members map[string][]string) Groups {
	groups := make(Groups, 0, len(KPIGroupNames))
	for _, name := range KPIGroupNames {
		groups = append(groups, Group{Name: name, Members: members[name]})
	}
	return groups
}
