package fpl

import (
	"sort"
	"strings"

	"github.com/iwvelando/poverty-level/pkg/constants"
)

// StateGroup identifies which guideline table partition a state belongs to.
type StateGroup int

const (
	// Contiguous covers the 48 contiguous states, DC and any unrecognized code.
	Contiguous StateGroup = iota
	// Alaska covers AK.
	Alaska
	// Hawaii covers HI.
	Hawaii
)

func (g StateGroup) String() string {
	switch g {
	case Alaska:
		return "AK"
	case Hawaii:
		return "HI"
	default:
		return "48 contiguous states and DC"
	}
}

// GroupForState maps a state code, in any case, to its StateGroup.
func GroupForState(code string) StateGroup {
	switch strings.ToUpper(code) {
	case "AK":
		return Alaska
	case "HI":
		return Hawaii
	default:
		return Contiguous
	}
}

// GroupGuidelines holds the annual thresholds of one state group.
type GroupGuidelines struct {
	// Sizes[i] is the 100% guideline for a household of i+1 persons.
	Sizes [constants.TabulatedHouseholdSizes]int
	// AdditionalPerson is added for each person beyond the tabulated sizes.
	AdditionalPerson int
}

// ForSize returns the guideline for a household of the given size, or 0 when
// size is below 1.
func (g GroupGuidelines) ForSize(size int) int {
	switch {
	case size < 1:
		return 0
	case size <= len(g.Sizes):
		return g.Sizes[size-1]
	default:
		return g.Sizes[len(g.Sizes)-1] + g.AdditionalPerson*(size-len(g.Sizes))
	}
}

// GuidelineTable is the published guideline data for a single year.
type GuidelineTable struct {
	Year   int
	Groups map[StateGroup]GroupGuidelines
}

// Guideline returns the 100% poverty guideline for the state and household size.
func (t GuidelineTable) Guideline(state string, size int) int {
	group, ok := t.Groups[GroupForState(state)]
	if !ok {
		return 0
	}
	return group.ForSize(size)
}

// Schedule maps a year to its guideline table.
type Schedule map[int]GuidelineTable

// Years returns the years in the schedule in ascending order.
func (s Schedule) Years() []int {
	years := make([]int, 0, len(s))
	for year := range s {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// Table returns the table for year.
func (s Schedule) Table(year int) (GuidelineTable, error) {
	table, ok := s[year]
	if !ok {
		return GuidelineTable{}, &UnsupportedYearError{Year: year}
	}
	return table, nil
}

// 2013 and 2014 carry the same figures in this data set.
var guidelineGroups = map[StateGroup]GroupGuidelines{
	Contiguous: {
		Sizes:            [constants.TabulatedHouseholdSizes]int{11490, 15510, 19530, 23550, 27570, 31590, 35610, 39630},
		AdditionalPerson: 4020,
	},
	Alaska: {
		Sizes:            [constants.TabulatedHouseholdSizes]int{14350, 19380, 24410, 29440, 34470, 39500, 44530, 49560},
		AdditionalPerson: 5030,
	},
	Hawaii: {
		Sizes:            [constants.TabulatedHouseholdSizes]int{13230, 17850, 22470, 27090, 31710, 36330, 40950, 45570},
		AdditionalPerson: 4620,
	},
}

var defaultSchedule = Schedule{
	2013: {Year: 2013, Groups: copyGroups(guidelineGroups)},
	2014: {Year: 2014, Groups: copyGroups(guidelineGroups)},
}

func copyGroups(groups map[StateGroup]GroupGuidelines) map[StateGroup]GroupGuidelines {
	copied := make(map[StateGroup]GroupGuidelines, len(groups))
	for group, guidelines := range groups {
		copied[group] = guidelines
	}
	return copied
}

// SupportedYears returns the years with a built-in guideline table.
func SupportedYears() []int {
	return defaultSchedule.Years()
}

// IsSupportedYear reports whether a built-in guideline table exists for year.
func IsSupportedYear(year int) bool {
	_, ok := defaultSchedule[year]
	return ok
}

// TableForYear returns a copy of the built-in guideline table for year.
func TableForYear(year int) (GuidelineTable, error) {
	table, err := defaultSchedule.Table(year)
	if err != nil {
		return GuidelineTable{}, err
	}
	return GuidelineTable{Year: table.Year, Groups: copyGroups(table.Groups)}, nil
}
