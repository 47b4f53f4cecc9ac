// Package fpl computes United States Federal Poverty Level (FPL) guidelines
// and a household's income as a ratio of its guideline.
//
// Household income as a percentage of FPL is commonly used to determine
// eligibility for assistance programs such as Medicaid. Guidelines are
// published per year for three state groups: Alaska, Hawaii and the 48
// contiguous states with DC.
//
// See https://aspe.hhs.gov/poverty-guidelines
package fpl

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/poverty-level/pkg/constants"
	"github.com/iwvelando/poverty-level/pkg/mathutil"
)

// DefaultPrecision is the number of decimal places used by callers that do
// not need a specific precision.
const DefaultPrecision = constants.DefaultPrecision

// PovertyLevel holds the household inputs of a guideline calculation. The
// zero value has no year, size or income; its guideline is 0.
//
// A PovertyLevel is not safe for concurrent mutation.
type PovertyLevel struct {
	state           string
	year            int
	householdSize   int
	householdIncome int
}

// New returns a PovertyLevel for the current calendar year.
func New(state string, householdIncome, householdSize int) (*PovertyLevel, error) {
	return NewWithFixedTime(state, householdIncome, householdSize, time.Now())
}

// NewWithFixedTime returns a PovertyLevel for the calendar year of now.
func NewWithFixedTime(state string, householdIncome, householdSize int, now time.Time) (*PovertyLevel, error) {
	return NewForYear(state, householdIncome, householdSize, now.Year())
}

// NewForYear returns a PovertyLevel with every field set and validated.
func NewForYear(state string, householdIncome, householdSize, year int) (*PovertyLevel, error) {
	p := &PovertyLevel{}
	p.SetState(state)
	if err := p.SetYear(year); err != nil {
		return nil, err
	}
	if err := p.SetHouseholdIncome(householdIncome); err != nil {
		return nil, err
	}
	if err := p.SetHouseholdSize(householdSize); err != nil {
		return nil, err
	}
	return p, nil
}

// State returns the upper-cased state abbreviation.
func (p *PovertyLevel) State() string {
	return p.state
}

// SetState stores the state abbreviation in upper case. Any string is
// accepted; codes other than AK and HI use the contiguous states table.
func (p *PovertyLevel) SetState(state string) *PovertyLevel {
	p.state = strings.ToUpper(state)
	return p
}

// Year returns the guideline year, or 0 if none has been set.
func (p *PovertyLevel) Year() int {
	return p.year
}

// SetYear sets the guideline year. The year is left unchanged on error.
func (p *PovertyLevel) SetYear(year int) error {
	if !IsSupportedYear(year) {
		return &UnsupportedYearError{Year: year}
	}
	p.year = year
	return nil
}

// HouseholdSize returns the number of persons in the household.
func (p *PovertyLevel) HouseholdSize() int {
	return p.householdSize
}

// SetHouseholdSize sets the number of persons in the household.
func (p *PovertyLevel) SetHouseholdSize(size int) error {
	if size < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidHouseholdSize, size)
	}
	p.householdSize = size
	return nil
}

// HouseholdIncome returns the modified adjusted gross household income in USD.
func (p *PovertyLevel) HouseholdIncome() int {
	return p.householdIncome
}

// SetHouseholdIncome sets the modified adjusted gross household income in whole USD.
func (p *PovertyLevel) SetHouseholdIncome(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w, got %d", ErrNegativeIncome, amount)
	}
	p.householdIncome = amount
	return nil
}

// StateGroup returns the guideline table partition for the stored state.
func (p *PovertyLevel) StateGroup() StateGroup {
	return GroupForState(p.state)
}

// Guideline returns the household income considered 100% of the poverty
// level. It is 0 when the household size has not been set.
func (p *PovertyLevel) Guideline() int {
	year := p.year
	if year == 0 {
		year = constants.LatestSupportedYear
	}
	table, err := defaultSchedule.Table(year)
	if err != nil {
		return 0
	}
	return table.Guideline(p.state, p.householdSize)
}

// GuidelineAsPercentage returns household income as a percentage of the
// guideline rounded to precision decimal places, e.g. 100 or 150.25.
func (p *PovertyLevel) GuidelineAsPercentage(precision int) (float64, error) {
	ratio, err := p.ratio()
	if err != nil {
		return 0, err
	}
	return mathutil.RoundTo(ratio*constants.PercentageMultiplier, precision), nil
}

// GuidelineAsDecimal returns household income as a fraction of the guideline
// rounded to precision decimal places, e.g. 0.5, 1 or 4.
func (p *PovertyLevel) GuidelineAsDecimal(precision int) (float64, error) {
	ratio, err := p.ratio()
	if err != nil {
		return 0, err
	}
	return mathutil.RoundTo(ratio, precision), nil
}

func (p *PovertyLevel) ratio() (float64, error) {
	guideline := p.Guideline()
	if guideline == 0 {
		return 0, ErrZeroGuideline
	}
	return float64(p.householdIncome) / float64(guideline), nil
}

// Summary evaluates every derived value at the given precision.
func (p *PovertyLevel) Summary(precision int) (Result, error) {
	percentage, err := p.GuidelineAsPercentage(precision)
	if err != nil {
		return Result{}, err
	}
	decimal, err := p.GuidelineAsDecimal(precision)
	if err != nil {
		return Result{}, err
	}
	return Result{
		State:           p.state,
		StateGroup:      p.StateGroup().String(),
		Year:            p.year,
		HouseholdSize:   p.householdSize,
		HouseholdIncome: p.householdIncome,
		Guideline:       p.Guideline(),
		Percentage:      percentage,
		Decimal:         decimal,
	}, nil
}

func (p *PovertyLevel) String() string {
	return fmt.Sprintf("%s %d: %d persons, income %d, guideline %d",
		p.state, p.year, p.householdSize, p.householdIncome, p.Guideline())
}

// Result is a snapshot of a household's inputs and derived guideline values.
type Result struct {
	State           string  `json:"state" yaml:"state"`
	StateGroup      string  `json:"stateGroup" yaml:"stateGroup"`
	Year            int     `json:"year" yaml:"year"`
	HouseholdSize   int     `json:"householdSize" yaml:"householdSize"`
	HouseholdIncome int     `json:"householdIncome" yaml:"householdIncome"`
	Guideline       int     `json:"guideline" yaml:"guideline"`
	Percentage      float64 `json:"percentage" yaml:"percentage"`
	Decimal         float64 `json:"decimal" yaml:"decimal"`
}
