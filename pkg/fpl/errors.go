package fpl

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedYear is returned when no guideline table exists for a year.
	ErrUnsupportedYear = errors.New("unsupported year for Federal Poverty Level")

	// ErrInvalidHouseholdSize is returned for households with fewer than one person.
	ErrInvalidHouseholdSize = errors.New("household size must be at least 1")

	// ErrNegativeIncome is returned for a household income below zero.
	ErrNegativeIncome = errors.New("household income must not be negative")

	// ErrZeroGuideline is returned by the ratio getters when the guideline
	// resolves to zero, i.e. the household size was never set.
	ErrZeroGuideline = errors.New("poverty guideline is zero; household size not set")
)

// UnsupportedYearError carries the rejected year. It matches ErrUnsupportedYear
// under errors.Is.
type UnsupportedYearError struct {
	Year int
}

func (e *UnsupportedYearError) Error() string {
	return fmt.Sprintf("%s: %d (supported years: %v)", ErrUnsupportedYear, e.Year, SupportedYears())
}

func (e *UnsupportedYearError) Unwrap() error {
	return ErrUnsupportedYear
}
