// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/poverty-level/internal/report"
)

// FindResult finds a household result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []report.Result, name string) *report.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
