// Package output provides utilities for formatting and displaying guideline results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/poverty-level/internal/report"
	"github.com/iwvelando/poverty-level/pkg/format"
	"github.com/iwvelando/poverty-level/pkg/fpl"
	"gopkg.in/yaml.v3"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []report.Result, precision int) {
	fmt.Fprintf(w, "Household                      | State | Year | Size | Income       | Guideline    | Percent of FPL\n")
	fmt.Fprintf(w, "_________                      | _____ | ____ | ____ | ______       | _________    | ______________\n")
	for _, result := range results {
		fmt.Fprintf(w, "%-30s | %-5s | %4d | %4d | %-12s | ",
			result.Name, result.State, result.Year, result.HouseholdSize, format.Currency(result.HouseholdIncome))
		if result.Failed() {
			fmt.Fprintf(w, "%-12s | error: %s\n", "-", result.Error)
			continue
		}
		fmt.Fprintf(w, "%-12s | %s\n", format.Currency(result.Guideline), format.Percentage(result.Percentage, precision))
	}
}

// GuidelineSummary writes a single evaluated household.
func GuidelineSummary(w io.Writer, result fpl.Result, precision int) {
	fmt.Fprintf(w, "State:            %s (%s)\n", result.State, result.StateGroup)
	fmt.Fprintf(w, "Year:             %d\n", result.Year)
	fmt.Fprintf(w, "Household size:   %d\n", result.HouseholdSize)
	fmt.Fprintf(w, "Household income: %s\n", format.Currency(result.HouseholdIncome))
	fmt.Fprintf(w, "Guideline (100%%): %s\n", format.Currency(result.Guideline))
	fmt.Fprintf(w, "Percent of FPL:   %s\n", format.Percentage(result.Percentage, precision))
	fmt.Fprintf(w, "Ratio to FPL:     %s\n", strconv.FormatFloat(result.Decimal, 'f', -1, 64))
}

// GuidelineTable writes the thresholds of one year's table for household
// sizes 1 through maxSize.
func GuidelineTable(w io.Writer, table fpl.GuidelineTable, maxSize int) {
	groups := []fpl.StateGroup{fpl.Contiguous, fpl.Alaska, fpl.Hawaii}
	fmt.Fprintf(w, "--- Poverty guidelines for %d ---\n", table.Year)
	fmt.Fprintf(w, "Size | %-12s | %-12s | %-12s\n", "Default", "AK", "HI")
	fmt.Fprintf(w, "____ | ____________ | ____________ | ____________\n")
	for size := 1; size <= maxSize; size++ {
		fmt.Fprintf(w, "%4d", size)
		for _, group := range groups {
			fmt.Fprintf(w, " | %-12s", format.Currency(table.Groups[group].ForSize(size)))
		}
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "  +1")
	for _, group := range groups {
		fmt.Fprintf(w, " | %-12s", "+"+format.Currency(table.Groups[group].AdditionalPerson))
	}
	fmt.Fprintf(w, "\n")
}

// CsvFormat writes results in comma-separated value format.
func CsvFormat(w io.Writer, results []report.Result) error {
	writer := csv.NewWriter(w)
	header := []string{"name", "state", "state group", "year", "household size", "household income",
		"guideline", "percentage", "decimal", "error"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, result := range results {
		record := []string{
			result.Name,
			result.State,
			result.StateGroup,
			strconv.Itoa(result.Year),
			strconv.Itoa(result.HouseholdSize),
			strconv.Itoa(result.HouseholdIncome),
			strconv.Itoa(result.Guideline),
			strconv.FormatFloat(result.Percentage, 'f', -1, 64),
			strconv.FormatFloat(result.Decimal, 'f', -1, 64),
			result.Error,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV rendering of results.
func CsvString(results []report.Result) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		return ""
	}
	return buf.String()
}

// YamlFormat writes results as a YAML document.
func YamlFormat(w io.Writer, results []report.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(map[string][]report.Result{"results": results}); err != nil {
		return err
	}
	return encoder.Close()
}
