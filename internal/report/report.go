// Package report evaluates the configured households against the Federal
// Poverty Level guidelines.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/poverty-level/internal/config"
	"github.com/iwvelando/poverty-level/pkg/fpl"
	"go.uber.org/zap"
)

// ErrNoHouseholds is returned when a configuration lists no households.
var ErrNoHouseholds = errors.New("no households configured")

// Result holds the outcome for one configured household. Error is set, and
// the guideline values are zero, when the household could not be evaluated.
type Result struct {
	Name       string `json:"name" yaml:"name"`
	fpl.Result `yaml:",inline"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the household could not be evaluated.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Evaluate computes the guideline results for every household in conf.
func Evaluate(logger *zap.Logger, conf config.Configuration) ([]Result, error) {
	return EvaluateWithFixedTime(logger, conf, time.Now())
}

// EvaluateWithFixedTime computes the results using now as the current time
// for households without a year.
func EvaluateWithFixedTime(logger *zap.Logger, conf config.Configuration, now time.Time) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(conf.Households) == 0 {
		return nil, ErrNoHouseholds
	}

	results := make([]Result, 0, len(conf.Households))
	failures := 0
	for i, household := range conf.Households {
		result, err := evaluateHousehold(household, conf.Precision, now)
		result.Name = household.Label(i)
		if err != nil {
			failures++
			result.Error = err.Error()
			logger.Warn(fmt.Sprintf("failed to evaluate household %s", result.Name),
				zap.String("op", "report.Evaluate"),
				zap.Error(err),
			)
		} else {
			logger.Debug(fmt.Sprintf("evaluated household %s", result.Name),
				zap.String("op", "report.Evaluate"),
				zap.String("state", result.State),
				zap.Int("year", result.Year),
				zap.Int("guideline", result.Guideline),
				zap.Float64("percentage", result.Percentage),
			)
		}
		results = append(results, result)
	}

	logger.Info("report computed",
		zap.String("op", "report.Evaluate"),
		zap.Int("households", len(results)),
		zap.Int("failures", failures),
	)

	return results, nil
}

func evaluateHousehold(household config.Household, precision int, now time.Time) (Result, error) {
	year := household.Year
	if year == 0 {
		year = now.Year()
	}

	// Keep the inputs on failure so the row still identifies the household.
	result := Result{Result: fpl.Result{
		State:           strings.ToUpper(household.State),
		StateGroup:      fpl.GroupForState(household.State).String(),
		Year:            year,
		HouseholdSize:   household.HouseholdSize,
		HouseholdIncome: household.HouseholdIncome,
	}}

	p, err := fpl.NewForYear(household.State, household.HouseholdIncome, household.HouseholdSize, year)
	if err != nil {
		return result, err
	}

	summary, err := p.Summary(precision)
	if err != nil {
		return result, err
	}
	result.Result = summary
	return result, nil
}
