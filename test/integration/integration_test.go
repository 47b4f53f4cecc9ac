package integration

import (
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/poverty-level/internal/config"
	"github.com/iwvelando/poverty-level/internal/report"
	"github.com/iwvelando/poverty-level/pkg/fpl"
	"github.com/iwvelando/poverty-level/pkg/mathutil"
	"github.com/iwvelando/poverty-level/pkg/output"
	"github.com/iwvelando/poverty-level/pkg/testutil"
	"go.uber.org/zap"
)

// TestMainIntegrationBaseline runs the example configuration exactly as the
// report command does and checks the rendered values.
func TestMainIntegrationBaseline(t *testing.T) {
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../../config.yaml.example")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings for example config, got %v", warnings)
	}

	results, err := report.Evaluate(logger, *conf)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	baseline := []struct {
		name       string
		guideline  int
		percentage float64
		decimal    float64
	}{
		{"single adult", 11490, 150, 1.5},
		{"family of four", 27090, 150, 1.5},
		{"large household", 54590, 109.91, 1.1},
	}

	if len(results) != len(baseline) {
		t.Fatalf("expected %d results, got %d", len(baseline), len(results))
	}
	for _, want := range baseline {
		got := testutil.FindResult(results, want.name)
		if got == nil {
			t.Errorf("missing result %s", want.name)
			continue
		}
		if got.Failed() {
			t.Errorf("%s failed: %s", want.name, got.Error)
			continue
		}
		if got.Guideline != want.guideline {
			t.Errorf("%s guideline = %d, expected %d", want.name, got.Guideline, want.guideline)
		}
		if !mathutil.WithinTolerance(got.Percentage, want.percentage, 0.001) {
			t.Errorf("%s percentage = %v, expected %v", want.name, got.Percentage, want.percentage)
		}
		if !mathutil.WithinTolerance(got.Decimal, want.decimal, 0.001) {
			t.Errorf("%s decimal = %v, expected %v", want.name, got.Decimal, want.decimal)
		}
	}

	csv := output.CsvString(results)
	if strings.Count(csv, "\n") != len(results)+1 {
		t.Errorf("expected %d CSV lines, got:\n%s", len(results)+1, csv)
	}
}

// TestEveryTabulatedGuideline checks the library against a full recomputation
// of each year's table, including the additional-person formula.
func TestEveryTabulatedGuideline(t *testing.T) {
	for _, year := range fpl.SupportedYears() {
		table, err := fpl.TableForYear(year)
		if err != nil {
			t.Fatalf("TableForYear(%d) error = %v", year, err)
		}
		for _, state := range []string{"AK", "HI", "MO", "CA", "DC"} {
			group := table.Groups[fpl.GroupForState(state)]
			for size := 1; size <= 20; size++ {
				expected := group.AdditionalPerson*(size-8) + group.Sizes[7]
				if size <= 8 {
					expected = group.Sizes[size-1]
				}

				p, err := fpl.NewForYear(state, expected, size, year)
				if err != nil {
					t.Fatalf("NewForYear() error = %v", err)
				}
				if p.Guideline() != expected {
					t.Errorf("%d %s size %d: %d, expected %d", year, state, size, p.Guideline(), expected)
				}
				percentage, err := p.GuidelineAsPercentage(fpl.DefaultPrecision)
				if err != nil {
					t.Fatalf("GuidelineAsPercentage() error = %v", err)
				}
				if percentage != 100 {
					t.Errorf("%d %s size %d: percentage %v, expected 100", year, state, size, percentage)
				}
			}
		}
	}
}

// TestPerformance evaluates a large batch of households.
func TestPerformance(t *testing.T) {
	conf := config.Configuration{Precision: 2}
	states := []string{"AK", "HI", "MO", "NY"}
	for i := 0; i < 10000; i++ {
		conf.Households = append(conf.Households, config.Household{
			State:           states[i%len(states)],
			Year:            2013 + i%2,
			HouseholdSize:   1 + i%12,
			HouseholdIncome: i * 7,
		})
	}

	start := time.Now()
	results, err := report.Evaluate(zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	duration := time.Since(start)

	if len(results) != len(conf.Households) {
		t.Fatalf("expected %d results, got %d", len(conf.Households), len(results))
	}
	for _, result := range results {
		if result.Failed() {
			t.Fatalf("unexpected failure for %s: %s", result.Name, result.Error)
		}
	}

	if duration > 5*time.Second {
		t.Errorf("evaluation took %v, expected under 5s", duration)
	}
	t.Logf("Evaluated %d households in %v", len(results), duration)
}
