package commands

import (
	"fmt"

	"github.com/iwvelando/poverty-level/internal/config"
	"github.com/iwvelando/poverty-level/pkg/fpl"
	"github.com/iwvelando/poverty-level/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func calcCmd(logLevel *string) *cobra.Command {
	var (
		state     string
		income    int
		size      int
		year      int
		precision int
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the poverty guideline and income ratio for one household",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := initializeLogger(config.LoggingConfig{Format: "console"}, *logLevel)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			var p *fpl.PovertyLevel
			if cmd.Flags().Changed("year") {
				p, err = fpl.NewForYear(state, income, size, year)
			} else {
				p, err = fpl.New(state, income, size)
			}
			if err != nil {
				logger.Error("invalid household",
					zap.String("op", "commands.calc"),
					zap.Error(err),
				)
				return err
			}

			result, err := p.Summary(precision)
			if err != nil {
				return fmt.Errorf("failed to compute guideline: %w", err)
			}

			logger.Debug("guideline computed",
				zap.String("op", "commands.calc"),
				zap.String("household", p.String()),
			)
			output.GuidelineSummary(cmd.OutOrStdout(), result, precision)
			return nil
		},
	}

	cmd.Flags().StringVarP(&state, "state", "s", "", "two-letter state code")
	cmd.Flags().IntVarP(&income, "income", "i", 0, "household income in whole dollars")
	cmd.Flags().IntVarP(&size, "size", "n", 1, "number of persons in the household")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "guideline year (default current year)")
	cmd.Flags().IntVarP(&precision, "precision", "p", fpl.DefaultPrecision, "decimal places for ratios")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}
