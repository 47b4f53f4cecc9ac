package commands

import (
	"fmt"

	"github.com/iwvelando/poverty-level/pkg/constants"
	"github.com/iwvelando/poverty-level/pkg/fpl"
	"github.com/iwvelando/poverty-level/pkg/output"
	"github.com/spf13/cobra"
)

func tableCmd() *cobra.Command {
	var (
		year    int
		maxSize int
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the poverty guideline table for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxSize < 1 {
				return fmt.Errorf("max-size must be at least 1, got %d", maxSize)
			}
			table, err := fpl.TableForYear(year)
			if err != nil {
				return fmt.Errorf("no guideline table for %d (available %d-%d): %w",
					year, constants.FirstSupportedYear, constants.LatestSupportedYear, err)
			}
			output.GuidelineTable(cmd.OutOrStdout(), table, maxSize)
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", constants.LatestSupportedYear, "guideline year")
	cmd.Flags().IntVar(&maxSize, "max-size", constants.TabulatedHouseholdSizes, "largest household size to list")
	return cmd
}
