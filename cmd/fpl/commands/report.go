package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/poverty-level/internal/config"
	"github.com/iwvelando/poverty-level/internal/report"
	"github.com/iwvelando/poverty-level/pkg/constants"
	"github.com/iwvelando/poverty-level/pkg/output"
	"github.com/iwvelando/poverty-level/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func reportCmd(logLevel *string) *cobra.Command {
	var (
		configLocation   string
		outputFormatFlag string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Evaluate every household in a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			usingExample := false
			if !cmd.Flags().Changed("config") && !fileExists(configLocation) && fileExists(constants.ExampleConfigFile) {
				configLocation = constants.ExampleConfigFile
				usingExample = true
			}

			conf, err := config.LoadConfiguration(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
			}

			logger, err := initializeLogger(conf.Logging, *logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			if usingExample {
				logger.Warn("configuration file not found, using example configuration",
					zap.String("op", "commands.report"),
					zap.String("missing", constants.DefaultConfigFile),
					zap.String("config", constants.ExampleConfigFile),
				)
			}

			// CLI override takes precedence over config
			outputFormat := conf.Output.Format
			if outputFormatFlag != "" {
				outputFormat = outputFormatFlag
			}
			if outputFormat == "" {
				outputFormat = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(outputFormat); err != nil {
				logger.Error(err.Error(), zap.String("op", "commands.report"))
				return err
			}

			for _, warning := range conf.ValidateConfiguration() {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "commands.report"),
				)
			}

			results, err := report.Evaluate(logger, *conf)
			if err != nil {
				logger.Error("failed to compute report",
					zap.String("op", "commands.report"),
					zap.Error(err),
				)
				return err
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case constants.OutputFormatCSV:
				return output.CsvFormat(out, results)
			case constants.OutputFormatYAML:
				return output.YamlFormat(out, results)
			default:
				output.PrettyFormat(out, results, conf.Precision)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configLocation, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	cmd.Flags().StringVarP(&outputFormatFlag, "output-format", "o", "", "type of output override: pretty, csv, yaml")
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
