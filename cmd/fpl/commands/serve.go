package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/poverty-level/internal/server"
	"github.com/iwvelando/poverty-level/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(logLevel *string) *cobra.Command {
	var (
		serverConfig  string
		address       string
		maxUploadSize string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the guideline API and web page over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(serverConfig)
			if err != nil {
				return fmt.Errorf("failed to load server configuration at %s: %w", serverConfig, err)
			}
			if err := applyServeOverrides(cfg, address, maxUploadSize); err != nil {
				return err
			}

			logger, err := initializeLogger(cfg.Logging, *logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.Run(ctx, logger, cfg, version); err != nil {
				logger.Error("server stopped with error",
					zap.String("op", "commands.serve"),
					zap.Error(err),
				)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	cmd.Flags().StringVar(&maxUploadSize, "max-upload-size", "", "upload size limit override (e.g. 512K, 1M)")
	return cmd
}

// applyServeOverrides applies command-line overrides on top of the file and
// environment configuration.
func applyServeOverrides(cfg *server.Config, address, maxUploadSize string) error {
	if address != "" {
		cfg.Address = address
	}
	if maxUploadSize != "" {
		size, err := server.ParseSize(maxUploadSize)
		if err != nil {
			return fmt.Errorf("invalid --max-upload-size: %w", err)
		}
		if size <= 0 {
			return fmt.Errorf("invalid --max-upload-size %q: must be positive", maxUploadSize)
		}
		cfg.SetUploadSizeBytes(size)
	}
	return nil
}
