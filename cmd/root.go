package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"marketplace-console/internal/data/repository"
	"marketplace-console/internal/usecase"
	"marketplace-console/internal/wire"
	"marketplace-console/pkg/backend"
	"marketplace-console/pkg/cache"
	"marketplace-console/pkg/media"
	"marketplace-console/pkg/metrics"
	"marketplace-console/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "marketplace-console",
	Short:         "Admin and seller console for the marketplace",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the console route table",
	RunE:  runRoutes,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".env", "path to the env file")
	rootCmd.AddCommand(serveCmd, routesCmd)
}

// Execute runs the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.String("backend", config.Backend.URL),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var m *metrics.Metrics
	if config.Metrics.Enabled {
		m = metrics.NewMetrics(strings.ReplaceAll(config.App.Name, "-", "_"))
	}

	store, err := cache.New(ctx, config.Cache, logger)
	if err != nil {
		logger.Error("Failed to open cache", zap.String("driver", config.Cache.Driver), zap.Error(err))
		return err
	}
	defer store.Close()

	uploader, err := media.New(ctx, config.Media, m, logger)
	if err != nil {
		logger.Error("Failed to init media uploader", zap.String("driver", config.Media.Driver), zap.Error(err))
		return err
	}

	app, err := build(config, store, uploader, m, logger)
	if err != nil {
		logger.Error("Failed to wire application", zap.Error(err))
		return err
	}

	return APIServer(app.Router, config.App.Port, logger)
}

func runRoutes(cmd *cobra.Command, _ []string) error {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store := cache.NewMemory(0)
	defer store.Close()

	app, err := build(config, store, nil, nil, zap.NewNop())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return chi.Walk(app.Router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		fmt.Fprintf(out, "%-6s %s\n", method, strings.Replace(route, "/*/", "/", -1))
		return nil
	})
}

// build wires the backend client, repositories and the router.
func build(config *utils.Config, store cache.Cache, uploader media.Uploader, m *metrics.Metrics, logger *zap.Logger) (*wire.App, error) {
	client := backend.NewClient(config.Backend, m, logger)
	repo := repository.NewRepository(client, store, config.Session.MaxAge, logger)

	return wire.Wiring(usecase.Deps{
		Repo:     repo,
		Uploader: uploader,
		Cache:    store,
		Config:   config,
		Metrics:  m,
		Log:      logger,
	})
}
