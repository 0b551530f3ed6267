package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gabriel-x/ai-app-scaffold/docs"
	"github.com/gabriel-x/ai-app-scaffold/internal/config"
	httpServer "github.com/gabriel-x/ai-app-scaffold/internal/http"
	"github.com/gabriel-x/ai-app-scaffold/internal/logging"
	"github.com/gabriel-x/ai-app-scaffold/internal/user"
)

// @title           AI App Scaffold API
// @version         1.0
// @description     Account backend: registration, login, token refresh and profile management.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:10000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "api",
		Short: "Run the account API server",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}

	serveCmd.Flags().String("env-file", ".env", "Path to an optional .env file")
	serveCmd.Flags().String("port", "", "Listen port (overrides PORT)")
	serveCmd.Flags().String("base-path", "", "API base path (overrides BASE_PATH)")

	rootCmd.AddCommand(serveCmd)

	// Running without a subcommand serves
	rootCmd.RunE = serveCmd.RunE
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	port, _ := cmd.Flags().GetString("port")

	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if port != "" {
		cfg.Server.Port = port
	}
	if cmd.Flags().Changed("base-path") {
		basePath, _ := cmd.Flags().GetString("base-path")
		cfg.Server.BasePath = config.NormalizeBasePath(basePath)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	slog.SetDefault(logger.Logger)
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"base_path", cfg.Server.BasePath,
		"token_format", cfg.Auth.TokenFormat,
	)

	if cfg.Auth.UsingDefaultSecret && cfg.Auth.TokenFormat == config.TokenFormatJWT {
		logger.Warn("JWT_SECRET is not set, using the built-in development secret")
	}

	docs.SwaggerInfo.BasePath = cfg.Server.BasePath
	if docs.SwaggerInfo.BasePath == "" {
		docs.SwaggerInfo.BasePath = "/"
	}
	docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port

	router, err := httpServer.NewAPI(cfg, user.NewStore(), logger)
	if err != nil {
		return err
	}

	server := httpServer.NewServer(cfg.Server, router, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndRun(ctx)
}
