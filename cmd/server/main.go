package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/project-estimation-api/internal/catalog"
	"github.com/yukikurage/project-estimation-api/internal/config"
	"github.com/yukikurage/project-estimation-api/internal/database"
	"github.com/yukikurage/project-estimation-api/internal/handlers"
	"github.com/yukikurage/project-estimation-api/internal/repository"
	"github.com/yukikurage/project-estimation-api/internal/services"
	"github.com/yukikurage/project-estimation-api/pkg/logger/sl"
	"github.com/yukikurage/project-estimation-api/pkg/logger/slogpretty"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "estimator",
	Short: "Project estimation API",
	Long:  `Manages programmers, task templates and projects, and estimates project hours from them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db, log); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		gin.SetMode(cfg.HTTP.GinMode)

		var aiService *services.AIService
		if cfg.OpenAIAPIKey != "" {
			aiService = services.NewAIService(cfg.OpenAIAPIKey)
		} else {
			log.Warn("OPENAI_API_KEY not set, stage suggestions disabled")
		}

		router := handlers.NewRouter(handlers.Dependencies{
			DB:             db,
			Log:            log,
			AllowedOrigins: cfg.AllowedOrigins,
			AIService:      aiService,
		})

		return serve(cmd.Context(), cfg.HTTP, router, log)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db, log); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("migrations applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default programmers and the task catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db, log); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		ctx := cmd.Context()
		created, err := catalog.SeedProgrammers(ctx, repository.NewProgrammerRepository(db), catalog.DefaultProgrammers)
		if err != nil {
			return err
		}
		log.Info("programmers seeded", slog.Int("created", created))

		workbook, _ := cmd.Flags().GetString("workbook")
		if workbook == "" {
			workbook = cfg.Catalog.WorkbookPath
		}
		if workbook == "" {
			log.Warn("no catalog workbook given, skipping tasks")
			return nil
		}

		opts := catalog.DefaultOptions()
		opts.Sheet = cfg.Catalog.Sheet
		if sheet, _ := cmd.Flags().GetString("sheet"); sheet != "" {
			opts.Sheet = sheet
		}

		report, err := catalog.LoadTasksFromWorkbook(ctx, repository.NewTaskRepository(db), workbook, opts)
		if err != nil {
			return err
		}
		for _, row := range report.Invalid {
			log.Warn("catalog row skipped", slog.Int("row", row.Row), slog.String("reason", row.Reason))
		}
		log.Info("tasks seeded",
			slog.Int("created", report.Created),
			slog.Int("existing", report.Existing),
			slog.Int("invalid", len(report.Invalid)),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("workbook", "", "path to the task catalog .xlsx (defaults to CATALOG_PATH)")
	seedCmd.Flags().String("sheet", "", "sheet holding the catalog (defaults to CATALOG_SHEET)")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func bootstrap() (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := slogpretty.SetupLogger(cfg.Env)
	log.Info("starting estimator", slog.String("env", cfg.Env), slog.String("db_driver", cfg.Database.Driver))

	db, err := database.Connect(cfg.Database, cfg.Env, log)
	if err != nil {
		log.Error("failed to connect to database", sl.Err(err))
		return nil, nil, nil, err
	}

	return cfg, log, db, nil
}

func serve(ctx context.Context, cfg config.HTTP, handler http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}
