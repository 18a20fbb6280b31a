package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/job-tracker/internal/auth"
	"alfredoptarigan/job-tracker/internal/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the background scoring worker",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApplication(ctx, appOptions{withWorker: true})
	if err != nil {
		return err
	}
	defer a.Close()

	a.worker.Start(ctx)

	var tokens auth.TokenManager
	if a.cfg.Auth.Secret != "" {
		tokens = auth.NewTokenManager(a.cfg.Auth.Secret, a.cfg.Auth.Issuer, a.cfg.Auth.TokenTTL)
	} else {
		a.log.Warn("AUTH_SECRET is not set, the API is open")
	}

	app := handlers.NewApp(handlers.AppOptions{
		BodyLimit:  int(a.cfg.Storage.MaxFileSize),
		LogRequest: true,
	})
	handlers.Register(app, handlers.Handlers{
		Jobs:         handlers.NewJobHandler(a.jobs),
		Postings:     handlers.NewPostingHandler(a.jobs, a.storage, a.cfg.Storage.MaxFileSize),
		Scores:       handlers.NewScoreHandler(a.scorer, a.jobRepo, a.worker),
		Letters:      handlers.NewLetterHandler(a.letters, a.packages),
		Sync:         handlers.NewSyncHandler(a.notion),
		Dashboard:    handlers.NewDashboardHandler(a.dashboard, a.profile),
		Applications: handlers.NewApplicationHandler(a.jobs),
	}, tokens)

	go func() {
		<-ctx.Done()
		a.log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			a.log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	port := a.cfg.Server.Port
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}
	addr := fmt.Sprintf(":%s", port)
	a.log.Info("server starting",
		zap.String("addr", addr),
		zap.String("env", a.cfg.Server.Env),
		zap.String("database", a.cfg.Database.Driver),
	)

	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
