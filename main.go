package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tradesy30/portfolio/internal/catalog"
	"github.com/tradesy30/portfolio/internal/config"
	"github.com/tradesy30/portfolio/internal/logger"
	"github.com/tradesy30/portfolio/internal/ogimage"
	"github.com/tradesy30/portfolio/internal/relay"
	"github.com/tradesy30/portfolio/internal/store"
)

const (
	shutdownTimeout   = 10 * time.Second
	retentionInterval = 24 * time.Hour
)

var ogImageOut string

// rootCmd serves the site when run without a subcommand
var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Personal portfolio web server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server.

Reads configuration from the environment (and .env). FORMSPREE_ID is
required; the server refuses to start without it.`,
	RunE: runServe,
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Validate the project catalog and list its slugs",
	RunE:  runProjects,
}

var ogImageCmd = &cobra.Command{
	Use:   "og-image",
	Short: "Write the share card PNG",
	RunE:  runOGImage,
}

func init() {
	ogImageCmd.Flags().StringVarP(&ogImageOut, "out", "o", "opengraph-image.png", "Output file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(ogImageCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	setGinMode(cfg.GinMode)

	projects, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer st.Close()

	client, err := relay.New(log, relay.Config{
		BaseURL: cfg.RelayBaseURL,
		FormID:  cfg.FormID,
		Timeout: cfg.RelayTimeout,
	})
	if err != nil {
		return fmt.Errorf("relay: %w", err)
	}

	srv, err := newServer(cfg, log, projects, st, client)
	if err != nil {
		return err
	}
	router, err := srv.routes()
	if err != nil {
		return err
	}

	if cfg.DefaultAdmin {
		log.Warn("Using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD environment variables.")
	}
	log.Info("Privacy: visitor tracking enabled with hashed IP addresses", "retention_months", cfg.RetentionMonths)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening", "addr", httpServer.Addr, "projects", projects.Len())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("HTTP server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		_, _ = srv.purgeVisitors(gctx)
		ticker := time.NewTicker(retentionInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				_, _ = srv.purgeVisitors(gctx)
			}
		}
	})

	err = g.Wait()
	srv.wait()
	return err
}

func runProjects(cmd *cobra.Command, args []string) error {
	projects, err := catalog.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, p := range projects.All() {
		fmt.Fprintf(out, "%-24s %-28s %s\n", p.Slug, p.Title, p.Path())
	}
	fmt.Fprintf(out, "%d projects OK\n", projects.Len())
	return nil
}

func runOGImage(cmd *cobra.Command, args []string) error {
	f, err := os.Create(ogImageOut)
	if err != nil {
		return err
	}
	if err := ogimage.Render(f, ShareCard()); err != nil {
		f.Close()
		return fmt.Errorf("render share card: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", ogImageOut, ogimage.Width, ogimage.Height)
	return nil
}

func setGinMode(mode string) {
	switch mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(mode)
	case "production", "prod":
		gin.SetMode(gin.ReleaseMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
