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

	"sheetapi/internal/api"
	"sheetapi/internal/config"
	"sheetapi/internal/engine"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	addr       string
	sheets     []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetapi",
		Short: "Serve table and row queries over uploaded spreadsheets",
		Long: `sheetapi accepts xlsx uploads, keeps each workbook in memory under a
file_id, and answers table listing, row listing and row sum queries.`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringSliceVar(&sheets, "sheets", nil, "Sheet names to ingest (overrides config)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	rootCmd.AddCommand(serveCmd, newInspectCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if len(sheets) > 0 {
		cfg.Ingest.Sheets = sheets
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 1. Scoped store, owned by this process only
	eng := engine.New(engine.NewStore())

	// 2. Echo with routes and middleware
	e := api.NewServer(eng, api.ServerOptions{
		MaxUploadSize: cfg.Server.MaxUploadSize,
		CORSOrigins:   cfg.Server.CORSOrigins,
		Load:          cfg.LoadOptions(),
		AccessLog:     cfg.AccessLogEnabled(),
	})
	e.Logger.SetLevel(log.INFO)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Serve until interrupted
	go func() {
		e.Logger.Infof("Server ready on %s (%d sheets recognized)", cfg.Server.Addr, len(cfg.Ingest.Sheets))
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	e.Logger.Infof("shutting down, %d workbooks discarded", eng.Workbooks())
	return e.Shutdown(shutdownCtx)
}
