package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"pension-engine/internal/config"
	"pension-engine/internal/engine"
	"pension-engine/internal/handler"
	"pension-engine/internal/logging"
	"pension-engine/internal/model"
	"pension-engine/internal/mutations"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := newServeCmd()
	root := &cobra.Command{
		Use:          "pension-engine",
		Short:        "Pension benefit calculation engine",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}
	root.AddCommand(serveCmd, newCalculateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve calculation requests over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	e := engine.New(mutations.NewRegistry(),
		engine.WithLogger(logger),
		engine.WithPatches(cfg.EmitPatches),
	)
	h := handler.New(e, logger)

	server := &fasthttp.Server{
		Handler:            h.Handle,
		Name:               "pension-engine",
		ReadTimeout:        cfg.ReadTimeout,
		WriteTimeout:       cfg.WriteTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodyBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("pension engine starting", zap.String("addr", cfg.Addr()))
		errCh <- server.ListenAndServe(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newCalculateCmd() *cobra.Command {
	var (
		file    string
		patches bool
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run one calculation request from a JSON file and print the response",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return calculate(in, cmd.OutOrStdout(), patches)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "request file, - for stdin")
	cmd.Flags().BoolVar(&patches, "patches", false, "include forward/backward patches per mutation")
	return cmd
}

func calculate(in io.Reader, out io.Writer, patches bool) error {
	var req model.CalculationRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	e := engine.New(mutations.NewRegistry(), engine.WithPatches(patches))
	resp, err := e.Process(&req)
	if err != nil {
		if errors.Is(err, engine.ErrNoMutations) {
			return fmt.Errorf("invalid request: %w", err)
		}
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
