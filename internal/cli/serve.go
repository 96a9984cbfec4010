package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridcompose/pkg/api"
	"github.com/matzehuels/gridcompose/pkg/cache"
	"github.com/matzehuels/gridcompose/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr        string
	redisURL    string
	cachePrefix string
	noCache     bool
	maxBody     int64
	timeout     time.Duration
}

// serveCommand creates the serve command running the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     ":8080",
		redisURL: os.Getenv(envRedisURL),
		maxBody:  api.DefaultMaxBodyBytes,
		timeout:  api.DefaultTimeout,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

Endpoints:
  GET  /healthz     liveness probe
  GET  /version     build information
  POST /v1/layout   resolve a manifest (body) into ?format=json|txt|dot|svg|png
  POST /v1/diff     diff two manifests

Layouts are cached in Redis when --redis-url (or ` + envRedisURL + `) is
set, and in the local cache directory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", opts.redisURL, "Redis URL for the shared cache")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", "", "namespace for cache keys shared with other deployments")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", opts.maxBody, "maximum request body in bytes")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")

	return cmd
}

// serverCache picks the cache backend for the service.
func (c *CLI) serverCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: opts.redisURL})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	}
	return c.newCache(false)
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cc, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if opts.cachePrefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.cachePrefix)
	}
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr: opts.addr,
		Handler: api.New(api.Config{
			Runner:       runner,
			Logger:       c.Logger,
			MaxBodyBytes: opts.maxBody,
			Timeout:      opts.timeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
