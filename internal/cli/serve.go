package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgrid/pkg/cache"
	"github.com/matzehuels/chartgrid/pkg/observability"
	"github.com/matzehuels/chartgrid/pkg/pipeline"
	"github.com/matzehuels/chartgrid/pkg/server"
	"github.com/matzehuels/chartgrid/pkg/session"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr        string
	redis       string
	redisPrefix string
	noCache     bool
	sessionTTL  time.Duration
	maxSessions int
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:       server.DefaultAddr,
		sessionTTL: session.DefaultTTL,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve chart rendering and pick sessions over HTTP",
		Long: `Serve chart rendering and pick sessions over HTTP.

Rendered artifacts are cached in Redis when --redis (or ` + envRedisAddr + `)
is set, otherwise in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.redis == "" {
				opts.redis = os.Getenv(envRedisAddr)
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the shared artifact cache (env "+envRedisAddr+")")
	cmd.Flags().StringVar(&opts.redisPrefix, "redis-prefix", "", "key prefix in Redis (default \"chartgrid:\")")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().DurationVar(&opts.sessionTTL, "session-ttl", opts.sessionTTL, "how long pick sessions live")
	cmd.Flags().IntVar(&opts.maxSessions, "max-sessions", session.DefaultMaxSessions, "maximum number of live pick sessions")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	store, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, nil, logger)
	defer runner.Close()

	hooks := observability.NewLogHooks(logger)
	observability.SetCacheHooks(hooks)
	observability.SetServerHooks(hooks)

	srv := server.New(runner, session.NewMemoryStore(opts.maxSessions), logger, server.Config{
		Addr:       opts.addr,
		SessionTTL: opts.sessionTTL,
	})
	return srv.ListenAndServe(ctx)
}

// serveCache picks the artifact cache: Redis when configured, else the
// file cache.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache || opts.redis == "" {
		return newCache(opts.noCache)
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     opts.redis,
		Password: os.Getenv(envRedisPassword),
		Prefix:   opts.redisPrefix,
	})
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Info("using redis cache", "addr", opts.redis)
	return rc, nil
}
