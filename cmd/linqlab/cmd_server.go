package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bcama/linqlab/config"
	"github.com/bcama/linqlab/internal/kernel"
	"github.com/bcama/linqlab/internal/server"
	"github.com/bcama/linqlab/pkg/cache"
	"github.com/bcama/linqlab/pkg/database"
	"github.com/bcama/linqlab/pkg/logger"
)

func newServeCmd() *cobra.Command {
	var port, grpcPort string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bootDB(); err != nil {
				return err
			}
			defer database.Close() //nolint:errcheck

			if port != "" {
				config.Set("APP_PORT", port)
			}
			if grpcPort != "" {
				config.Set("GRPC_PORT", grpcPort)
			}

			ctx := cmd.Context()
			if closeLogs := attachMongoLogs(ctx); closeLogs != nil {
				defer closeLogs()
			}

			opts := kernel.Options{
				CacheTTL:    config.CacheTTL(),
				CORSOrigins: config.CORSOrigins(),
			}
			if opts.CacheTTL > 0 {
				store, err := cache.Connect(ctx)
				if err != nil {
					logger.Warn("cache: redis unavailable, serving uncached", "error", err)
				} else {
					defer store.Close() //nolint:errcheck
					opts.Cache = store
				}
			}

			k, err := kernel.NewHTTPKernel(database.DB, opts)
			if err != nil {
				return err
			}

			return server.Run(ctx, k.Handler(), func(context.Context) error {
				return database.Ping(database.DB)
			})
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "HTTP port (overrides APP_PORT)")
	cmd.Flags().StringVar(&grpcPort, "grpc-port", "", "gRPC port (overrides GRPC_PORT)")
	return cmd
}

// attachMongoLogs mirrors logs into MongoDB when LOG_MONGO_URI is set. A
// sink that cannot be reached is logged and skipped.
func attachMongoLogs(ctx context.Context) func() {
	uri := config.LogMongoURI()
	if uri == "" {
		return nil
	}

	h, closeFn, err := logger.ConnectMongo(ctx, uri, config.LogMongoDB(), config.LogMongoCollection())
	if err != nil {
		logger.Warn("logger: mongo sink disabled", "error", err)
		return nil
	}
	logger.Attach(h)
	return closeFn
}

func newRouteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "List all registered named routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := kernel.NewHTTPKernel(nil, kernel.Options{})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH\tNAME")
			fmt.Fprintln(w, "------\t----\t----")
			for _, ri := range k.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
			}
			return w.Flush()
		},
	}
}
