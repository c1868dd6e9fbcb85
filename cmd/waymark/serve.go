package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/waymarkhq/waymark"
	"github.com/waymarkhq/waymark/internal/logging"
	"github.com/waymarkhq/waymark/internal/validator"
	httpadapter "github.com/waymarkhq/waymark/pkg/adapters/http"
	"github.com/waymarkhq/waymark/pkg/adapters/file"
	"github.com/waymarkhq/waymark/pkg/adapters/memory"
	redisadapter "github.com/waymarkhq/waymark/pkg/adapters/redis"
	"github.com/waymarkhq/waymark/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portal HTTP server",
	Long:  `Loads the journey definition and exposes per-user resolved views over a JSON API.`,
	Run: func(cmd *cobra.Command, args []string) {
		defPath, _ := cmd.Flags().GetString("definition")
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		debug, _ := cmd.Flags().GetBool("debug")
		verbose, _ := cmd.Flags().GetBool("verbose")

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		def, err := file.New(defPath).Load(cmd.Context())
		if err != nil {
			fmt.Printf("Error loading definition: %v\n", err)
			os.Exit(1)
		}

		// Authoring defects are survivable at runtime but worth a loud note.
		for _, problem := range validator.Check(def) {
			logger.Warn("definition problem", "problem", problem.String())
		}

		var progress ports.ProgressStore
		if redisAddr != "" {
			store := redisadapter.New(redisAddr, "", 0)
			defer store.Close()
			progress = store
			logger.Info("using redis progress store", "addr", redisAddr)
		} else {
			progress = memory.NewStore()
			logger.Info("using in-memory progress store")
		}

		facts := memory.NewFactSource()

		portal, err := waymark.New(def,
			waymark.WithLogger(logger),
			waymark.WithProgressStore(progress),
			waymark.WithFactSource(facts),
		)
		if err != nil {
			fmt.Printf("Error initializing portal: %v\n", err)
			os.Exit(1)
		}

		handler := httpadapter.NewHandler(portal,
			httpadapter.WithLogger(logger),
			httpadapter.WithFactSink(facts),
			httpadapter.WithDebug(debug),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting waymark server", "addr", srv.Addr, "journey", def.ID, "debug", debug)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "error", err)
				}
			}
			logger.Info("waymark server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the progress store (empty = in-memory)")
	serveCmd.Flags().Bool("debug", false, "Allow the unlock_all query parameter (never in production)")
}
