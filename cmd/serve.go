package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-assistant/internal/server"
	"github.com/naka-gawa/github-assistant/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the web page and the JSON API",
	Long: `Starts the HTTP server exposing /api/profile-review, /api/readme-generator
and /api/repo-visualizer, together with the web page at /.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// The server always logs; --verbose adds the gateway and use case progress lines.
		serverLogger := log.New(os.Stderr, "", log.LstdFlags)
		logger := newLogger(cmd)

		svc, err := loadServices(cmd, logger)
		exitOnError("Failed to initialize", err)

		port := svc.cfg.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		gin.SetMode(gin.ReleaseMode)
		srv, err := server.New(
			usecase.NewProfileReviewer(svc.fetcher, svc.completer, logger),
			usecase.NewReadmeGenerator(svc.fetcher, svc.completer, logger),
			usecase.NewRepoVisualizer(svc.fetcher, logger),
			server.Options{
				AllowedOrigins: svc.cfg.AllowedOrigins,
				CacheTTL:       svc.cfg.CacheTTL,
				RequestTimeout: svc.cfg.RequestTimeout,
				Logger:         serverLogger,
			},
		)
		exitOnError("Failed to create server", err)

		err = srv.Run(ctx, fmt.Sprintf(":%d", port))
		exitOnError("Server stopped", err)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 5069, "Port to listen on (overrides PORT)")
}
