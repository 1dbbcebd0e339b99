package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/netutil"

	"github.com/Rshep3087/bizmargin/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the evaluator as a JSON HTTP API",
		Long: `Serve starts an HTTP server exposing the categories, the advisory tiers and
POST /v1/evaluations. Requests are evaluated independently and nothing is stored.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().Int("max-conns", 0, "maximum simultaneous connections (0 for no limit)")
	cmd.Flags().Bool("pprof", false, "expose pprof handlers under /debug/pprof")
	cmd.Flags().StringSlice("cors-origins", nil, "origins allowed to call the API from a browser")

	_ = viper.BindPFlag("server_addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	maxConns, _ := cmd.Flags().GetInt("max-conns")
	enablePprof, _ := cmd.Flags().GetBool("pprof")
	origins, _ := cmd.Flags().GetStringSlice("cors-origins")

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ln, err := net.Listen("tcp", cfg.ServerAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.ServerAddr, err)
	}
	if maxConns > 0 {
		log.Debug("limiting connections", "max", maxConns)
		ln = netutil.LimitListener(ln, maxConns)
	}

	router := server.New(server.Options{
		Version:     version,
		EnablePprof: enablePprof,
		CORSOrigins: origins,
		Logger:      log.Default(),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, ln, router)
}
