package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/crowdtris/internal/metrics"
	"github.com/vovakirdan/crowdtris/internal/platform/tui"
	"github.com/vovakirdan/crowdtris/internal/platform/web"
	"github.com/vovakirdan/crowdtris/internal/session"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagHTTPAddr    string
	flagIdleTimeout int
	flagNoTick      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Drive the game and take votes over SSH and HTTP",
	Long: `Start the tick loop together with an SSH voting server and an HTTP API.

SSH users see the latest board and vote with the arrow keys. The HTTP API
serves the board, accepts replies and exposes Prometheus metrics:

  GET  /board     latest board as text
  GET  /replies   votes on the latest board
  POST /replies   {"author": "...", "text": "left"}
  GET  /history   recent boards
  GET  /metrics   Prometheus metrics
  GET  /healthz   liveness

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.crowdtris/host_key

Examples:
  crowdtris serve                    # SSH on :23234, HTTP on :8080
  crowdtris serve --ssh :2222        # Listen for SSH on port 2222
  crowdtris serve --http ""          # SSH only
  crowdtris serve --no-tick          # Votes only; ticks come from elsewhere

Users can vote with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, empty disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (host:port, empty disables)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagNoTick, "no-tick", false, "Do not run the tick loop")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	sshCfg := tui.SSHServerConfig{
		Address:     a.cfg.SSH.Addr,
		HostKeyPath: a.cfg.SSH.HostKey,
		IdleTimeout: a.cfg.SSH.IdleTimeout,
	}
	if cmd.Flags().Changed("ssh") {
		sshCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sshCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	httpAddr := a.cfg.HTTP.Addr
	if cmd.Flags().Changed("http") {
		httpAddr = flagHTTPAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	g, ctx := errgroup.WithContext(ctx)

	if sshCfg.Address != "" {
		server, err := tui.NewSSHServer(sshCfg, a.feed, a.logger.WithPrefix("ssh"))
		if err != nil {
			return fmt.Errorf("creating SSH server: %w", err)
		}
		g.Go(func() error { return server.ListenAndServe(ctx) })
		fmt.Fprintf(cmd.OutOrStdout(), "Vote with: ssh localhost -p %s\n", portOf(sshCfg.Address))
	}

	if httpAddr != "" {
		handler := web.NewHandler(a.feed, m.Handler(), a.logger.WithPrefix("http"))
		server := web.NewServer(httpAddr, handler, a.logger.WithPrefix("http"))
		g.Go(func() error { return server.ListenAndServe(ctx) })
	}

	if !flagNoTick {
		a.prune(ctx)
		sess := a.newSession(ctx, session.WithObserver(m))
		g.Go(func() error {
			if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")
	return g.Wait()
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
