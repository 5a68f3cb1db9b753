package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrishannam/Telemetry-F1-2021/internal/f1"
	internalmcp "github.com/chrishannam/Telemetry-F1-2021/internal/mcp"
	"github.com/chrishannam/Telemetry-F1-2021/internal/state"
)

// NewMCPCmd builds the mcp subcommand: feed a latest-packet cache from the
// UDP listener and serve it to MCP clients over stdio.
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve live telemetry to MCP clients over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer cancel()

			l, err := f1.Listen(f1.ListenerConfig{
				Host:   cfg.Listen.Host,
				Port:   cfg.Listen.Port,
				RcvBuf: cfg.Listen.RcvBuf,
			}, f1.NewRegistry())
			if err != nil {
				return err
			}
			defer l.Close()

			mgr := state.NewManager(cfg.Cache.StaleThreshold)
			go feedCache(ctx, l, mgr, logger)

			logger.Info("serving MCP over stdio",
				zap.String("listen_addr", l.LocalAddr().String()))

			if err := internalmcp.NewServer(mgr).Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// feedCache pumps decoded packets into the cache until ctx is done.
func feedCache(ctx context.Context, l *f1.Listener, mgr *state.Manager, logger *zap.Logger) {
	for {
		pkt, err := receiveOne(ctx, l)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Debug("dropping datagram", zap.Error(err))
			continue
		}
		mgr.Update(pkt)
	}
}
