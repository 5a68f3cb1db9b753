package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrishannam/Telemetry-F1-2021/internal/config"
	"github.com/chrishannam/Telemetry-F1-2021/internal/f1"
)

// pollDeadline bounds each blocking receive so the loop notices a cancelled
// context promptly.
const pollDeadline = 250 * time.Millisecond

// NewRecordCmd builds the record subcommand: receive packets and dump each
// one to stdout as indented text, optionally appending compact JSON lines to
// a file.
func NewRecordCmd() *cobra.Command {
	var jsonlPath string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Print decoded telemetry packets to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer cancel()

			var sink *os.File
			if jsonlPath != "" {
				sink, err = os.OpenFile(jsonlPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening jsonl sink: %w", err)
				}
				defer sink.Close()
			}

			return runRecord(ctx, cfg, logger, sink)
		},
	}
	cmd.Flags().StringVar(&jsonlPath, "jsonl", "", "append each packet as one compact JSON line to this file")
	return cmd
}

func runRecord(ctx context.Context, cfg config.Config, logger *zap.Logger, sink *os.File) error {
	l, err := f1.Listen(f1.ListenerConfig{
		Host:   cfg.Listen.Host,
		Port:   cfg.Listen.Port,
		RcvBuf: cfg.Listen.RcvBuf,
	}, f1.NewRegistry())
	if err != nil {
		return err
	}
	defer l.Close()

	logger.Info("listening for telemetry", zap.String("addr", l.LocalAddr().String()))

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		pkt, err := receiveOne(ctx, l)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			// A bad datagram only loses itself, keep listening.
			logger.Warn("dropping datagram", zap.Error(err))
			continue
		}

		text, err := f1.ToText(pkt)
		if err != nil {
			logger.Warn("formatting packet", zap.Error(err))
			continue
		}
		fmt.Println(text)

		if sink != nil {
			if err := writeJSONL(sink, pkt); err != nil {
				return fmt.Errorf("writing jsonl sink: %w", err)
			}
		}
	}
}

// receiveOne polls the listener under short deadlines until a datagram
// arrives or ctx is cancelled.
func receiveOne(ctx context.Context, l *f1.Listener) (f1.Packet, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, context.Canceled
		}
		if err := l.SetReadDeadline(time.Now().Add(pollDeadline)); err != nil {
			return nil, err
		}
		pkt, err := l.ReceiveOne()
		if errors.Is(err, os.ErrDeadlineExceeded) {
			continue
		}
		return pkt, err
	}
}

func writeJSONL(sink *os.File, pkt f1.Packet) error {
	line, err := json.Marshal(f1.ToMapping(pkt))
	if err != nil {
		return err
	}
	line = append(line, '\n')
	_, err = sink.Write(line)
	return err
}
