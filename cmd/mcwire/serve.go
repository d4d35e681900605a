package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Versifine/mcwire/internal/advancement"
	"github.com/Versifine/mcwire/internal/config"
	"github.com/Versifine/mcwire/internal/event"
	"github.com/Versifine/mcwire/internal/logger"
	"github.com/Versifine/mcwire/internal/metrics"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
	"github.com/Versifine/mcwire/internal/session"
	"github.com/Versifine/mcwire/internal/transport"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		Long: `Run the game server on the configured TCP address, together with the
admin HTTP listener (health, metrics, registries and, if enabled, the
WebSocket transport).

Examples:
  mcwire serve
  mcwire serve --config=/etc/mcwire/mcwire.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "configs/mcwire.yaml", "Path to the config file")

	return cmd
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()
	log := logger.For("main")

	if cfg.Registry.Snapshot == "" {
		return errors.New("registry.snapshot is not set")
	}
	set, err := registry.LoadSnapshot(cfg.Registry.Snapshot)
	if err != nil {
		return fmt.Errorf("load registry snapshot: %w", err)
	}
	log.Info("Registry snapshot loaded", "path", cfg.Registry.Snapshot, "version", set.Version,
		"fingerprint", fmt.Sprintf("%016x", set.Fingerprint()))

	bus := event.NewBus()
	subscribeLogging(bus)

	opts := session.Options{
		Bus:   bus,
		Spawn: protocol.Vec3{X: cfg.Game.Spawn[0], Y: cfg.Game.Spawn[1], Z: cfg.Game.Spawn[2]},
	}
	if cfg.Game.Advancements != "" {
		advs, err := advancement.LoadAdvancements(cfg.Game.Advancements)
		if err != nil {
			return fmt.Errorf("load advancements: %w", err)
		}
		triggers := advancement.NewTriggers(bus, set)
		for _, adv := range advs {
			if problems := triggers.Validate(adv); len(problems) > 0 {
				for _, p := range problems {
					log.Error("Invalid criterion", "advancement", adv.ID, "problem", p.String())
				}
				return fmt.Errorf("advancement %s has %d problem(s)", adv.ID, len(problems))
			}
		}
		opts.Triggers = triggers
		opts.Advancements = advs
		log.Info("Advancements loaded", "count", len(advs))
	}
	hub, err := session.NewHub(set, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := transport.NewServer(cfg.Listen.Addr(), set,
		func(id uuid.UUID, c *transport.ServerConn) (transport.Session, error) {
			s, err := hub.Join(id, c)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		transport.Options{
			MaxPacketSize: cfg.Limits.MaxPacketSize,
			Metrics:       metrics.New(),
			Bus:           bus,
		})

	adminOpts := transport.AdminOptions{Set: set}
	if cfg.WebSocket.Enabled {
		adminOpts.WebSocketPath = cfg.WebSocket.Path
		adminOpts.Server = server
	}
	admin := &http.Server{
		Addr:              cfg.Admin.Addr(),
		Handler:           transport.NewAdminRouter(ctx, adminOpts),
		ReadHeaderTimeout: 5 * time.Second,
	}
	adminErr := make(chan error, 1)
	go func() {
		log.Info("Admin listening", "addr", admin.Addr, "websocket", adminOpts.WebSocketPath)
		if err := admin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			adminErr <- err
			stop()
		}
	}()

	err = server.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := admin.Shutdown(shutdownCtx); serr != nil {
		log.Warn("Admin shutdown", "error", serr)
	}
	if err != nil {
		return err
	}
	select {
	case err := <-adminErr:
		return fmt.Errorf("admin listener: %w", err)
	default:
		return nil
	}
}

func subscribeLogging(bus *event.Bus) {
	log := logger.For("event")
	bus.Subscribe(event.EventConnectionDesync, func(raw any) {
		e := raw.(event.ConnectionDesync)
		log.Warn("Registry desync", "session", e.Session, "remote", e.Remote, "packet", e.Packet,
			"field", e.Field, "fingerprint", fmt.Sprintf("%016x", e.Fingerprint), "error", e.Err)
	})
	bus.Subscribe(event.EventConnectionClosed, func(raw any) {
		e := raw.(event.ConnectionClosed)
		log.Debug("Connection closed", "session", e.Session, "remote", e.Remote, "reason", e.Reason)
	})
	bus.Subscribe(event.EventAdvancementGrant, func(raw any) {
		e := raw.(event.AdvancementGranted)
		log.Info("Criterion granted", "session", e.Session, "advancement", e.Advancement,
			"criterion", e.Criterion, "trigger", e.Trigger)
	})
	bus.Subscribe(event.EventChat, func(raw any) {
		e := raw.(event.ChatEvent)
		log.Info("Chat", slog.String("session", e.Session.String()), slog.String("message", e.Message))
	})
}
