package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"stickarena/server"
)

var (
	flagConfig   string
	flagAddr     string
	flagLogLevel string
	flagTickRate int
)

var rootCmd = &cobra.Command{
	Use:          "stickarena",
	Short:        "Authoritative stick-man arena server",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP + WebSocket server",
	RunE:  runServe,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to a YAML config file (overrides embedded defaults)")
	pf.StringVar(&flagAddr, "addr", "", "server listen address, e.g. :3001")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.IntVar(&flagTickRate, "tick-rate", 0, "simulation ticks per second")
	rootCmd.AddCommand(serveCmd)
}

// StickArena 入口：启动 HTTP + WebSocket 服务，并初始化房间管理器
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (server.Config, error) {
	cfg, err := server.LoadConfig(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagTickRate != 0 {
		cfg.Sim.TickRate = flagTickRate
	}
	return cfg, cfg.Validate()
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := server.InitLogger(cfg.Log); err != nil {
		return errors.Wrap(err, "init logger")
	}
	defer server.SyncLogger()

	rm := server.NewRoomManager(cfg)
	// 先预创建默认房间，便于快速试跑
	_ = rm.GetOrCreateRoom(server.DefaultRoom)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: rm.Routes()}

	errCh := make(chan error, 1)
	go func() {
		server.Log.Infof("StickArena listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- errors.Wrap(err, "listen")
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		server.Log.Errorw("server failed", "err", err)
		return err
	case <-quit:
	}
	server.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	rm.Shutdown()
	return nil
}
