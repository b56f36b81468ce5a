package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"taskboard-microservice/rpc/boardrpc"
	"taskboard-microservice/tasks/adapters/db"
	taskgrpc "taskboard-microservice/tasks/adapters/grpc"
	"taskboard-microservice/tasks/adapters/memory"
	"taskboard-microservice/tasks/config"
	"taskboard-microservice/tasks/core"
)

func main() {
	// config
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "tasks-service server configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	// logger
	log := mustMakeLogger(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	log.Info("starting tasks-service server", "storage", cfg.Storage)

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := openStorage(cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage()

	// service
	boardService := core.NewService(storage)

	// grpc
	listener, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}

	s := grpc.NewServer()
	boardrpc.RegisterBoardServer(s, taskgrpc.NewServer(log, boardService))

	go func() {
		<-ctx.Done()
		log.Debug("shutting down tasks-service server")
		s.GracefulStop()
	}()

	log.Info("tasks-service gRPC server is running", "address", cfg.Address)

	// blocking
	if err := s.Serve(listener); err != nil {
		return fmt.Errorf("failed to serve: %v", err)
	}

	return nil
}

func openStorage(cfg config.Config, log *slog.Logger) (core.DB, func(), error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return memory.New(log), func() {}, nil
	}

	storage, err := db.New(log, cfg.DBAddress)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to db: %v", err)
	}
	closeFn := func() {
		if err := storage.Close(); err != nil {
			log.Error("failed to close db connection", "error", err)
		}
	}

	if err := storage.Migrate(); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to migrate db: %v", err)
	}
	return storage, closeFn, nil
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
