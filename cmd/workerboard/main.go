package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/AdonaIsium/workerboard/internal/config"
	"github.com/AdonaIsium/workerboard/internal/content"
	"github.com/AdonaIsium/workerboard/internal/router"
	"github.com/AdonaIsium/workerboard/internal/server"
	"github.com/AdonaIsium/workerboard/internal/store"
)

func main() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	err := run(os.Args[1:], os.Getenv, os.Stderr, stop, nil)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, "usage: workerboard [-addr :8080] [-content dir] [-data file.json] [-redirect url] [-concurrency n] [-log-format text|json] [-log-level info]")
		return
	}
	if err != nil {
		log.Fatalf("error received: %v", err)
	}
}

// run wires config, store, router and server together and blocks until stop
// delivers a signal. ready, when set, sees the server once it is listening.
func run(args []string, getenv func(string) string, logOut io.Writer, stop <-chan os.Signal, ready func(*server.Server)) error {
	cfg, err := config.Load(args, getenv)
	if err != nil {
		return err
	}
	logger := cfg.Logger(logOut)

	db, err := store.Open(cfg.DataFile)
	if err != nil {
		return err
	}
	if cfg.DataFile != "" {
		logger.Info("using data file", "path", cfg.DataFile)
	}

	var static fs.FS = content.FS()
	if cfg.ContentDir != "" {
		static = os.DirFS(cfg.ContentDir)
	}

	rt := router.New(router.Config{
		Workers:          db.Workers(),
		Tasks:            db.Tasks(),
		Content:          static,
		RedirectLocation: cfg.RedirectLocation,
	})

	s, err := server.Serve(server.Config{
		Addr:        cfg.Addr,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	}, rt)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Started on http://localhost:%d/index.html", s.Port()))
	if ready != nil {
		ready(s)
	}

	sig := <-stop
	logger.Info("shutting down", "signal", sig.String())
	return s.Close()
}
