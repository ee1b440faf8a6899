package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/tomz197/ballworld/internal/config"
	"github.com/tomz197/ballworld/internal/loop/client"
	"github.com/tomz197/ballworld/internal/loop/server"
)

func main() {
	// The terminal belongs to the arena, so logs go to a file if anywhere.
	logger := log.New(io.Discard)
	if path := config.GetEnv("BALLWORLD_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = config.NewLoggerTo(f, "game")
	}

	scenario, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scenario: %v\n", err)
		os.Exit(1)
	}
	w, err := scenario.NewWorld(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	err = run(server.NewServer(w, logger), bufio.NewReader(os.Stdin))
	_ = term.Restore(fd, oldState)
	if err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// run drives the world loop and a single local client until the client
// quits.
func run(srv *server.Server, reader *bufio.Reader) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := client.NewClient(srv, reader, os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", "local"),
		FitArena: true,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		srv.Run(ctx)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return c.Run()
	})
	return g.Wait()
}
