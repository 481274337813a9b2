package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/partyline/client/internal/config"
	apperrors "codeberg.org/partyline/client/internal/errors"
	"codeberg.org/partyline/client/internal/logger"
	"codeberg.org/partyline/client/internal/party"
	"codeberg.org/partyline/client/internal/socket"
	"codeberg.org/partyline/client/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		return 2
	}

	if _, err := config.ParseFlags("party", os.Args[1:], cfg); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	// the alternate screen owns the terminal, so logs go to a file or nowhere
	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		return 1
	}
	defer closeLog()

	apperrors.SetProduction(cfg.IsProduction())

	client := socket.NewClient(cfg.Endpoint, socket.WithEmitRate(cfg.EmitRate, cfg.EmitBurst))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	err = client.Connect(ctx)
	cancel()

	if err != nil {
		logger.ErrorErr(err, "failed to connect", "endpoint", cfg.Endpoint)
		fmt.Fprintf(os.Stderr, "error connecting to %s: %s\n", cfg.Endpoint, apperrors.Describe(err))
		return 1
	}
	defer client.Close()

	session := party.NewSession(client, party.WithRequestTimeout(cfg.RequestTimeout))
	screen := tui.NewLoginScreen(session,
		tui.WithPrefill(cfg.Username, cfg.PartyID),
		tui.WithDisconnect(client.Done()),
	)
	defer screen.Close()

	p := tea.NewProgram(screen, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running party: %v\n", err)
		return 1
	}

	result, ok := screen.Result()
	if !ok {
		return 1
	}

	out, err := json.Marshal(result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error encoding result: %v\n", err)
		return 1
	}

	fmt.Println(string(out))

	return 0
}

func setupLogging(cfg *config.Config) (func(), error) {
	if cfg.LogFile == "" {
		logger.Discard()
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}

	logger.Configure(cfg.Environment, f)

	return func() { f.Close() }, nil
}
