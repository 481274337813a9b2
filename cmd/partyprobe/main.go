package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/partyline/client/internal/config"
	apperrors "codeberg.org/partyline/client/internal/errors"
	"codeberg.org/partyline/client/internal/logger"
	"codeberg.org/partyline/client/internal/party"
	"codeberg.org/partyline/client/internal/socket"
	"codeberg.org/partyline/client/internal/tui"
)

// one terminal outcome of an attempt
type outcome struct {
	result party.Result
	err    error
}

// forwards session outcomes to the main goroutine
type probeHandler struct {
	outcomes chan outcome
}

func (h *probeHandler) OnComplete(result party.Result) {
	h.send(outcome{result: result})
}

func (h *probeHandler) OnFormError(err *party.FieldError) {
	h.send(outcome{err: err})
}

func (h *probeHandler) OnFailure(err error) {
	h.send(outcome{err: err})
}

func (h *probeHandler) OnProtocolError(err error) {
	fmt.Printf("⚠️  ignoring bad reply: %s\n", apperrors.Describe(err))
}

func (h *probeHandler) send(o outcome) {
	select {
	case h.outcomes <- o:
	default:
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		return 2
	}

	flags, err := config.ParseFlags("partyprobe", os.Args[1:], cfg)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger.Configure(cfg.Environment, f)
	} else {
		logger.Configure(cfg.Environment, os.Stderr)
	}

	apperrors.SetProduction(cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("connecting to %s\n", cfg.Endpoint)

	client := socket.NewClient(cfg.Endpoint, socket.WithEmitRate(cfg.EmitRate, cfg.EmitBurst))

	dialCtx, cancel := context.WithTimeout(logger.WithContext(ctx, logger.With("command", "partyprobe")), cfg.DialTimeout)
	err = client.Connect(dialCtx)
	cancel()

	if err != nil {
		logger.ErrorErr(err, "failed to connect", "endpoint", cfg.Endpoint)
		fmt.Printf("❌ could not connect: %s\n", apperrors.Describe(err))
		return 1
	}
	defer client.Close()

	fmt.Println("✅ connected")

	session := party.NewSession(client, party.WithRequestTimeout(cfg.RequestTimeout))
	handler := &probeHandler{outcomes: make(chan outcome, 1)}

	sub := session.Attach(handler)
	defer sub.Close()

	if flags.Create {
		fmt.Printf("📤 hosting party %q as %q\n", cfg.PartyID, cfg.Username)
		err = session.AttemptHost(cfg.Username, cfg.PartyID)
	} else {
		fmt.Printf("📤 joining party %q as %q\n", cfg.PartyID, cfg.Username)
		err = session.AttemptJoin(cfg.Username, cfg.PartyID)
	}

	if err != nil {
		printFailure(err)
		return 1
	}

	select {
	case o := <-handler.outcomes:
		if o.err != nil {
			printFailure(o.err)
			return 1
		}

		fmt.Printf("🎉 %s is in party %q with %d users\n", o.result.Username, cfg.PartyID, o.result.NumUsers)
		return 0

	case <-client.Done():
		fmt.Println("❌ connection closed before the party server answered")
		return 1

	case <-ctx.Done():
		fmt.Println("\n🛑 interrupted")
		return 130
	}
}

func printFailure(err error) {
	var fieldErr *party.FieldError
	if errors.As(err, &fieldErr) {
		fmt.Printf("❌ %s: %s\n", fieldErr.Field, tui.DefaultMessages().Reason(fieldErr.Reason))
		return
	}

	fmt.Printf("❌ %s\n", apperrors.Describe(err))
}
