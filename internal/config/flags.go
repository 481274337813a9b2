package config

import (
	"flag"
	"fmt"
)

// overlays command-line flags onto cfg. flags left unset keep the environment value.
func ParseFlags(name string, args []string, cfg *Config) (Flags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	endpoint := fs.String("endpoint", cfg.Endpoint, "party server websocket url")
	username := fs.String("username", cfg.Username, "display name")
	partyID := fs.String("party", cfg.PartyID, "party identifier")
	timeout := fs.Duration("timeout", cfg.RequestTimeout, "how long to wait for the party server (0 waits forever)")
	logFile := fs.String("log-file", cfg.LogFile, "write logs to this file")
	create := fs.Bool("create", false, "create the party instead of joining it")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	if fs.NArg() > 0 {
		return Flags{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg.Endpoint = *endpoint
	cfg.Username = *username
	cfg.PartyID = *partyID
	cfg.RequestTimeout = *timeout
	cfg.LogFile = *logFile

	if err := cfg.Validate(); err != nil {
		return Flags{}, err
	}

	return Flags{Create: *create}, nil
}
