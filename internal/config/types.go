package config

import "time"

type Config struct {
	Endpoint       string        `envconfig:"ENDPOINT" default:"ws://localhost:3000/socket" validate:"required,url"`
	Username       string        `envconfig:"USERNAME"`
	PartyID        string        `envconfig:"ID"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s" validate:"gte=0"`
	DialTimeout    time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s" validate:"gt=0"`
	EmitRate       float64       `envconfig:"EMIT_RATE" default:"5" validate:"gt=0"`
	EmitBurst      int           `envconfig:"EMIT_BURST" default:"5" validate:"gte=1"`
	LogFile        string        `envconfig:"LOG_FILE"`
	Environment    string        `envconfig:"ENVIRONMENT" default:"development" validate:"oneof=development production test"`
}

// options that only make sense on the command line
type Flags struct {
	Create bool
}

// reports whether the client runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
