package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
		log.Error().Err(err).Msg("charview")
		os.Exit(1)
	}
}
