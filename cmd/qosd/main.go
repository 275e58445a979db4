package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jimmicro/version"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("qosd failed")
		stop()
		os.Exit(1)
	}
}
