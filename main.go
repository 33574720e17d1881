package main

import (
	"context"
	"detective/config"
	"detective/experiments"
	"flag"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// A missing .env is fine, the environment may be set already
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("DETECTIVE_CONFIG"), "Path to a YAML config overlaying the defaults")
	level := flag.String("log-level", envOr("DETECTIVE_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	games := flag.Int("games", 0, "Number of games, overrides the config")
	players := flag.Int("players", 0, "Number of players, overrides the config")
	budget := flag.Duration("budget", 0, "Time budget per decision, overrides the config")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	cfg := config.Default()
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *games > 0 {
		cfg.Experiment.Games = *games
	}
	if *players > 0 {
		cfg.Experiment.Players = *players
	}
	if *budget > 0 {
		cfg.Experiment.TurnBudget = *budget
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := experiments.Run(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	dir, err := experiments.Store(cfg.Experiment.Out, result)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to store results")
	}
	log.Info().Msgf("results stored in %s", dir)
	experiments.Render(os.Stdout, result)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
