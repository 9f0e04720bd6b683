package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/GeneralAntilles/Conto/internal/center"
	"github.com/GeneralAntilles/Conto/internal/config"
	"github.com/GeneralAntilles/Conto/internal/report"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cph := flag.Float64("cph", 0, "contacts per hour")
	handleTime := flag.Float64("handle-time", 0, "average handle time in seconds")
	holdProbability := flag.Float64("hold-probability", -1, "probability a contact is placed on hold")
	holdTime := flag.Float64("hold-time", 0, "average hold time in seconds")
	abandonTime := flag.Float64("abandon-time", 0, "average wait before abandoning in seconds")
	wrapupTime := flag.Float64("wrapup-time", -1, "average wrap-up time in seconds")
	agentCount := flag.Int("agent-count", 0, "number of agents")
	simTime := flag.Float64("sim-time", -1, "simulated duration in seconds (0 = run until max-contacts drain)")
	maxContacts := flag.Int("max-contacts", -1, "stop generating after this many contacts (0 = unlimited)")
	seed := flag.Int64("seed", 0, "random seed (0 = derive from wall clock)")
	logLevel := flag.String("log-level", "", "log level (trace, debug, info, warn, error)")
	recordsOut := flag.String("records", "", `write terminal contact records as JSON lines ("-" for stdout)`)
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Flags set on the command line override the environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cph":
			cfg.ContactsPerHour = *cph
		case "handle-time":
			cfg.AvgHandleTime = *handleTime
		case "hold-probability":
			cfg.HoldProbability = *holdProbability
		case "hold-time":
			cfg.AvgHoldTime = *holdTime
		case "abandon-time":
			cfg.AvgAbandonTime = *abandonTime
		case "wrapup-time":
			cfg.AvgWrapupTime = *wrapupTime
		case "agent-count":
			cfg.AgentCount = *agentCount
		case "sim-time":
			cfg.SimTime = *simTime
		case "max-contacts":
			cfg.MaxContacts = *maxContacts
		case "seed":
			cfg.Seed = *seed
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var sinks []report.Sink
	if *recordsOut != "" {
		out := os.Stdout
		if *recordsOut != "-" {
			f, err := os.Create(*recordsOut)
			if err != nil {
				log.Fatal().Err(err).Str("path", *recordsOut).Msg("failed to open records output")
			}
			defer f.Close()
			out = f
		}
		sinks = append(sinks, report.NewJSONLWriter(out))
	}

	c, err := center.FromConfig(cfg, log.Logger, sinks...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build simulation")
	}

	result, err := c.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("simulation run failed")
	}

	fmt.Print(report.Summary(result.RunID, result.Elapsed, result.Stats, result.ServiceLevel, result.Agents))
}
