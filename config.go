package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	port           int
	postgresURL    string
	allowedOrigins []string
	publicURL      string
	roomIdle       time.Duration
	sweepInterval  time.Duration
	dev            bool
	verbose        bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if !c.dev && c.postgresURL == "" {
		return errors.New("--postgres-url is required outside --dev mode")
	}
	if c.roomIdle <= 0 {
		return errors.New("--room-idle must be positive")
	}
	if c.sweepInterval <= 0 {
		return errors.New("--sweep-interval must be positive")
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("IMPOSTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "impostor",
		Short:         "Server for the find-the-impostor party game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: IMPOSTOR_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 5000, "port to listen on (env: IMPOSTOR_PORT)")
	fs.StringVar(&cfg.postgresURL, "postgres-url", "", "postgres connection string (env: IMPOSTOR_POSTGRES_URL)")
	fs.StringSliceVar(&cfg.allowedOrigins, "allowed-origins", []string{"http://localhost:3000"}, "origins allowed to call the API (env: IMPOSTOR_ALLOWED_ORIGINS)")
	fs.StringVar(&cfg.publicURL, "public-url", "http://localhost:3000", "externally reachable base URL, used for QR join links (env: IMPOSTOR_PUBLIC_URL)")
	fs.DurationVar(&cfg.roomIdle, "room-idle", 24*time.Hour, "time before inactive rooms are swept (env: IMPOSTOR_ROOM_IDLE)")
	fs.DurationVar(&cfg.sweepInterval, "sweep-interval", time.Hour, "how often the inactivity sweep runs (env: IMPOSTOR_SWEEP_INTERVAL)")
	fs.BoolVar(&cfg.dev, "dev", false, "run with the in-memory store instead of postgres (env: IMPOSTOR_DEV)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: IMPOSTOR_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}
