package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/presence-analyzer/internal/profile"
	"github.com/hrygo/presence-analyzer/server"
	"github.com/hrygo/presence-analyzer/store"
	"github.com/hrygo/presence-analyzer/store/db/file"
)

const version = "0.1.0"

var (
	instanceProfile *profile.Profile

	rootCmd = &cobra.Command{
		Use:   "presence",
		Short: "Presence analyzer serves attendance statistics from check-in records",
		Run: func(_ *cobra.Command, _ []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			setupLogger(instanceProfile)

			driver := file.NewDriver(instanceProfile.PresenceCSV, instanceProfile.RosterXML)
			st := store.New(driver, instanceProfile)

			s, err := server.NewServer(ctx, instanceProfile, st)
			if err != nil {
				slog.Error("failed to create server", "error", err)
				return
			}

			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			go func() {
				sig := <-c
				slog.Info("received signal, shutting down", "signal", sig.String())
				s.Shutdown(ctx)
				cancel()
			}()

			if err := s.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("failed to start server", "error", err)
				return
			}

			<-ctx.Done()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of the server, can be "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 0, "port of the server")
	rootCmd.PersistentFlags().String("data", "", "data directory holding the source documents")
	rootCmd.PersistentFlags().String("csv", "", "path of the presence record source, defaults to <data>/presence.csv")
	rootCmd.PersistentFlags().String("roster-xml", "", "path of the roster document, defaults to <data>/users.xml")
	rootCmd.PersistentFlags().String("roster-url", "", "endpoint for the periodic roster download, empty disables it")
	rootCmd.PersistentFlags().String("roster-cron", "", "cron spec for the roster refresh job")
	rootCmd.PersistentFlags().Duration("cache-ttl", 0, "how long parsed source documents are memoized")

	cobra.OnInitialize(initProfile)
}

func initProfile() {
	v := viper.New()
	if err := v.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		slog.Error("failed to bind flags", "error", err)
		os.Exit(1)
	}

	instanceProfile = &profile.Profile{
		Mode:        v.GetString("mode"),
		Addr:        v.GetString("addr"),
		Port:        v.GetInt("port"),
		Data:        v.GetString("data"),
		Version:     version,
		PresenceCSV: v.GetString("csv"),
		RosterXML:   v.GetString("roster-xml"),
		RosterURL:   v.GetString("roster-url"),
		RosterCron:  v.GetString("roster-cron"),
		CacheTTL:    v.GetDuration("cache-ttl"),
	}
	instanceProfile.FromEnv()

	if err := instanceProfile.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(p *profile.Profile) {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	var handler slog.Handler
	if p.Mode == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
