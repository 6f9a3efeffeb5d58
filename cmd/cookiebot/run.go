package main

import (
	"context"
	"errors"
	"github.com/alexandre-normand/cookiebot"
	"github.com/alexandre-normand/cookiebot/config"
	"github.com/alexandre-normand/cookiebot/ledger"
	"github.com/alexandre-normand/cookiebot/plugins"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	configFile string
	debug      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to slack and serve commands until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, v)
	},
}

func init() {
	runCmd.Flags().StringVar(&configFile, "config", "", "path to a configuration file (yaml, json or toml)")
	runCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
}

// loadConfig layers the .env file (if present), the defaults, the optional configuration file,
// the environment and the flags before validating the result
func loadConfig(cmd *cobra.Command) (v *viper.Viper, err error) {
	// Load .env file if present
	_ = godotenv.Load()

	v = config.NewViperWithDefaults()
	if err = config.BindEnv(v); err != nil {
		return nil, err
	}

	if configFile != "" {
		if err = config.ReadConfigFile(v, configFile); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("debug") {
		v.Set(config.DebugKey, debug)
	}

	if err = config.Validate(v); err != nil {
		return nil, err
	}

	return v, nil
}

func run(ctx context.Context, v *viper.Viper) (err error) {
	shutdownTelemetry, err := setupTelemetry(ctx, name)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	storer, err := openStorer(ctx, v, otel.Meter(name))
	if err != nil {
		return err
	}

	bot, err := cookiebot.NewBot(name, v, cookiebot.OptionLog(log.New(os.Stdout, name+": ", log.Lshortfile|log.LstdFlags))).
		WithPluginCloserErr(storer, &plugins.NewCookies(ledger.New(storer)).Plugin, nil).
		WithPlugin(&plugins.NewGreeter(plugins.NoticeChannelID).Plugin).
		WithPlugin(&plugins.NewVersioner(name, cookiebot.VERSION).Plugin).
		Build()
	if err != nil {
		storer.Close()
		return err
	}
	defer bot.Close()

	srv := &http.Server{
		Addr:              v.GetString(config.ListenAddressKey),
		Handler:           bot.SlashCommandHandler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrs := make(chan error, 1)
	go func() {
		log.Printf("Serving slash commands, health and metrics on [%s]\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrs <- err
		}
	}()

	botErrs := make(chan error, 1)
	go func() {
		botErrs <- bot.Run(ctx)
	}()

	select {
	case err = <-serverErrs:
	case err = <-botErrs:
	case <-ctx.Done():
		err = <-botErrs
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		log.Printf("Error shutting down http server: %v\n", serr)
	}

	return err
}
