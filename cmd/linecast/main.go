package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/linecast/internal/cliconfig"
	"github.com/bft-labs/linecast/pkg/linecast"
	"github.com/bft-labs/linecast/pkg/log"
	"github.com/bft-labs/linecast/plugins/filewatcher"
	"github.com/bft-labs/linecast/plugins/schedule"
)

const longHelp = `Send a text file over UDP, one line per datagram.

Each line of the selected file is sent as a raw UTF-8 datagram to the
destination, pausing for the interval after every line. Progress is printed
to stdout as "[elapsed_seconds] line".

Configure via flags, LINECAST_* environment variables, or a config file
($HOME/.linecast/config.toml, or .yaml). Flags win over the environment,
which wins over the file.`

var exampleUsage = strings.TrimSpace(`
  linecast send --addr 192.168.0.20 --file greetings.txt --interval 0.5
  linecast send --addr 127.0.0.1 --port 9000 --file demo.txt --resend-on-change
  linecast list --root ./lines
  linecast status --state-dir ~/.linecast
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return linecast.Version
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger, _ := cliconfig.Logger(cliconfig.DefaultLogLevel)

	root := &cobra.Command{
		Use:           "linecast",
		Short:         "Send a text file over UDP, one line per datagram",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.linecast/config.toml)")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&cfg.Root, "root", cfg.Root, "directory that file identifiers are resolved against")
	root.PersistentFlags().StringVar(&cfg.Extension, "ext", cfg.Extension, "extension of selectable files")
	root.PersistentFlags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for status.json (disabled if empty)")

	// load applies config file and environment under the flags of cmd and
	// rebuilds the logger for the resulting level.
	load := func(cmd *cobra.Command) error {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		}
		if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
			return err
		}

		l, err := cliconfig.Logger(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = l
		return cfg.Validate()
	}

	send := &cobra.Command{
		Use:   "send",
		Short: "Send a file line by line",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load(cmd); err != nil {
				return err
			}
			if err := cfg.ValidateSend(); err != nil {
				return err
			}
			logger.Debug().Interface("config", cfg).Msg("configuration")
			return runSend(cfg, logger)
		},
	}
	send.Flags().StringVar(&cfg.Address, "addr", cfg.Address, "destination IPv4 address")
	send.Flags().IntVar(&cfg.Port, "port", cfg.Port, "destination UDP port")
	send.Flags().Float64Var(&cfg.IntervalSeconds, "interval", cfg.IntervalSeconds, "pause after each line in seconds (fractional, 0 for back-to-back)")
	send.Flags().StringVar(&cfg.File, "file", cfg.File, "file identifier relative to --root")
	send.Flags().BoolVar(&cfg.ResendOnChange, "resend-on-change", cfg.ResendOnChange, "resend when the file changes and keep running until interrupted")
	send.Flags().StringVar(&cfg.Schedule, "schedule", cfg.Schedule, "cron schedule for resends; keeps running until interrupted")

	list := &cobra.Command{
		Use:   "list",
		Short: "List selectable files under --root",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load(cmd); err != nil {
				return err
			}
			lc, err := linecast.New(linecast.Config{Root: cfg.Root, Extension: cfg.Extension})
			if err != nil {
				return err
			}
			files, err := lc.Files()
			if err != nil {
				return fmt.Errorf("list %s: %w", cfg.Root, err)
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Print the report of the last finished session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load(cmd); err != nil {
				return err
			}
			if cfg.StateDir == "" {
				return fmt.Errorf("%w: --state-dir is required", linecast.ErrInvalidConfig)
			}
			lc, err := linecast.New(linecast.Config{Root: cfg.Root, StateDir: cfg.StateDir})
			if err != nil {
				return err
			}
			report, err := lc.LastReport(cmd.Context())
			if err != nil {
				return fmt.Errorf("read report: %w", err)
			}
			if report.ID == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no session has finished yet")
				return nil
			}
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	root.AddCommand(send, list, status)

	if err := root.Execute(); err != nil {
		msg := "linecast"
		if linecast.IsConfigError(err) {
			msg = "invalid configuration"
		}
		logger.Error().Err(err).Msg(msg)
		os.Exit(1)
	}
}

// errSessionFailed marks a session that ended in Failed.
var errSessionFailed = errors.New("session failed")

func runSend(cfg cliconfig.Config, logger zerolog.Logger) error {
	interval, err := linecast.IntervalFromSeconds(cfg.IntervalSeconds)
	if err != nil {
		return err
	}

	opts := []linecast.Option{
		linecast.WithLogger(log.NewZerologAdapterWithLogger(logger)),
		linecast.WithProgressWriter(os.Stdout),
	}
	retrigger := false
	if cfg.ResendOnChange {
		opts = append(opts, filewatcher.WithDefaultFileWatcher())
		retrigger = true
	}
	if cfg.Schedule != "" {
		opts = append(opts, schedule.WithSchedule(schedule.Config{Spec: cfg.Schedule}))
		retrigger = true
	}

	lc, err := linecast.New(linecast.Config{
		Root:      cfg.Root,
		Extension: cfg.Extension,
		StateDir:  cfg.StateDir,
	}, opts...)
	if err != nil {
		return fmt.Errorf("create linecast: %w", err)
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := lc.Start(ctx); err != nil {
		return fmt.Errorf("start linecast: %w", err)
	}

	s, err := lc.Send(linecast.Request{
		Address:  cfg.Address,
		Port:     cfg.Port,
		Interval: interval,
		File:     cfg.File,
	})
	if err != nil {
		_ = lc.Stop()
		return err
	}

	if retrigger {
		<-sigCh
		logger.Info().Msg("received signal, stopping...")
	} else {
		select {
		case <-sigCh:
			logger.Info().Msg("received signal, stopping...")
		case <-s.Done():
		}
	}

	if err := lc.Stop(); err != nil {
		return fmt.Errorf("stop linecast: %w", err)
	}

	// With re-triggers the last session decides the exit code.
	st, _ := lc.Status()
	if st.State == linecast.SessionFailed {
		return fmt.Errorf("%w: %v", errSessionFailed, st.Err)
	}
	return nil
}
