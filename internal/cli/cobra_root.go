package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Actions are variables so tests can stub them.
var (
	fnServe    = serve
	fnTimeout  = runTimeout
	fnInterval = runInterval
)

// buildRootCmdWith constructs the Cobra command tree wired to the fn* actions.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "reactd",
		Short:         "Reactive timers and idle detection",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("%w: a subcommand is required: serve|timeout|interval", errUsage)
		},
	}
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error (defaults REACTD_LOG_LEVEL or info)")
	root.PersistentFlags().StringVar(&cfg.ConfigPath, "config", "", "Config file (.yaml, .yml, .json, .toml)")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	serveCmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the daemon: event loop, idle detector and HTTP API",
		Example: "  reactd serve --addr :8080 --config reactd.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.LogLevelSet = cmd.Flags().Changed("log-level")
			return fnServe(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVar(&cfg.Addr, "addr", "", "HTTP listen address (overrides config and REACTD_ADDR)")

	timeoutCmd := &cobra.Command{
		Use:     "timeout",
		Short:   "Print once after a delay",
		Example: "  reactd timeout --after 2s",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.After < 0 {
				return fmt.Errorf("%w: --after must not be negative", errUsage)
			}
			return fnTimeout(cmd.Context(), cfg)
		},
	}
	timeoutCmd.Flags().DurationVar(&cfg.After, "after", 0, "Delay before firing")

	intervalCmd := &cobra.Command{
		Use:     "interval",
		Short:   "Print a tick every period",
		Example: "  reactd interval --every 500ms --count 4",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Every <= 0 {
				return fmt.Errorf("%w: --every must be positive", errUsage)
			}
			if cfg.Count <= 0 {
				return fmt.Errorf("%w: --count must be positive", errUsage)
			}
			return fnInterval(cmd.Context(), cfg)
		},
	}
	intervalCmd.Flags().DurationVar(&cfg.Every, "every", 0, "Tick period")
	intervalCmd.Flags().IntVar(&cfg.Count, "count", cfg.Count, "Number of ticks before exiting")

	root.AddCommand(serveCmd, timeoutCmd, intervalCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	root.AddCommand(completionCmd)

	return root
}
