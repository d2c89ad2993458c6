// Command buddy runs the animated terminal companion.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/buddy/config"
)

// Set at build time
var version = "dev"

// Flag names shared by every subcommand
const (
	flagConfig     = "config"
	flagFPS        = "fps"
	flagSeed       = "seed"
	flagHue        = "hue"
	flagMute       = "mute"
	flagDebug      = "debug"
	flagLogLevel   = "log-level"
	flagLogFile    = "log-file"
	flagColor      = "color"
	flagExpression = "expression"
)

// flagKeys binds flags to config keys; changed flags beat file and environment
var flagKeys = map[string]string{
	"animation.fps":                flagFPS,
	"animation.seed":               flagSeed,
	"animation.initial_expression": flagExpression,
	"render.hue":                   flagHue,
	"render.debug":                 flagDebug,
	"render.color_mode":            flagColor,
	"log.level":                    flagLogLevel,
	"log.file":                     flagLogFile,
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "buddy: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := config.Default()

	root := &cobra.Command{
		Use:   "buddy",
		Short: "An animated companion face for your terminal",
		Long: `Buddy blinks, breathes, drifts between expressions and dozes off when
you leave it alone. Any key or mouse movement wakes it.

Keys 1-9 and 0 trigger expressions in catalog order; q, Esc or Ctrl-C quit.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runBuddy,
	}

	pf := root.PersistentFlags()
	pf.String(flagConfig, "", "config file (default ~/.buddy/config.yaml or ./config.yaml)")
	pf.Int(flagFPS, defaults.Animation.FPS, "reference frame rate")
	pf.Int64(flagSeed, 0, "random seed; 0 derives one from the clock")
	pf.Int(flagHue, defaults.Render.Hue, "palette hue 0-359, -1 for random")
	pf.Bool(flagMute, false, "disable chimes")
	pf.Bool(flagDebug, false, "show the expression caption")
	pf.String(flagLogLevel, defaults.Log.Level, "log level: debug, info, warn, error")
	pf.String(flagLogFile, "", `log file name under ~/.buddy/logs, "-" for stderr`)
	pf.String(flagColor, defaults.Render.ColorMode, "color mode: auto, truecolor, 256")
	pf.String(flagExpression, "", "expression to show on start")

	root.AddCommand(newExpressionsCmd(), newSimulateCmd(), newConfigCmd())
	return root
}

// loadConfig layers defaults, file, environment and flags
func loadConfig(cmd *cobra.Command) (*config.Store, config.Config, error) {
	path, _ := cmd.Flags().GetString(flagConfig)
	store, err := config.Open(path)
	if err != nil {
		return nil, config.Config{}, err
	}
	if err := store.BindFlags(cmd.Flags(), flagKeys); err != nil {
		return nil, config.Config{}, err
	}
	return store, withMute(cmd, store.Config()), nil
}

// withMute applies --mute, which has no config key of its own
func withMute(cmd *cobra.Command, cfg config.Config) config.Config {
	if mute, _ := cmd.Flags().GetBool(flagMute); mute {
		cfg.Audio.Enabled = false
	}
	return cfg
}
