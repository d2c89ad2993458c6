package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/buddy/buddy"
	"github.com/lixenwraith/buddy/config"
	"github.com/lixenwraith/buddy/engine"
	"github.com/lixenwraith/buddy/expression"
)

func newExpressionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expressions",
		Short: "List the expression catalog with trigger keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tNAME\tWEIGHT\tDURATION")
			for i, e := range expression.Default().All() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", triggerKey(i), e.Name(), e.Weight, durationLabel(e.Duration))
			}
			return w.Flush()
		},
	}
}

// triggerKey mirrors terminal.Classify: 1-9 then 0
func triggerKey(i int) string {
	switch {
	case i < 9:
		return strconv.Itoa(i + 1)
	case i == 9:
		return "0"
	default:
		return "-"
	}
}

func durationLabel(d time.Duration) string {
	if d == expression.Unbounded {
		return "until woken"
	}
	return d.String()
}

func newSimulateCmd() *cobra.Command {
	var (
		frames   int
		step     time.Duration
		every    int
		activity []int
		triggers map[string]string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay the state machine headlessly and print JSON states",
		Long: `Runs a fresh session on a mock clock and prints one JSON state per line.
The same --seed and options always produce the same output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Animation.Seed == 0 {
				cfg.Animation.Seed = 1
			}

			opts := engine.ReplayOptions{
				Frames:   frames,
				Step:     step,
				Every:    every,
				Activity: make(map[int]bool, len(activity)),
				Triggers: make(map[int]string, len(triggers)),
			}
			if opts.Step == 0 {
				opts.Step = time.Second / time.Duration(cfg.Animation.FPS)
			}
			for _, f := range activity {
				opts.Activity[f] = true
			}
			for k, name := range triggers {
				f, err := strconv.Atoi(k)
				if err != nil {
					return fmt.Errorf("trigger frame %q: %w", k, err)
				}
				opts.Triggers[f] = name
			}

			session := engine.NewSession(cfg, engine.NewMockTimeProvider(engine.ReplayEpoch))
			enc := json.NewEncoder(cmd.OutOrStdout())
			return engine.Replay(session, opts, func(_ int, st buddy.State) error {
				return enc.Encode(st)
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&frames, "frames", 600, "frames to simulate")
	f.DurationVar(&step, "step", 0, "clock advance per frame (default 1/fps)")
	f.IntVar(&every, "every", 1, "print every Nth frame")
	f.IntSliceVar(&activity, "activity", nil, "frames that receive user activity")
	f.StringToStringVar(&triggers, "trigger", nil, "frame=expression triggers, e.g. 120=wink")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration (never overwrites)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				dir, err := config.Dir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, "config.yaml")
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				File   string        `json:"file,omitempty"`
				Config config.Config `json:"config"`
			}{store.File(), cfg})
		},
	})
	return cmd
}
