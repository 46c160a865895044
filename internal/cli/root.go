// Package cli is the moodkeeper command line: analyze text, keep the
// encrypted journal and issue pairing tokens for companion devices.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/moodkeeper/internal/app"
	"github.com/dmitrijs2005/moodkeeper/internal/auth"
	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/config"
	"github.com/dmitrijs2005/moodkeeper/internal/journal"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath    string
	dataDir       string
	backend       string
	logLevel      string
	askPassphrase bool
	jsonOutput    bool
}

// NewRootCmd builds the command tree. Commands open the App lazily so
// --help works without touching the data directory.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "moodkeeper",
		Short: "Private, on-device mood journal",
		Long: `moodkeeper analyzes journal text on this machine (sentiment, language,
keywords, triggers, a short summary and a wellness nudge) and keeps every
entry encrypted at rest.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to TOML config file")
	pf.StringVar(&opts.dataDir, "data-dir", "", "data directory")
	pf.StringVar(&opts.backend, "backend", "", "journal backend (file|sqlite|postgres|s3)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	pf.BoolVar(&opts.askPassphrase, "ask-passphrase", false, "prompt for the key store passphrase")
	pf.BoolVar(&opts.jsonOutput, "json", false, "print JSON")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newWriteCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newDeleteCmd(opts),
		newShellCmd(opts),
		newTokenCmd(opts),
	)
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.askPassphrase {
		pw, err := GetPassphrase(cmd.ErrOrStderr())
		if err != nil {
			return nil, fmt.Errorf("read passphrase: %w", err)
		}
		cfg.Passphrase = string(pw)
		common.WipeByteArray(pw)
	}
	return cfg, cfg.Validate()
}

// withSession loads config, opens the App and runs fn with a session that
// prints to the command's output.
func (o *rootOptions) withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log := logging.NewText(cmd.ErrOrStderr(), cfg.LogLevel)
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, &session{app: a, out: cmd.OutOrStdout(), jsonMode: o.jsonOutput})
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <text>",
		Short: "Analyze text without saving it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				return s.Analyze(ctx, strings.Join(args, " "))
			})
		},
	}
}

func newWriteCmd(opts *rootOptions) *cobra.Command {
	var (
		text         string
		voice        bool
		sleepHours   float64
		steps        int
		workout      float64
		mood         float64
		moodCategory string
	)

	cmd := &cobra.Command{
		Use:   "write [text]",
		Short: "Analyze and save a journal entry",
		Long: `Analyze and save a journal entry. The text comes from --text, the
arguments, or standard input (finish with an empty line). Health values
recorded elsewhere can be attached with the health flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				text = strings.Join(args, " ")
			}
			if text == "" {
				var err error
				text, err = GetMultiline(bufio.NewReader(cmd.InOrStdin()), "Write your entry:", cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			var health journal.HealthCorrelates
			f := cmd.Flags()
			if f.Changed("sleep") {
				health.SleepHours = &sleepHours
			}
			if f.Changed("steps") {
				health.StepCount = &steps
			}
			if f.Changed("workout") {
				health.WorkoutMinutes = &workout
			}
			if f.Changed("mood") {
				health.MoodValue = &mood
			}
			health.MoodCategory = moodCategory

			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				return s.Write(ctx, text, health, voice)
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "entry text")
	cmd.Flags().BoolVar(&voice, "voice", false, "the text was transcribed from voice")
	cmd.Flags().Float64Var(&sleepHours, "sleep", 0, "hours slept")
	cmd.Flags().IntVar(&steps, "steps", 0, "step count")
	cmd.Flags().Float64Var(&workout, "workout", 0, "workout minutes")
	cmd.Flags().Float64Var(&mood, "mood", 0, "logged mood value")
	cmd.Flags().StringVar(&moodCategory, "mood-category", "", "logged mood category")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"l"},
		Short:   "List journal entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				return s.List(ctx)
			})
		},
	}
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				return s.Show(ctx, args[0])
			})
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				return s.Delete(ctx, args[0])
			})
		},
	}
}

func newShellCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive journal shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				readEntry := func() (string, error) {
					return ScanMultiline(scanner, "Write your entry:", cmd.OutOrStdout())
				}
				runREPL(ctx, s, scanner, readEntry)
				return nil
			})
		},
	}
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token [device]",
		Short: "Issue a pairing token for a companion device",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			device := uuid.NewString()
			if len(args) == 1 {
				device = args[0]
			}

			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				secret, err := s.app.PairingSecret(ctx)
				if err != nil {
					return err
				}
				tok, err := auth.GenerateToken(device, secret, s.app.Config.TokenValidity)
				if err != nil {
					return err
				}
				return printToken(s.out, device, tok)
			})
		},
	}
}

func printToken(w io.Writer, device, token string) error {
	_, err := fmt.Fprintf(w, "device: %s\ntoken:  %s\n", device, token)
	return err
}
