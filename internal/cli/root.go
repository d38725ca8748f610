// Package cli wires the implx packages into cobra commands.
package cli

import (
	"embed"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/implx/internal/version"
	"github.com/arthur-debert/implx/pkg/cobrax/topics"
	"github.com/arthur-debert/implx/pkg/config"
	"github.com/arthur-debert/implx/pkg/filesystem"
	"github.com/arthur-debert/implx/pkg/fragment"
	"github.com/arthur-debert/implx/pkg/handoff"
	"github.com/arthur-debert/implx/pkg/logging"
	"github.com/arthur-debert/implx/pkg/output"
	"github.com/arthur-debert/implx/pkg/session"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

//go:embed topics
var topicsFS embed.FS

// flagKeys maps command flags onto the config keys they override
var flagKeys = map[string]string{
	"format":        "output.format",
	"mode":          "handoff.mode",
	"install-after": "session.install_after",
	"skip":          "index.skip_library",
}

// app is the state shared by all commands of one invocation
type app struct {
	verbosity  int
	configFile string
	format     string
	noColor    bool

	cfg     *config.Config
	logFile io.Closer
}

// closeLog releases the log file opened by the pre-run hook. Safe to call
// more than once.
func (a *app) closeLog() {
	if a.logFile == nil {
		return
	}
	if err := a.logFile.Close(); err != nil {
		log.Debug().Err(err).Msg("Closing log file")
	}
	a.logFile = nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "implx",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.closeLog()
			a.logFile = logging.Setup(logging.Options{Verbosity: a.verbosity, NoColor: a.noColor})
			logging.LogCommand(cmd.Name(), args)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "f", "", MsgFlagFormat)
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newLoadCmd(a))
	rootCmd.AddCommand(newWhoCmd(a))
	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newMetricsCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	tm, err := topics.Load(topicsFS, "topics", topics.Options{
		Extensions: []string{".md", ".txt"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	if err == nil {
		tm.Install(rootCmd)
	}

	return rootCmd
}

// addSessionFlags adds the playback flags shared by load, who and metrics
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "", MsgFlagMode)
	cmd.Flags().Int("install-after", 0, MsgFlagInstallAfter)
	cmd.Flags().Bool("no-drain", false, MsgFlagNoDrain)
	cmd.Flags().String("skip", "", MsgFlagSkip)
}

// config loads the configuration once, with changed flags applied on top
func (a *app) config(cmd *cobra.Command) (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	overrides := map[string]interface{}{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.String()
		}
	})
	if noDrain, err := cmd.Flags().GetBool("no-drain"); err == nil && cmd.Flags().Changed("no-drain") {
		overrides["session.drain"] = !noDrain
	}

	cfg, err := config.Load(config.LoadOptions{File: a.configFile, Overrides: overrides})
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

// outputOptions disables color when asked to or when stdout is not a
// color terminal
func (a *app) outputOptions(cmd *cobra.Command) output.Options {
	noColor := a.noColor
	if f, ok := cmd.OutOrStdout().(*os.File); !ok || output.DetectNoColor(f) {
		noColor = true
	}
	return a.cfg.OutputOptions(noColor)
}

// fragments loads the fragments named by paths, or the configured
// fragments directory when there are none
func (a *app) fragments(paths []string) ([]*fragment.Fragment, error) {
	if len(paths) == 0 {
		paths = []string{a.cfg.Fragments.Dir}
	}
	return fragment.NewLoader(filesystem.NewOS()).LoadPaths(paths)
}

// play loads fragments and runs them through a session
func (a *app) play(cmd *cobra.Command, paths []string, observers ...handoff.Observer) (*session.Result, error) {
	if _, err := a.config(cmd); err != nil {
		return nil, err
	}
	frags, err := a.fragments(paths)
	if err != nil {
		return nil, err
	}

	opts := a.cfg.SessionOptions()
	opts.Observers = observers
	log.Info().
		Int("fragments", len(frags)).
		Str("mode", opts.Mode.String()).
		Int("installAfter", opts.InstallAfter).
		Msg("Running session")
	return session.Run(frags, opts)
}
