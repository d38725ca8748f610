package cli

import (
	"fmt"
	"os"

	"github.com/arthur-debert/implx/internal/hashutil"
	"github.com/arthur-debert/implx/internal/version"
	"github.com/arthur-debert/implx/pkg/config"
	"github.com/arthur-debert/implx/pkg/filesystem"
	"github.com/arthur-debert/implx/pkg/fragment"
	"github.com/arthur-debert/implx/pkg/handoff"
	"github.com/arthur-debert/implx/pkg/implementor"
	"github.com/arthur-debert/implx/pkg/metrics"
	"github.com/arthur-debert/implx/pkg/output"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/spf13/cobra"
)

func newLoadCmd(a *app) *cobra.Command {
	var report bool

	cmd := &cobra.Command{
		Use:   "load [path...]",
		Short: MsgLoadShort,
		Long:  MsgLoadLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}

			var observers []handoff.Observer
			var m *metrics.Metrics
			if cfg.Metrics.Enabled {
				m = metrics.New()
				observers = append(observers, m)
			}

			res, err := a.play(cmd, args, observers...)
			if err != nil {
				return err
			}

			view := output.FromIndex(res.Index)
			if report {
				view.WithReport(res.Report)
			}
			if err := output.Write(cmd.OutOrStdout(), cfg.Output.Format, view, a.outputOptions(cmd)); err != nil {
				return err
			}
			if m != nil {
				return m.WriteText(cmd.ErrOrStderr())
			}
			return nil
		},
	}
	addSessionFlags(cmd)
	cmd.Flags().BoolVar(&report, "report", false, MsgFlagReport)
	return cmd
}

func newWhoCmd(a *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "who <trait> [path...]",
		Short: MsgWhoShort,
		Long:  MsgWhoLong,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trait := types.TraitPath(args[0])
			res, err := a.play(cmd, args[1:])
			if err != nil {
				return err
			}

			if plain {
				impls, err := res.Index.WhoImplements(trait)
				if err != nil {
					return err
				}
				for _, impl := range impls {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", impl.Library, implementor.MustText(impl.Entry))
				}
				return nil
			}

			impls, err := res.Index.Get(trait)
			if err != nil {
				return err
			}
			view := output.FromDeliveries([]types.Delivery{{Trait: trait, Implementors: impls}})
			return output.Write(cmd.OutOrStdout(), a.cfg.Output.Format, view, a.outputOptions(cmd))
		},
	}
	addSessionFlags(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "Print one tab-separated library and entry per line")
	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: MsgInspectShort,
		Long:  MsgInspectLong,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := filesystem.NewOS()
			loader := fragment.NewLoader(fsys)
			out := cmd.OutOrStdout()

			for _, path := range args {
				frag, err := loader.Load(path)
				if err != nil {
					return err
				}
				sum, err := hashutil.FileChecksum(fsys, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, MsgInspectTrait, formatBold(frag.Trait.String()), frag.Source, sum)
				for _, lib := range frag.Implementors.Libraries() {
					fmt.Fprintf(out, MsgInspectLibrary, lib)
					for _, entry := range frag.Implementors[lib] {
						inspectEntry(cmd, entry)
					}
				}
			}
			return nil
		},
	}
}

func inspectEntry(cmd *cobra.Command, entry types.Implementor) {
	out := cmd.OutOrStdout()
	d, err := implementor.Parse(entry)
	if err != nil {
		fmt.Fprintf(out, MsgInspectEntry, entry)
		fmt.Fprintf(out, MsgInspectInvalid, err)
		return
	}

	fmt.Fprintf(out, MsgInspectEntry, d.Text)
	if d.Generics != "" {
		fmt.Fprintf(out, MsgInspectField, "generics", d.Generics)
	}
	if d.TraitText != "" {
		fmt.Fprintf(out, MsgInspectField, "trait", d.TraitText)
	}
	if d.For != "" {
		fmt.Fprintf(out, MsgInspectField, "for", d.For)
	}
	for _, l := range d.Links {
		fmt.Fprintf(out, MsgInspectLink, l.Kind, l.Text, l.Href)
	}
}

func newMetricsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics [path...]",
		Short: MsgMetricsShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := metrics.New()
			if _, err := a.play(cmd, args, m); err != nil {
				return err
			}
			return m.WriteText(cmd.OutOrStdout())
		},
	}
	addSessionFlags(cmd)
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				_, err := fmt.Fprint(out, config.DefaultContent())
				return err
			}
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.TOML()
			if err != nil {
				return err
			}
			for _, src := range cfg.Sources {
				fmt.Fprintf(out, MsgConfigSource, src)
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	addSessionFlags(cmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// Execute runs the root command and reports a failure on stderr
func Execute() error {
	a := &app{}
	defer a.closeLog()

	err := newRootCmd(a).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
