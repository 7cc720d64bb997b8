package main

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	ignore "github.com/Sriram-PR/go-ignoretree"
	"github.com/Sriram-PR/go-ignoretree/fstree"
	"github.com/Sriram-PR/go-ignoretree/internal/config"
	"github.com/Sriram-PR/go-ignoretree/internal/logging"
	"github.com/Sriram-PR/go-ignoretree/tree"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootOptions holds the persistent flags and the config they resolve to.
type rootOptions struct {
	verbosity  int
	configPath string
	sources    []string
	global     bool
	ignoreCase bool

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ignoretree",
		Short: "Apply gitignore-style rule files to a directory tree",
		Long: `ignoretree walks a directory, reads the ignore files found in each folder
and reports which entries every rule source excludes, using Git's
.gitignore semantics.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("command started")
			return opts.resolve(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./"+config.LocalFileName+" or $XDG_CONFIG_HOME/"+config.UserFileName+")")
	flags.StringSliceVar(&opts.sources, "source", nil, "rule-source file name read in every folder (repeatable)")
	flags.BoolVar(&opts.global, "global", false, "also apply the global excludes file (core.excludesFile)")
	flags.BoolVar(&opts.ignoreCase, "ignore-case", false, "match patterns case-insensitively")

	cmd.AddCommand(
		newTreeCmd(opts),
		newListCmd(opts),
		newCheckCmd(opts),
		newParityCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// resolve loads the config file and lets explicitly set flags override it.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Sources = o.sources
	}
	if flags.Changed("global") {
		cfg.Global = o.global
	}
	if flags.Changed("ignore-case") {
		cfg.CaseInsensitive = o.ignoreCase
	}
	o.cfg = cfg
	return nil
}

func (o *rootOptions) matcher() *ignore.Matcher {
	return ignore.NewWithOptions(ignore.MatcherOptions{
		CaseInsensitive: o.cfg.CaseInsensitive,
		Logger:          &log.Logger,
	})
}

// loadTree reads dir, attaches the configured rule sources and applies them.
func (o *rootOptions) loadTree(dir string) (billy.Filesystem, *tree.Folder, error) {
	fsys := osfs.New(dir)
	root, _, err := fstree.Load(fsys, ".", fstree.Options{
		SourceNames:   o.cfg.Sources,
		IncludeGlobal: o.cfg.Global,
		Skip:          o.cfg.Skip,
		Logger:        &log.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", dir, err)
	}

	if len(o.cfg.Rules) > 0 {
		rs := ignore.FromLines(o.cfg.Rules...)
		for _, w := range rs.Warnings() {
			log.Warn().Str("file", o.cfg.Path).Str("pattern", w.Pattern).Msg(w.Message)
		}
		if err := root.AttachRuleSet(config.RulesSourceName, rs); err != nil {
			return nil, nil, err
		}
	}

	applier := tree.Applier{Matcher: o.matcher(), Logger: &log.Logger}
	if err := applier.Apply(root); err != nil {
		return nil, nil, err
	}
	return fsys, root, nil
}

func dirArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ignoretree version %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
