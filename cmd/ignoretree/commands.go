package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	ignore "github.com/Sriram-PR/go-ignoretree"
	"github.com/Sriram-PR/go-ignoretree/internal/gitparity"
	"github.com/Sriram-PR/go-ignoretree/internal/logging"
	"github.com/Sriram-PR/go-ignoretree/tree"
)

// errMismatch makes parity exit non-zero once the report has been printed.
var errMismatch = errors.New("results differ from go-git")

func newTreeCmd(opts *rootOptions) *cobra.Command {
	var format, color string

	cmd := &cobra.Command{
		Use:   "tree [dir]",
		Short: "Print the directory tree with the rule sources matching each entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, root, err := opts.loadTree(dirArg(args))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				styled, err := useColor(color, out)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, tree.Render(root, tree.RenderOptions{Styled: styled}))
				return err
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tree.Snapshot(root))
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(tree.Snapshot(root)); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("%w: unknown format %q (want text, json or yaml)", ignore.ErrInvalidArgument, format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().StringVar(&color, "color", "auto", "colour text output: auto, always or never")
	return cmd
}

// useColor resolves --color. "always" forces an ANSI profile so styles
// survive a pipe.
func useColor(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "never":
		return false, nil
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
		return true, nil
	case "auto":
		return logging.IsTerminal(out) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("%w: unknown color mode %q (want auto, always or never)", ignore.ErrInvalidArgument, mode)
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "Print the relative paths of the entries that pass every filter",
		Long: `Print the relative paths of the entries below dir, depth-first.

Each --filter names a rule source: NAME keeps only entries it matched,
!NAME keeps only entries it did not match. An entry rejected by a filter
is dropped together with everything below it, so --filter '!.gitignore'
lists what Git would track.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, root, err := opts.loadTree(dirArg(args))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range tree.List(root, filters...) {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "rule-source filter, NAME or !NAME (repeatable)")
	return cmd
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		patterns []string
		from     string
		isDir    bool
	)

	cmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Match paths against patterns and show the deciding rule",
		Long: `Match each PATH against the given patterns, as if the patterns were the
contents of an ignore file in the current directory. PATH may be relative;
its parent folders are descended into as a tree walk would.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := checkRuleSet(patterns, from)
			if err != nil {
				return err
			}
			m := opts.matcher()
			out := cmd.OutOrStdout()
			for _, p := range args {
				fmt.Fprintf(out, "%s: %s\n", p, describe(m.Evaluate(p, isDir, rs)))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&patterns, "pattern", "p", nil, "ignore-file line (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "read patterns from an ignore file")
	cmd.Flags().BoolVarP(&isDir, "dir", "d", false, "treat every PATH as a directory")
	return cmd
}

func checkRuleSet(patterns []string, from string) (*ignore.RuleSet, error) {
	var lines []string
	if from != "" {
		content, err := os.ReadFile(from)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", from, err)
		}
		lines = ignore.SplitLines(content)
	}
	lines = append(lines, patterns...)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no patterns given (use --pattern or --from)", ignore.ErrInvalidArgument)
	}
	return ignore.FromLines(lines...), nil
}

func describe(res ignore.MatchResult) string {
	switch {
	case !res.Matched:
		return "not ignored"
	case res.Negated:
		return fmt.Sprintf("not ignored (re-included by %q, line %d)", res.Rule, res.Line)
	case res.Hidden:
		return "ignored (inside an excluded directory)"
	case res.Partial:
		return fmt.Sprintf("partially matched by %q (line %d), the rest applies below this directory", res.Rule, res.Line)
	default:
		return fmt.Sprintf("ignored by %q (line %d)", res.Rule, res.Line)
	}
}

func newParityCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parity [dir]",
		Short: "Compare .gitignore results with go-git's matcher",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, root, err := opts.loadTree(dirArg(args))
			if err != nil {
				return err
			}
			mismatches, err := gitparity.Compare(fsys, root, ".gitignore")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, m := range mismatches {
				fmt.Fprintln(out, m)
			}
			if len(mismatches) > 0 {
				return fmt.Errorf("%w: %d entries", errMismatch, len(mismatches))
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}
