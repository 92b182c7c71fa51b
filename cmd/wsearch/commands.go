package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Cyclone1070/wsearch/internal/config"
	"github.com/Cyclone1070/wsearch/internal/events"
	"github.com/Cyclone1070/wsearch/internal/explorer"
	"github.com/Cyclone1070/wsearch/internal/search"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	roots   []string
	verbose bool
}

type queryFlags struct {
	caseSensitive bool
	wholeWord     bool
	regex         bool
	include       string
	exclude       string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.caseSensitive, "case", false, "match case")
	cmd.Flags().BoolVar(&f.wholeWord, "word", false, "match whole words (literal mode)")
	cmd.Flags().BoolVar(&f.regex, "regex", false, "treat the query as a regular expression")
	cmd.Flags().StringVar(&f.include, "include", "", "comma separated globs of files to include (default from config)")
	cmd.Flags().StringVar(&f.exclude, "exclude", "", "comma separated globs of files to exclude (default from config)")
}

func (f *queryFlags) query(cfg *config.Config, text, replacement string) search.Query {
	opts := search.DefaultOptions(cfg)
	opts.CaseSensitive = f.caseSensitive
	opts.WholeWord = f.wholeWord
	opts.Regex = f.regex
	if f.include != "" {
		opts.Include = f.include
	}
	if f.exclude != "" {
		opts.Exclude = f.exclude
	}
	return search.Query{Text: text, Replacement: replacement, Options: opts}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "wsearch",
		Short: "Search and replace across the files of a workspace directory",
		Long: `wsearch searches the files of the current workspace directory with literal or
regular-expression queries, filtered by include and exclude globs, and replaces
every match in one step. Without a subcommand it opens the terminal panel.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(stderr)
			return runPanel(cmd.Context(), cfg, opts.roots, opts.verbose, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringSliceVar(&opts.roots, "root", []string{"."}, "workspace root; repeat to open several workspaces")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newSearchCmd(opts, stdout, stderr),
		newReplaceCmd(opts, stdout, stderr),
		newTreeCmd(opts, stdout, stderr),
		newRunCmd(opts, stdout, stderr),
	)
	return root
}

// setup loads config and wires the app for a one-shot command, logging to stderr.
func setup(opts *rootOptions, stderr io.Writer) (*Dependencies, error) {
	cfg := loadConfig(stderr)
	return buildDependencies(cfg, opts.roots, events.NopBus{}, newLogger(stderr, opts.verbose))
}

func newSearchCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var qf queryFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the workspace root directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := setup(opts, stderr)
			if err != nil {
				return err
			}
			wc, err := deps.App.Current()
			if err != nil {
				return err
			}

			if strings.TrimSpace(args[0]) == "" {
				return search.ErrBlankQuery
			}
			rs, err := wc.Session.Search(cmd.Context(), qf.query(deps.Config, args[0], ""))
			if err != nil {
				return err
			}

			if asJSON {
				matches := rs.Matches()
				if matches == nil {
					matches = []search.Match{}
				}
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(matches)
			}

			for _, m := range rs.Matches() {
				fmt.Fprintf(stdout, "%s:%d:%d: %s\n", m.Path, m.Line, m.Column, m.Context)
			}
			fmt.Fprintf(stdout, "%d result(s) in %d file(s)\n", rs.Len(), len(rs.Files()))
			if rs.Truncated() {
				fmt.Fprintf(stderr, "Warning: results truncated at %d\n", deps.Config.Search.MaxResults)
			}
			return nil
		},
	}
	qf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print matches as JSON")
	return cmd
}

func newReplaceCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var qf queryFlags
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "replace QUERY REPLACEMENT",
		Short: "Replace every match in the workspace root directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := setup(opts, stderr)
			if err != nil {
				return err
			}
			wc, err := deps.App.Current()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			q := qf.query(deps.Config, args[0], args[1])
			if _, err := wc.Session.Search(ctx, q); err != nil {
				return err
			}

			var summary *search.ReplaceSummary
			if dryRun {
				summary, err = wc.Session.PreviewReplace(ctx, q)
			} else {
				wc.Session.SetReplaceMode(true)
				summary, err = wc.Session.ReplaceAll(ctx, q)
			}
			if summary == nil {
				return err
			}

			printSummary(stdout, stderr, summary)
			if err != nil {
				return err
			}
			if len(summary.Failed) > 0 {
				return fmt.Errorf("%d file(s) could not be written", len(summary.Failed))
			}
			return nil
		},
	}
	qf.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the diff without writing")
	return cmd
}

func printSummary(stdout, stderr io.Writer, s *search.ReplaceSummary) {
	if s.DryRun {
		for _, c := range s.Changes {
			fmt.Fprint(stdout, c.Diff)
		}
		fmt.Fprintf(stdout, "Would replace %d occurrence(s) in %d file(s)\n", s.Replaced, s.Files)
	} else {
		fmt.Fprintf(stdout, "Replaced %d occurrence(s) in %d file(s)\n", s.Replaced, s.Files)
	}
	for _, f := range s.Failed {
		fmt.Fprintf(stderr, "Error: %s: %v\n", f.File, f.Err)
	}
	for _, name := range s.Stale {
		fmt.Fprintf(stderr, "Warning: %s changed since the search\n", name)
	}
}

func newTreeCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the workspace directory tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := setup(opts, stderr)
			if err != nil {
				return err
			}
			wc, err := deps.App.Current()
			if err != nil {
				return err
			}

			tree, err := wc.Explorer.Tree(cmd.Context(), depth)
			if err != nil {
				return err
			}
			tree.Walk(func(n *explorer.Node, level int) {
				if level == 0 {
					fmt.Fprintln(stdout, ".")
					return
				}
				name := n.Name
				if n.Type == explorer.EntryDirectory {
					name += "/"
				}
				if n.Truncated {
					name += " …"
				}
				fmt.Fprintf(stdout, "%s%s\n", strings.Repeat("  ", level-1), name)
			})
			return nil
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "maximum depth (default from config)")
	return cmd
}

func newRunCmd(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run COMMAND [key=value ...]",
		Short: "Run a panel command and print its JSON response",
		Long:  "Run a panel command and print its JSON response. Run with --list to show the commands.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := setup(opts, stderr)
			if err != nil {
				return err
			}

			list, _ := cmd.Flags().GetBool("list")
			if list || len(args) == 0 {
				for _, d := range deps.Registry.Declarations() {
					fmt.Fprintf(stdout, "%-60s %s\n", d.Usage(), d.Description)
				}
				return nil
			}

			cmdArgs, err := parseArgs(args[1:])
			if err != nil {
				return err
			}
			out, err := deps.Registry.Execute(cmd.Context(), args[0], cmdArgs)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, out)
			return nil
		},
	}
	cmd.Flags().Bool("list", false, "list the available commands")
	return cmd
}

var errMalformedArgument = errors.New("arguments must be key=value")

func parseArgs(args []string) (map[string]any, error) {
	out := make(map[string]any, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q", errMalformedArgument, arg)
		}
		out[k] = v
	}
	return out, nil
}
