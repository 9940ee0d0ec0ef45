// SPDX-License-Identifier: Apache-2.0
package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/Cyfrin/aderyn-sub000/internal/config"
	"github.com/Cyfrin/aderyn-sub000/internal/detect"
	"github.com/Cyfrin/aderyn-sub000/internal/project"
	"github.com/Cyfrin/aderyn-sub000/internal/report"
	"github.com/Cyfrin/aderyn-sub000/internal/store"
)

// errHighFindings makes the process exit non-zero without printing an
// error; the report has already said why.
var errHighFindings = errors.New("high severity issues found")

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		sources     []string
		include     []string
		exclude     []string
		format      string
		minSeverity string
		database    string
		verbosity   int
	)

	cmd := &cobra.Command{
		Use:           "aderyn [root]",
		Short:         "Static analyzer for Solidity projects compiled to solc AST JSON",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			cfg, err := loadConfig(root, configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("source") {
				cfg.Sources = sources
			}
			if flags.Changed("include") {
				cfg.Include = include
			}
			if flags.Changed("exclude") {
				cfg.Exclude = exclude
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if flags.Changed("min-severity") {
				cfg.MinSeverity = minSeverity
			}
			if flags.Changed("db") {
				cfg.Database = database
			}
			if flags.Changed("verbose") {
				cfg.Verbosity = verbosity
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			commonlog.Configure(cfg.Verbosity, nil)

			return analyze(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (default <root>/"+config.FileName+")")
	cmd.Flags().StringSliceVarP(&sources, "source", "s", nil, "AST JSON files or directories, relative to root")
	cmd.Flags().StringSliceVar(&include, "include", nil, "only run these detectors")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "skip these detectors")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	cmd.Flags().StringVar(&minSeverity, "min-severity", "low", "lowest severity to report: low, high")
	cmd.Flags().StringVar(&database, "db", "", "record findings in this SQLite database")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "log verbosity, repeat for more")

	cmd.AddCommand(newDetectorsCmd(), newHistoryCmd())
	return cmd
}

func loadConfig(root, path string) (*config.Config, error) {
	if path == "" {
		return config.LoadOrDefault(root)
	}
	return config.Load(path)
}

func analyze(cmd *cobra.Command, cfg *config.Config) error {
	result, err := project.Analyze(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	opts := report.Options{Format: report.Format(cfg.Format), MinSeverity: cfg.Severity()}
	if err := report.Write(cmd.OutOrStdout(), result.Workspace, result.Report, opts); err != nil {
		return err
	}

	if cfg.Database != "" {
		if err := record(cfg, result.Report); err != nil {
			return err
		}
	}

	if result.Report.AtLeast(cfg.Severity()).HasHigh() {
		return errHighFindings
	}
	return nil
}

func record(cfg *config.Config, rep *detect.Report) error {
	s, err := store.Open(cfg.Resolve(cfg.Database))
	if err != nil {
		return err
	}
	defer s.Close()

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		root = cfg.Root
	}
	_, err = s.SaveReport(root, rep)
	return err
}

func newDetectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detectors",
		Short: "List the available detectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, d := range detect.All() {
				fmt.Fprintf(out, "%-34s %-5s %s\n", d.Name(), d.Severity(), d.Title())
			}
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var (
		database string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "history [run]",
		Short: "Show recorded runs, or the findings of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(database)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				id, err := strconv.ParseUint(args[0], 10, 0)
				if err != nil {
					return fmt.Errorf("invalid run id %q", args[0])
				}
				findings, err := s.Findings(uint(id))
				if err != nil {
					return err
				}
				for _, f := range findings {
					fmt.Fprintf(out, "%s[%s] %s:%d %s\n", f.Severity, f.Detector, f.Path, f.Line, f.Hint)
				}
				return nil
			}

			runs, err := s.Runs(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "#%d  %s  %s  %d files, %d high, %d low\n",
					r.ID, r.CreatedAt.Format(time.DateTime), r.Root, r.Files, r.High, r.Low)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "db", "aderyn.db", "SQLite database written by --db")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show, 0 for all")
	return cmd
}
