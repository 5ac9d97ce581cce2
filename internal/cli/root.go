// Package cli wires flags, configuration and styled output into a run.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mydehq/romuless/internal/app"
	"github.com/mydehq/romuless/internal/config"
	"github.com/mydehq/romuless/internal/lang"
	"github.com/mydehq/romuless/internal/report"
	"github.com/mydehq/romuless/internal/scan"
)

var (
	flagKeep    []string
	flagMove    bool
	flagRemerge bool
	flagCleanup bool
	flagLangs   bool
	flagLog     string
	flagConfig  string
	flagVerbose bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

var RootCmd = &cobra.Command{
	Use:   "romuless [path]",
	Short: "Sort, remerge, and analyze multi-system ROM libraries by language",
	Long: `ROMuLess organizes a ROM collection by the language tags in filenames.

Default mode (no flags) is a sort dry run keeping English: it reports which
files would move into the quarantine directory ("Moved ROMS") without
touching anything. Pass --move to actually relocate files. --remerge undoes
a sort, --langs prints language statistics only.

In remerge mode, passing --keep with no codes (--keep=) restores every
language; leaving the flag off restores only the configured default (en).`,
	Example: `  romuless ~/roms                    preview a sort keeping English
  romuless ~/roms --keep en,it --move  sort, keeping English and Italian
  romuless ~/roms --remerge --move --keep=   restore everything
  romuless ~/roms --remerge --move --cleanup
  romuless ~/roms --langs`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	f := RootCmd.Flags()
	f.StringSliceVar(&flagKeep, "keep", nil,
		"language codes to keep (sort) or restore (remerge); default en, --keep= in remerge means all")
	f.BoolVar(&flagMove, "move", false,
		"actually move files; without this everything is a dry run")
	f.BoolVar(&flagRemerge, "remerge", false,
		"move files from quarantine back to their original folders")
	f.BoolVar(&flagCleanup, "cleanup", false,
		"with --remerge: remove empty folders left inside quarantine")
	f.BoolVar(&flagLangs, "langs", false,
		"report language counts per folder and in total; no moving")
	f.StringVar(&flagLog, "log", "",
		"log file location (default rom_sort_log.txt in the collection root)")
	f.StringVar(&flagConfig, "config", "",
		"config file (default "+config.FileName+" in the collection root)")
	f.BoolVar(&flagVerbose, "verbose", false, "debug logging")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	configureStyles()
	if err := RootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve path %q: %w", root, err)
	}
	if info, err := os.Stat(absRoot); err != nil {
		return fmt.Errorf("collection root: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("collection root %s is not a directory", absRoot)
	}

	cfg, err := config.Load(absRoot, flagConfig)
	if err != nil {
		return err
	}

	mode := resolveMode(flagLangs, flagRemerge)

	// An absent --keep falls back to the configured default (en). Only an
	// explicitly empty --keep ("--keep=") is the universal sentinel, and
	// only remerge honors it; an empty keep list in sort mode is treated
	// as accidental and defaults apply.
	keepExplicit := cmd.Flags().Changed("keep")
	keepValues := nonEmpty(flagKeep)
	keepList := cfg.Keep
	if len(keepValues) > 0 {
		keepList = keepValues
	}
	keep, err := parseKeep(keepList)
	if err != nil {
		return err
	}

	opts := app.Options{
		Root:          absRoot,
		QuarantineDir: cfg.QuarantineDir,
		Keep:          keep,
		RestoreAll:    mode == app.ModeRemerge && keepExplicit && len(keepValues) == 0,
		Commit:        flagMove,
		Cleanup:       flagCleanup,
		Mode:          mode,
		Scanner:       scan.New(cfg.Extensions),
		Logger:        logger,
	}

	logger.Debug("starting run",
		"mode", mode.String(), "root", absRoot, "keep", keep.String(), "commit", flagMove)

	r, err := app.Run(opts)
	if err != nil {
		return err
	}

	logPath := flagLog
	if logPath == "" {
		logPath = cfg.LogFile
	}
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(absRoot, logPath)
	}
	if err := r.WriteFile(logPath); err != nil {
		return err
	}

	printReport(r)
	fmt.Println()
	logger.Info("log written", "path", logPath)
	return nil
}

// resolveMode: census wins over everything, then remerge, then sort.
func resolveMode(langs, remerge bool) app.Mode {
	switch {
	case langs:
		return app.ModeCensus
	case remerge:
		return app.ModeRemerge
	default:
		return app.ModeSort
	}
}

// parseKeep validates user codes; any unrecognized code is fatal before the
// scan starts.
func parseKeep(codes []string) (lang.Set, error) {
	keep := lang.NewSet()
	for _, s := range nonEmpty(codes) {
		c, err := lang.Parse(s)
		if err != nil {
			return nil, err
		}
		keep[c] = struct{}{}
	}
	return keep, nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func printReport(r *report.Report) {
	for _, line := range r.Lines() {
		fmt.Println(styleLine(line))
	}
}

func styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "===") || strings.HasPrefix(line, "----"):
		return StyleHeader.Render(line)
	case strings.HasPrefix(line, "[KEEP]") || strings.HasPrefix(line, "[SKIP]") ||
		strings.HasPrefix(line, "[INFO]"):
		return StyleDim.Render(line)
	case strings.HasPrefix(line, "[MOVE]") || strings.HasPrefix(line, "[REMERGE]"):
		return StyleAction.Render(line)
	case strings.HasPrefix(line, "[ERROR]"):
		return StyleError.Render(line)
	case strings.HasPrefix(line, "Folder:") || strings.HasPrefix(line, "TOTALS:"):
		return StylePath.Render(line)
	default:
		return line
	}
}
