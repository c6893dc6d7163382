package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"umlsense/internal/diag"
	"umlsense/internal/diagfmt"
	"umlsense/internal/diagnose"
	"umlsense/internal/host"
	"umlsense/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.puml|directory|->",
	Short: "Run diagnostics on a PlantUML file or directory",
	Long: `Run diagnostics to find syntax errors and missing or duplicate diagram titles
in a PlantUML file, or in every diagram file within a directory`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

// init registers CLI flags for the diag command used by runDiagnose.
func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	diagCmd.Flags().Int("context", 1, "source lines of context around each diagnostic")
	diagCmd.Flags().Int("max", -1, "maximum diagnostics per file (-1 uses the configuration, 0 is unlimited)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("no-title-warnings", false, "do not warn about diagrams without a title")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	diagCmd.Flags().Bool("cache", false, "use the persistent diagnostics cache for directories")
	diagCmd.Flags().Bool("clear-cache", false, "drop the diagnostics cache before running")
}

type diagFlags struct {
	format      string
	pathMode    diagfmt.PathMode
	context     int
	withNotes   bool
	jobs        int
	ui          uiMode
	clearCache  bool
	dopts       diagnose.Options
	cacheOn     bool
	cacheForced bool
}

func readDiagFlags(cmd *cobra.Command) (diagFlags, error) {
	var f diagFlags
	var err error
	flags := cmd.Flags()

	if f.format, err = flags.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "json", "short":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}

	pm, err := flags.GetString("path-mode")
	if err != nil {
		return f, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if f.pathMode, err = diagfmt.ParsePathMode(pm); err != nil {
		return f, err
	}
	if f.context, err = flags.GetInt("context"); err != nil {
		return f, fmt.Errorf("failed to get context flag: %w", err)
	}
	if f.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiStr); err != nil {
		return f, err
	}
	if f.clearCache, err = flags.GetBool("clear-cache"); err != nil {
		return f, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}

	// флаги перекрывают umlsense.toml
	f.dopts = cfg.DiagnoseOptions()
	maxDiags, err := flags.GetInt("max")
	if err != nil {
		return f, fmt.Errorf("failed to get max flag: %w", err)
	}
	if maxDiags >= 0 {
		f.dopts.Max = maxDiags
	}
	noTitle, err := flags.GetBool("no-title-warnings")
	if err != nil {
		return f, fmt.Errorf("failed to get no-title-warnings flag: %w", err)
	}
	if noTitle {
		f.dopts.TitleWarnings = false
	}
	f.cacheOn = cfg.Cache.Enabled
	if flags.Changed("cache") {
		f.cacheForced = true
		if f.cacheOn, err = flags.GetBool("cache"); err != nil {
			return f, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	return f, nil
}

// runDiagnose executes the "diag" command: it diagnoses a single file or
// every diagram file of a directory, prints the result in the chosen
// format and fails when any error diagnostic was reported.
func runDiagnose(cmd *cobra.Command, args []string) error {
	f, err := readDiagFlags(cmd)
	if err != nil {
		return err
	}
	target := args[0]
	dir, err := isDir(target)
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		reports []diagfmt.Report
	)
	if dir {
		fs, reports, err = diagnoseDir(cmd, target, f)
	} else {
		fs, reports, err = diagnoseFile(cmd, target, f)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch f.format {
	case "pretty":
		diagfmt.Pretty(out, fs, reports, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			Context:   int8(min(max(f.context, 0), 10)),
			PathMode:  f.pathMode,
			ShowNotes: f.withNotes,
		})
		printSummary(cmd.ErrOrStderr(), reports)
	case "json":
		if err := diagfmt.JSON(out, fs, reports, diagfmt.JSONOpts{PathMode: f.pathMode, IncludeNotes: f.withNotes}); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	case "short":
		for _, r := range reports {
			path := diagfmt.FormatPath(r.Path, f.pathMode, fs.BaseDir())
			if r.Err != nil {
				fmt.Fprintf(out, "error IO %s:0:0 %v\n", path, r.Err)
				continue
			}
			if s := diag.FormatShort(path, r.Diagnostics); s != "" {
				fmt.Fprintln(out, s)
			}
		}
	}

	if errs, _ := diagfmt.Counts(reports); errs > 0 {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errDiagnostics
	}
	return nil
}

func diagnoseFile(cmd *cobra.Command, path string, f diagFlags) (*source.FileSet, []diagfmt.Report, error) {
	fs, doc, err := loadDocument(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	opts := cfg.HostOptions()
	opts.Diagnostics = f.dopts
	h := host.New(opts)

	var diags []diag.Diagnostic
	timer.Track("diagnose", func() string {
		diags = h.Diagnose(cmd.Context(), doc)
		return fmt.Sprintf("%d diagnostics", len(diags))
	})
	return fs, []diagfmt.Report{{Path: doc.URI, Doc: doc, Diagnostics: diags}}, nil
}

func diagnoseDir(cmd *cobra.Command, dir string, f diagFlags) (*source.FileSet, []diagfmt.Report, error) {
	cache, err := openCache(f)
	if err != nil {
		return nil, nil, err
	}
	if cache != nil && f.clearCache {
		if err := cache.DropAll(); err != nil {
			return nil, nil, fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	collector := diagnose.NewCollector(f.dopts)
	opts := diagnose.DirOptions{Jobs: f.jobs, Cache: cache}
	ctx := cmd.Context()

	var (
		fs      *source.FileSet
		results []diagnose.FileResult
	)
	idx := timer.Begin("diagnose dir")
	if useProgressUI(f.ui, f.format) {
		files, listErr := diagnose.ListFiles(dir)
		if listErr != nil {
			return nil, nil, fmt.Errorf("failed to list %s: %w", dir, listErr)
		}
		fs, results, err = runDiagnoseWithUI(ctx, "diagnosing "+dir, files, func(ctx context.Context, progress func(diagnose.Event)) (*source.FileSet, []diagnose.FileResult, error) {
			opts.Progress = progress
			return collector.DiagnoseDir(ctx, dir, opts)
		})
	} else {
		fs, results, err = collector.DiagnoseDir(ctx, dir, opts)
	}
	timer.End(idx, fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return nil, nil, fmt.Errorf("diagnosis of %s failed: %w", dir, err)
	}

	reports := make([]diagfmt.Report, len(results))
	for i, r := range results {
		reports[i] = diagfmt.Report{Path: r.Path, Diagnostics: r.Diagnostics, Cached: r.Cached, Err: r.Err}
		if r.Err == nil {
			reports[i].Doc = fs.Get(r.FileID)
		}
	}
	return fs, reports, nil
}

func openCache(f diagFlags) (*diagnose.DiskCache, error) {
	if !f.cacheOn {
		return nil, nil
	}
	c := cfg
	c.Cache.Enabled = true
	cache, err := c.OpenCache()
	if err != nil {
		if f.cacheForced {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		// кэш из конфига необязателен
		return nil, nil
	}
	return cache, nil
}

func printSummary(w io.Writer, reports []diagfmt.Report) {
	errs, warns := diagfmt.Counts(reports)
	cached := 0
	for _, r := range reports {
		if r.Cached {
			cached++
		}
	}
	fmt.Fprintf(w, "%d errors, %d warnings in %d files", errs, warns, len(reports))
	if cached > 0 {
		fmt.Fprintf(w, " (%d cached)", cached)
	}
	fmt.Fprintln(w)
}
