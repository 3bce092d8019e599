package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"soyc/internal/ast"
	"soyc/internal/config"
	"soyc/internal/diag"
	"soyc/internal/fixture"
	"soyc/internal/idgen"
	"soyc/internal/pass"
	"soyc/internal/source"
	"soyc/internal/ui"
)

var compileManifestPath string

func init() {
	compileCmd.Flags().StringVar(&compileManifestPath, "manifest", "", "path to soyc.toml (defaults to config.Defaults())")
	compileCmd.Flags().Bool("watch", false, "show a live progress view while the pipeline runs")
}

var compileCmd = &cobra.Command{
	Use:   "compile <fixture.json>...",
	Short: "Run the pass pipeline over one or more JSON AST fixtures",
	Long: `compile loads each argument as a JSON AST fixture (see internal/fixture),
builds the configured pass.Manager, executes it over the combined fileset, and
reports diagnostics. There is no .soy lexer/parser here: a fixture is the
closest honest substitute for a front end this module does not build.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(compileManifestPath)
		if err != nil {
			return err
		}
		return runCompile(cmd, args, opts)
	},
}

func resolveOptions(manifestPath string) (config.Options, error) {
	if manifestPath == "" {
		return config.Defaults(), nil
	}
	return config.LoadManifest(manifestPath)
}

// runCompile loads args as JSON AST fixtures and runs opts' configured
// pipeline over them, printing diagnostics to cmd's output streams. diagnose
// and fix both funnel through this with their own opts.
func runCompile(cmd *cobra.Command, args []string, opts config.Options) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	showTimings, _ := cmd.Flags().GetBool("timings")
	watch, _ := cmd.Flags().GetBool("watch")
	colorMode, _ := cmd.Flags().GetString("color")

	gen := idgen.NewSequential()
	fs := source.NewFileSet()
	files := make([]*ast.FileNode, 0, len(args))
	for _, path := range args {
		// #nosec G304 -- path is provided by the caller
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		fs.Add(path, data, 0)
		f, err := fixture.Load(gen, data)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		files = append(files, f)
	}

	bag := diag.NewBag(200)
	sink := diag.BagReporter{Bag: bag}

	var sinkUI *ui.ChanProgressSink
	var program *tea.Program
	progDone := make(chan error, 1)
	if watch && !quiet {
		sinkUI = ui.NewChanProgressSink()
		opts.ProgressSink = sinkUI
	}

	m, err := config.Build(opts)
	if err != nil {
		return err
	}

	if sinkUI != nil {
		model := ui.NewProgressModel(cmd.Name(), m.Names(), sinkUI)
		program = tea.NewProgram(model)
		go func() {
			_, runErr := program.Run()
			progDone <- runErr
		}()
	}

	_, status, timings := m.Run(context.Background(), files, gen, sink)

	if sinkUI != nil {
		sinkUI.Close()
		<-progDone
	}

	useColor := colorMode == "on" || (colorMode != "off" && isTerminal(os.Stdout))
	printDiagnostics(cmd, bag, fs, useColor, quiet)

	if showTimings {
		fmt.Fprint(cmd.OutOrStdout(), timingsString(timings))
	}

	switch {
	case status == pass.StatusFailed:
		return fmt.Errorf("pipeline aborted on a pass failure")
	case bag.HasErrors():
		return fmt.Errorf("compilation failed")
	}
	return nil
}

func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, useColor, quiet bool) {
	if quiet || bag.Len() == 0 {
		return
	}
	if !useColor {
		fmt.Fprintln(cmd.OutOrStdout(), diag.FormatShortDiagnostics(bag.Items(), fs, true))
		return
	}
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow)
	for _, d := range bag.Items() {
		line := diag.FormatShortDiagnostics([]diag.Diagnostic{d}, fs, false)
		switch d.Severity {
		case diag.SevError:
			errColor.Fprintln(cmd.OutOrStdout(), line)
		case diag.SevWarning:
			warnColor.Fprintln(cmd.OutOrStdout(), line)
		default:
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
	}
}

func timingsString(t pass.Timings) string {
	out := "timings:\n"
	for _, p := range t.Report.Phases {
		out += fmt.Sprintf("  %-28s %7.2f ms\n", p.Name, p.DurationMS)
	}
	out += fmt.Sprintf("  %-28s %7.2f ms\n", "total", t.Report.TotalMS)
	return out
}
