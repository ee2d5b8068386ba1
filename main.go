package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/boolean-maybe/boolq/config"
	"github.com/boolean-maybe/boolq/internal/app"
	"github.com/boolean-maybe/boolq/internal/bootstrap"
	"github.com/boolean-maybe/boolq/render"
)

// main parses flags, then either answers a one-shot query or starts the TUI.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flagSet := config.NewFlagSet()
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "usage: boolq [flags] [query]")
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	if version, _ := flagSet.GetBool("version"); version {
		_, _ = fmt.Fprintf(stdout, "boolq version %s\ncommit: %s\nbuilt: %s\n",
			config.Version, config.GitCommit, config.BuildDate)
		return 0
	}

	// Initialize paths early - this must succeed for the application to function
	if err := config.InitPaths(); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	if initConfig, _ := flagSet.GetBool("init-config"); initConfig {
		path, err := config.WriteDefaultConfig("")
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		_, _ = fmt.Fprintln(stdout, "wrote", path)
		return 0
	}

	q := strings.Join(flagSet.Args(), " ")
	interactive, _ := flagSet.GetBool("interactive")
	interactive = interactive || strings.TrimSpace(q) == ""

	result, err := bootstrap.Bootstrap(flagSet, interactive)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	defer result.Close()

	if pick, _ := flagSet.GetBool("pick-fields"); pick {
		if err := pickFields(result); err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			return 1
		}
	}

	if !interactive {
		return oneShot(result, flagSet, q, stdout, stderr)
	}

	if q != "" {
		result.SearchView.SetQuery(q)
	}
	defer result.App.Stop()
	if err := app.Run(result.App, result.SearchView); err != nil {
		slog.Error("application error", "error", err)
		return 1
	}
	return 0
}

// pickFields lets the user choose the searched fields and saves the choice
func pickFields(result *bootstrap.BootstrapResult) error {
	fields, ok, err := config.PromptForFields(result.Store.Fields(), result.Cfg.Search.Fields)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := config.SaveFields(fields); err != nil {
		slog.Warn("failed to save search fields", "error", err)
	}
	result.Cfg.Search.Fields = fields
	result.SearchState.SetFields(fields)
	return nil
}

// oneShot runs q once and writes the results to stdout
func oneShot(result *bootstrap.BootstrapResult, flagSet *pflag.FlagSet, q string, stdout, stderr io.Writer) int {
	state := result.SearchState
	if err := state.Update(q); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	explain, _ := flagSet.GetBool("explain")
	report := &render.Report{
		Query:   state.GetSearchQuery(),
		Tokens:  state.GetTokens(),
		AST:     state.GetProgram(),
		Fields:  state.Fields(),
		Results: state.GetSearchResults(),
	}
	opts := render.Options{Explain: explain, Theme: config.GetEffectiveTheme()}
	if err := render.Write(stdout, result.Cfg.Output.Format, report, opts); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}
