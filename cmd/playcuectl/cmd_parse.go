package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nadzzz/playcue/internal/config"
	"github.com/nadzzz/playcue/internal/dispatch"
	"github.com/nadzzz/playcue/internal/interpreter"
	"github.com/nadzzz/playcue/internal/library"
	"github.com/nadzzz/playcue/internal/playback"
	"github.com/nadzzz/playcue/internal/resolve"
)

// errRejected makes the process exit non-zero when a command fails.
var errRejected = errors.New("command rejected")

var parseCmd = &cobra.Command{
	Use:   "parse <command...>",
	Short: "Interpret a command locally and print the action",
	Long: `Runs the full pipeline in-process: normalization, intent matching,
argument extraction, name resolution against the configured library and
action validation. Nothing is sent to an executor.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	lookup, err := library.Open(cfg.Library)
	if err != nil {
		return err
	}

	d := dispatch.NewDispatcher(
		interpreter.New(cfg.Interpreter),
		resolve.New(cfg.Resolver, resolve.EditDistance{}),
	)
	res := d.Dispatch(cmd.Context(), strings.Join(args, " "), lookup)

	if err := printResult(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if !res.OK() {
		return errRejected
	}
	return nil
}

func printResult(w io.Writer, res playback.Result) error {
	if outputJSON {
		return printJSON(w, res)
	}
	if res.OK() {
		_, err := fmt.Fprintf(w, "%s\n  intent: %s\n", res.Message(), res.Action.Intent)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n  failure: %s\n", res.Failure.Message, res.Failure.Kind); err != nil {
		return err
	}
	for _, alt := range res.Failure.Alternatives {
		if _, err := fmt.Fprintf(w, "  - %s (%s)\n", alt.DisplayName, alt.ID); err != nil {
			return err
		}
	}
	return nil
}
