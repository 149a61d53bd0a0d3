package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/i18n"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

func simulateCmd(g *globals) *cobra.Command {
	var events bool

	cmd := &cobra.Command{
		Use:   "simulate step...",
		Short: "Run a series of navigations against in-memory containers",
		Long: `Run each step in order and print the realized stack after it.

A step is a sequence to execute, a sequence prefixed with "+" to append,
or one of "pop", "back" and "forward". Failed steps are reported and the
simulation carries on.

Examples:
  routectl simulate -c routes.toml library library/game +options back back`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, g, args, events)
		},
	}

	cmd.Flags().BoolVarP(&events, "events", "e", false, "Print container events after each step")

	return cmd
}

func runSimulate(cmd *cobra.Command, g *globals, steps []string, events bool) error {
	out := cmd.OutOrStdout()

	s, err := g.open()
	if err != nil {
		return err
	}

	failed := 0
	for _, step := range steps {
		fmt.Fprintf(out, "$ %s\n", step)

		err := runStep(s.router, step)
		if err != nil {
			failed++
			fmt.Fprintf(out, "  error: %s\n", i18n.Describe(err, g.tag()))
		}
		if events {
			for _, e := range s.window.Log().Take() {
				fmt.Fprintf(out, "  | %s\n", e)
			}
		}
		fmt.Fprintf(out, "  stack: %s\n", describeStack(s.router.Sequence()))
	}

	if failed > 0 {
		return fmt.Errorf("simulate: %d of %d steps failed", failed, len(steps))
	}
	return nil
}

func runStep(r *router.Router, step string) error {
	var result error
	done := func(_ router.Result, err error) { result = err }
	ctx := context.Background()

	switch step {
	case "pop":
		r.Pop(ctx, done)
	case "back":
		r.GoBack(ctx, done)
	case "forward":
		r.GoForward(ctx, done)
	default:
		literal, appendOnly := strings.CutPrefix(step, "+")
		seq, err := route.Parse(literal)
		if err != nil {
			return err
		}
		if appendOnly {
			r.Append(ctx, seq, done)
		} else {
			r.Execute(ctx, seq, done)
		}
	}
	return result
}

func describeStack(seq route.Sequence) string {
	if seq.IsEmpty() {
		return "(empty)"
	}
	return seq.String()
}
