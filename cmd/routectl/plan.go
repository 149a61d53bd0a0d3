package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/i18n"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

func planCmd(g *globals) *cobra.Command {
	var (
		from       string
		to         string
		appendOnly bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what navigating from one sequence to another does",
		Long: `Realize --from, then print the plan for reaching --to: which records
are reused, which are popped (deepest first) and which are presented.

Examples:
  routectl plan -c routes.toml --from library/game --to library/settings
  routectl plan -c routes.toml --from library --to game --append`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, g, from, to, appendOnly)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Sequence realized first")
	cmd.Flags().StringVar(&to, "to", "", "Sequence to plan for")
	cmd.Flags().BoolVar(&appendOnly, "append", false, "Plan an append instead of an execute")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runPlan(cmd *cobra.Command, g *globals, from, to string, appendOnly bool) error {
	out := cmd.OutOrStdout()

	s, err := g.open()
	if err != nil {
		return err
	}

	if from != "" {
		seq, err := route.Parse(from)
		if err != nil {
			return fmt.Errorf("plan: --from: %w", err)
		}
		if err := execute(s.router, seq); err != nil {
			fmt.Fprintln(out, i18n.Describe(err, g.tag()))
			return fmt.Errorf("plan: realize %s: %w", from, err)
		}
	}

	target, err := route.Parse(to)
	if err != nil {
		return fmt.Errorf("plan: --to: %w", err)
	}

	stack := s.router.Stack()
	p, err := s.router.Plan(target, appendOnly)
	if err != nil {
		fmt.Fprintln(out, i18n.Describe(err, g.tag()))
		return fmt.Errorf("plan: %w", err)
	}

	printPlan(cmd, p, stack)
	return nil
}

func printPlan(cmd *cobra.Command, p router.Plan, stack []router.Record) {
	out := cmd.OutOrStdout()
	if p.IsNoop() {
		fmt.Fprintln(out, "nothing to do")
		return
	}
	if p.Replay {
		fmt.Fprintln(out, "replay from root")
	}
	for i := range p.Reuse {
		fmt.Fprintf(out, "reuse    %s\n", stack[i].Identifier())
	}
	for _, i := range p.Pops {
		fmt.Fprintf(out, "pop      %s\n", stack[i].Identifier())
	}
	for _, i := range p.Presents {
		fmt.Fprintf(out, "present  %s\n", p.Target.At(i))
	}
}

// execute runs one navigation to completion. The router dispatches inline, so
// done has been called by the time Execute returns.
func execute(r *router.Router, seq route.Sequence) error {
	var result error
	r.Execute(context.Background(), seq, func(_ router.Result, err error) {
		result = err
	})
	return result
}
