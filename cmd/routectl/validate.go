package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/i18n"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

func validateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a route file",
		Long: `Check a route file: syntax, unknown keys, segment kinds, branch
references, loaders and whether each segment's presenter exists and
supports it.

Examples:
  routectl validate -c routes.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, g)
		},
	}
}

func runValidate(cmd *cobra.Command, g *globals) error {
	out := cmd.OutOrStdout()

	s, err := g.open()
	if err != nil {
		fmt.Fprintln(out, i18n.Describe(err, g.tag()))
		return fmt.Errorf("validate: %w", err)
	}

	var problems []error
	for _, id := range s.file.IDs() {
		seg, _ := s.router.Context().Segment(id)
		if seg.Kind().Has(router.SegmentBranch) {
			// Branches are checked under a parent that declares them.
			continue
		}
		if _, err := s.router.Plan(route.FromItems(route.NewItem(id, nil)), false); err != nil {
			fmt.Fprintf(out, "%s: %s\n", id, i18n.Describe(err, g.tag()))
			problems = append(problems, err)
		}
	}
	for _, id := range s.file.IDs() {
		seg, _ := s.router.Context().Segment(id)
		for _, b := range seg.Branches() {
			seq := route.FromItems(route.NewItem(id, nil), route.NewItem(b, nil))
			if _, err := s.router.Plan(seq, false); err != nil {
				fmt.Fprintf(out, "%s/%s: %s\n", id, b, i18n.Describe(err, g.tag()))
				problems = append(problems, err)
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("validate: %d problem(s): %w", len(problems), errors.Join(problems...))
	}
	fmt.Fprintf(out, "ok: %d segments\n", len(s.file.Segments))
	return nil
}
