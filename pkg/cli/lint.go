package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/fakehttp/pkg/cli/internal/output"
	"github.com/getmockd/fakehttp/pkg/config"
	fakehttp "github.com/getmockd/fakehttp/pkg/testing"
)

// ErrLintFailed is returned when at least one fixture is invalid.
var ErrLintFailed = errors.New("fixture lint failed")

// LintResult is the outcome of checking one fixture.
type LintResult struct {
	Source string `json:"source"`
	Name   string `json:"name"`
	Setup  string `json:"setup,omitempty"`
	Error  string `json:"error,omitempty"`
}

func newLintCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <glob>...",
		Short: "Check fixture files for invalid or contradictory matchers",
		Long: `Load every fixture matched by the glob patterns and build its setup,
reporting duplicate matchers (two URL matchers, two methods), contradictions
(a header both required and forbidden) and matchers that fail to compile.

Exits non-zero when any fixture is invalid, so it can run in CI.`,
		Example: `  fakehttp lint 'testdata/fixtures/**/*.yaml'
  fakehttp lint --json fixtures/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config()
			scope, err := fakehttp.NewScope(
				fakehttp.WithConfig(cfg),
				fakehttp.WithLogger(opts.logger(cfg, cmd.ErrOrStderr())),
			)
			if err != nil {
				return err
			}
			defer scope.End()

			fixtures, err := config.LoadFixtures(args...)
			if err != nil {
				return err
			}

			results, failed := lintFixtures(scope, fixtures)

			if opts.jsonOutput {
				if err := output.JSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			} else {
				tw := output.Table(cmd.OutOrStdout())
				for _, r := range results {
					if r.Error != "" {
						fmt.Fprintf(tw, "FAIL\t%s\t%s\t%s\n", r.Source, r.Name, r.Error)
					} else {
						fmt.Fprintf(tw, "ok\t%s\t%s\t%s\n", r.Source, r.Name, r.Setup)
					}
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d fixtures invalid", ErrLintFailed, failed, len(results))
			}
			return nil
		},
	}
}

func lintFixtures(scope *fakehttp.Scope, fixtures []config.Fixture) ([]LintResult, int) {
	results := make([]LintResult, 0, len(fixtures))
	failed := 0
	for i := range fixtures {
		f := &fixtures[i]
		r := LintResult{Source: f.Source, Name: f.Name}
		setup, err := fakehttp.BuildFixture(scope, f)
		if err != nil {
			r.Error = err.Error()
			failed++
		} else {
			r.Setup = setup.Describe()
		}
		results = append(results, r)
	}
	return results, failed
}
