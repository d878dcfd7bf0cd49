package commands

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leaptoken/internal/cli/output"
	"github.com/leapstack-labs/leaptoken/internal/loader"
	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/spf13/cobra"
)

// errCheckFailed is returned when check finds problems. The problems have
// already been printed.
var errCheckFailed = errors.New("check failed")

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate tokens and themes on every platform",
		Long: `Load the project, compose the base set and every theme, and resolve
every token on every registered platform.

Reports:
  - override keys that name no base token
  - aliases to unknown tokens and alias cycles
  - values with no form on a platform

Exits non-zero when any problem is found.`,
		Example: `  # Check the project
  leaptoken check

  # Also check a stacked combination
  leaptoken check --theme dark,compact

  # Problems as JSON for CI
  leaptoken check --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd)
		},
	}

	return cmd
}

// checkTarget is one composition to check.
type checkTarget struct {
	label  string
	themes []string
}

func checkTargets(p *loader.Project, configured []string) []checkTarget {
	targets := []checkTarget{{label: "base"}}
	for _, name := range p.Themes.Names() {
		targets = append(targets, checkTarget{label: name, themes: []string{name}})
	}
	if len(configured) > 1 {
		targets = append(targets, checkTarget{label: themeLabel(configured), themes: configured})
	}
	return targets
}

func runCheck(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	project, err := cmdCtx.LoadProject(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	jsonMode := r.EffectiveMode() == output.ModeJSON
	platforms := platform.Platforms()
	targets := checkTargets(project, cmdCtx.Cfg.Themes)

	result := output.CheckOutput{
		Themes:    make([]string, 0, len(targets)),
		Platforms: platform.List(),
		Tokens:    project.Base.Len(),
		Problems:  []output.CheckProblem{},
	}

	if !jsonMode {
		r.Header(1, "Checking tokens")
		r.Println("")
	}

	for _, target := range targets {
		result.Themes = append(result.Themes, target.label)

		resolved, err := project.Compose(target.themes...)
		if err != nil {
			result.Problems = append(result.Problems, output.CheckProblem{Theme: target.label, Error: err.Error()})
			if !jsonMode {
				r.StatusLine(target.label, "error", err.Error())
			}
			continue
		}

		res := cmdCtx.Resolver(resolved)
		for _, p := range platforms {
			var failed int
			for _, name := range resolved.Set().Names() {
				if _, err := res.Resolve(name, p); err != nil {
					failed++
					result.Problems = append(result.Problems, output.CheckProblem{
						Theme:    target.label,
						Platform: p.String(),
						Token:    name,
						Error:    err.Error(),
					})
				}
			}
			if jsonMode {
				continue
			}
			label := target.label + " / " + p.String()
			if failed == 0 {
				r.StatusLine(label, "success", fmt.Sprintf("%d tokens", resolved.Set().Len()))
				continue
			}
			r.StatusLine(label, "error", fmt.Sprintf("%d of %d tokens failed", failed, resolved.Set().Len()))
		}
	}

	result.OK = len(result.Problems) == 0

	if jsonMode {
		if err := r.JSON(result); err != nil {
			return err
		}
	} else if !result.OK {
		r.Println("")
		r.Header(2, "Problems")
		for _, p := range result.Problems {
			label := p.Theme
			if p.Token != "" {
				label = fmt.Sprintf("%s / %s: %s", p.Theme, p.Platform, p.Token)
			}
			r.StatusLine(label, "error", p.Error)
		}
	} else {
		r.Println("")
		r.Success(fmt.Sprintf("All %d tokens resolve on %d platforms across %d compositions", result.Tokens, len(platforms), len(targets)))
	}

	if !result.OK {
		return fmt.Errorf("%w: %d problem(s)", errCheckFailed, len(result.Problems))
	}
	return nil
}
