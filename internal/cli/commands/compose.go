package commands

import (
	"fmt"

	"github.com/leapstack-labs/leaptoken/internal/cli/output"
	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/resolve"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"github.com/spf13/cobra"
)

// NewComposeCommand creates the compose command.
func NewComposeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose themes and show what they change",
		Long: `Apply the themes given with --theme to the base token set, in order,
and report every token whose value differs from the base.

Later themes win over earlier ones. Composing the same themes always
yields the same fingerprint.`,
		Example: `  # Show what the dark theme changes
  leaptoken compose --theme dark

  # Stack two themes
  leaptoken compose --theme dark,compact

  # Machine-readable diff
  leaptoken compose --theme dark --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompose(cmd)
		},
	}

	return cmd
}

func runCompose(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	project, resolved, err := cmdCtx.Compose(cmd)
	if err != nil {
		return err
	}

	p := cmdCtx.Platform()
	base := theme.FromSet(project.Base)
	changes := composeChanges(base, resolved, cmdCtx.Resolver(base), cmdCtx.Resolver(resolved), p)

	out := output.ComposeOutput{
		Themes:      nonNilStrings(resolved.Overrides()),
		Platform:    p.String(),
		Fingerprint: resolved.Fingerprint(),
		Tokens:      resolved.Set().Len(),
		Changes:     changes,
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Composition: "+themeLabel(out.Themes)))
		r.Println("")
		r.Println(output.FormatKeyValue("Platform", out.Platform))
		r.Println(output.FormatKeyValue("Tokens", fmt.Sprint(out.Tokens)))
		r.Println(output.FormatKeyValue("Fingerprint", out.Fingerprint))
		r.Println("")
		r.Println(output.FormatHeader(2, fmt.Sprintf("Changes (%d)", len(changes))))
		r.Println("")
		if len(changes) == 0 {
			r.Println("No tokens differ from the base set.")
			return nil
		}
		r.Table([]string{"Token", "Base", "Composed"}, changeRows(changes, "`"))
	default:
		r.Header(1, "Composition: "+themeLabel(out.Themes))
		r.Muted(fmt.Sprintf("%d tokens  platform: %s  fingerprint: %s", out.Tokens, out.Platform, out.Fingerprint))
		r.Println("")
		if len(changes) == 0 {
			r.Success("No tokens differ from the base set")
			return nil
		}
		r.Table([]string{"Token", "Base", "Composed"}, changeRows(changes, ""))
	}
	return nil
}

// composeChanges reports the overridden tokens and every alias that reaches
// one of them, keeping those whose resolved value actually differs. A side
// that fails to resolve shows the error text instead.
func composeChanges(base, next *theme.Resolved, baseRes, nextRes *resolve.Resolver, p platform.Platform) []output.ChangeInfo {
	diff := theme.Diff(base, next)
	changed := make([]string, 0, len(diff))
	for _, c := range diff {
		changed = append(changed, c.Name)
	}
	names, err := resolve.Dependents(next.Set(), changed...)
	if err != nil {
		names = changed
	}

	changes := make([]output.ChangeInfo, 0, len(names))
	for _, name := range names {
		before := resolveOrError(baseRes, name, p)
		after := resolveOrError(nextRes, name, p)
		if displayValue(before) == displayValue(after) {
			continue
		}
		changes = append(changes, output.ChangeInfo{Name: name, Before: before, After: after})
	}
	return changes
}

func resolveOrError(res *resolve.Resolver, name string, p platform.Platform) any {
	v, err := res.Resolve(name, p)
	if err != nil {
		return "error: " + err.Error()
	}
	return v
}

func changeRows(changes []output.ChangeInfo, quote string) [][]string {
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []string{
			c.Name,
			quote + displayValue(c.Before) + quote,
			quote + displayValue(c.After) + quote,
		})
	}
	return rows
}
