package commands

import (
	"fmt"

	"github.com/leapstack-labs/leaptoken/internal/cli/output"
	"github.com/leapstack-labs/leaptoken/pkg/color"
	"github.com/leapstack-labs/leaptoken/pkg/platform"
	"github.com/leapstack-labs/leaptoken/pkg/resolve"
	"github.com/leapstack-labs/leaptoken/pkg/theme"
	"github.com/leapstack-labs/leaptoken/pkg/token"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tokens and their resolved values",
		Long: `List every token of the composed theme with its raw definition and
its value on the target platform.

Output adapts to environment:
  - Terminal: Styled, colored output with colour swatches
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all tokens for the web
  leaptoken list

  # List colours under the dark theme
  leaptoken list --theme dark --category color

  # List native values as JSON
  leaptoken list --platform native --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, category)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list tokens of this category")
	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		cats := token.Categories()
		names := make([]string, len(cats))
		for i, c := range cats {
			names[i] = c.String()
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runList(cmd *cobra.Command, category string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	var filter token.Category
	if category != "" {
		if filter, err = token.ParseCategory(category); err != nil {
			return err
		}
	}

	_, resolved, err := cmdCtx.Compose(cmd)
	if err != nil {
		return err
	}

	p := cmdCtx.Platform()
	infos := listTokens(resolved, cmdCtx.Resolver(resolved), p, filter)
	r := cmdCtx.Renderer

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.ListOutput{
			Themes:      nonNilStrings(resolved.Overrides()),
			Platform:    p.String(),
			Fingerprint: resolved.Fingerprint(),
			Tokens:      infos,
		})
	case output.ModeMarkdown:
		listMarkdown(r, resolved, p, infos)
	default:
		listText(r, resolved, p, infos)
	}
	return nil
}

// listTokens resolves each token on its own so one bad value does not hide
// the rest.
func listTokens(resolved *theme.Resolved, res *resolve.Resolver, p platform.Platform, filter token.Category) []output.TokenInfo {
	var infos []output.TokenInfo
	for _, tok := range resolved.Set().Tokens() {
		if filter != "" && tok.Category != filter {
			continue
		}
		info := output.TokenInfo{
			Name:        tok.Name,
			Category:    tok.Category.String(),
			Description: tok.Description,
			Raw:         rawValue(tok, p),
		}
		v, err := res.Resolve(tok.Name, p)
		if err != nil {
			info.Error = err.Error()
		} else {
			info.Value = v
		}
		infos = append(infos, info)
	}
	return infos
}

func rawValue(tok token.Token, p platform.Platform) string {
	if v, ok := tok.ValueFor(p.String()); ok {
		return v.String()
	}
	return ""
}

func groupByCategory(infos []output.TokenInfo) ([]string, map[string][]output.TokenInfo) {
	var order []string
	groups := make(map[string][]output.TokenInfo)
	for _, info := range infos {
		if _, ok := groups[info.Category]; !ok {
			order = append(order, info.Category)
		}
		groups[info.Category] = append(groups[info.Category], info)
	}
	return order, groups
}

func categoryTitle(c string) string {
	return cases.Title(language.English, cases.NoLower).String(c)
}

func listText(r *output.Renderer, resolved *theme.Resolved, p platform.Platform, infos []output.TokenInfo) {
	styles := r.Styles()
	r.Header(1, fmt.Sprintf("Tokens (%d total)", len(infos)))
	r.Muted(fmt.Sprintf("theme: %s  platform: %s  fingerprint: %s", themeLabel(resolved.Overrides()), p, resolved.Fingerprint()))
	r.Println("")

	order, groups := groupByCategory(infos)
	for _, cat := range order {
		r.Header(2, categoryTitle(cat))
		rows := make([][]string, 0, len(groups[cat]))
		for _, info := range groups[cat] {
			value := displayValue(info.Value)
			if info.Error != "" {
				value = styles.Error.Render("error: " + info.Error)
			} else if cat == token.CategoryColor.String() {
				if c, err := color.Parse(value); err == nil {
					value = styles.Swatch(c.OpaqueHex()) + " " + value
				}
			}
			rows = append(rows, []string{styles.TokenName.Render(info.Name), value, styles.Muted.Render(info.Raw)})
		}
		r.Table([]string{"Name", "Value", "Raw"}, rows)
		r.Println("")
	}
}

func listMarkdown(r *output.Renderer, resolved *theme.Resolved, p platform.Platform, infos []output.TokenInfo) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Tokens (%d total)", len(infos))))
	r.Println("")
	r.Println(output.FormatKeyValue("Theme", themeLabel(resolved.Overrides())))
	r.Println(output.FormatKeyValue("Platform", p.String()))
	r.Println(output.FormatKeyValue("Fingerprint", resolved.Fingerprint()))
	r.Println("")

	order, groups := groupByCategory(infos)
	for _, cat := range order {
		r.Println(output.FormatHeader(2, categoryTitle(cat)))
		r.Println("")
		rows := make([][]string, 0, len(groups[cat]))
		for _, info := range groups[cat] {
			value := "`" + displayValue(info.Value) + "`"
			if info.Error != "" {
				value = "**error:** " + info.Error
			}
			rows = append(rows, []string{info.Name, value, "`" + info.Raw + "`"})
		}
		r.Table([]string{"Name", "Value", "Raw"}, rows)
		r.Println("")
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
