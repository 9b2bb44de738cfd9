package diff

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Unified returns a unified diff from old to new labelled with path.
// Equal inputs give an empty string.
func Unified(path, old, new string) string {
	if old == new {
		return ""
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(old),
		B:        difflib.SplitLines(new),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return text
}

type palette struct {
	header func(a ...any) string
	hunk   func(a ...any) string
	add    func(a ...any) string
	del    func(a ...any) string
}

func newPalette() palette {
	p := palette{}
	for _, c := range []struct {
		dst   *func(a ...any) string
		attrs []color.Attribute
	}{
		{&p.header, []color.Attribute{color.Bold}},
		{&p.hunk, []color.Attribute{color.FgCyan}},
		{&p.add, []color.Attribute{color.FgGreen}},
		{&p.del, []color.Attribute{color.FgRed}},
	} {
		col := color.New(c.attrs...)
		col.EnableColor()
		*c.dst = col.SprintFunc()
	}
	return p
}

// Colorize highlights a unified diff for terminals. When enabled is false
// the diff is returned unchanged.
func Colorize(diff string, enabled bool) string {
	if !enabled || diff == "" {
		return diff
	}

	p := newPalette()
	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		nl := line[len(text):]
		switch {
		case strings.HasPrefix(text, "---"), strings.HasPrefix(text, "+++"):
			b.WriteString(p.header(text))
		case strings.HasPrefix(text, "@@"):
			b.WriteString(p.hunk(text))
		case strings.HasPrefix(text, "+"):
			b.WriteString(p.add(text))
		case strings.HasPrefix(text, "-"):
			b.WriteString(p.del(text))
		default:
			b.WriteString(text)
		}
		b.WriteString(nl)
	}
	return b.String()
}
