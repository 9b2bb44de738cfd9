package generator

import (
	"strings"

	"github.com/mcncl/configdefs/internal/models"
)

const indentUnit = "  "

// renderContext describes the member being rendered. It is passed by value
// and never modified; child returns the context for a member one level down.
type renderContext struct {
	key   string
	path  string
	level int
	// container is the kind of the container holding the member.
	container models.Kind
}

func rootContext(key string) renderContext {
	return renderContext{key: key, path: key, level: 0, container: models.KindRecord}
}

func (c renderContext) child(container models.Kind, key string, index int) renderContext {
	path := models.KeyPath(c.path, key)
	if container == models.KindList {
		path = models.IndexPath(c.path, index)
	}
	return renderContext{key: key, path: path, level: c.level + 1, container: container}
}

func (c renderContext) isTopLevel() bool {
	return c.level == 0
}

func indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(indentUnit, level)
}

// formatLine renders one member declaration: an export statement at the top
// level, an indented "key: type" line below it. Scalars get their example
// value as a doc comment on the line above.
func (g *Generator) formatLine(ctx renderContext, typeText string, value models.Value) string {
	var b strings.Builder
	pad := indent(ctx.level)

	if example, ok := exampleText(value); ok {
		b.WriteString(pad)
		b.WriteString("/** Value: ")
		b.WriteString(example)
		b.WriteString(" */\n")
	}

	if ctx.isTopLevel() {
		b.WriteString("export const ")
		b.WriteString(g.exportName(ctx.key))
		b.WriteString(" = ")
		b.WriteString(typeText)
		b.WriteString(";")
		return b.String()
	}

	b.WriteString(pad)
	if ctx.container == models.KindRecord || g.config.Output.ListIndexKeys {
		b.WriteString(g.memberKey(ctx.key))
		b.WriteString(": ")
	}
	b.WriteString(typeText)
	return b.String()
}

// formatBlock wraps the member lines of a container whose members sit at
// level. The closing bracket goes one level shallower.
func formatBlock(lines []string, level int, container models.Kind) string {
	open, closing := "{", "}"
	if container == models.KindList {
		open, closing = "[", "]"
	}
	if len(lines) == 0 {
		return open + closing
	}
	return open + "\n" + strings.Join(lines, ",\n") + "\n" + indent(level-1) + closing
}

// exampleText returns the doc comment payload for scalar values.
func exampleText(v models.Value) (string, bool) {
	switch t := v.(type) {
	case models.String:
		return strings.ReplaceAll(string(t), "*/", `*\/`), true
	case models.Bool:
		return t.String(), true
	case models.Number:
		return t.String(), true
	default:
		return "", false
	}
}
