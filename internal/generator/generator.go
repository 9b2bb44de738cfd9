package generator

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/mcncl/configdefs/internal/config"
	"github.com/mcncl/configdefs/internal/errors"
	"github.com/mcncl/configdefs/internal/models"
)

// Generator compiles a parsed configuration value into TypeScript
// declarations annotated with example values. It keeps no state between
// calls and is safe for concurrent use.
type Generator struct {
	config *config.Config
}

// NewGenerator creates a new Generator instance with default settings
func NewGenerator() *Generator {
	return &Generator{config: config.NewConfig()}
}

// NewGeneratorWithConfig creates a new Generator instance with custom configuration.
// The configuration must not be modified while the generator is in use.
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Generator{config: cfg}
}

// Compile renders one exported declaration per key of root, in key order,
// joined by newlines. root must be a record. Nothing is returned on failure.
func (g *Generator) Compile(root models.Value) (string, error) {
	kind, err := Classify(root, "", "")
	if err != nil {
		return "", err
	}
	if kind != models.KindRecord {
		return "", errors.NewUnsupportedValueError("", "", root, "top-level value must be an object")
	}

	record := root.(*models.Record)
	declarations := make([]string, 0, record.Len())
	err = record.Each(func(key string, value models.Value) error {
		if g.config.IsExcluded(key) {
			return nil
		}
		ctx := rootContext(key)
		typeText, err := g.render(value, ctx)
		if err != nil {
			return err
		}
		declarations = append(declarations, g.formatLine(ctx, typeText, value))
		return nil
	})
	if err != nil {
		return "", err
	}

	return strings.Join(declarations, "\n"), nil
}

// render returns the type text for value, the member described by ctx.
func (g *Generator) render(value models.Value, ctx renderContext) (string, error) {
	kind, err := Classify(value, ctx.key, ctx.path)
	if err != nil {
		return "", err
	}

	switch kind {
	case models.KindRecord:
		record := value.(*models.Record)
		lines := make([]string, 0, record.Len())
		err := record.Each(func(key string, member models.Value) error {
			memberCtx := ctx.child(models.KindRecord, key, 0)
			if g.config.IsExcluded(memberCtx.path) {
				return nil
			}
			line, err := g.renderMember(memberCtx, member)
			if err != nil {
				return err
			}
			lines = append(lines, line)
			return nil
		})
		if err != nil {
			return "", err
		}
		return formatBlock(lines, ctx.level+1, models.KindRecord), nil

	case models.KindList:
		list := value.(models.List)
		lines := make([]string, 0, len(list))
		for i, member := range list {
			memberCtx := ctx.child(models.KindList, strconv.Itoa(i), i)
			if g.config.IsExcluded(memberCtx.path) {
				continue
			}
			line, err := g.renderMember(memberCtx, member)
			if err != nil {
				return "", err
			}
			lines = append(lines, line)
		}
		return formatBlock(lines, ctx.level+1, models.KindList), nil

	default:
		return "() => " + kind.String(), nil
	}
}

func (g *Generator) renderMember(ctx renderContext, member models.Value) (string, error) {
	typeText, err := g.render(member, ctx)
	if err != nil {
		return "", err
	}
	return g.formatLine(ctx, typeText, member), nil
}

func (g *Generator) exportName(key string) string {
	return g.config.GetExportName(key)
}

// memberKey quotes keys that are not identifiers when quoting is enabled.
func (g *Generator) memberKey(key string) string {
	if g.config.Naming.QuoteKeys && !isIdentifier(key) {
		return strconv.Quote(key)
	}
	return key
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
