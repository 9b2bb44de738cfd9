package analyzer

import (
	"fmt"

	"github.com/mcncl/configdefs/internal/config"
	"github.com/mcncl/configdefs/internal/models"
)

// Finding is a member that cannot be compiled.
type Finding struct {
	Path   string
	Reason string
}

// String implements fmt.Stringer
func (f Finding) String() string {
	if f.Path == "" {
		return f.Reason
	}
	return fmt.Sprintf("%s: %s", f.Path, f.Reason)
}

// Summary describes the shape of a parsed document.
type Summary struct {
	Records  int
	Lists    int
	Scalars  int
	MaxDepth int
	// Unsupported lists every member the compiler will reject, in document order.
	Unsupported []Finding
}

// OK reports whether the document can be compiled.
func (s Summary) OK() bool {
	return len(s.Unsupported) == 0
}

// Analyzer walks a parsed document without modifying it. Unlike the
// compiler it does not stop at the first problem.
type Analyzer struct {
	config *config.Config
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: config.NewConfig()}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
// Excluded members are skipped the same way the generator skips them.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Analyzer{config: cfg}
}

// Analyze summarizes ir. The root itself counts at depth 0.
func (a *Analyzer) Analyze(ir models.IntermediateRepresentation) Summary {
	var s Summary

	root, ok := ir.Root.(*models.Record)
	if !ok || root == nil {
		s.Unsupported = append(s.Unsupported, Finding{Reason: "top-level value must be an object"})
		return s
	}

	s.Records++
	for key, value := range root.All() {
		if !a.config.IsExcluded(key) {
			a.walk(&s, value, key, 1)
		}
	}
	return s
}

func (a *Analyzer) walk(s *Summary, value models.Value, path string, depth int) {
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}

	switch v := value.(type) {
	case *models.Record:
		if v == nil {
			s.Unsupported = append(s.Unsupported, Finding{Path: path, Reason: "null values have no type"})
			return
		}
		s.Records++
		for key, member := range v.All() {
			memberPath := models.KeyPath(path, key)
			if !a.config.IsExcluded(memberPath) {
				a.walk(s, member, memberPath, depth+1)
			}
		}
	case models.List:
		s.Lists++
		for i, member := range v {
			memberPath := models.IndexPath(path, i)
			if !a.config.IsExcluded(memberPath) {
				a.walk(s, member, memberPath, depth+1)
			}
		}
	case models.String, models.Bool, models.Number:
		s.Scalars++
	case models.Null, nil:
		s.Unsupported = append(s.Unsupported, Finding{Path: path, Reason: "null values have no type"})
	default:
		s.Unsupported = append(s.Unsupported, Finding{Path: path, Reason: fmt.Sprintf("malformed value of type %T", v)})
	}
}
