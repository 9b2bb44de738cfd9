package formatter

import (
	"strings"

	"github.com/mcncl/configdefs/internal/config"
)

// Formatter prepares compiled declarations for writing
type Formatter struct {
	header          string
	trailingNewline bool
}

// NewFormatter creates a new Formatter instance with no header and a final newline
func NewFormatter() *Formatter {
	return &Formatter{trailingNewline: true}
}

// NewFormatterWithConfig creates a Formatter from the output section of cfg
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	if cfg == nil {
		return NewFormatter()
	}
	return &Formatter{
		header:          cfg.Output.FileHeader,
		trailingNewline: cfg.Output.TrailingNewline,
	}
}

// Format prepends the header as line comments, strips trailing whitespace
// and normalizes the end of the text to at most one newline. Lines of a
// doc comment that spans several lines are example text and stay as they are.
func (f *Formatter) Format(code string) (string, error) {
	body := strings.TrimRight(code, " \t\r\n")
	header := f.headerLines()

	if body == "" && len(header) == 0 {
		return "", nil
	}

	lines := make([]string, 0, len(header)+strings.Count(body, "\n")+2)
	lines = append(lines, header...)
	if body != "" {
		if len(header) > 0 {
			lines = append(lines, "")
		}
		inComment := false
		for _, line := range strings.Split(body, "\n") {
			closes := inComment && strings.Contains(line, "*/")
			verbatim := (inComment && !closes) || (!inComment && opensComment(line))
			inComment = verbatim
			if !verbatim {
				line = strings.TrimRight(line, " \t\r")
			}
			lines = append(lines, line)
		}
	}

	result := strings.Join(lines, "\n")
	if f.trailingNewline {
		result += "\n"
	}
	return result, nil
}

// headerLines turns the configured header into "// " comment lines.
// Lines already starting with "//" are kept as they are.
func (f *Formatter) headerLines() []string {
	header := strings.TrimSpace(f.header)
	if header == "" {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(header, "\n") {
		line = strings.TrimRight(line, " \t\r")
		switch {
		case strings.HasPrefix(line, "//"):
			lines = append(lines, line)
		case line == "":
			lines = append(lines, "//")
		default:
			lines = append(lines, "// "+line)
		}
	}
	return lines
}

// opensComment reports whether line starts a doc comment that it does not close.
func opensComment(line string) bool {
	i := strings.Index(line, "/**")
	return i >= 0 && !strings.Contains(line[i+3:], "*/")
}
