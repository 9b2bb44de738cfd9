package formatter

import (
	"testing"

	"github.com/mcncl/configdefs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_AddsFinalNewline(t *testing.T) {
	input := "/** Value: 1 */\nexport const a = () => number;"

	formatted, err := NewFormatter().Format(input)
	require.NoError(t, err)

	assert.Equal(t, input+"\n", formatted)
}

func TestFormat_StripsTrailingWhitespace(t *testing.T) {
	input := "export const a = {  \n  /** Value: x */\t\n  b: () => string\r\n};\n\n\n"

	formatted, err := NewFormatter().Format(input)
	require.NoError(t, err)

	expected := "export const a = {\n  /** Value: x */\n  b: () => string\n};\n"
	assert.Equal(t, expected, formatted)
}

func TestFormat_KeepsMultiLineExampleText(t *testing.T) {
	input := "/** Value: a  \nb\t\n c */  \nexport const s = () => string;  \nexport const o = {\n  /** Value: x \n  y */\n  k: () => string\n};"

	formatted, err := NewFormatter().Format(input)
	require.NoError(t, err)

	expected := "/** Value: a  \nb\t\n c */\nexport const s = () => string;\nexport const o = {\n  /** Value: x \n  y */\n  k: () => string\n};\n"
	assert.Equal(t, expected, formatted)
}

func TestFormat_EmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "  \n\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatted, err := NewFormatter().Format(tt.input)
			require.NoError(t, err)
			assert.Empty(t, formatted)
		})
	}
}

func TestFormat_Header(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		input    string
		expected string
	}{
		{
			name:     "single line",
			header:   "Code generated by configdefs. DO NOT EDIT.",
			input:    "export const a = () => boolean;",
			expected: "// Code generated by configdefs. DO NOT EDIT.\n\nexport const a = () => boolean;\n",
		},
		{
			name:     "multi line with blank",
			header:   "Generated file\n\nSource: app.json\n",
			input:    "export const a = () => boolean;",
			expected: "// Generated file\n//\n// Source: app.json\n\nexport const a = () => boolean;\n",
		},
		{
			name:     "already commented",
			header:   "// keep me",
			input:    "export const a = () => boolean;",
			expected: "// keep me\n\nexport const a = () => boolean;\n",
		},
		{
			name:     "header only",
			header:   "nothing to declare",
			input:    "",
			expected: "// nothing to declare\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Output.FileHeader = tt.header

			formatted, err := NewFormatterWithConfig(cfg).Format(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, formatted)
		})
	}
}

func TestFormat_NoTrailingNewline(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Output.TrailingNewline = false

	formatted, err := NewFormatterWithConfig(cfg).Format("export const a = () => boolean;\n\n")
	require.NoError(t, err)

	assert.Equal(t, "export const a = () => boolean;", formatted)
}

func TestNewFormatterWithConfig_Nil(t *testing.T) {
	formatted, err := NewFormatterWithConfig(nil).Format("x")
	require.NoError(t, err)
	assert.Equal(t, "x\n", formatted)
}
