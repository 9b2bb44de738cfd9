package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcncl/configdefs/internal/errors"
	"github.com/mcncl/configdefs/internal/models"
	"github.com/spf13/afero"
	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
)

// Options controls how input is decoded.
type Options struct {
	// Format is "json", "yaml" or "auto". Auto decodes YAML only when the
	// source file has a .yml or .yaml extension.
	Format string
	// AllowComments accepts JSON with comments and trailing commas.
	AllowComments bool
}

// DefaultOptions returns options for plain JSON with comments allowed.
func DefaultOptions() Options {
	return Options{Format: "auto", AllowComments: true}
}

// Parse converts JSON data from an io.Reader into an IntermediateRepresentation
func Parse(reader io.Reader) (models.IntermediateRepresentation, error) {
	return ParseWithOptions(reader, DefaultOptions())
}

// ParseWithOptions converts data from an io.Reader into an IntermediateRepresentation
func ParseWithOptions(reader io.Reader, opts Options) (models.IntermediateRepresentation, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data, opts)
}

// ParseString parses JSON from a string
func ParseString(input string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(input) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(input), DefaultOptions())
}

// ParseBytes decodes one document. Key order of objects is preserved.
func ParseBytes(data []byte, opts Options) (models.IntermediateRepresentation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.IntermediateRepresentation{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	var (
		root   models.Value
		format string
		err    error
	)
	switch opts.Format {
	case "yaml":
		format = "yaml"
		root, err = decodeYAML(data)
	case "json", "auto", "":
		format = "json"
		root, err = decodeJSON(data, opts.AllowComments)
	default:
		return models.IntermediateRepresentation{}, errors.NewParsingError(
			fmt.Sprintf("unknown input format '%s'", opts.Format),
			errors.ErrUnknownFormat,
		)
	}
	if err != nil {
		return models.IntermediateRepresentation{}, err
	}

	return models.IntermediateRepresentation{
		Root:     root,
		RootKind: root.Kind(),
		Format:   format,
	}, nil
}

// ParseFile parses a document from a file path on the OS filesystem
func ParseFile(filePath string) (models.IntermediateRepresentation, error) {
	return ParseFileFS(afero.NewOsFs(), filePath, DefaultOptions())
}

// ParseFileFS parses a document from a file path on fsys
func ParseFileFS(fsys afero.Fs, filePath string, opts Options) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	stat, err := fsys.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.IntermediateRepresentation{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.IsDir() {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("'%s' is a directory", filePath),
			errors.ErrInvalidFilePath,
		)
	}
	if stat.Size() == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	data, err := afero.ReadFile(fsys, filePath)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}

	opts.Format = ResolveFormat(opts.Format, filePath)
	return ParseBytes(data, opts)
}

// ResolveFormat picks the concrete format for a file. Explicit formats win;
// "auto" chooses YAML for .yml/.yaml files and JSON for everything else.
func ResolveFormat(format, filePath string) string {
	if format != "auto" && format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yml", ".yaml":
		return "yaml"
	default:
		return "json"
	}
}

func decodeJSON(data []byte, allowComments bool) (models.Value, error) {
	if allowComments {
		standard, err := hujson.Standardize(bytes.Clone(data))
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("JSON syntax error: %v", err), errors.ErrInvalidJSON)
		}
		data = standard
	}

	if !gjson.ValidBytes(data) {
		return nil, errors.NewParsingError("JSON syntax error", errors.ErrInvalidJSON)
	}

	return convertJSON(gjson.ParseBytes(data)), nil
}

// convertJSON walks a validated gjson result. ForEach visits members in
// document order, which is what keeps records ordered.
func convertJSON(result gjson.Result) models.Value {
	switch result.Type {
	case gjson.Null:
		return models.Null{}
	case gjson.False:
		return models.Bool(false)
	case gjson.True:
		return models.Bool(true)
	case gjson.Number:
		return models.Number(strings.TrimSpace(result.Raw))
	case gjson.String:
		return models.String(result.Str)
	}

	if result.IsArray() {
		list := models.List{}
		result.ForEach(func(_, value gjson.Result) bool {
			list = append(list, convertJSON(value))
			return true
		})
		return list
	}

	record := models.NewRecord()
	result.ForEach(func(key, value gjson.Result) bool {
		record.Set(key.Str, convertJSON(value))
		return true
	})
	return record
}
