package parser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mcncl/configdefs/internal/errors"
	"github.com/mcncl/configdefs/internal/models"
	"gopkg.in/yaml.v3"
)

// maxAliasDepth bounds alias expansion so self-referencing documents fail
// instead of recursing forever.
const maxAliasDepth = 64

func decodeYAML(data []byte) (models.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("YAML syntax error: %v", err), errors.ErrInvalidYAML)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	return convertYAML(doc.Content[0], "", 0)
}

func convertYAML(node *yaml.Node, path string, aliasDepth int) (models.Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth {
			return nil, yamlError(node, path, "alias nesting too deep")
		}
		return convertYAML(node.Alias, path, aliasDepth+1)

	case yaml.MappingNode:
		record := models.NewRecord()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, yamlError(keyNode, path, "mapping keys must be scalars")
			}
			if keyNode.Tag == "!!merge" {
				return nil, yamlError(keyNode, path, "merge keys are not supported")
			}
			if keyNode.ShortTag() != "!!str" {
				return nil, yamlError(keyNode, path, "mapping keys must be strings")
			}
			value, err := convertYAML(valueNode, models.KeyPath(path, keyNode.Value), aliasDepth)
			if err != nil {
				return nil, err
			}
			record.Set(keyNode.Value, value)
		}
		return record, nil

	case yaml.SequenceNode:
		list := make(models.List, 0, len(node.Content))
		for i, elem := range node.Content {
			value, err := convertYAML(elem, models.IndexPath(path, i), aliasDepth)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil

	case yaml.ScalarNode:
		return convertYAMLScalar(node, path)

	default:
		return nil, yamlError(node, path, "unexpected node")
	}
}

func convertYAMLScalar(node *yaml.Node, path string) (models.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return models.Null{}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, yamlError(node, path, err.Error())
		}
		return models.Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			// beyond int64, keep the digits
			var u uint64
			if uerr := node.Decode(&u); uerr != nil {
				return nil, yamlError(node, path, err.Error())
			}
			return models.Number(strconv.FormatUint(u, 10)), nil
		}
		return models.Number(strconv.FormatInt(i, 10)), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, yamlError(node, path, err.Error())
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, yamlError(node, path, "non-finite numbers have no JSON representation")
		}
		return models.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	case "!!str", "!!timestamp":
		return models.String(node.Value), nil
	default:
		return nil, yamlError(node, path, fmt.Sprintf("unsupported tag %s", node.ShortTag()))
	}
}

func yamlError(node *yaml.Node, path, reason string) error {
	location := path
	if location == "" {
		location = "document root"
	}
	return errors.NewParsingError(
		fmt.Sprintf("YAML error at line %d, column %d (%s): %s", node.Line, node.Column, location, reason),
		errors.ErrInvalidYAML,
	)
}
