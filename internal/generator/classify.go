package generator

import (
	"fmt"

	"github.com/mcncl/configdefs/internal/errors"
	"github.com/mcncl/configdefs/internal/models"
)

// Classify determines the shape category of v. key and path identify v in
// diagnostics. Null, nil and any Value implementation outside the models
// package are rejected with an *errors.UnsupportedValueError.
func Classify(v models.Value, key, path string) (models.Kind, error) {
	switch t := v.(type) {
	case models.String:
		return models.KindString, nil
	case models.Bool:
		return models.KindBool, nil
	case models.Number:
		return models.KindNumber, nil
	case models.List:
		return models.KindList, nil
	case *models.Record:
		if t == nil {
			return models.KindInvalid, errors.NewUnsupportedValueError(key, path, nil, "null values have no type")
		}
		return models.KindRecord, nil
	case models.Null, nil:
		return models.KindInvalid, errors.NewUnsupportedValueError(key, path, nil, "null values have no type")
	default:
		return models.KindInvalid, errors.NewUnsupportedValueError(key, path, v, fmt.Sprintf("malformed value of type %T", v))
	}
}
