package models

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/mcncl/configdefs/internal/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FromAny converts a generic Go value, as produced by encoding/json or built
// by hand, into a Value. Plain maps have no key order, so their keys are
// sorted; use an ordered map to control member order.
// Values with no JSON counterpart (functions, channels, NaN...) fail with an
// *errors.UnsupportedValueError.
func FromAny(v any) (Value, error) {
	return fromAny(v, "", "")
}

func fromAny(v any, key, path string) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case int:
		return Number(strconv.FormatInt(int64(t), 10)), nil
	case int8:
		return Number(strconv.FormatInt(int64(t), 10)), nil
	case int16:
		return Number(strconv.FormatInt(int64(t), 10)), nil
	case int32:
		return Number(strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return Number(strconv.FormatInt(t, 10)), nil
	case uint:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint16:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint32:
		return Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(t, 10)), nil
	case float32:
		return floatNumber(float64(t), key, path, v)
	case float64:
		return floatNumber(t, key, path, v)
	case []any:
		list := make(List, len(t))
		for i, elem := range t {
			idx := strconv.Itoa(i)
			converted, err := fromAny(elem, idx, IndexPath(path, i))
			if err != nil {
				return nil, err
			}
			list[i] = converted
		}
		return list, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		record := NewRecord()
		for _, k := range keys {
			converted, err := fromAny(t[k], k, KeyPath(path, k))
			if err != nil {
				return nil, err
			}
			record.Set(k, converted)
		}
		return record, nil
	case *orderedmap.OrderedMap[string, any]:
		record := NewRecord()
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			converted, err := fromAny(pair.Value, pair.Key, KeyPath(path, pair.Key))
			if err != nil {
				return nil, err
			}
			record.Set(pair.Key, converted)
		}
		return record, nil
	default:
		return nil, errors.NewUnsupportedValueError(key, path, v, fmt.Sprintf("values of type %T have no JSON representation", v))
	}
}

func floatNumber(f float64, key, path string, original any) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, errors.NewUnsupportedValueError(key, path, original, "non-finite numbers have no JSON representation")
	}
	return Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// KeyPath appends a record key to a diagnostic path.
func KeyPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// IndexPath appends a list index to a diagnostic path.
func IndexPath(parent string, index int) string {
	return fmt.Sprintf("%s[%d]", parent, index)
}
