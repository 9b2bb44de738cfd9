package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mcncl/configdefs/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestNumber_String(t *testing.T) {
	tests := []struct {
		literal  string
		expected string
	}{
		{"8080", "8080"},
		{"-12", "-12"},
		{"1.50", "1.5"},
		{"0.1", "0.1"},
		{"1e3", "1000"},
		{"-0", "0"},
		{"0.0", "0"},
		{"12345678901234567890", "12345678901234567000"},
		{"1e21", "1e+21"},
		{"1.5e300", "1.5e+300"},
		{"0.000001", "0.000001"},
		{"1e-7", "1e-7"},
		{"-2.5E-10", "-2.5e-10"},
		{"1e400", "Infinity"},
		{"-1e400", "-Infinity"},
		{"1e-400", "0"},
		{"not-a-number", "not-a-number"},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			assert.Equal(t, tt.expected, Number(tt.literal).String())
		})
	}
}

func TestKind(t *testing.T) {
	assert.True(t, KindString.IsScalar())
	assert.True(t, KindBool.IsScalar())
	assert.True(t, KindNumber.IsScalar())
	assert.False(t, KindNull.IsScalar())
	assert.False(t, KindList.IsScalar())

	assert.True(t, KindList.IsContainer())
	assert.True(t, KindRecord.IsContainer())
	assert.False(t, KindNull.IsContainer())

	assert.Equal(t, "boolean", KindBool.String())
	assert.Equal(t, "record", KindRecord.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestRecord_PreservesInsertionOrder(t *testing.T) {
	r := NewRecord()
	r.Set("zeta", String("z"))
	r.Set("alpha", Number("1"))
	r.Set("mid", Bool(true))

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, r.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, r.Len())
}

func TestRecord_DuplicateKeyKeepsPositionTakesLastValue(t *testing.T) {
	r := NewRecord()
	r.Set("a", Number("1"))
	r.Set("b", Number("2"))
	r.Set("a", Number("3"))

	if diff := cmp.Diff([]string{"a", "b"}, r.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	v, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, Number("3"), v)
}

func TestRecord_All(t *testing.T) {
	r := NewRecord()
	r.Set("z", Number("1"))
	r.Set("a", Bool(true))
	r.Set("m", String("x"))

	var keys []string
	for key := range r.All() {
		keys = append(keys, key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)

	keys = nil
	for key := range r.All() {
		keys = append(keys, key)
		if key == "a" {
			break
		}
	}
	assert.Equal(t, []string{"z", "a"}, keys)
}

func TestRecord_EachStopsOnError(t *testing.T) {
	r := NewRecord()
	r.Set("a", Number("1"))
	r.Set("b", Number("2"))
	r.Set("c", Number("3"))

	var visited []string
	stop := errors.ErrUnsupportedValue
	err := r.Each(func(key string, _ Value) error {
		visited = append(visited, key)
		if key == "b" {
			return stop
		}
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestFromAny(t *testing.T) {
	ordered := orderedmap.New[string, any]()
	ordered.Set("second", "b")
	ordered.Set("first", []any{int64(1), 2.5, json.Number("3")})

	v, err := FromAny(map[string]any{
		"b":       true,
		"a":       nil,
		"ordered": ordered,
	})
	require.NoError(t, err)

	root, ok := v.(*Record)
	require.True(t, ok)
	// plain maps are sorted
	assert.Equal(t, []string{"a", "b", "ordered"}, root.Keys())

	a, _ := root.Get("a")
	assert.Equal(t, Null{}, a)

	nested, _ := root.Get("ordered")
	nestedRecord, ok := nested.(*Record)
	require.True(t, ok)
	assert.Equal(t, []string{"second", "first"}, nestedRecord.Keys())

	first, _ := nestedRecord.Get("first")
	assert.Equal(t, List{Number("1"), Number("2.5"), Number("3")}, first)
}

func TestFromAny_Unsupported(t *testing.T) {
	_, err := FromAny(map[string]any{
		"handlers": []any{"ok", func() {}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsupportedValue)

	var unsupported *errors.UnsupportedValueError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "1", unsupported.Key)
	assert.Equal(t, "handlers[1]", unsupported.Path)
}

func TestFromAny_NonFiniteFloat(t *testing.T) {
	var zero float64
	_, err := FromAny(map[string]any{"ratio": 1 / zero})
	assert.ErrorIs(t, err, errors.ErrUnsupportedValue)
}
