package utils

import (
	"math"
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// AttributeMap is a free-form set of options, typically read from JSON.
type AttributeMap map[string]interface{}

// integralNumberHook rejects fractional JSON numbers decoded into integer fields, which
// mapstructure would otherwise truncate.
func integralNumberHook(_, to reflect.Type, data interface{}) (interface{}, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	var v float64
	switch n := data.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	default:
		return data, nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return nil, NewNonIntegralError(v)
	}
	return data, nil
}

// TransformAttributeMap uses an attribute map to transform attributes to the prescribed format,
// matching keys against the json tags of T. Keys T does not declare are reported as an error.
func TransformAttributeMap[T any](attributes AttributeMap) (T, error) {
	var out T

	var forResult interface{}

	toT := reflect.TypeOf(out)
	if toT == nil {
		// nothing to transform
		return out, nil
	}
	if toT.Kind() == reflect.Ptr {
		// needs to be allocated then
		var ok bool
		out, ok = reflect.New(toT.Elem()).Interface().(T)
		if !ok {
			return out, errors.Errorf("failed to allocate default config type %T", out)
		}
		forResult = out
	} else {
		forResult = &out
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     forResult,
		Metadata:   &md,
		DecodeHook: mapstructure.DecodeHookFuncType(integralNumberHook),
	})
	if err != nil {
		return out, err
	}
	if err := decoder.Decode(map[string]interface{}(attributes)); err != nil {
		return out, err
	}
	if len(md.Unused) != 0 {
		sort.Strings(md.Unused)
		return out, NewUnknownAttributesError(md.Unused)
	}
	return out, nil
}
