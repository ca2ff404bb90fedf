package anyx

import (
	"strconv"

	"golang.org/x/exp/constraints"
)

// Number converts any decoded-JSON value to the requested number type.
//
// The glTF document decodes numbers as int64 when the literal round-trips
// exactly, float64 otherwise (see util/json's custom jsoniter decoder); this
// helper lets the VRoid reducer and report code work with either without a
// type switch at every call site.
func Number[T constraints.Integer | constraints.Float](v any) T {
	switch vv := v.(type) {
	case int:
		return T(vv)
	case int64:
		return T(vv)
	case uint64:
		return T(vv)
	case float32:
		return T(vv)
	case float64:
		return T(vv)
	case string:
		x, err := strconv.ParseInt(vv, 10, 64)
		if err != nil {
			y, err := strconv.ParseFloat(vv, 64)
			if err != nil {
				return T(0)
			}
			return T(y)
		}
		return T(x)
	default:
		return T(0)
	}
}
