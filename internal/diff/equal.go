// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package diff

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Equal is the structural equality used for conflict detection:
//   - nil (or a nil map/slice/pointer) equals only nil;
//   - slices and arrays are equal when they have the same length and are
//     element-wise equal in order;
//   - maps are equal when they have the same key set and per-key equal values;
//   - scalars are compared by canonical string form, so 5, 5.0 and "5" are
//     equal.
func Equal(a, b any) bool {
	return equalValue(reflect.ValueOf(a), reflect.ValueOf(b))
}

func equalValue(a, b reflect.Value) bool {
	a = indirect(a)
	b = indirect(b)

	aAbsent, bAbsent := !a.IsValid(), !b.IsValid()
	if aAbsent || bAbsent {
		return aAbsent && bAbsent
	}

	aList, bList := isList(a), isList(b)
	if aList || bList {
		if !aList || !bList || a.Len() != b.Len() {
			return false
		}
		for i := 0; i < a.Len(); i++ {
			if !equalValue(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	}

	aMap, bMap := a.Kind() == reflect.Map, b.Kind() == reflect.Map
	if aMap || bMap {
		if !aMap || !bMap || a.Len() != b.Len() {
			return false
		}
		bByKey := make(map[string]reflect.Value, b.Len())
		iter := b.MapRange()
		for iter.Next() {
			bByKey[canonical(iter.Key())] = iter.Value()
		}
		iter = a.MapRange()
		for iter.Next() {
			bv, ok := bByKey[canonical(iter.Key())]
			if !ok || !equalValue(iter.Value(), bv) {
				return false
			}
		}
		return true
	}

	if isOpaqueStruct(a) || isOpaqueStruct(b) {
		return reflect.DeepEqual(a.Interface(), b.Interface())
	}

	return canonical(a) == canonical(b)
}

// indirect unwraps interfaces and pointers. Nil maps, slices, pointers and
// interfaces become the invalid Value, i.e. "absent".
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() {
		switch v.Kind() {
		case reflect.Interface, reflect.Pointer:
			if v.IsNil() {
				return reflect.Value{}
			}
			v = v.Elem()
		case reflect.Map, reflect.Slice:
			if v.IsNil() {
				return reflect.Value{}
			}
			return v
		default:
			return v
		}
	}
	return v
}

// isOpaqueStruct reports structs that have no canonical text form.
func isOpaqueStruct(v reflect.Value) bool {
	if v.Kind() != reflect.Struct {
		return false
	}
	_, isTime := v.Interface().(time.Time)
	return !isTime
}

func isList(v reflect.Value) bool {
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		// []byte is compared as a scalar string.
		return false
	}
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

// canonical renders a scalar the way it would be printed as text.
func canonical(v reflect.Value) string {
	v = indirect(v)
	if !v.IsValid() {
		return ""
	}

	switch val := v.Interface().(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return val.String()
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return val.String()
	}

	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprint(v.Interface())
	}
}
