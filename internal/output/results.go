package output

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ApplyResultOptions sorts and truncates slice data according to the
// --result-sort-by, --result-desc and --result-limit values in ctx. The
// input is never mutated; non-slice data is returned as is.
func ApplyResultOptions(ctx context.Context, data interface{}) interface{} {
	limit := LimitFromContext(ctx)
	sortBy, desc := SortFromContext(ctx)
	if limit <= 0 && sortBy == "" {
		return data
	}

	v := indirect(reflect.ValueOf(data))
	if !v.IsValid() || (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) {
		return data
	}

	n := v.Len()
	sorted := reflect.MakeSlice(reflect.SliceOf(v.Type().Elem()), n, n)
	reflect.Copy(sorted, v)

	if sortBy != "" {
		sort.SliceStable(sorted.Interface(), func(i, j int) bool {
			a, aok := fieldValue(sorted.Index(i), sortBy)
			b, bok := fieldValue(sorted.Index(j), sortBy)
			if !aok || !bok {
				return aok && !bok
			}
			cmp := compareValues(a, b)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	if limit > 0 && limit < n {
		sorted = sorted.Slice(0, limit)
	}
	return sorted.Interface()
}

// fieldValue looks up a struct field or map key by name. Names match
// case-insensitively, ignoring '_' and '-', against the json tag or Go name.
func fieldValue(v reflect.Value, name string) (interface{}, bool) {
	v = indirect(v)
	want := normalizeName(name)

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			f := t.Field(i)
			if f.IsExported() && normalizeName(fieldLabel(f)) == want {
				return v.Field(i).Interface(), true
			}
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		for _, key := range v.MapKeys() {
			if normalizeName(key.String()) == want {
				return v.MapIndex(key).Interface(), true
			}
		}
	}
	return nil, false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(s))
}

func compareValues(a, b interface{}) int {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case av.CanInt() && bv.CanInt():
		return compareOrdered(av.Int(), bv.Int())
	case av.CanFloat() && bv.CanFloat():
		return compareOrdered(av.Float(), bv.Float())
	case av.Kind() == reflect.String && bv.Kind() == reflect.String:
		return strings.Compare(av.String(), bv.String())
	default:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

func compareOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
