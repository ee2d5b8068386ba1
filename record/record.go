package record

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Record is a single row of searchable data. Keys are field names.
type Record map[string]interface{}

// IDField is the field used to identify records.
const IDField = "id"

// ID returns the record identifier, or "" when the record has none.
func (r Record) ID() string {
	s, _ := Stringify(r[IDField])
	return s
}

// Get returns the stringified value of field. ok is false when the field is
// missing or nil.
func (r Record) Get(field string) (string, bool) {
	v, exists := r[field]
	if !exists {
		return "", false
	}
	return Stringify(v)
}

// Stringify renders a field value as text. ok is false for nil values,
// including typed nil pointers, which never take part in matching.
func Stringify(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case time.Time:
		return val.Format(time.RFC3339), true
	case fmt.Stringer:
		if isNil(v) {
			return "", false
		}
		return val.String(), true
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := Stringify(item); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), true
	case []string:
		return strings.Join(val, ","), true
	}

	if isNil(v) {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		return Stringify(rv.Elem().Interface())
	}
	return fmt.Sprint(v), true
}

func isNil(v interface{}) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// Fields returns the union of field names across records: IDField first when
// present, the rest alphabetically.
func Fields(records []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}

	fields := make([]string, 0, len(seen))
	for k := range seen {
		if k != IDField {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)
	if _, ok := seen[IDField]; ok {
		fields = append([]string{IDField}, fields...)
	}
	return fields
}

// SortBy sorts records by the stringified value of field, then by ID.
// Records missing the field sort last.
func SortBy(records []Record, field string) {
	sort.SliceStable(records, func(i, j int) bool {
		a, aok := records[i].Get(field)
		b, bok := records[j].Get(field)
		if aok != bok {
			return aok
		}
		if a != b {
			return a < b
		}
		return records[i].ID() < records[j].ID()
	})
}
