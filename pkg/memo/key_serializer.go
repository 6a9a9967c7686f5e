package memo

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// KeySerializer turns cache keys into the strings a Store indexes by.
// Equal keys must serialize equally across calls and processes.
type KeySerializer interface {
	Serialize(key any) string
}

// defaultKeySerializer handles Key and strings directly and everything else by reflection.
// Every argument carries its dynamic type and strings are quoted, so distinct values never
// share a serialization.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates the reflection based serializer used by New.
func NewDefaultKeySerializer() KeySerializer {
	return defaultKeySerializer{}
}

// Serialize builds a deterministic string for key.
// Strings are used verbatim; a Key becomes Class.Method followed by its serialized arguments.
func (s defaultKeySerializer) Serialize(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case Key:
		return s.join(k.Class+"."+k.Method, k.Args)
	case *Key:
		if k == nil {
			return "*memo.Key(nil)"
		}
		return s.join(k.Class+"."+k.Method, k.Args)
	default:
		return s.value(key)
	}
}

func (s defaultKeySerializer) join(head string, args []any) string {
	if len(args) == 0 {
		return head
	}
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, head)
	for _, arg := range args {
		parts = append(parts, s.value(arg))
	}
	return strings.Join(parts, KeySeparator)
}

func (s defaultKeySerializer) value(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	tag := rv.Type().String()
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("%s(%p)", tag, v)
	case reflect.Pointer:
		if rv.IsNil() {
			return tag + "(nil)"
		}
	}

	if m, ok := v.(encoding.TextMarshaler); ok {
		if text, err := m.MarshalText(); err == nil {
			return tag + "(" + strconv.Quote(string(text)) + ")"
		}
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return "&" + s.value(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return tag + "(nil)"
		}
		return tag + s.elems(rv)
	case reflect.Array:
		return tag + s.elems(rv)
	case reflect.Map:
		if rv.IsNil() {
			return tag + "(nil)"
		}
		return tag + s.mapValue(rv)
	case reflect.Struct:
		return s.structValue(rv, tag)
	case reflect.String:
		return tag + "(" + strconv.Quote(rv.String()) + ")"
	case reflect.Bool:
		return tag + "(" + strconv.FormatBool(rv.Bool()) + ")"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return tag + "(" + strconv.FormatInt(rv.Int(), 10) + ")"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return tag + "(" + strconv.FormatUint(rv.Uint(), 10) + ")"
	case reflect.Float32, reflect.Float64:
		return tag + "(" + strconv.FormatFloat(rv.Float(), 'g', -1, 64) + ")"
	case reflect.Complex64, reflect.Complex128:
		return tag + "(" + strconv.FormatComplex(rv.Complex(), 'g', -1, 128) + ")"
	default:
		return s.jsonFallback(v, tag)
	}
}

func (s defaultKeySerializer) elems(rv reflect.Value) string {
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = s.value(rv.Index(i).Interface())
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// mapValue sorts pairs by serialized key so iteration order never leaks into the result.
func (s defaultKeySerializer) mapValue(rv reflect.Value) string {
	pairs := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, s.value(iter.Key().Interface())+"="+s.value(iter.Value().Interface()))
	}
	slices.Sort(pairs)
	return "{" + strings.Join(pairs, ",") + "}"
}

// structValue walks exported fields. Structs with unexported state are opaque to reflection,
// so they are rendered through String when available and %#v otherwise.
func (s defaultKeySerializer) structValue(rv reflect.Value, tag string) string {
	rt := rv.Type()
	parts := make([]string, 0, rt.NumField())
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			if str, ok := rv.Interface().(fmt.Stringer); ok {
				return tag + "(" + strconv.Quote(str.String()) + ")"
			}
			return fmt.Sprintf("%#v", rv.Interface())
		}
		parts = append(parts, field.Name+":"+s.value(rv.Field(i).Interface()))
	}
	return tag + "{" + strings.Join(parts, ",") + "}"
}

func (s defaultKeySerializer) jsonFallback(v any, tag string) string {
	data, err := json.Marshal(v)
	if err != nil {
		return tag + "(?)"
	}
	return tag + "(" + string(data) + ")"
}
