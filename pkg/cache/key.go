package cache

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

const (
	// sampleItems bounds how many elements of a slice or map are folded into a key.
	sampleItems = 32
	// sampleDepth bounds how deep nested composites are walked.
	sampleDepth = 6
)

// GenerateKey builds a short, stable cache key for a value validated by the
// named rule with optional extra parameters.
//
// Large composite values are sampled: only the first sampleItems elements of
// every slice or map (maps in sorted key order) are folded into the key,
// together with the composite's length. Two large values that differ only
// outside the sampled prefix share a key. That is fine for a result cache and
// wrong for a checksum.
func GenerateKey(value any, ruleName string, params ...any) string {
	var b strings.Builder
	b.Grow(64)
	b.WriteString(ruleName)
	b.WriteByte(0)
	flatten(&b, reflect.ValueOf(value), 0)
	for _, p := range params {
		b.WriteByte(0)
		flatten(&b, reflect.ValueOf(p), 0)
	}
	return strconv.FormatUint(xxhash.Sum64String(b.String()), 36)
}

func flatten(b *strings.Builder, v reflect.Value, depth int) {
	if !v.IsValid() {
		b.WriteString("n:")
		return
	}

	if v.CanInterface() {
		if t, ok := v.Interface().(time.Time); ok {
			b.WriteString("t:")
			b.WriteString(strconv.FormatInt(t.UnixNano(), 10))
			return
		}
	}

	switch v.Kind() {
	case reflect.String:
		writeString(b, v.String())
	case reflect.Bool:
		b.WriteString("b:")
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString("i:")
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString("u:")
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		b.WriteString("f:")
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			b.WriteString("n:")
			return
		}
		flatten(b, v.Elem(), depth)
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			b.WriteString("n:")
			return
		}
		b.WriteString("a")
		b.WriteString(strconv.Itoa(v.Len()))
		b.WriteByte('[')
		if depth < sampleDepth {
			for i := 0; i < v.Len() && i < sampleItems; i++ {
				if i > 0 {
					b.WriteByte(',')
				}
				flatten(b, v.Index(i), depth+1)
			}
		}
		b.WriteByte(']')
	case reflect.Map:
		if v.IsNil() {
			b.WriteString("n:")
			return
		}
		b.WriteString("m")
		b.WriteString(strconv.Itoa(v.Len()))
		b.WriteByte('{')
		if depth < sampleDepth {
			keys := v.MapKeys()
			names := make([]string, len(keys))
			byName := make(map[string]reflect.Value, len(keys))
			for i, k := range keys {
				names[i] = fmt.Sprint(k)
				byName[names[i]] = k
			}
			sort.Strings(names)
			for i, name := range names {
				if i >= sampleItems {
					break
				}
				if i > 0 {
					b.WriteByte(',')
				}
				writeString(b, name)
				b.WriteByte('=')
				flatten(b, v.MapIndex(byName[name]), depth+1)
			}
		}
		b.WriteByte('}')
	case reflect.Struct:
		b.WriteString("o{")
		if depth < sampleDepth {
			t := v.Type()
			for i := 0; i < v.NumField() && i < sampleItems; i++ {
				if !t.Field(i).IsExported() {
					continue
				}
				b.WriteString(t.Field(i).Name)
				b.WriteByte('=')
				flatten(b, v.Field(i), depth+1)
				b.WriteByte(',')
			}
		}
		b.WriteByte('}')
	default:
		// funcs, chans and unsafe pointers have no stable textual form
		b.WriteString(v.Kind().String())
		b.WriteByte(':')
		b.WriteString(v.Type().String())
	}
}

// writeString length-prefixes s so its content can never be mistaken for
// the separators around it.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('s')
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}
