package ast

import (
	"fmt"
	"reflect"

	"github.com/paratym/idk/internal/position"
)

var positionType = reflect.TypeOf(position.Position{})

// Dump converts a tree into plain maps, slices and scalars suitable for
// JSON or YAML encoding. Every node becomes a map whose "node" key holds
// its type name; positions become "line:col" strings and absent children
// are omitted.
func Dump(node Node) any {
	if node == nil {
		return nil
	}
	return dumpValue(reflect.ValueOf(node))
}

func dumpValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return dumpValue(v.Elem())
	case reflect.Slice:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = dumpValue(v.Index(i))
		}
		return out
	case reflect.Struct:
		if v.Type() == positionType {
			return v.Interface().(position.Position).String()
		}
		return dumpStruct(v)
	case reflect.Int:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		return v.Int()
	case reflect.Int32:
		// rune
		return string(rune(v.Int()))
	case reflect.Uint64:
		return v.Uint()
	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.String()
	default:
		return v.Interface()
	}
}

func dumpStruct(v reflect.Value) map[string]any {
	t := v.Type()
	out := map[string]any{"node": t.Name()}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := v.Field(i)
		if (fv.Kind() == reflect.Interface || fv.Kind() == reflect.Pointer || fv.Kind() == reflect.Slice) && fv.IsNil() {
			continue
		}
		if field.Name == "At" {
			out["pos"] = dumpValue(fv)
			continue
		}
		out[field.Name] = dumpValue(fv)
	}
	return out
}
