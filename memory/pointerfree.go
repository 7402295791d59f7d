package memory

import (
	"fmt"
	"reflect"
	"sync"
)

// pointerFree caches the verdict per type; reflection walks are not free.
var pointerFree sync.Map // reflect.Type -> error

// checkPointerFree returns an error wrapping ErrPointerType when T holds
// anything the garbage collector would need to trace.
func checkPointerFree[T any]() error {
	t := reflect.TypeFor[T]()
	if v, ok := pointerFree.Load(t); ok {
		if v == nil {
			return nil
		}
		return v.(error)
	}
	var err error
	if cause := typeNoPointers(t); cause != nil {
		err = fmt.Errorf("%w: %w", ErrPointerType, cause)
	}
	pointerFree.Store(t, err)
	return err
}

func typeNoPointers(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return typeNoPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if err := typeNoPointers(t.Field(i).Type); err != nil {
				return fmt.Errorf("field %s: %w", t.Field(i).Name, err)
			}
		}
		return nil
	case reflect.String, reflect.Slice, reflect.Map, reflect.Pointer,
		reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Errorf("type %s contains pointer-like data", t)
	default:
		return fmt.Errorf("unsupported kind %s (%s)", t.Kind(), t)
	}
}
