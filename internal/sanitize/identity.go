package sanitize

import "reflect"

// mapPointer returns the address of the map's underlying data, stable for
// the life of the map even though map[string]any is not itself comparable
// as a key. This is the Go analogue of Python's id(schema).
func mapPointer(m map[string]any) uintptr {
	return reflect.ValueOf(m).Pointer()
}
