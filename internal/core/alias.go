package core

import (
	"reflect"
)

// footprint is the memory reachable from a value: the objects its pointers
// and slices point into, and the maps and channels it refers to.
type footprint struct {
	seen  map[uintptr]struct{}
	spans []span
}

// contains reports whether addr points into the footprint.
func (f *footprint) contains(addr uintptr) bool {
	if _, ok := f.seen[addr]; ok {
		return true
	}

	for _, s := range f.spans {
		if addr >= s.start && addr < s.end {
			return true
		}
	}

	return false
}

// visit records an object of size bytes at addr and reports whether it had
// been recorded before.
func (f *footprint) visit(addr, size uintptr) bool {
	if _, ok := f.seen[addr]; ok {
		return true
	}

	f.seen[addr] = struct{}{}

	if size > 1 {
		f.spans = append(f.spans, span{start: addr, end: addr + size})
	}

	return false
}

// span is a half-open address range.
type span struct {
	start, end uintptr
}

//nolint:exhaustive // only reference-carrying kinds matter
func collectReachable(val reflect.Value, fp *footprint) {
	if !val.IsValid() {
		return
	}

	switch val.Kind() {
	case reflect.Pointer:
		if val.IsNil() || fp.visit(val.Pointer(), val.Type().Elem().Size()) {
			return
		}

		collectReachable(val.Elem(), fp)
	case reflect.Map:
		if val.IsNil() || fp.visit(val.Pointer(), 1) {
			return
		}

		iter := val.MapRange()
		for iter.Next() {
			collectReachable(iter.Key(), fp)
			collectReachable(iter.Value(), fp)
		}
	case reflect.Slice:
		if val.IsNil() || val.Cap() == 0 {
			return
		}

		size := uintptr(val.Cap()) * val.Type().Elem().Size()
		if fp.visit(val.Pointer(), size) {
			return
		}

		for i := range val.Len() {
			collectReachable(val.Index(i), fp)
		}
	case reflect.Chan, reflect.UnsafePointer:
		if !val.IsNil() {
			fp.visit(val.Pointer(), 1)
		}
	case reflect.Interface:
		collectReachable(val.Elem(), fp)
	case reflect.Struct:
		for i := range val.NumField() {
			collectReachable(val.Field(i), fp)
		}
	case reflect.Array:
		for i := range val.Len() {
			collectReachable(val.Index(i), fp)
		}
	}
}

//nolint:exhaustive // only reference-carrying kinds matter
func collectReferences(val reflect.Value, refs *[]uintptr) {
	if !val.IsValid() {
		return
	}

	switch val.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if !val.IsNil() {
			*refs = append(*refs, val.Pointer())
		}
	case reflect.Slice:
		if !val.IsNil() && val.Len() > 0 {
			*refs = append(*refs, val.Pointer())
		}
	case reflect.Interface:
		collectReferences(val.Elem(), refs)
	case reflect.Struct:
		for i := range val.NumField() {
			collectReferences(val.Field(i), refs)
		}
	case reflect.Array:
		for i := range val.Len() {
			collectReferences(val.Index(i), refs)
		}
	}
}

// reachable collects the footprint of v, following pointers, maps, slices,
// structs, arrays and interfaces. Each object is visited once, so cyclic
// graphs terminate.
func reachable(v any) *footprint {
	fp := &footprint{seen: make(map[uintptr]struct{})}

	collectReachable(reflect.ValueOf(v), fp)

	return fp
}

// references collects the addresses of the pointer-like values reachable
// from v without dereferencing: pointers, maps, non-empty slices, channels
// and unsafe pointers, looking through structs, arrays and interfaces.
func references(v any) []uintptr {
	var refs []uintptr

	collectReferences(reflect.ValueOf(v), &refs)

	return refs
}
