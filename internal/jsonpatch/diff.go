// Package jsonpatch computes RFC 6902 patches between two JSON documents.
package jsonpatch

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Operation is a single RFC 6902 operation.
type Operation struct {
	Op    string
	Path  string
	Value any
}

type valueOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

type pathOp struct {
	Op   string `json:"op"`
	Path string `json:"path"`
}

// MarshalJSON always writes "value" for add and replace, even when it is
// null, and never writes it for remove.
func (o Operation) MarshalJSON() ([]byte, error) {
	if o.Op == "remove" {
		return json.Marshal(pathOp{Op: o.Op, Path: o.Path})
	}
	return json.Marshal(valueOp{Op: o.Op, Path: o.Path, Value: o.Value})
}

// DiffBoth returns the forward (a to b) and backward (b to a) patches between
// two decoded JSON documents. Object keys are visited in sorted order so the
// output is stable. Path is "" for the root document.
func DiffBoth(a, b any, path string) (fwd, bwd []Operation) {
	if a == nil && b == nil {
		return nil, nil
	}
	if a == nil || b == nil {
		return []Operation{replaceOp(path, b)}, []Operation{replaceOp(path, a)}
	}

	aMap, aIsMap := a.(map[string]any)
	bMap, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		return diffObjectsBoth(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]any)
	bArr, bIsArr := b.([]any)
	if aIsArr && bIsArr {
		return diffArraysBoth(aArr, bArr, path)
	}

	// Scalars that differ, or a container replaced by another kind.
	if aIsMap || bIsMap || aIsArr || bIsArr || a != b {
		return []Operation{replaceOp(path, b)}, []Operation{replaceOp(path, a)}
	}

	return nil, nil
}

func diffObjectsBoth(a, b map[string]any, path string) (fwd, bwd []Operation) {
	for _, k := range slices.Sorted(maps.Keys(a)) {
		if _, ok := b[k]; !ok {
			childPath := path + "/" + escapeKey(k)
			fwd = append(fwd, removeOp(childPath))
			bwd = append(bwd, addOp(childPath, a[k]))
		}
	}

	for _, k := range slices.Sorted(maps.Keys(b)) {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			fwd = append(fwd, addOp(childPath, b[k]))
			bwd = append(bwd, removeOp(childPath))
			continue
		}
		subFwd, subBwd := DiffBoth(av, b[k], childPath)
		fwd = append(fwd, subFwd...)
		bwd = append(bwd, subBwd...)
	}

	return fwd, bwd
}

func diffArraysBoth(a, b []any, path string) (fwd, bwd []Operation) {
	shared := min(len(a), len(b))
	index := func(i int) string { return path + "/" + strconv.Itoa(i) }

	for i := range shared {
		subFwd, subBwd := DiffBoth(a[i], b[i], index(i))
		fwd = append(fwd, subFwd...)
		bwd = append(bwd, subBwd...)
	}

	// Removals run from the tail so earlier indexes stay valid; additions run
	// from the head so each lands at the current end of the array.
	for i := len(a) - 1; i >= shared; i-- {
		fwd = append(fwd, removeOp(index(i)))
	}
	for i := shared; i < len(b); i++ {
		fwd = append(fwd, addOp(index(i), b[i]))
	}
	for i := shared; i < len(a); i++ {
		bwd = append(bwd, addOp(index(i), a[i]))
	}
	for i := len(b) - 1; i >= shared; i-- {
		bwd = append(bwd, removeOp(index(i)))
	}

	return fwd, bwd
}

func replaceOp(path string, value any) Operation {
	return Operation{Op: "replace", Path: path, Value: value}
}

func addOp(path string, value any) Operation {
	return Operation{Op: "add", Path: path, Value: value}
}

func removeOp(path string) Operation {
	return Operation{Op: "remove", Path: path}
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
