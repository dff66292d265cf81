package formula

import "sync"

// Symbol names are interned process-wide: a symbol leaf stores an index into
// this table as its payload, so symbol equality is an index comparison
// instead of a string comparison.
var interned = struct {
	sync.RWMutex
	index map[string]int32
	names []string
}{index: make(map[string]int32)}

func internSymbol(name string) int32 {
	interned.RLock()
	ix, ok := interned.index[name]
	interned.RUnlock()
	if ok {
		return ix
	}
	interned.Lock()
	defer interned.Unlock()
	if ix, ok := interned.index[name]; ok {
		return ix
	}
	ix = int32(len(interned.names))
	interned.names = append(interned.names, name)
	interned.index[name] = ix
	return ix
}

func symbolName(ix int32) string {
	interned.RLock()
	defer interned.RUnlock()
	return interned.names[ix]
}
