package formula

import (
	"sort"

	"github.com/benbjohnson/immutable"
	"github.com/xtgo/set"

	"github.com/evbt/fml/util"
)

// FreeIdentifiers collects the names of the free symbols of a tree, sorted
// and deduplicated. Bound occurrences introduced by quantifiers and binders
// do not count.
func FreeIdentifiers(f *Formula) []string {
	var names sort.StringSlice
	collectFree(f, func(name string) {
		names = append(names, name)
	})
	sort.Sort(names)
	return names[:set.Uniq(names)]
}

// FreeIdentifierSet is FreeIdentifiers as an immutable set, for callers that
// go on to intersect or merge identifier sets across formulas.
func FreeIdentifierSet(f *Formula) immutable.Set[string] {
	s := util.NewEmptySet[string]()
	collectFree(f, func(name string) {
		s.Add(name)
	})
	return s.Immutable(nil)
}

func collectFree(f *Formula, yield func(string)) {
	if f.IsSymbol() {
		if !f.Is(BoundSymbol) {
			yield(f.Symbol())
		}
		return
	}
	for i := 0; i < f.NumChildren(); i++ {
		collectFree(f.Child(i), yield)
	}
}
