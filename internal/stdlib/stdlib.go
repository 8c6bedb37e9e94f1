// Package stdlib is the standard-library collaborator spec.md §(Standard
// library) names: a name-indexed set of source-language modules, resolved
// by logical path. It is an interface stub (SPEC_FULL.md §2 "CLI driver"):
// no modules ship yet, but the resolution surface the compiler core would
// call through is in place.
package stdlib

// Resolver resolves a logical module path (e.g. "math") to that module's
// abc source text.
type Resolver interface {
	Resolve(path string) (source string, ok bool)
}

// modules is the builtin registry; empty until a standard library module
// is actually authored.
var modules = map[string]string{}

type registry struct{}

// New returns the default Resolver over the builtin module registry.
func New() Resolver { return registry{} }

func (registry) Resolve(path string) (string, bool) {
	src, ok := modules[path]
	return src, ok
}
