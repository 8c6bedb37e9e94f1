package translate

import (
	"strings"

	"github.com/ablang/abc/internal/compiler/types"
)

// varBinding is what the translator knows about a declared variable once it
// has been assigned a global_id (spec §3 "Variable entry").
type varBinding struct {
	globalID      int
	typ           types.Type
	variantSuffix string
}

// scope is the translator's own variable-name → global_id table (spec §3's
// `global_id` is assigned "when the variable is translated", not by the
// parser or type checker, so it is tracked here rather than reused from
// either earlier pass).
type scope struct {
	vars   map[string]varBinding
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]varBinding), parent: parent}
}

func (s *scope) define(name string, b varBinding) {
	s.vars[strings.ToLower(name)] = b
}

func (s *scope) lookup(name string) (varBinding, bool) {
	key := strings.ToLower(name)
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.vars[key]; ok {
			return b, true
		}
	}
	return varBinding{}, false
}

func (t *Translator) pushScope() { t.scope = newScope(t.scope) }

func (t *Translator) popScope() {
	if t.scope.parent != nil {
		t.scope = t.scope.parent
	}
}

func (t *Translator) withScope(fn func()) {
	t.pushScope()
	defer t.popScope()
	fn()
}
