package stdlib

import "testing"

func TestNewResolverMissesOnEmptyRegistry(t *testing.T) {
	r := New()
	if _, ok := r.Resolve("math"); ok {
		t.Fatal("Resolve() should miss until a module is registered")
	}
}
