package ratex

import (
	"errors"
	"testing"
)

func TestEnvGetWalksParents(t *testing.T) {
	global := newEnv(nil)
	global.Define("a", NewNumber(1))
	child := newEnv(newEnv(global))

	got, err := child.Get("a")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Number() != 1 {
		t.Fatalf("expected 1, got %v", got)
	}

	if _, err := child.Get("missing"); !errors.Is(err, UndefinedIdentifier) {
		t.Fatalf("expected UndefinedIdentifier, got %v", err)
	}
}

func TestEnvAssignUpdatesNearestBinding(t *testing.T) {
	global := newEnv(nil)
	global.Define("a", NewNumber(1))
	middle := newEnv(global)
	middle.Define("a", NewNumber(2))
	inner := newEnv(middle)

	if err := inner.Assign("a", NewNumber(3)); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if got, _ := middle.Get("a"); got.Number() != 3 {
		t.Fatalf("expected middle binding to change, got %v", got)
	}
	if got, _ := global.Get("a"); got.Number() != 1 {
		t.Fatalf("expected global binding untouched, got %v", got)
	}
	if len(inner.Names()) != 0 {
		t.Fatalf("assign must not create bindings, got %v", inner.Names())
	}
}

func TestEnvAssignUndefined(t *testing.T) {
	env := newEnv(newEnv(nil))
	err := env.Assign("ghost", NewNil())
	if !errors.Is(err, UndefinedIdentifier) {
		t.Fatalf("expected UndefinedIdentifier, got %v", err)
	}
}

func TestEnvDistanceAccessBypassesShadowing(t *testing.T) {
	global := newEnv(nil)
	global.Define("x", NewString("global"))
	outer := newEnv(global)
	outer.Define("x", NewString("outer"))
	inner := newEnv(outer)
	inner.Define("x", NewString("inner"))

	for distance, want := range []string{"inner", "outer", "global"} {
		got, err := inner.GetAt(distance, "x")
		if err != nil {
			t.Fatalf("get at %d failed: %v", distance, err)
		}
		if got.Str() != want {
			t.Fatalf("distance %d: expected %s, got %s", distance, want, got.Str())
		}
	}

	if err := inner.AssignAt(2, "x", NewString("changed")); err != nil {
		t.Fatalf("assign at failed: %v", err)
	}
	if got, _ := global.Get("x"); got.Str() != "changed" {
		t.Fatalf("expected global to change, got %s", got.Str())
	}
	if got, _ := inner.Get("x"); got.Str() != "inner" {
		t.Fatalf("expected inner untouched, got %s", got.Str())
	}
}

func TestEnvGetAtMissing(t *testing.T) {
	env := newEnv(newEnv(nil))
	if _, err := env.GetAt(1, "nope"); !errors.Is(err, UndefinedIdentifier) {
		t.Fatalf("expected UndefinedIdentifier, got %v", err)
	}
	if _, err := env.GetAt(5, "nope"); !errors.Is(err, UndefinedIdentifier) {
		t.Fatalf("expected UndefinedIdentifier past the root, got %v", err)
	}
}

func TestEnvNames(t *testing.T) {
	root := newEnv(nil)
	root.Define("b", NewNil())
	root.Define("a", NewNil())
	child := newEnv(root)
	child.Define("c", NewNil())

	if names := child.Names(); len(names) != 1 || names[0] != "c" {
		t.Fatalf("expected only the child's own bindings, got %v", names)
	}
	names := root.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("unexpected names %v", names)
	}
}
