package vars

import (
	"errors"
	"testing"
)

func TestWhen_FirstTrueWins(t *testing.T) {
	vs := NewVars()
	c0 := NewValue(false)
	c1 := NewValue(true)
	c2 := NewValue(true)
	w := When(NewValue("default"),
		Case[string](c0, NewValue("v0")),
		Case[string](c1, NewValue("v1")),
		Case[string](c2, NewValue("v2")),
	)

	if got := w.Get(vs); got != "v1" {
		t.Errorf("Get = %q, want %q (first true condition wins)", got, "v1")
	}
}

func TestWhen_DefaultWhenNoneTrue(t *testing.T) {
	vs := NewVars()
	w := When(NewValue("default"),
		Case[string](NewValue(false), NewValue("v0")),
		Case[string](NewValue(false), NewValue("v1")),
	)

	if got := w.Get(vs); got != "default" {
		t.Errorf("Get = %q, want %q", got, "default")
	}
}

func TestWhen_SwitchesOnConditionChange(t *testing.T) {
	vs := NewVars()
	cond := NewValue(false)
	w := When(NewValue(0), Case[int](cond, NewValue(7)))

	if got := w.Get(vs); got != 0 {
		t.Errorf("Get = %d, want 0", got)
	}

	cond.Set(vs, true)
	vs.Apply()

	if got := w.Get(vs); got != 7 {
		t.Errorf("Get after condition change = %d, want 7", got)
	}
	if !w.IsNew(vs) {
		t.Error("IsNew after condition change = false, want true")
	}
}

func TestWhen_IsNewSeesEarlierConditionToggle(t *testing.T) {
	vs := NewVars()
	c0 := NewValue(true)
	c1 := NewValue(true)
	w := When(NewValue("default"),
		Case[string](c0, NewValue("v0")),
		Case[string](c1, NewValue("v1")),
	)

	if got := w.Get(vs); got != "v0" {
		t.Fatalf("Get = %q, want %q", got, "v0")
	}

	// c0 toggles off: the active branch becomes c1. The toggle itself must
	// be reported as new even though v1's value variable did not change.
	c0.Set(vs, false)
	vs.Apply()

	if got := w.Get(vs); got != "v1" {
		t.Errorf("Get = %q, want %q", got, "v1")
	}
	if !w.IsNew(vs) {
		t.Error("IsNew after earlier condition toggled = false, want true")
	}
}

func TestWhen_VersionBumpsForInactiveBranch(t *testing.T) {
	vs := NewVars()
	inactive := NewValue("unused")
	w := When(NewValue("default"),
		Case[string](NewValue(false), inactive),
	)

	before := w.Version(vs)

	// Changing a value behind a false condition still bumps the version:
	// consumers inspecting the whole structure must observe it.
	inactive.Set(vs, "changed")
	vs.Apply()

	after := w.Version(vs)
	if after == before {
		t.Errorf("Version unchanged (%d) after inactive branch change, want bump", after)
	}
	if got := w.Get(vs); got != "default" {
		t.Errorf("Get = %q, want %q (active value unaffected)", got, "default")
	}
}

func TestWhen_WritesForwardToActiveBranch(t *testing.T) {
	vs := NewVars()
	cond := NewValue(true)
	active := NewValue("old")
	def := NewValue("default")
	w := When[string](def, Case[string](cond, active))

	if err := w.Set(vs, "written"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	vs.Apply()

	if got := active.Get(vs); got != "written" {
		t.Errorf("active branch = %q, want %q", got, "written")
	}
	if got := def.Get(vs); got != "default" {
		t.Errorf("default = %q, want untouched %q", got, "default")
	}
}

func TestWhen_WriteToReadOnlyBranchFails(t *testing.T) {
	vs := NewVars()
	ro := Map(NewValue("x"), func(s string) string { return s })
	w := When[string](ro, Case[string](NewValue(false), NewValue("v")))

	if err := w.Set(vs, "y"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Set error = %v, want ErrReadOnly (active branch is a map)", err)
	}
}
