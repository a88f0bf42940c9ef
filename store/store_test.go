package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/grindlemire/go-vars"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "vars.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestDB_RawRoundTrip(t *testing.T) {
	d := openTestDB(t)

	if _, err := d.Get("missing"); !errors.Is(err, ErrNoVar) {
		t.Errorf("Get on missing key = %v, want ErrNoVar", err)
	}

	if err := d.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	got, err := d.Get("k")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}

	if err := d.Delete("k"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := d.Get("k"); !errors.Is(err, ErrNoVar) {
		t.Errorf("Get after Delete = %v, want ErrNoVar", err)
	}
}

func TestVar_DefaultOnFirstRun(t *testing.T) {
	d := openTestDB(t)
	vs := vars.NewVars()

	v, err := Var(d, "volume", 0.8)
	if err != nil {
		t.Fatalf("Var returned error: %v", err)
	}
	if got := v.Get(vs); got != 0.8 {
		t.Errorf("Get = %v, want default 0.8", got)
	}
}

func TestVar_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.db")

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	vs := vars.NewVars()
	v, err := Var(d, "volume", 0.8)
	if err != nil {
		t.Fatalf("Var returned error: %v", err)
	}

	v.Set(vs, 0.25)
	vs.Apply()
	if err := d.Flush(vs); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	// Reopen: the stored value takes precedence over the default.
	d2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer d2.Close()

	vs2 := vars.NewVars()
	v2, err := Var(d2, "volume", 0.8)
	if err != nil {
		t.Fatalf("Var after reopen returned error: %v", err)
	}
	if got := v2.Get(vs2); got != 0.25 {
		t.Errorf("Get after reopen = %v, want persisted 0.25", got)
	}
}

func TestVar_FlushOnlyWritesNewValues(t *testing.T) {
	d := openTestDB(t)
	vs := vars.NewVars()

	if _, err := Var(d, "name", "default"); err != nil {
		t.Fatalf("Var returned error: %v", err)
	}

	// Nothing changed: the key must stay absent.
	if err := d.Flush(vs); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if _, err := d.Get("name"); !errors.Is(err, ErrNoVar) {
		t.Errorf("Get after no-op Flush = %v, want ErrNoVar", err)
	}
}

func TestVar_StructValue(t *testing.T) {
	type prefs struct {
		Theme string  `json:"theme"`
		Scale float64 `json:"scale"`
	}
	path := filepath.Join(t.TempDir(), "vars.db")

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	vs := vars.NewVars()
	v, err := Var(d, "prefs", prefs{Theme: "light", Scale: 1})
	if err != nil {
		t.Fatalf("Var returned error: %v", err)
	}

	want := prefs{Theme: "dark", Scale: 1.5}
	v.Set(vs, want)
	vs.Apply()
	if err := d.Flush(vs); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	d.Close()

	d2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer d2.Close()

	vs2 := vars.NewVars()
	v2, err := Var(d2, "prefs", prefs{Theme: "light", Scale: 1})
	if err != nil {
		t.Fatalf("Var after reopen returned error: %v", err)
	}
	if diff := cmp.Diff(want, v2.Get(vs2)); diff != "" {
		t.Errorf("persisted struct mismatch (-want +got):\n%s", diff)
	}
}

func TestVar_CorruptStoredValue(t *testing.T) {
	d := openTestDB(t)

	if err := d.Put("count", []byte("not json")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if _, err := Var(d, "count", 0); err == nil {
		t.Error("Var with corrupt stored data succeeded, want error")
	}
}
