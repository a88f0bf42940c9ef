package vars

import "testing"

func TestValue_NewValue(t *testing.T) {
	type tc struct {
		initial int
	}

	tests := map[string]tc{
		"zero value":     {initial: 0},
		"positive value": {initial: 42},
		"negative value": {initial: -10},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			vs := NewVars()
			v := NewValue(tt.initial)
			if got := v.Get(vs); got != tt.initial {
				t.Errorf("NewValue(%d).Get() = %d, want %d", tt.initial, got, tt.initial)
			}
			if v.IsNew(vs) {
				t.Error("fresh variable IsNew = true, want false")
			}
			if got := v.Version(vs); got != 0 {
				t.Errorf("fresh variable Version = %d, want 0", got)
			}
		})
	}
}

func TestValue_TypeInference(t *testing.T) {
	vs := NewVars()

	t.Run("string", func(t *testing.T) {
		v := NewValue("hello")
		if got := v.Get(vs); got != "hello" {
			t.Errorf("Get() = %q, want %q", got, "hello")
		}
	})

	t.Run("bool", func(t *testing.T) {
		v := NewValue(true)
		if got := v.Get(vs); got != true {
			t.Errorf("Get() = %v, want true", got)
		}
	})

	t.Run("slice", func(t *testing.T) {
		v := NewValue([]string{"a", "b"})
		got := v.Get(vs)
		if len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Errorf("Get() = %v, want [a b]", got)
		}
	})

	t.Run("struct pointer", func(t *testing.T) {
		type user struct{ Name string }
		v := NewValue(&user{Name: "Alice"})
		got := v.Get(vs)
		if got == nil || got.Name != "Alice" {
			t.Errorf("Get() = %v, want &user{Name:Alice}", got)
		}
	})
}

func TestValue_Modify(t *testing.T) {
	vs := NewVars()
	v := NewValue(10)

	if err := v.Modify(vs, func(n *int) { *n += 5 }); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}
	if got := v.Get(vs); got != 10 {
		t.Errorf("Get before Apply = %d, want 10", got)
	}

	vs.Apply()
	if got := v.Get(vs); got != 15 {
		t.Errorf("Get after Apply = %d, want 15", got)
	}
}

func TestValue_GetNew(t *testing.T) {
	vs := NewVars()
	v := NewValue("old")

	if _, ok := v.GetNew(vs); ok {
		t.Error("GetNew on fresh variable reported new")
	}

	v.Set(vs, "new")
	vs.Apply()

	got, ok := v.GetNew(vs)
	if !ok {
		t.Fatal("GetNew after Apply reported not new")
	}
	if got != "new" {
		t.Errorf("GetNew = %q, want %q", got, "new")
	}

	vs.Apply()
	if _, ok := v.GetNew(vs); ok {
		t.Error("GetNew two ticks later reported new")
	}
}

func TestValue_VersionBumpsPerWrite(t *testing.T) {
	vs := NewVars()
	v := NewValue(0)

	for i := 1; i <= 3; i++ {
		v.Set(vs, i)
		vs.Apply()
		if got := v.Version(vs); got != uint32(i) {
			t.Errorf("Version after write %d = %d, want %d", i, got, i)
		}
	}
}

func TestValue_NotReadOnly(t *testing.T) {
	v := NewValue(0)
	if v.ReadOnly() {
		t.Error("Value.ReadOnly() = true, want false")
	}
}
