package factory

import (
	"strings"
	"testing"
)

type fakeStore struct{ Path string }

type fakeStoreConf struct {
	Path string `json:"path"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*fakeStore]()
	if err := reg.Register("jsonl", func(conf map[string]any) (*fakeStore, error) {
		var c fakeStoreConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &fakeStore{Path: c.Path}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "jsonl", Conf: map[string]any{"path": "results.jsonl"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.Path != "results.jsonl" {
		t.Fatalf("expected path decoded, got %q", inst.Path)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatal("expected duplicate error")
	}
	_, err := reg.Create(ModuleConfig{Type: "y"})
	if err == nil {
		t.Fatal("expected unknown type error")
	}
	if !strings.Contains(err.Error(), `"y"`) || !strings.Contains(err.Error(), "x") {
		t.Fatalf("error should name the type and the alternatives: %v", err)
	}
}

func TestRegistry_Types(t *testing.T) {
	reg := NewRegistry[int]()
	for _, name := range []string{"sqlite", "jsonl", "memory"} {
		if err := reg.Register(name, func(map[string]any) (int, error) { return 0, nil }); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	got := reg.Types()
	want := []string{"jsonl", "memory", "sqlite"}
	if len(got) != len(want) {
		t.Fatalf("types: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("types not sorted: %v", got)
		}
	}
}
