package plugin

import (
	"errors"
	"testing"
)

type stubPlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *stubPlugin) Name() string { return p.name }

func (p *stubPlugin) Initialize(api EditorAPI) error {
	*p.log = append(*p.log, "init "+p.name)
	return p.initErr
}

func (p *stubPlugin) Shutdown() error {
	*p.log = append(*p.log, "shutdown "+p.name)
	return nil
}

func TestManagerLifecycle(t *testing.T) {
	var log []string
	m := NewManager()
	boom := errors.New("boom")

	if err := m.Register(&stubPlugin{name: "a", log: &log}); err != nil {
		t.Fatalf("Register(a) error = %v", err)
	}
	if err := m.Register(&stubPlugin{name: "b", initErr: boom, log: &log}); err != nil {
		t.Fatalf("Register(b) error = %v", err)
	}
	if err := m.Register(&stubPlugin{name: "c", log: &log}); err != nil {
		t.Fatalf("Register(c) error = %v", err)
	}
	if err := m.Register(&stubPlugin{name: "a", log: &log}); err == nil {
		t.Error("duplicate Register() should fail")
	}
	if err := m.Register(&stubPlugin{log: &log}); err == nil {
		t.Error("Register() without a name should fail")
	}

	if err := m.InitializePlugins(nil); !errors.Is(err, boom) {
		t.Errorf("InitializePlugins() error = %v, want %v", err, boom)
	}
	m.ShutdownPlugins()

	want := []string{"init a", "init b", "init c", "shutdown c", "shutdown b", "shutdown a"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}

	if _, ok := m.GetPlugin("b"); !ok {
		t.Error("GetPlugin(b) not found")
	}
	if names := m.Names(); len(names) != 3 || names[0] != "a" {
		t.Errorf("Names() = %v", names)
	}
}
