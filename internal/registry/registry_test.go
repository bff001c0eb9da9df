package registry

import (
	"errors"
	"strings"
	"testing"
)

type closeRecorder struct {
	name  string
	log   *[]string
	fail  bool
}

func (c *closeRecorder) Close() error {
	*c.log = append(*c.log, c.name)
	if c.fail {
		return errors.New("close failed")
	}
	return nil
}

func TestGetBuildsLazilyAndOnce(t *testing.T) {
	r := New()
	builds := 0
	if err := r.Provide("limiter", func(*Registry) (any, error) {
		builds++
		return "the-limiter", nil
	}); err != nil {
		t.Fatal(err)
	}
	if builds != 0 {
		t.Fatal("constructor ran eagerly")
	}
	for i := 0; i < 3; i++ {
		v, err := r.Get("limiter")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if v.(string) != "the-limiter" {
			t.Fatalf("value = %v", v)
		}
	}
	if builds != 1 {
		t.Fatalf("builds = %d, want 1", builds)
	}
}

func TestGetResolvesDependencies(t *testing.T) {
	r := New()
	r.Set("prefix", "sub")
	_ = r.Provide("name", func(r *Registry) (any, error) {
		prefix, err := Resolve[string](r, "prefix")
		if err != nil {
			return nil, err
		}
		return prefix + "late", nil
	})
	got, err := Resolve[string](r, "name")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "sublate" {
		t.Fatalf("got %q", got)
	}
}

func TestGetDetectsCycles(t *testing.T) {
	r := New()
	_ = r.Provide("a", func(r *Registry) (any, error) { return r.Get("b") })
	_ = r.Provide("b", func(r *Registry) (any, error) { return r.Get("a") })
	_, err := r.Get("a")
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("err = %v, want cycle error", err)
	}
}

func TestGetUnknownComponent(t *testing.T) {
	r := New()
	if _, err := r.Get("nope"); err == nil {
		t.Fatal("expected error for unknown component")
	}
}

func TestProvideRejectsDuplicates(t *testing.T) {
	r := New()
	ctor := func(*Registry) (any, error) { return 1, nil }
	if err := r.Provide("x", ctor); err != nil {
		t.Fatal(err)
	}
	if err := r.Provide("x", ctor); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestResolveTypeMismatch(t *testing.T) {
	r := New()
	r.Set("n", 42)
	if _, err := Resolve[string](r, "n"); err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func TestCloseRunsNewestFirst(t *testing.T) {
	r := New()
	var log []string
	_ = r.Provide("first", func(*Registry) (any, error) {
		return &closeRecorder{name: "first", log: &log}, nil
	})
	_ = r.Provide("second", func(*Registry) (any, error) {
		return &closeRecorder{name: "second", log: &log}, nil
	})
	if _, err := r.Get("first"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get("second"); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(log) != 2 || log[0] != "second" || log[1] != "first" {
		t.Fatalf("close order = %v", log)
	}
}

func TestCloseReportsFirstError(t *testing.T) {
	r := New()
	var log []string
	r.Set("bad", &closeRecorder{name: "bad", log: &log, fail: true})
	if err := r.Close(); err == nil {
		t.Fatal("expected close error")
	}
}
