package bc

import (
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestBCStore(t *testing.T) {
	t.Setenv(PathEnv, t.TempDir())

	s, err := newBCStore(hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("newBCStore() error: %v", err)
	}
	defer s.Close()

	if v, err := s.Get([]byte("rollup/tree")); err != nil || v != nil {
		t.Errorf("Get() on empty store = %v, %v", v, err)
	}
	if err := s.Put([]byte("rollup/tree"), []byte("{}")); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get([]byte("rollup/tree")); string(v) != "{}" {
		t.Errorf("Get() = %q", v)
	}
}

func TestBCStoreNeedsPath(t *testing.T) {
	t.Setenv(PathEnv, "")
	if _, err := newBCStore(hclog.NewNullLogger()); err == nil {
		t.Error("newBCStore() without path returned no error")
	}
}
