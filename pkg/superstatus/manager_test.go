package superstatus

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/locusrobotics/ros-buildfarm/pkg/config"
	"github.com/locusrobotics/ros-buildfarm/pkg/rollup"
	"github.com/locusrobotics/ros-buildfarm/pkg/storage/memory"
)

var fixtures = map[string]string{
	"index.yaml": `
distributions:
  melodic:
    release_builds:
      default: melodic/default.yaml
      arm: melodic/arm.yaml
  noetic:
    release_builds:
      default: noetic/default.yaml
`,
	"melodic/default.yaml": `
targets:
  ubuntu:
    bionic:
      amd64:
package_blacklist:
  - rviz
`,
	"melodic/arm.yaml": `
targets:
  ubuntu:
    bionic:
      arm64:
`,
	"noetic/default.yaml": `
targets:
  ubuntu:
    focal: [amd64]
`,
	"status/melodic_default.yaml": `
std_msgs:
  version: 0.5.12-0
  url: https://github.com/ros/std_msgs-release.git
  maintainers:
    - name: Jane
      email: jane@example.com
  build_status:
    ubuntu:
      bionic:
        amd64: ok
        source: ok
geometry_msgs:
  version: 1.12.7-0
  url: https://github.com/ros/common_msgs-release.git
  build_status:
    ubuntu:
      bionic:
        amd64: ok
        source: ok
rviz:
  version: 1.13.0-0
  url: https://github.com/ros-visualization/rviz-release.git
  build_status:
    ubuntu:
      bionic:
        source: ok
`,
	"status/melodic_arm.yaml": `
std_msgs:
  maintainers:
    - name: Joe
      email: joe@example.com
  build_status:
    ubuntu:
      bionic:
        arm64: ok
geometry_msgs:
  build_status:
    ubuntu:
      bionic:
        arm64: fails to build
rviz:
  build_status:
    ubuntu:
      bionic:
        arm64: ok
`,
}

func writeFixtures(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for name, content := range fixtures {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	c := config.NewConfig()
	c.IndexURL = "file://" + filepath.Join(dir, "index.yaml")
	c.StatusURL = "file://" + filepath.Join(dir, "status", "{distro}_{variant}.yaml")
	return c
}

func TestRefresh(t *testing.T) {
	m := New(WithConfig(writeFixtures(t)), WithStorage(memory.New()), WithParallelism(2))
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	tree := m.Tree()
	ros, ok := tree["ros"]
	if !ok {
		t.Fatalf("organization ros missing: %v", tree)
	}

	stdMsgs := ros.Repos["std_msgs"].Pkgs["std_msgs"]
	want := &rollup.Package{
		Status:      map[string]string{"melodic": "ok"},
		Maintainers: map[string]string{"jane@example.com": "Jane", "joe@example.com": "Joe"},
		Versions:    map[string]string{"melodic": "0.5.12-0"},
	}
	if diff := cmp.Diff(want, stdMsgs); diff != "" {
		t.Errorf("std_msgs mismatch (-want +got):\n%s", diff)
	}

	if got := ros.Repos["common_msgs"].Status["melodic"]; got != rollup.LabelMixed {
		t.Errorf("common_msgs status = %q, want %q", got, rollup.LabelMixed)
	}
	if got := ros.Status["melodic"]; got != rollup.LabelMixed {
		t.Errorf("ros status = %q, want %q", got, rollup.LabelMixed)
	}

	// amd64 is blacklisted for rviz, the remaining platforms are ok.
	if got := tree["ros-visualization"].Repos["rviz"].Status["melodic"]; got != "ok" {
		t.Errorf("rviz status = %q, want ok", got)
	}

	meta := m.Meta()
	if meta.Packages != 3 {
		t.Errorf("meta packages = %d, want 3", meta.Packages)
	}
	if diff := cmp.Diff([]string{"melodic", "noetic"}, meta.Distributions); diff != "" {
		t.Errorf("meta distributions mismatch (-want +got):\n%s", diff)
	}
}

func TestRefreshDistributionFilter(t *testing.T) {
	c := writeFixtures(t)
	c.Distributions = []string{"melodic"}

	m := New(WithConfig(c))
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if diff := cmp.Diff([]string{"melodic"}, m.Meta().Distributions); diff != "" {
		t.Errorf("meta distributions mismatch (-want +got):\n%s", diff)
	}
	if n := m.Tree().PackageCount(); n != 3 {
		t.Errorf("PackageCount() = %d, want 3", n)
	}
}

func TestRefreshNoDocumentsKeepsSnapshot(t *testing.T) {
	store := memory.New()
	c := writeFixtures(t)

	m := New(WithConfig(c), WithStorage(store))
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := m.Meta()

	// noetic has no status document at all.
	c.Distributions = []string{"noetic"}
	if err := m.Refresh(context.Background()); !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("Refresh() error = %v, want %v", err, ErrNoDocuments)
	}
	if n := m.Tree().PackageCount(); n != 3 {
		t.Errorf("PackageCount() = %d, want 3", n)
	}
	if diff := cmp.Diff(before, m.Meta()); diff != "" {
		t.Errorf("meta changed (-want +got):\n%s", diff)
	}

	restored := New(WithConfig(c), WithStorage(store))
	if err := restored.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if n := restored.Tree().PackageCount(); n != 3 {
		t.Errorf("persisted PackageCount() = %d, want 3", n)
	}
}

func TestRefreshMissingIndex(t *testing.T) {
	c := config.NewConfig()
	c.IndexURL = "file://" + filepath.Join(t.TempDir(), "nope.yaml")
	if err := New(WithConfig(c)).Refresh(context.Background()); err == nil {
		t.Error("Refresh() without index returned no error")
	}
}

func TestPersistAndLoad(t *testing.T) {
	store := memory.New()
	c := writeFixtures(t)

	m := New(WithConfig(c), WithStorage(store))
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	restored := New(WithConfig(c), WithStorage(store))
	if err := restored.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(m.Tree(), restored.Tree(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("restored tree mismatch (-want +got):\n%s", diff)
	}

	srv := httptest.NewServer(restored.HTTPEntry())
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/expected/melodic")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /expected/melodic = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var expected []string
	if err := json.NewDecoder(resp.Body).Decode(&expected); err != nil {
		t.Fatal(err)
	}
	want := []string{"ubuntu:bionic:amd64", "ubuntu:bionic:arm64", "ubuntu:bionic:source"}
	if diff := cmp.Diff(want, expected); diff != "" {
		t.Errorf("restored expectations mismatch (-want +got):\n%s", diff)
	}

	s, err := restored.LoadStore()
	if err != nil {
		t.Fatalf("LoadStore() error: %v", err)
	}
	if diff := cmp.Diff([]string{"geometry_msgs", "rviz", "std_msgs"}, s.Names()); diff != "" {
		t.Errorf("restored store mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEmpty(t *testing.T) {
	if err := New(WithStorage(memory.New())).Load(); err != ErrNoSnapshot {
		t.Errorf("Load() error = %v, want %v", err, ErrNoSnapshot)
	}
	if err := New().Load(); err != ErrNoSnapshot {
		t.Errorf("Load() without storage error = %v, want %v", err, ErrNoSnapshot)
	}
}

func TestHTTPEntry(t *testing.T) {
	m := New(WithConfig(writeFixtures(t)))
	srv := httptest.NewServer(m.HTTPEntry())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("refresh status = %d", resp.StatusCode)
	}

	tests := []struct {
		path string
		code int
	}{
		{"/meta", http.StatusOK},
		{"/tree", http.StatusOK},
		{"/orgs/ros", http.StatusOK},
		{"/orgs/nobody", http.StatusNotFound},
		{"/orgs/ros/repos/common_msgs", http.StatusOK},
		{"/orgs/ros/repos/nothing", http.StatusNotFound},
		{"/pkgs/std_msgs", http.StatusOK},
		{"/pkgs/missing", http.StatusNotFound},
		{"/expected/melodic", http.StatusOK},
		{"/expected/kinetic", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.code {
				t.Errorf("GET %s = %d, want %d", tt.path, resp.StatusCode, tt.code)
			}
		})
	}

	resp, err = http.Get(srv.URL + "/pkgs/geometry_msgs")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var loc rollup.Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		t.Fatal(err)
	}
	if loc.Org != "ros" || loc.Repo != "common_msgs" {
		t.Errorf("location = %+v, want ros/common_msgs", loc)
	}
}
