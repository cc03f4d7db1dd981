package identity

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/locusrobotics/ros-buildfarm/pkg/status"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want *Identity
	}{
		{
			name: "github release mirror",
			url:  "https://github.com/ros/common_msgs-release.git",
			want: &Identity{
				Organization: "ros",
				Repository:   "common_msgs",
				RepoURL:      "https://github.com/ros/common_msgs-release.git",
				OrgURL:       "https://github.com/ros",
			},
		},
		{
			name: "github plain http",
			url:  "http://github.com/ros-gbp/ros_comm.git",
			want: &Identity{
				Organization: "ros-gbp",
				Repository:   "ros_comm",
				RepoURL:      "http://github.com/ros-gbp/ros_comm.git",
				OrgURL:       "https://github.com/ros-gbp",
			},
		},
		{
			name: "github branch",
			url:  "https://github.com/locusrobotics/catkin_virtualenv/tree/devel",
			want: &Identity{
				Organization: "locusrobotics",
				Repository:   "catkin_virtualenv",
				RepoURL:      "https://github.com/locusrobotics/catkin_virtualenv/tree/devel",
				OrgURL:       "https://github.com/locusrobotics",
			},
		},
		{
			name: "bitbucket",
			url:  "https://bitbucket.org/someorg/navigation-release",
			want: &Identity{
				Organization: "someorg",
				Repository:   "navigation",
				RepoURL:      "https://bitbucket.org/someorg/navigation-release",
				OrgURL:       "https://bitbucket.org/someorg",
			},
		},
		{
			name: "self hosted gitlab",
			url:  "https://gitlab.example.com/robots/drivers-release.git",
			want: &Identity{
				Organization: "robots",
				Repository:   "drivers",
				RepoURL:      "https://gitlab.example.com/robots/drivers-release.git",
				OrgURL:       "https://gitlab.example.com/robots",
			},
		},
		{name: "unknown host", url: "https://example.org/foo/bar.git"},
		{name: "empty", url: ""},
		{name: "garbage", url: "::not a url::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Resolve(tt.url)); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.url, diff)
			}
		})
	}
}

func TestForEntryPrefersNewestDistro(t *testing.T) {
	e := &status.Entry{Distros: map[string]*status.DistroStatus{
		"indigo":  {URL: "https://github.com/old/pkg-release.git"},
		"melodic": {URL: "https://github.com/new/pkg-release.git"},
		"noetic":  {},
	}}

	got := ForEntry(e)
	if got.Organization != "new" || got.Repository != "pkg" {
		t.Errorf("ForEntry() = %+v, want new/pkg", got)
	}
}

func TestForEntrySkipsUnresolvable(t *testing.T) {
	e := &status.Entry{Distros: map[string]*status.DistroStatus{
		"indigo":  {URL: "https://github.com/old/pkg-release.git"},
		"melodic": {URL: "https://example.org/pkg.git"},
	}}

	got := ForEntry(e)
	if got.Organization != "old" {
		t.Errorf("ForEntry() = %+v, want organization old", got)
	}
}

func TestForEntryFallback(t *testing.T) {
	e := &status.Entry{Distros: map[string]*status.DistroStatus{
		"melodic": {URL: "https://example.org/b.git"},
		"indigo":  {URL: "https://example.org/a.git"},
	}}

	want := Identity{Repository: "https://example.org/a.git", RepoURL: "https://example.org/a.git"}
	if diff := cmp.Diff(want, ForEntry(e)); diff != "" {
		t.Errorf("ForEntry() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(Identity{}, ForEntry(&status.Entry{})); diff != "" {
		t.Errorf("ForEntry() on empty entry mismatch (-want +got):\n%s", diff)
	}
}
