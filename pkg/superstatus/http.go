package superstatus

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/locusrobotics/ros-buildfarm/pkg/buildfile"
)

// NoOrg is the path segment that addresses repositories without an
// organization.
const NoOrg = "-"

// HTTPEntry provides the mountpoint for this service into the shared
// webserver routing tree.
func (m *Manager) HTTPEntry() chi.Router {
	r := chi.NewRouter()

	r.Get("/meta", m.httpDumpMeta)
	r.Get("/tree", m.httpDumpTree)
	r.Get("/orgs/{org}", m.httpDumpOrg)
	r.Get("/orgs/{org}/repos/{repo}", m.httpDumpRepo)
	r.Get("/pkgs/{pkg}", m.httpDumpPkg)
	r.Get("/expected/{distro}", m.httpDumpExpected)

	r.Post("/refresh", m.httpRefresh)

	return r
}

func orgParam(r *http.Request) string {
	org := chi.URLParam(r, "org")
	if org == NoOrg {
		return ""
	}
	return org
}

func (m *Manager) httpDumpMeta(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, m.Meta())
}

func (m *Manager) httpDumpTree(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, m.Tree())
}

func (m *Manager) httpDumpOrg(w http.ResponseWriter, r *http.Request) {
	org, ok := m.Tree()[orgParam(r)]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	jsonOK(w, org)
}

func (m *Manager) httpDumpRepo(w http.ResponseWriter, r *http.Request) {
	org, ok := m.Tree()[orgParam(r)]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	repo, ok := org.Repos[chi.URLParam(r, "repo")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	jsonOK(w, repo)
}

func (m *Manager) httpDumpPkg(w http.ResponseWriter, r *http.Request) {
	loc, ok := m.Tree().Find(chi.URLParam(r, "pkg"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	jsonOK(w, loc)
}

func (m *Manager) httpDumpExpected(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	files := m.files
	m.mu.RUnlock()

	distro := chi.URLParam(r, "distro")
	if _, ok := files[distro]; !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	out := []string{}
	for _, p := range buildfile.Expectations(files).Platforms(distro) {
		out = append(out, p.String())
	}
	jsonOK(w, out)
}

func (m *Manager) httpRefresh(w http.ResponseWriter, r *http.Request) {
	if err := m.Refresh(r.Context()); err != nil {
		m.l.Warn("Error refreshing", "error", err)
		jsonError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func jsonOK(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, err error, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	out := struct {
		Error string
	}{
		Error: err.Error(),
	}
	json.NewEncoder(w).Encode(out)
}
