package superstatus

import (
	"encoding/json"
	"errors"

	"github.com/klauspost/compress/zstd"

	"github.com/locusrobotics/ros-buildfarm/pkg/buildfile"
	"github.com/locusrobotics/ros-buildfarm/pkg/rollup"
	"github.com/locusrobotics/ros-buildfarm/pkg/status"
)

var (
	keyStore = []byte("status/store")
	keyFiles = []byte("buildfile/set")
	keyTree  = []byte("rollup/tree")
	keyMeta  = []byte("rollup/meta")
)

// ErrNoSnapshot is returned by Load when nothing has been persisted
// yet.
var ErrNoSnapshot = errors.New("no persisted snapshot")

// Load restores the last persisted rollup and the build files it was
// computed from so they can be served before the first refresh
// completes.
func (m *Manager) Load() error {
	if m.storage == nil {
		m.l.Warn("Storage is unavailable, no snapshot will be loaded")
		return ErrNoSnapshot
	}

	var tree rollup.Tree
	if err := m.get(keyTree, &tree); err != nil {
		return err
	}
	var files buildfile.Set
	if err := m.get(keyFiles, &files); err != nil {
		return err
	}
	var meta Meta
	if err := m.get(keyMeta, &meta); err != nil {
		return err
	}

	m.mu.Lock()
	m.tree = tree
	m.files = files
	m.meta = meta
	m.mu.Unlock()
	m.l.Debug("Loaded snapshot", "packages", meta.Packages, "updated", meta.Updated)
	return nil
}

// LoadStore returns the persisted package store of the last snapshot.
func (m *Manager) LoadStore() (*status.Store, error) {
	if m.storage == nil {
		return nil, ErrNoSnapshot
	}
	entries := make(map[string]*status.Entry)
	if err := m.get(keyStore, &entries); err != nil {
		return nil, err
	}
	s := status.NewStore(m.l)
	s.Restore(entries)
	return s, nil
}

func (m *Manager) persist(store *status.Store, files buildfile.Set, tree rollup.Tree, meta Meta) error {
	if m.storage == nil {
		return nil
	}
	if err := m.put(keyStore, store.Entries()); err != nil {
		return err
	}
	if err := m.put(keyFiles, files); err != nil {
		return err
	}
	if err := m.put(keyTree, tree); err != nil {
		return err
	}
	return m.put(keyMeta, meta)
}

func (m *Manager) put(key []byte, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return err
	}
	defer enc.Close()
	return m.storage.Put(key, enc.EncodeAll(raw, nil))
}

func (m *Manager) get(key []byte, v interface{}) error {
	b, err := m.storage.Get(key)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrNoSnapshot
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(b, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
