package storage

import (
	"sort"

	"github.com/hashicorp/go-hclog"
)

var (
	log hclog.Logger

	initcallbacks []func()

	factories map[string]Factory
)

// ErrUnknownStore is returned when a store is requested that has not
// been registered.
type ErrUnknownStore struct {
	attempted string
}

func (e ErrUnknownStore) Error() string {
	return "no store factory with name " + e.attempted + " exists"
}

func init() {
	factories = make(map[string]Factory)
	log = hclog.L()
}

// SetLogger injects a logger into this package to allow setting up a
// logger tree.
func SetLogger(l hclog.Logger) {
	log = l.Named("storage")
}

// RegisterFactory registers a factory to the list of available
// stores.
func RegisterFactory(s string, f Factory) {
	if _, exists := factories[s]; exists {
		log.Trace("Store already registered", "store", s)
		return
	}
	factories[s] = f
	log.Debug("Registered store", "store", s)
}

// RegisterCallback provides a mechanism for early registration of a
// function to be called during initialization.  This allows the
// actual factories to be registered once config parsing has happened
// and logging is configured.
func RegisterCallback(f func()) {
	initcallbacks = append(initcallbacks, f)
}

// DoCallbacks invokes all callbacks and registers the factories.
// Calling it more than once is harmless.
func DoCallbacks() {
	for _, cb := range initcallbacks {
		cb()
	}
}

// List returns the names of the registered stores.
func List() []string {
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Initialize attempts to initialize the given store and returns
// either a ready to use store or an error.
func Initialize(s string) (Storage, error) {
	f, ok := factories[s]
	if !ok {
		log.Error("Non-existent factory requested", "factory", s)
		return nil, ErrUnknownStore{s}
	}
	return f(log)
}
