package superstatus

import (
	"github.com/hashicorp/go-hclog"

	"github.com/locusrobotics/ros-buildfarm/pkg/config"
	"github.com/locusrobotics/ros-buildfarm/pkg/rollup"
	"github.com/locusrobotics/ros-buildfarm/pkg/source"
	"github.com/locusrobotics/ros-buildfarm/pkg/storage"
)

// WithLogger sets up the logging instance for the manager.
func WithLogger(l hclog.Logger) Option {
	return func(m *Manager) {
		m.l = l.Named("superstatus")
	}
}

// WithConfig provides the locations of the index and the status
// documents.
func WithConfig(c *config.Config) Option {
	return func(m *Manager) {
		m.cfg = c
	}
}

// WithStorage enables persistence of snapshots to a durable
// datastore.
func WithStorage(s storage.Storage) Option {
	return func(m *Manager) {
		m.storage = s
	}
}

// WithClassifier replaces the default classifier.
func WithClassifier(c rollup.Classifier) Option {
	return func(m *Manager) {
		m.classifier = c
	}
}

// WithFetcher replaces the default document fetcher.
func WithFetcher(g source.Getter) Option {
	return func(m *Manager) {
		m.fetcher = g
	}
}

// WithCheckoutManager sets the manager for the configuration
// checkout, overriding the one derived from the config.
func WithCheckoutManager(cm CheckoutManager) Option {
	return func(m *Manager) {
		m.cm = cm
	}
}

// WithParallelism bounds the number of concurrent document fetches.
func WithParallelism(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.parallelism = n
		}
	}
}
