package superstatus

import (
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/locusrobotics/ros-buildfarm/pkg/buildfile"
	"github.com/locusrobotics/ros-buildfarm/pkg/config"
	"github.com/locusrobotics/ros-buildfarm/pkg/rollup"
	"github.com/locusrobotics/ros-buildfarm/pkg/source"
	"github.com/locusrobotics/ros-buildfarm/pkg/storage"
)

// Manager runs the snapshot pipeline and holds the most recent
// rollup.
type Manager struct {
	l          hclog.Logger
	cfg        *config.Config
	fetcher    source.Getter
	cm         CheckoutManager
	classifier rollup.Classifier

	parallelism int

	storage storage.Storage

	// Serializes refreshes; a store is only ever written by one
	// pipeline run.
	refreshMutex sync.Mutex

	mu    sync.RWMutex
	tree  rollup.Tree
	files buildfile.Set
	meta  Meta
}

// Meta describes the snapshot currently served.
type Meta struct {
	Rev           string    `json:"rev,omitempty"`
	Updated       time.Time `json:"updated"`
	Packages      int       `json:"packages"`
	Distributions []string  `json:"distributions"`
}

// CheckoutManager handles the git checkout of the buildfarm
// configuration.
type CheckoutManager interface {
	Bootstrap() error
	Fetch() error
	Checkout(string) error
	At() (string, error)
}

// Option configures a Manager.
type Option func(*Manager)
