package files

import (
	"fmt"
	"slices"
)

// RootMountName is reserved for the always-present local root mount.
const RootMountName = "/"

// MountConfig describes one mount definition from the configuration
// file. Which fields matter depends on the backend type.
type MountConfig struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Path     string `yaml:"path,omitempty"`
	Host     string `yaml:"host,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	URL      string `yaml:"url,omitempty"`
}

// Factory creates a mounted FileSystem from its configuration.
type Factory func(cfg MountConfig) (FileSystem, error)

// Registry maps backend type tags to factories and mount names to
// mounted file systems. Backends are registered explicitly by host
// setup; there is no implicit discovery.
type Registry struct {
	factories map[string]Factory
	mounts    map[string]FileSystem
	order     []string
}

// NewRegistry creates a registry with root mounted at "/".
func NewRegistry(root FileSystem) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		mounts:    map[string]FileSystem{RootMountName: root},
		order:     []string{RootMountName},
	}
}

// RegisterType registers a backend factory under a type tag.
func (r *Registry) RegisterType(typeTag string, factory Factory) error {
	if typeTag == "" || factory == nil {
		return fmt.Errorf("backend type tag and factory are required")
	}
	if _, ok := r.factories[typeTag]; ok {
		return fmt.Errorf("backend type %q is already registered", typeTag)
	}
	r.factories[typeTag] = factory
	return nil
}

// Mount adds a named file system. Names are unique; "/" is reserved.
func (r *Registry) Mount(name string, fs FileSystem) error {
	if name == RootMountName {
		return fmt.Errorf("mount name %q is reserved for the local root", RootMountName)
	}
	if name == "" {
		return fmt.Errorf("mount name is required")
	}
	if _, ok := r.mounts[name]; ok {
		return fmt.Errorf("mount %q already exists", name)
	}
	r.mounts[name] = fs
	r.order = append(r.order, name)
	return nil
}

// MountFromConfig instantiates a backend through its registered
// factory and mounts it under cfg.Name.
func (r *Registry) MountFromConfig(cfg MountConfig) error {
	factory, ok := r.factories[cfg.Type]
	if !ok {
		return fmt.Errorf("unknown backend type %q for mount %q", cfg.Type, cfg.Name)
	}
	fs, err := factory(cfg)
	if err != nil {
		return fmt.Errorf("failed to create mount %q: %w", cfg.Name, err)
	}
	return r.Mount(cfg.Name, fs)
}

// Get returns the mount with the given name.
func (r *Registry) Get(name string) (FileSystem, bool) {
	fs, ok := r.mounts[name]
	return fs, ok
}

// Names returns mount names in mount order, the root mount first.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}
