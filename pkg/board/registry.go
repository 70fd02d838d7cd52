package board

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps board-variant identifiers to profiles.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]Profile),
	}
}

// Register validates and adds a profile.
// Returns ErrDuplicateProfile if the name is already taken.
func (r *Registry) Register(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[p.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProfile, p.Name)
	}
	r.profiles[p.Name] = p
	return nil
}

// Lookup returns the profile registered under name.
func (r *Registry) Lookup(name string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return p, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profiles returns all profiles sorted by name.
func (r *Registry) Profiles() []Profile {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Profile, 0, len(names))
	for _, name := range names {
		if p, ok := r.profiles[name]; ok {
			result = append(result, p)
		}
	}
	return result
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}

// LoadFile registers every profile of a YAML profile file.
// Nothing is registered if any profile is invalid or already present.
func (r *Registry) LoadFile(path string) error {
	profiles, err := LoadFile(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range profiles {
		if _, exists := r.profiles[p.Name]; exists {
			return fmt.Errorf("%s: %w: %s", path, ErrDuplicateProfile, p.Name)
		}
	}
	for _, p := range profiles {
		r.profiles[p.Name] = p
	}
	return nil
}
