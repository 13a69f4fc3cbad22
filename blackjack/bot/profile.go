package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Profile defines the tunable parameters of a RuleBrain.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// MistakeRate is the chance (0.0–1.0) of replacing the chosen play with another legal one.
	MistakeRate float64 `json:"mistakeRate"`
	// UsesDeviations follows count deviations; otherwise plain basic strategy.
	UsesDeviations bool `json:"usesDeviations"`
}

var builtinProfiles = []*Profile{
	{ID: "counter", Name: "Counter", UsesDeviations: true},
	{ID: "basic", Name: "Basic"},
	{ID: "tourist", Name: "Tourist", MistakeRate: 0.25},
	{ID: "rusty", Name: "Rusty Counter", MistakeRate: 0.05, UsesDeviations: true},
}

// Registry holds the available profiles.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewRegistry returns a registry seeded with the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]*Profile)}
	for _, p := range builtinProfiles {
		cp := *p
		r.profiles[p.ID] = &cp
	}
	return r
}

func (r *Registry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles file: %w", err)
	}
	return r.LoadFromJSON(data)
}

// LoadFromJSON adds or replaces profiles from a JSON array.
func (r *Registry) LoadFromJSON(data []byte) error {
	var list []*Profile
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse profiles JSON: %w", err)
	}
	for _, p := range list {
		if p.MistakeRate < 0 || p.MistakeRate > 1 {
			return fmt.Errorf("profile %q: mistakeRate must be within 0..1", p.ID)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range list {
		if p.ID == "" {
			continue
		}
		r.profiles[p.ID] = p
	}
	return nil
}

func (r *Registry) Get(id string) *Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[id]
}

// All returns the profiles ordered by ID.
func (r *Registry) All() []*Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
