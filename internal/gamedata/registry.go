package gamedata

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultProfile is used when no profile is requested.
const DefaultProfile = "default"

// ErrUnknownProfile is returned for a profile ID not in the registry.
var ErrUnknownProfile = errors.New("unknown profile")

// ProfileRegistry holds loaded profile definitions keyed by ID.
type ProfileRegistry struct {
	profiles []ProfileDef
	byID     map[string]int
}

// NewProfileRegistry creates a registry from loaded definitions. Later
// duplicates of an ID are ignored.
func NewProfileRegistry(profiles []ProfileDef) *ProfileRegistry {
	r := &ProfileRegistry{byID: make(map[string]int, len(profiles))}
	for _, p := range profiles {
		if _, dup := r.byID[p.ID]; dup {
			continue
		}
		r.byID[p.ID] = len(r.profiles)
		r.profiles = append(r.profiles, p)
	}
	return r
}

// LoadProfileRegistry loads and creates a registry from the embedded profiles.json.
func LoadProfileRegistry() (*ProfileRegistry, error) {
	profiles, err := LoadProfiles()
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, errors.New("no profiles loaded from profiles.json")
	}
	return NewProfileRegistry(profiles), nil
}

// Merge adds profiles, replacing any existing profile with the same ID.
func (r *ProfileRegistry) Merge(profiles []ProfileDef) {
	for _, p := range profiles {
		if i, ok := r.byID[p.ID]; ok {
			r.profiles[i] = p
			continue
		}
		r.byID[p.ID] = len(r.profiles)
		r.profiles = append(r.profiles, p)
	}
}

// GetByID returns the profile with the given ID, or nil if not found.
func (r *ProfileRegistry) GetByID(id string) *ProfileDef {
	i, ok := r.byID[id]
	if !ok {
		return nil
	}
	return &r.profiles[i]
}

// Lookup is GetByID with an error naming the known profiles. An empty id
// selects DefaultProfile.
func (r *ProfileRegistry) Lookup(id string) (*ProfileDef, error) {
	if id == "" {
		id = DefaultProfile
	}
	if p := r.GetByID(id); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownProfile, id, r.IDs())
}

// IDs returns the known profile IDs, sorted.
func (r *ProfileRegistry) IDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for _, p := range r.profiles {
		ids = append(ids, p.ID)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of profiles in the registry.
func (r *ProfileRegistry) Count() int {
	return len(r.profiles)
}
