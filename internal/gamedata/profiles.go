package gamedata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProfileDef is a named level and movement tuning. Built-in profiles come
// from profiles.json; players can add or override them with a YAML file.
type ProfileDef struct {
	ID             string   `json:"id" yaml:"id"`                         // Unique identifier (e.g., "default")
	Name           string   `json:"name" yaml:"name"`                     // Display name shown in the status line
	Width          int      `json:"width" yaml:"width"`                   // Grid columns, odd
	Height         int      `json:"height" yaml:"height"`                 // Grid rows, odd
	CellSize       float64  `json:"cellSize" yaml:"cellSize"`             // World units per cell
	Rooms          [2]int   `json:"rooms" yaml:"rooms"`                   // Inclusive target room count range
	RoomSize       [2]int   `json:"roomSize" yaml:"roomSize"`             // Inclusive room side range
	RoomAttempts   int      `json:"roomAttempts" yaml:"roomAttempts"`     // Placement trials per level
	ColliderRadius float64  `json:"colliderRadius" yaml:"colliderRadius"` // Player collider radius
	Speed          float64  `json:"speed" yaml:"speed"`                   // Base movement speed, units per second
	Theme          ThemeDef `json:"theme" yaml:"theme"`
}

// ProfilesFile represents the structure of profiles.json and of user
// profile files.
type ProfilesFile struct {
	Profiles []ProfileDef `json:"profiles" yaml:"profiles"`
}

// LoadProfiles loads profile definitions from the embedded profiles.json file.
func LoadProfiles() ([]ProfileDef, error) {
	file, err := Load[ProfilesFile]("profiles.json")
	if err != nil {
		return nil, err
	}
	return file.Profiles, nil
}

// LoadProfileFile reads user profiles from a YAML file on disk.
func LoadProfileFile(path string) ([]ProfileDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile file: %w", err)
	}

	var file ProfilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse profile file %s: %w", path, err)
	}
	for i, p := range file.Profiles {
		if p.ID == "" {
			return nil, fmt.Errorf("profile file %s: entry %d has no id", path, i)
		}
	}
	return file.Profiles, nil
}
