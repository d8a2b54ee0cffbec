package game

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/mazedelve/internal/gamedata"
	"github.com/samdwyer/mazedelve/internal/movement"
	"github.com/samdwyer/mazedelve/internal/world"
)

// Environment variables read by LoadConfig.
const (
	EnvProfile     = "MAZEDELVE_PROFILE"
	EnvProfileFile = "MAZEDELVE_PROFILE_FILE"
	EnvWidth       = "MAZEDELVE_WIDTH"
	EnvHeight      = "MAZEDELVE_HEIGHT"
	EnvCellSize    = "MAZEDELVE_CELL_SIZE"
	EnvSeed        = "MAZEDELVE_SEED"
	EnvSpeed       = "MAZEDELVE_SPEED"
	EnvRadius      = "MAZEDELVE_RADIUS"
	EnvAsync       = "MAZEDELVE_ASYNC"
)

// Config holds game configuration options.
type Config struct {
	Profile  string // Display name of the profile the config started from
	World    world.Config
	Movement movement.Config
	Theme    gamedata.Theme

	// Async moves level generation off the frame loop.
	Async bool
}

// ConfigFromProfile builds a config from a profile definition.
func ConfigFromProfile(def *gamedata.ProfileDef) (Config, error) {
	theme, err := def.Theme.Colors()
	if err != nil {
		return Config{}, fmt.Errorf("profile %s: %w", def.ID, err)
	}

	wc := world.Config{
		Width:        def.Width,
		Height:       def.Height,
		CellSize:     def.CellSize,
		MinRooms:     def.Rooms[0],
		MaxRooms:     def.Rooms[1],
		MinRoomSize:  def.RoomSize[0],
		MaxRoomSize:  def.RoomSize[1],
		RoomAttempts: def.RoomAttempts,
	}

	mc := movement.DefaultConfig()
	if def.ColliderRadius != 0 {
		mc.ColliderRadius = def.ColliderRadius
	}
	if def.Speed != 0 {
		mc.Speed = def.Speed
	}
	mc.EyeHeight = def.CellSize / 2

	return Config{Profile: def.Name, World: wc, Movement: mc, Theme: theme}, nil
}

// LoadConfig starts from the profile named by MAZEDELVE_PROFILE and applies
// individual environment overrides. Profiles in MAZEDELVE_PROFILE_FILE are
// merged into profiles first. lookup is usually os.LookupEnv.
// Malformed values are errors; nothing is silently defaulted.
func LoadConfig(profiles *gamedata.ProfileRegistry, lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if path, ok := lookup(EnvProfileFile); ok && path != "" {
		extra, err := gamedata.LoadProfileFile(path)
		if err != nil {
			return Config{}, err
		}
		profiles.Merge(extra)
	}

	id, _ := lookup(EnvProfile)
	def, err := profiles.Lookup(id)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ConfigFromProfile(def)
	if err != nil {
		return Config{}, err
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvWidth, &cfg.World.Width},
		{EnvHeight, &cfg.World.Height},
	}
	for _, o := range ints {
		if v, ok := lookup(o.key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, fmt.Errorf("%s: %w", o.key, err)
			}
			*o.dst = n
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{EnvCellSize, &cfg.World.CellSize},
		{EnvSpeed, &cfg.Movement.Speed},
		{EnvRadius, &cfg.Movement.ColliderRadius},
	}
	for _, o := range floats {
		if v, ok := lookup(o.key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Config{}, fmt.Errorf("%s: %w", o.key, err)
			}
			*o.dst = f
		}
	}
	if _, ok := lookup(EnvCellSize); ok {
		cfg.Movement.EyeHeight = cfg.World.CellSize / 2
	}

	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.World.Seed = seed
	}
	if v, ok := lookup(EnvAsync); ok {
		async, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvAsync, err)
		}
		cfg.Async = async
	}

	return cfg, cfg.Validate()
}

// Validate checks both halves of the configuration.
func (c Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return fmt.Errorf("world config: %w", err)
	}
	if err := c.Movement.Validate(); err != nil {
		return fmt.Errorf("movement config: %w", err)
	}
	return nil
}
