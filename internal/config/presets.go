package config

import "sort"

var Presets = map[string]*Config{
	"tiny": {
		Algorithm: "bubble", Size: 10, SpeedMs: 200,
	},
	"classroom": {
		Algorithm: "quick", Size: 30, SpeedMs: 100,
	},
	"stress": {
		Algorithm: "merge", Size: 100, SpeedMs: 10,
	},
	"slowmo": {
		Algorithm: "bubble", Size: 15, SpeedMs: 800,
	},
}

// GetPreset returns a copy of the named preset with the remaining fields
// taken from DefaultConfig, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Algorithm = p.Algorithm
	cfg.Size = p.Size
	cfg.SpeedMs = p.SpeedMs
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
