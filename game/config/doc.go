// Package config loads game rules presets.
//
// Presets are TOML files in a config directory, one per file. The file name
// without its extension is the config id used to start a session:
//
//	name = "classic"
//	description = "Classic rules: two starting tiles, 2 with 90% probability, otherwise 4"
//	four_probability = 0.1
//	initial_tiles = 2
//	seed = 42 # optional, fixes the spawn sequence
//
// Unknown keys and values rejected by engine.ValidateRules make a preset
// invalid; ListConfigs skips such files.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules, err := manager.LoadConfig("rough")
//	defaultRules := manager.GetDefault()
//	presets, err := manager.ListConfigs()
//
// The default is classic when present, otherwise the first preset by id,
// otherwise engine.DefaultRules.
package config
