// Package config provides preset management for the game server.
//
// Presets are JSON or YAML files in a single directory. A preset named
// "small" may live in small.json, small.yaml or small.yml; the first one
// found wins. Each preset is validated with engine.ValidateGameConfig and
// cached after the first load.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("gravity")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// The default preset is "classic" when present, otherwise the first valid
// preset in the directory, otherwise the built-in 8x8 knight's tour.
package config
