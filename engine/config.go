/*
=================================================================================
ENGINE CONFIG - TOML-LOADABLE RUN PARAMETERS
=================================================================================

Mirrors synapse.SynapseConfig's builder-with-TOML-loader idiom for the
engine's own run parameters (worker count and PRNG seed), using
the same BurntSushi/toml library. A Config is optional: New already accepts
its fields directly, this is only for experiments that want to externalize
run parameters instead of hardcoding them.
=================================================================================
*/
package engine

import "github.com/BurntSushi/toml"

// Config bundles the construction-time parameters for an Engine.
type Config struct {
	Workers int   `toml:"workers"`
	Seed    int64 `toml:"seed"`
}

// LoadConfig reads a Config from a TOML file, defaulting Workers to 1 and
// Seed to 1 if left at their zero values.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
}
