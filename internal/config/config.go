// Package config loads merge engine options from a YAML file and
// environment variables, grounded on open-platform-model-cli's
// internal/config.Loader (viper-backed, OPM_-prefixed env binding) and on
// dario.cat/mergo for layering defaults under whatever the file/env actually
// set, the way cloudposse-atmos merges partial config maps with
// mergo.WithOverride.
package config

import (
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "PLASMERGE"

// Options is the merge engine's tunable behavior.
type Options struct {
	// Verbose raises the logger to debug level.
	Verbose bool `mapstructure:"verbose"`
	// ProjectID is the design-tool project this run operates against.
	ProjectID string `mapstructure:"projectId"`
	// CacheDir, if set, lets a CachingBaseProvider persist fetched
	// skeletons across process runs.
	CacheDir string `mapstructure:"cacheDir"`
	// ManagedStartMarker/ManagedEndMarker override the verbatim-region
	// bracketing comments the File Assembler splices around.
	ManagedStartMarker string `mapstructure:"managedStartMarker"`
	ManagedEndMarker   string `mapstructure:"managedEndMarker"`
}

// Defaults mirrors Config.WithDefaults in the grounding example: the
// baseline Options every loaded config is merged under.
func Defaults() Options {
	return Options{
		Verbose:            false,
		ManagedStartMarker: "// plasmic-managed-start",
		ManagedEndMarker:   "// plasmic-managed-end",
	}
}

// Loader wraps a viper instance configured for PLASMERGE_-prefixed
// environment overrides.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader with environment binding set up.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("verbose")
	_ = v.BindEnv("projectId")
	_ = v.BindEnv("cacheDir")
	_ = v.BindEnv("managedStartMarker")
	_ = v.BindEnv("managedEndMarker")

	return &Loader{v: v}
}

// Load reads configFile (if non-empty and present) plus environment
// overrides, then merges the result over Defaults() with mergo so that any
// field the file/env left unset keeps its default.
func (l *Loader) Load(configFile string) (Options, error) {
	if configFile != "" {
		l.v.SetConfigFile(configFile)
		l.v.SetConfigType("yaml")
		if err := l.v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return Options{}, fmt.Errorf("plasmerge/config: reading config file: %w", err)
			}
		}
	}

	var loaded Options
	if err := l.v.Unmarshal(&loaded); err != nil {
		return Options{}, fmt.Errorf("plasmerge/config: unmarshaling config: %w", err)
	}

	merged := Defaults()
	if err := mergo.Merge(&merged, loaded, mergo.WithOverride); err != nil {
		return Options{}, fmt.Errorf("plasmerge/config: merging defaults: %w", err)
	}
	return merged, nil
}

// Init writes Defaults() as YAML to path, failing if a file already exists
// there unless force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("plasmerge/config: %s already exists (use force to overwrite)", path)
		}
	}
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("plasmerge/config: marshaling defaults: %w", err)
	}
	header := []byte("# plasmerge configuration\n\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("plasmerge/config: writing %s: %w", path, err)
	}
	return nil
}
