package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/spf13/viper"
)

// Keys that may be stored in the config file.
var Keys = []string{"profile", "region", "endpoint", "policy-file", "log-level", "output"}

// Profile edits the persisted config file. Values set here are overridden by
// flags and environment variables at run time.
type Profile struct {
	Path string
}

func NewProfile(path string) *Profile {
	return &Profile{Path: path}
}

// WriteConfigField stores value under field.
func (p *Profile) WriteConfigField(field, value string) error {
	if err := checkKey(field); err != nil {
		return err
	}
	settings, err := p.read()
	if err != nil {
		return err
	}
	settings[field] = value
	return p.write(settings)
}

// DeleteConfigField removes field. Removing an absent field is not an error.
func (p *Profile) DeleteConfigField(field string) error {
	if err := checkKey(field); err != nil {
		return err
	}
	settings, err := p.read()
	if err != nil {
		return err
	}
	if _, ok := settings[field]; !ok {
		return nil
	}
	delete(settings, field)
	return p.write(settings)
}

// ListConfigFields returns the stored fields as sorted key=value lines.
func (p *Profile) ListConfigFields() ([]string, error) {
	settings, err := p.read()
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(settings))
	for key, value := range settings {
		lines = append(lines, fmt.Sprintf("%s=%v", key, value))
	}
	sort.Strings(lines)
	return lines, nil
}

func checkKey(field string) error {
	if !slices.Contains(Keys, field) {
		return fmt.Errorf("unknown config key %q, expected one of %v", field, Keys)
	}
	return nil
}

func (p *Profile) read() (map[string]any, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(p.Path)
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(p.Path); os.IsNotExist(statErr) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", p.Path, err)
	}
	return v.AllSettings(), nil
}

func (p *Profile) write(settings map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(p.Path), 0700); err != nil {
		return fmt.Errorf("failed to create config folder: %w", err)
	}
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigPermissions(os.FileMode(0600))
	for key, value := range settings {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(p.Path); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", p.Path, err)
	}
	return nil
}
