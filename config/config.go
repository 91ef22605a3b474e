// Package config loads the INI configuration shared by all qdrnaseq
// subcommands. Keys are addressed as section/option pairs, mirroring the
// layout of config.ini ([general], [nextflow], [rnaseq],
// [rnaseq-references], [rnafusion], [report-rnaseq], [report-rnafusion],
// [slims]).
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	v *viper.Viper
}

// Load reads the config file at path. When path is empty, config.ini is
// searched for in the working directory and in $HOME/.config/qdrnaseq/.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("ini")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/qdrnaseq/")
	}

	v.SetDefault("general.strandedness", "reverse")
	v.SetDefault("nextflow.executable", "nextflow")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	return &Config{v: v}, nil
}

// Get returns the value for option in section, or "" when unset.
func (c *Config) Get(section, option string) string {
	return c.v.GetString(section + "." + option)
}

// GetInt returns the integer value for option in section.
func (c *Config) GetInt(section, option string) int {
	return c.v.GetInt(section + "." + option)
}

// Has reports whether option is set in section.
func (c *Config) Has(section, option string) bool {
	return c.v.IsSet(section + "." + option)
}

// HasSection reports whether any option is set in section.
func (c *Config) HasSection(section string) bool {
	return len(c.Section(section)) > 0
}

// List splits a comma-separated option into trimmed values.
func (c *Config) List(section, option string) []string {
	raw := c.Get(section, option)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Section returns all options set in section, keyed by lowercased option
// name.
func (c *Config) Section(section string) map[string]string {
	sub := c.v.Sub(section)
	if sub == nil {
		return nil
	}
	ans := make(map[string]string)
	for _, key := range sub.AllKeys() {
		ans[strings.ToLower(key)] = sub.GetString(key)
	}
	return ans
}
