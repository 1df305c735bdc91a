package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/embatbr/subtitler/internal/subtitle"
	"gopkg.in/yaml.v3"
)

// picked up from the working directory when no --config is given
const DefaultFileName = "subtitler.yaml"

type Delimiter struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// rules for --nodeaf
type DeafConfig struct {
	Delimiters       []Delimiter `yaml:"delimiters"`
	SpeakerLabels    bool        `yaml:"speaker_labels"`
	MusicSymbols     string      `yaml:"music_symbols"`
	DropLineContains []string    `yaml:"drop_line_contains"`
}

type Config struct {
	// absorb malformed period lines instead of failing
	Lenient bool `yaml:"lenient"`

	Deaf DeafConfig `yaml:"deaf"`

	configFilePath string
}

func Default() *Config {
	rules := subtitle.DefaultDeafRules()

	c := &Config{}
	c.Lenient = false
	for _, d := range rules.Delimiters {
		c.Deaf.Delimiters = append(c.Deaf.Delimiters, Delimiter{Left: d.Left, Right: d.Right})
	}
	c.Deaf.SpeakerLabels = rules.SpeakerLabels
	c.Deaf.MusicSymbols = rules.MusicSymbols
	c.Deaf.DropLineContains = rules.DropLineContains

	return c
}

// Load reads the YAML file at path over the defaults. With an empty path it
// falls back to DefaultFileName in the working directory, and to plain
// defaults when that file does not exist either.
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFileName); errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.configFilePath = path

	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// path of the file the config came from, "" for defaults
func (c *Config) Path() string {
	return c.configFilePath
}

func (c *Config) normalize() error {
	for i, d := range c.Deaf.Delimiters {
		d.Left = strings.TrimSpace(d.Left)
		d.Right = strings.TrimSpace(d.Right)
		if d.Left == "" || d.Right == "" {
			return fmt.Errorf("deaf.delimiters[%d]: left and right must both be set", i)
		}
		c.Deaf.Delimiters[i] = d
	}

	var contains []string
	for _, s := range c.Deaf.DropLineContains {
		if s != "" {
			contains = append(contains, s)
		}
	}
	c.Deaf.DropLineContains = contains

	c.Deaf.MusicSymbols = strings.TrimSpace(c.Deaf.MusicSymbols)
	return nil
}

func (c *Config) DeafRules() subtitle.DeafRules {
	rules := subtitle.DeafRules{
		SpeakerLabels:    c.Deaf.SpeakerLabels,
		MusicSymbols:     c.Deaf.MusicSymbols,
		DropLineContains: c.Deaf.DropLineContains,
	}
	for _, d := range c.Deaf.Delimiters {
		rules.Delimiters = append(rules.Delimiters, subtitle.Delimiter{Left: d.Left, Right: d.Right})
	}
	return rules
}
