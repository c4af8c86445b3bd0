package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"runtime"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	OutputConfig struct {
		Dir   string `yaml:"dir" sanitize:"path_clean" validate:"required"`
		Clean bool   `yaml:"clean"`
	}

	SourceConfig struct {
		Kind       string        `yaml:"kind" validate:"oneof=script dir"`
		Runtime    string        `yaml:"runtime" validate:"required_if=Kind script"`
		ProjectDir string        `yaml:"project_dir"`
		DumpDir    string        `yaml:"dump_dir" validate:"required_if=Kind dir"`
		Timeout    time.Duration `yaml:"timeout" validate:"gte=0"`
		CacheKey   string        `yaml:"cache_key" validate:"required"`
		Hashed     bool          `yaml:"hashed"`
	}

	TokensConfig struct {
		Prefix string `yaml:"prefix" validate:"required"`
		JSON   bool   `yaml:"json"`
	}

	FormatterConfig struct {
		Engine      string `yaml:"engine" validate:"oneof=builtin biome none"`
		Binary      string `yaml:"binary" validate:"required_if=Engine biome"`
		IndentStyle string `yaml:"indent_style" validate:"oneof=space tab"`
		IndentWidth int    `yaml:"indent_width" validate:"min=1,max=8"`
	}

	SelectorsConfig struct {
		ScopeClass   string `yaml:"scope_class"`
		WrapperClass string `yaml:"wrapper_class"`
	}

	KeyframesConfig struct {
		Enable bool `yaml:"enable"`
		Dedupe bool `yaml:"dedupe"`
	}

	ComponentsConfig struct {
		ClassPrefix string            `yaml:"class_prefix" validate:"required"`
		Discover    bool              `yaml:"discover"`
		MinSize     int               `yaml:"min_size" validate:"gte=0"`
		Workers     int               `yaml:"workers" validate:"gte=0"`
		Names       []string          `yaml:"names" validate:"dive,required"`
		Prefixes    map[string]string `yaml:"prefixes" validate:"dive,keys,required,endkeys,required"`
		Skip        []string          `yaml:"skip" validate:"dive,required"`
	}

	ExtensionsConfig struct {
		Icon bool `yaml:"icon"`
		Wave bool `yaml:"wave"`
	}

	EntriesConfig struct {
		BundleAll   bool   `yaml:"bundle_all"`
		IndexHeader string `yaml:"index_header"`
		ThemeHeader string `yaml:"theme_header"`
		AllHeader   string `yaml:"all_header"`
	}

	WatchConfig struct {
		Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Output     OutputConfig     `yaml:"output"`
		Source     SourceConfig     `yaml:"source"`
		Tokens     TokensConfig     `yaml:"tokens"`
		Formatter  FormatterConfig  `yaml:"formatter"`
		Selectors  SelectorsConfig  `yaml:"selectors"`
		Keyframes  KeyframesConfig  `yaml:"keyframes"`
		Components ComponentsConfig `yaml:"components"`
		Extensions ExtensionsConfig `yaml:"extensions"`
		Entries    EntriesConfig    `yaml:"entries"`
		Watch      WatchConfig      `yaml:"watch"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, these are rendered later
	// with entry point data
	IndexHeaderFieldName TemplateFieldName = "index_header"
	ThemeHeaderFieldName TemplateFieldName = "theme_header"
	AllHeaderFieldName   TemplateFieldName = "all_header"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(IndexHeaderFieldName)),
	gencfg.WithDoNotExpandField(string(ThemeHeaderFieldName)),
	gencfg.WithDoNotExpandField(string(AllHeaderFieldName)),
)

// EffectiveWorkers returns number of parallel splitting workers.
func (c *ComponentsConfig) EffectiveWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template and
// performs validation. Lists in the file replace defaults, maps (component
// prefixes) are merged with them.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
