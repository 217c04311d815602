package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"twc/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	PreflightConfig struct {
		Disable    bool   `yaml:"disable"`
		Custom     string `yaml:"custom,omitempty"`
		CustomPath string `yaml:"custom_path,omitempty" sanitize:"assure_file_access"`
	}

	FontSizeConfig struct {
		Size   float64 `yaml:"size" validate:"gt=0"`
		Height string  `yaml:"height" validate:"required"`
	}

	FontsConfig struct {
		Families map[string]string         `yaml:"families,omitempty" validate:"dive,required"`
		Sizes    map[string]FontSizeConfig `yaml:"sizes,omitempty" validate:"dive"`
	}

	CompilerConfig struct {
		Mode           common.InlineMode            `yaml:"mode" validate:"gte=0,lte=4"`
		MergeConflicts bool                         `yaml:"merge_conflicts"`
		Workers        int                          `yaml:"workers" validate:"min=1,max=256"`
		Preflight      PreflightConfig              `yaml:"preflight"`
		Breakpoints    map[string]int               `yaml:"breakpoints,omitempty" validate:"dive,gt=0"`
		Palette        map[string]map[string]string `yaml:"palette,omitempty" validate:"dive,dive,required"`
		Fonts          FontsConfig                  `yaml:"fonts"`
	}

	OutputConfig struct {
		Stylesheet            string   `yaml:"stylesheet" validate:"required"`
		FileNameTransliterate bool     `yaml:"file_name_transliterate"`
		InputExtensions       []string `yaml:"input_extensions" validate:"min=1,dive,required,startswith=."`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Compiler  CompilerConfig `yaml:"compiler"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("configuration sanitization failed: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
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

	// overwrite cfg values with values from the file, maps are merged
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

// ReadPreflight returns custom preflight text: inline text followed by the
// content of custom_path file when specified.
func (conf *PreflightConfig) ReadPreflight() (string, error) {
	text := conf.Custom
	if conf.CustomPath == "" {
		return text, nil
	}
	data, err := os.ReadFile(conf.CustomPath)
	if err != nil {
		return "", fmt.Errorf("unable to read custom preflight from %q: %w", conf.CustomPath, err)
	}
	if text != "" {
		text += "\n"
	}
	return text + string(data), nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// unnamed replaces file names which are empty after cleaning.
const unnamed = "_unnamed_"
