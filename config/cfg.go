package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"aesthetic/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	EngineConfig struct {
		Direction      common.Direction  `yaml:"direction" validate:"gte=0"`
		MediaOrder     common.MediaOrder `yaml:"media_order" validate:"gte=0"`
		Unit           string            `yaml:"unit" validate:"required,oneof=px em rem % vw vh pt"`
		Units          map[string]string `yaml:"units,omitempty" validate:"dive,keys,required,endkeys,required"`
		Deterministic  bool              `yaml:"deterministic"`
		VendorPrefixes bool              `yaml:"vendor_prefixes"`
		ClassPrefix    string            `yaml:"class_prefix,omitempty" validate:"omitempty,max=16"`
	}

	PageConfig struct {
		Title        string `yaml:"title"`
		Lang         string `yaml:"lang" validate:"required"`
		Template     string `yaml:"template,omitempty"`
		TemplatePath string `yaml:"template_path,omitempty" sanitize:"assure_file_access"`
	}

	OutputConfig struct {
		Format       OutputFormat `yaml:"format" validate:"gte=0"`
		NameTemplate string       `yaml:"name_template" validate:"required"`
		Page         PageConfig   `yaml:"page"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Engine    EngineConfig   `yaml:"engine"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, these are expanded later
	// with values of a particular document
	OutputNameTemplateFieldName TemplateFieldName = "name_template"
	PageTemplateFieldName       TemplateFieldName = "template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(PageTemplateFieldName)),
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
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
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

// PageTemplate returns page shell template text: inline template wins over
// template file, empty result means built-in page.
func (conf *PageConfig) PageTemplate() (string, error) {
	if len(conf.Template) > 0 {
		return conf.Template, nil
	}
	if len(conf.TemplatePath) == 0 {
		return "", nil
	}
	data, err := os.ReadFile(conf.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("unable to read page template: %w", err)
	}
	return string(data), nil
}
