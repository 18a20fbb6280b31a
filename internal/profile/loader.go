package profile

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed default_profile.yaml
var defaultProfileYAML []byte

//go:embed schema.json
var schemaJSON []byte

// Default returns the built-in profile.
func Default() (*Profile, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultProfileYAML)); err != nil {
		return nil, fmt.Errorf("failed to read default profile: %w", err)
	}
	return fromViper(v)
}

// Load reads a profile file (yaml, json or toml). An empty path yields the
// built-in profile.
func Load(path string) (*Profile, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}

	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "yml" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return fromViper(v)
}

// Parse builds a profile from raw content in the given format.
func Parse(data []byte, format string) (*Profile, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, &ConfigurationError{Field: "(root)", Reason: err.Error()}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Profile, error) {
	if err := validateSchema(v.AllSettings()); err != nil {
		return nil, err
	}

	var def Definition
	if err := v.Unmarshal(&def); err != nil {
		return nil, &ConfigurationError{Field: "(root)", Reason: err.Error()}
	}
	return Build(def)
}

func validateSchema(doc map[string]interface{}) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to validate profile schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	field := first.Field()
	if field == "" {
		field = "(root)"
	}
	return &ConfigurationError{Field: field, Reason: first.Description()}
}
