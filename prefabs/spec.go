package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/milk9111/rtscamera/camera"
	"gopkg.in/yaml.v3"
)

// LoadSpec decodes a prefab over the values already in spec, so callers pass
// their defaults in and partial files keep them. Unknown keys are errors.
func LoadSpec[T any](filename string, spec *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := DecodeSpec(data, spec); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

func DecodeSpec[T any](data []byte, spec *T) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(spec); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadCameraConfig reads a camera config prefab on top of
// camera.DefaultConfig and validates the result.
func LoadCameraConfig(filename string) (camera.Config, error) {
	cfg := camera.DefaultConfig()
	if err := LoadSpec(filename, &cfg); err != nil {
		return camera.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return camera.Config{}, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return cfg, nil
}
