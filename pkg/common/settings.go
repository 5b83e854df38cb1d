package common

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fundsplit/config"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Settings holds the defaults that flags fall back to. Values come from the
// embedded default file, overlaid with an optional user file.
type Settings struct {
	InputFile string           `toml:"input_file" yaml:"input_file"`
	Transfer  TransferSettings `toml:"transfer" yaml:"transfer"`
	RPC       RPCSettings      `toml:"rpc" yaml:"rpc"`

	// Path of the user file that was applied, empty when only defaults are in use.
	Source string `toml:"-" yaml:"-"`
}

type TransferSettings struct {
	Amount        string        `toml:"amount" yaml:"amount"`
	Confirmations uint64        `toml:"confirmations" yaml:"confirmations"`
	Timeout       time.Duration `toml:"timeout" yaml:"timeout"`
	Pause         time.Duration `toml:"pause" yaml:"pause"`
	PollInterval  time.Duration `toml:"poll_interval" yaml:"poll_interval"`
}

type RPCSettings struct {
	Rate  float64 `toml:"rate" yaml:"rate"`
	Burst int     `toml:"burst" yaml:"burst"`
}

// DefaultSettings decodes the embedded default settings file.
func DefaultSettings() *Settings {
	var s Settings
	if _, err := toml.Decode(config.DefaultSettingsToml, &s); err != nil {
		panic(fmt.Sprintf("embedded default settings are invalid: %v", err))
	}
	return &s
}

// LoadSettings overlays the file at path onto the defaults. With an empty path
// ./fundsplit.toml is used when present; an explicitly named file must exist.
// Files ending in .yaml or .yml are read as YAML, anything else as TOML.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	explicit := path != ""
	if !explicit {
		path = DefaultSettingsFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(settings); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
	default:
		md, err := toml.Decode(string(data), settings)
		if err != nil {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse settings file %s: unknown key %q", path, undecoded[0].String())
		}
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings file %s: %w", path, err)
	}
	settings.Source = path
	return settings, nil
}

func (s *Settings) Validate() error {
	if _, err := ParseEther(s.Transfer.Amount); err != nil {
		return err
	}
	if s.Transfer.Timeout < 0 {
		return errors.New("transfer.timeout must not be negative")
	}
	if s.Transfer.Pause < 0 {
		return errors.New("transfer.pause must not be negative")
	}
	if s.Transfer.PollInterval < 0 {
		return errors.New("transfer.poll_interval must not be negative")
	}
	if s.RPC.Rate < 0 {
		return errors.New("rpc.rate must not be negative")
	}
	return nil
}
