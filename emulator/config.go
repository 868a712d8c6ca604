package emulator

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the emulator settings read from a TOML file.
type Config struct {
	Verbose bool              `toml:"verbose"` // Trace every instruction.
	Output  string            `toml:"output"`  // Output file, or "-" for stdout.
	Raw     bool              `toml:"raw"`     // Write output bytes unchanged.
	State   string            `toml:"state"`   // Machine state dump file.
	Equates map[string]string `toml:"equates"` // Assembler predefines.
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{
		Output:  "-",
		Equates: map[string]string{},
	}
}

// LoadConfig loads the configuration from path.
// A missing file yields the default configuration.
func LoadConfig(path string) (cfg Config, err error) {
	cfg = DefaultConfig()

	_, err = toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
		return
	}
	if err != nil {
		return
	}

	if cfg.Equates == nil {
		cfg.Equates = map[string]string{}
	}

	return
}

// SaveConfig writes the configuration to path.
func SaveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, buf, 0644)
}
