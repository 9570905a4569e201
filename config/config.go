/*Package config holds the tunables of the PTP transaction engine and
camera facade: compiled-in defaults seeded via koanf's structs.Provider,
optionally overridden by a YAML file on disk via koanf's file.Provider, so
a long-running host program embedding this library can retune it without a
recompile.
*/
package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
)

// Config holds the engine/facade tunables that are reasonable to override
// per deployment (a flaky USB hub, a device with a small maxPacketSize, a
// camera slow to drain a capture to storage).
type Config struct {
	// ChunkSizeBytes bounds the size of a single bulk write, the
	// container header included.
	ChunkSizeBytes int `yaml:"ChunkSizeBytes"`

	// ReadScratchBytes is the size of the engine's first bulk read of a
	// phase.
	ReadScratchBytes int `yaml:"ReadScratchBytes"`

	// TimeoutMillis is applied per USB bulk transfer; 0 means wait
	// indefinitely.
	TimeoutMillis int `yaml:"TimeoutMillis"`

	// DeviceBusyRetries bounds the facade's retry of a DeviceBusy
	// response; 0 disables the retry entirely.
	DeviceBusyRetries int `yaml:"DeviceBusyRetries"`

	// WalkRatePerSecond bounds how many GetObjectInfo/GetObjectHandles
	// requests per second Camera.Walk issues while traversing a store.
	WalkRatePerSecond float64 `yaml:"WalkRatePerSecond"`
}

// Default returns the compiled-in defaults: a 1 MiB write chunk, an
// 8 KiB read scratch buffer, a 5 second per-transfer timeout, 3
// DeviceBusy retries, and a 20 req/s walk rate.
func Default() Config {
	return Config{
		ChunkSizeBytes:    1 << 20,
		ReadScratchBytes:  8 << 10,
		TimeoutMillis:     5000,
		DeviceBusyRetries: 3,
		WalkRatePerSecond: 20,
	}
}

// Timeout returns TimeoutMillis as a time.Duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMillis) * time.Millisecond
}

// Load returns Default() overlaid with path if it exists and parses as
// YAML. A missing file is not an error, it means "use defaults" -- a
// deployment without a config file on disk is the normal case, not a
// startup failure.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "yaml"), nil); err != nil {
		return Config{}, err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !strings.Contains(err.Error(), "no such") {
			return Config{}, err
		}
	}
	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
