// Package target describes the GPU a module is compiled for: vendor, warp size
// and the MMA shapes the code generator may use.
package target

import (
	"os"

	"github.com/born-ml/gpuir/internal/mma"
	"github.com/born-ml/gpuir/internal/value"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Vendor identifies a GPU vendor.
type Vendor string

// Known vendors.
const (
	VendorAMD    Vendor = "amd"
	VendorNVIDIA Vendor = "nvidia"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid target configuration")

// Config is the compilation target.
type Config struct {
	Name      string   `yaml:"name"`
	Vendor    Vendor   `yaml:"vendor"`
	WarpSize  int      `yaml:"warp_size"`
	Target    string   `yaml:"execution_target"`
	MMAShapes []string `yaml:"mma_shapes,omitempty"`
}

// DefaultConfig returns the configuration of an AMD GPU with 64-lane wavefronts.
func DefaultConfig() Config {
	return Config{
		Name:     "rocm",
		Vendor:   VendorAMD,
		WarpSize: 64,
		Target:   value.TargetGPU.String(),
	}
}

// DefaultWarpSize returns the warp size of vendor's GPUs, or 0 if unknown.
func DefaultWarpSize(v Vendor) int {
	switch v {
	case VendorAMD:
		return 64
	case VendorNVIDIA:
		return 32
	default:
		return 0
	}
}

// LoadConfig reads a YAML configuration. A missing vendor means AMD, a missing
// warp size the vendor's, and a missing execution target GPU.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading target config")
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.WithMessagef(err, "%s", path)
	}
	return cfg, nil
}

// ParseConfig parses and validates a YAML configuration.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parsing target config")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Vendor == "" {
		c.Vendor = VendorAMD
	}
	if c.WarpSize == 0 {
		c.WarpSize = DefaultWarpSize(c.Vendor)
	}
	if c.Target == "" {
		c.Target = value.TargetGPU.String()
	}
}

// Validate checks the vendor, warp size, execution target and shape names.
func (c Config) Validate() error {
	want := DefaultWarpSize(c.Vendor)
	if want == 0 {
		return errors.Wrapf(ErrInvalidConfig, "unknown vendor %q", c.Vendor)
	}
	if c.WarpSize != want {
		return errors.Wrapf(ErrInvalidConfig, "warp size %d does not match %s (%d)", c.WarpSize, c.Vendor, want)
	}
	if _, err := value.ParseExecutionTarget(c.Target); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	for _, name := range c.MMAShapes {
		if _, err := mma.ParseShape(name); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%v", err)
		}
	}
	return nil
}

// ExecutionTarget returns the parsed execution target. c must be valid.
func (c Config) ExecutionTarget() value.ExecutionTarget {
	t, _ := value.ParseExecutionTarget(c.Target)
	return t
}

// Shapes returns the MMA shapes enabled by c: the listed ones, or the whole
// catalog when none are listed. c must be valid.
func (c Config) Shapes() []mma.Shape {
	if len(c.MMAShapes) == 0 {
		return mma.Shapes()
	}
	out := make([]mma.Shape, 0, len(c.MMAShapes))
	for _, name := range c.MMAShapes {
		s, _ := mma.ParseShape(name)
		out = append(out, s)
	}
	return out
}
