package target

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/gpuir/internal/mma"
	"github.com/born-ml/gpuir/internal/value"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 64, cfg.WarpSize)
	assert.Equal(t, value.TargetGPU, cfg.ExecutionTarget())
	assert.Equal(t, mma.Shapes(), cfg.Shapes())
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Config
		wantErr string
	}{
		{
			name: "nvidia defaults",
			yaml: "name: cuda\nvendor: nvidia\n",
			want: Config{Name: "cuda", Vendor: VendorNVIDIA, WarpSize: 32, Target: "GPU"},
		},
		{
			name: "explicit shapes",
			yaml: "vendor: amd\nwarp_size: 64\nexecution_target: GPU\nmma_shapes: [M32xN32xK8_B1, M16xN16xK4_B1]\n",
			want: Config{Vendor: VendorAMD, WarpSize: 64, Target: "GPU", MMAShapes: []string{"M32xN32xK8_B1", "M16xN16xK4_B1"}},
		},
		{name: "wrong warp", yaml: "vendor: amd\nwarp_size: 32\n", wantErr: "warp size 32 does not match amd (64)"},
		{name: "unknown vendor", yaml: "vendor: intel\n", wantErr: `unknown vendor "intel"`},
		{name: "unknown target", yaml: "execution_target: TPU\n", wantErr: "execution target"},
		{name: "unknown shape", yaml: "mma_shapes: [M128xN128xK1_B1]\n", wantErr: "unknown MMA shape"},
		{name: "bad yaml", yaml: "vendor: [", wantErr: "parsing target config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestParseConfigErrorsAreInvalidConfig(t *testing.T) {
	_, err := ParseConfig([]byte("vendor: intel\n"))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestConfigShapes(t *testing.T) {
	cfg, err := ParseConfig([]byte("mma_shapes: [M32xN32xK8_B1, M16xN16xK4_B1]\n"))
	require.NoError(t, err)
	assert.Equal(t, []mma.Shape{mma.M32xN32xK8B1, mma.M16xN16xK4B1}, cfg.Shapes())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: mi200\nvendor: amd\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "mi200", cfg.Name)
	assert.Equal(t, 64, cfg.WarpSize)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestProbe(t *testing.T) {
	d, err := Probe()
	if err != nil {
		assert.True(t, errors.Is(err, ErrNoDevice))
		t.Skipf("no GPU adapter: %v", err)
	}
	assert.NotEmpty(t, d.Backend)
}
