package main

import (
	"testing"

	"github.com/born-ml/gpuir/internal/ir"
	"github.com/born-ml/gpuir/internal/mma"
	"github.com/born-ml/gpuir/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInts(t *testing.T) {
	got, err := parseInts("2, 0,1")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, got)

	got, err = parseInts("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseInts("1,x")
	assert.Error(t, err)
}

func TestBuildGemmVerifies(t *testing.T) {
	for _, vendor := range []target.Vendor{target.VendorAMD, target.VendorNVIDIA} {
		cfg := target.DefaultConfig()
		cfg.Vendor = vendor
		cfg.WarpSize = target.DefaultWarpSize(vendor)
		for _, shape := range []mma.Shape{mma.M32xN32xK8B1, mma.M16xN16xK16B1, mma.M64xN64xK4B2} {
			mod, err := buildGemm(cfg, shape)
			require.NoError(t, err)
			assert.NoError(t, ir.Verify(mod.Operation), "%s/%s", vendor, shape)
		}
	}
}

func TestBuildGemmRejectsUnknownShape(t *testing.T) {
	_, err := buildGemm(target.DefaultConfig(), mma.Shape(-1))
	assert.Error(t, err)
}
