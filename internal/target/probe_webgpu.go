//go:build webgpu

package target

import (
	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
)

func probeAdapter() (d Device, err error) {
	// The bindings panic when the wgpu_native library is not installed.
	defer func() {
		if r := recover(); r != nil {
			d, err = Device{}, errors.Wrapf(ErrNoDevice, "webgpu: native library not available: %v", r)
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return Device{}, errors.Wrapf(ErrNoDevice, "webgpu: %v", err)
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return Device{}, errors.Wrapf(ErrNoDevice, "webgpu: %v", err)
	}
	adapter.Release()
	return Device{Backend: "webgpu"}, nil
}
