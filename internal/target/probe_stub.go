//go:build !webgpu

package target

import "github.com/pkg/errors"

func probeAdapter() (Device, error) {
	return Device{}, errors.Wrap(ErrNoDevice, "built without the webgpu tag")
}
