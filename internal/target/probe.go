package target

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrNoDevice is returned by Probe when no GPU adapter can be opened.
var ErrNoDevice = errors.New("no GPU adapter available")

// Device is the result of probing the host for a GPU.
type Device struct {
	Backend string
}

// Probe looks for a GPU adapter. Builds without the webgpu tag never find one.
func Probe() (Device, error) {
	d, err := probeAdapter()
	if err != nil {
		klog.V(1).Infof("target: probe failed: %v", err)
		return Device{}, err
	}
	klog.V(1).Infof("target: found adapter via %s", d.Backend)
	return d, nil
}
