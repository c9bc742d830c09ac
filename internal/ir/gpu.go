package ir

// Address spaces of the GPU memory hierarchy, as numbered by the GPU backends.
const (
	GPUGlobalAddressSpace    = 1
	GPUWorkgroupAddressSpace = 3
	GPUPrivateAddressSpace   = 5
)
