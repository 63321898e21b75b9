package session

import "errors"

// Step-level sentinels. Each is wrapped into the coarse
// "failed to create/destroy session" error together with its cause, so
// callers can errors.Is on either level.
var (
	ErrRuntimeUnavailable = errors.New("container runtime unavailable")
	ErrImagePull          = errors.New("image pull failed")
	ErrNetworkCreation    = errors.New("network creation failed")
	ErrContainerCreation  = errors.New("container creation failed")
	ErrContainerStart     = errors.New("container start failed")
)
