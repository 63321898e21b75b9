package runtimectl

import (
	"context"
	"errors"
	"time"

	"github.com/X5-main/hr-platform-sub000/internal/model"
)

type ContainerID = string
type NetworkID = string

// ErrContainerNotFound is the explicit not-found signal returned by Inspect.
// Callers must treat it as absence, not as a failure.
var ErrContainerNotFound = errors.New("container not found")

// NetworkAttachment is one network endpoint of an inspected container.
type NetworkAttachment struct {
	NetworkID NetworkID
	IPAddress string
}

// ContainerState is the live view of a container as reported by the engine.
// A zero FinishedAt means the container never exited.
type ContainerState struct {
	Running    bool
	StartedAt  time.Time
	FinishedAt time.Time
	Labels     map[string]string
	Networks   map[string]NetworkAttachment
}

// Client wraps the container engine primitives needed to run sandbox
// sessions. Every call is stateless and wraps its cause as
// "failed to <verb>: <cause>". The client itself performs no retries.
type Client interface {
	Ping(ctx context.Context) error
	PullImage(ctx context.Context, ref string) error
	CreateNetwork(ctx context.Context, name string, labels map[string]string) (NetworkID, error)
	RemoveNetwork(ctx context.Context, id NetworkID) error
	CreateContainer(ctx context.Context, spec model.ContainerSpec) (ContainerID, error)
	StartContainer(ctx context.Context, id ContainerID) error
	StopContainer(ctx context.Context, id ContainerID, timeoutSeconds int) error
	RemoveContainer(ctx context.Context, id ContainerID, force bool) error
	ExportWorkspace(ctx context.Context, id ContainerID, path string) ([]byte, error)
	Inspect(ctx context.Context, id ContainerID) (*ContainerState, error)
}
