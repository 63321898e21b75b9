package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/X5-main/hr-platform-sub000/internal/model"
	"github.com/X5-main/hr-platform-sub000/internal/runtimectl"
)

// fakeRuntime is an in-memory runtimectl.Client recording the calls the
// workflows make, with per-operation failure injection.
type fakeRuntime struct {
	mu    sync.Mutex
	calls []string

	pingErr          error
	pullErr          error
	networkErr       error
	createErr        error
	startErr         error
	stopErr          error
	removeErr        error
	removeNetworkErr error
	exportErr        error
	inspectErr       error

	// inspectState overrides the synthesized inspect answer when set.
	inspectState *runtimectl.ContainerState

	networkSeq   int
	containerSeq int
	lastNetwork  string
	lastSpec     model.ContainerSpec

	removedContainers []string
	removedNetworks   []string
	stoppedContainers []string
	exportData        []byte
}

func (f *fakeRuntime) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRuntime) callNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRuntime) Ping(ctx context.Context) error {
	f.record("ping")
	return f.pingErr
}

func (f *fakeRuntime) PullImage(ctx context.Context, ref string) error {
	f.record("pull")
	return f.pullErr
}

func (f *fakeRuntime) CreateNetwork(ctx context.Context, name string, labels map[string]string) (runtimectl.NetworkID, error) {
	f.record("createNetwork")
	if f.networkErr != nil {
		return "", f.networkErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.networkSeq++
	f.lastNetwork = name
	return fmt.Sprintf("net-%d", f.networkSeq), nil
}

func (f *fakeRuntime) RemoveNetwork(ctx context.Context, id runtimectl.NetworkID) error {
	f.record("removeNetwork")
	if f.removeNetworkErr != nil {
		return f.removeNetworkErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removedNetworks = append(f.removedNetworks, id)
	return nil
}

func (f *fakeRuntime) CreateContainer(ctx context.Context, spec model.ContainerSpec) (runtimectl.ContainerID, error) {
	f.record("createContainer")
	if f.createErr != nil {
		return "", f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.containerSeq++
	f.lastSpec = spec
	return fmt.Sprintf("ctr-%d", f.containerSeq), nil
}

func (f *fakeRuntime) StartContainer(ctx context.Context, id runtimectl.ContainerID) error {
	f.record("start")
	return f.startErr
}

func (f *fakeRuntime) StopContainer(ctx context.Context, id runtimectl.ContainerID, timeoutSeconds int) error {
	f.record("stop")
	if f.stopErr != nil {
		return f.stopErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stoppedContainers = append(f.stoppedContainers, id)
	return nil
}

func (f *fakeRuntime) RemoveContainer(ctx context.Context, id runtimectl.ContainerID, force bool) error {
	f.record("removeContainer")
	if f.removeErr != nil {
		return f.removeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removedContainers = append(f.removedContainers, id)
	return nil
}

func (f *fakeRuntime) ExportWorkspace(ctx context.Context, id runtimectl.ContainerID, path string) ([]byte, error) {
	f.record("export")
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return f.exportData, nil
}

func (f *fakeRuntime) Inspect(ctx context.Context, id runtimectl.ContainerID) (*runtimectl.ContainerState, error) {
	f.record("inspect")
	if f.inspectErr != nil {
		return nil, f.inspectErr
	}
	if f.inspectState != nil {
		return f.inspectState, nil
	}
	// Synthesize a running container from the last created spec, the way
	// the engine would report it right after start.
	f.mu.Lock()
	defer f.mu.Unlock()
	return &runtimectl.ContainerState{
		Running: true,
		Labels:  f.lastSpec.Labels,
		Networks: map[string]runtimectl.NetworkAttachment{
			f.lastSpec.NetworkName: {
				NetworkID: f.lastSpec.NetworkID,
				IPAddress: "172.20.0.2",
			},
		},
	}, nil
}

var _ runtimectl.Client = (*fakeRuntime)(nil)

type fakeArchive struct {
	putErr error
	puts   []string
}

func (f *fakeArchive) Put(ctx context.Context, bucket, name string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.puts = append(f.puts, bucket+"/"+name)
	return nil
}

func (f *fakeArchive) Load(ctx context.Context, bucket, name string) ([]byte, error) {
	return nil, nil
}
