package runtimectl

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/strslice"
	docker "github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"

	"github.com/X5-main/hr-platform-sub000/internal/model"
)

type DockerClient struct {
	dockerClient *docker.Client
}

func NewDockerClient(dockerClient *docker.Client) *DockerClient {
	return &DockerClient{dockerClient}
}

func (c *DockerClient) Ping(ctx context.Context) error {
	if _, err := c.dockerClient.Ping(ctx); err != nil {
		return fmt.Errorf("failed to reach container engine: %w", err)
	}
	return nil
}

// PullImage ensures ref is locally available. The pull stream must be
// drained for the pull to actually complete.
func (c *DockerClient) PullImage(ctx context.Context, ref string) error {
	reader, err := c.dockerClient.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image: %w", err)
	}
	defer reader.Close()

	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("failed to pull image: %w", err)
	}
	return nil
}

// CreateNetwork creates an isolated bridge network. Duplicate names are
// rejected by the engine, not here.
func (c *DockerClient) CreateNetwork(ctx context.Context, name string, labels map[string]string) (NetworkID, error) {
	resp, err := c.dockerClient.NetworkCreate(ctx, name, network.CreateOptions{
		Driver:   "bridge",
		Internal: true,
		Labels:   labels,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create network: %w", err)
	}
	return resp.ID, nil
}

func (c *DockerClient) RemoveNetwork(ctx context.Context, id NetworkID) error {
	if err := c.dockerClient.NetworkRemove(ctx, id); err != nil {
		return fmt.Errorf("failed to remove network: %w", err)
	}
	return nil
}

func (c *DockerClient) CreateContainer(ctx context.Context, spec model.ContainerSpec) (ContainerID, error) {
	env := make([]string, 0, len(spec.Env))
	for k, v := range spec.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	tmpfs := make(map[string]string, len(spec.Tmpfs))
	for _, m := range spec.Tmpfs {
		tmpfs[m.Path] = m.Options
	}

	pidsLimit := spec.Resources.PidsLimit
	hostConfig := &container.HostConfig{
		ReadonlyRootfs: spec.ReadOnlyRoot,
		CapDrop:        strslice.StrSlice(spec.CapDrop),
		CapAdd:         strslice.StrSlice(spec.CapAdd),
		SecurityOpt:    spec.SecurityOpt,
		Tmpfs:          tmpfs,
		Resources: container.Resources{
			NanoCPUs:  int64(spec.Resources.CPUCount * 1e9),
			Memory:    spec.Resources.MemoryBytes,
			PidsLimit: &pidsLimit,
		},
	}

	var networkingConfig *network.NetworkingConfig
	if spec.NetworkName != "" {
		networkingConfig = &network.NetworkingConfig{
			EndpointsConfig: map[string]*network.EndpointSettings{
				spec.NetworkName: {NetworkID: spec.NetworkID},
			},
		}
	}

	resp, err := c.dockerClient.ContainerCreate(
		ctx,
		&container.Config{
			Image:      spec.Image,
			User:       spec.User,
			WorkingDir: spec.WorkingDir,
			Env:        env,
			Cmd:        spec.Cmd,
			Labels:     spec.Labels,
		},
		hostConfig,
		networkingConfig,
		nil,
		spec.Name,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}
	return resp.ID, nil
}

func (c *DockerClient) StartContainer(ctx context.Context, id ContainerID) error {
	if err := c.dockerClient.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}
	return nil
}

// StopContainer is idempotent: an "already stopped" answer from the engine
// is success, not an error.
func (c *DockerClient) StopContainer(ctx context.Context, id ContainerID, timeoutSeconds int) error {
	err := c.dockerClient.ContainerStop(ctx, id, container.StopOptions{Timeout: &timeoutSeconds})
	if err != nil && !errdefs.IsNotModified(err) {
		return fmt.Errorf("failed to stop container: %w", err)
	}
	return nil
}

func (c *DockerClient) RemoveContainer(ctx context.Context, id ContainerID, force bool) error {
	err := c.dockerClient.ContainerRemove(ctx, id, container.RemoveOptions{
		Force:         force,
		RemoveVolumes: true,
	})
	if err != nil {
		return fmt.Errorf("failed to remove container: %w", err)
	}
	return nil
}

// ExportWorkspace returns the container's workspace directory as a tar
// archive, ready to be stored durably.
func (c *DockerClient) ExportWorkspace(ctx context.Context, id ContainerID, path string) ([]byte, error) {
	reader, _, err := c.dockerClient.CopyFromContainer(ctx, id, path)
	if err != nil {
		return nil, fmt.Errorf("failed to export workspace: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to export workspace: %w", err)
	}
	return data, nil
}

func (c *DockerClient) Inspect(ctx context.Context, id ContainerID) (*ContainerState, error) {
	info, err := c.dockerClient.ContainerInspect(ctx, id)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return nil, ErrContainerNotFound
		}
		return nil, fmt.Errorf("failed to inspect container: %w", err)
	}

	state := &ContainerState{
		Networks: make(map[string]NetworkAttachment),
	}
	if info.State != nil {
		state.Running = info.State.Running
		state.StartedAt = parseEngineTime(info.State.StartedAt)
		state.FinishedAt = parseEngineTime(info.State.FinishedAt)
	}
	if info.Config != nil {
		state.Labels = info.Config.Labels
	}
	if info.NetworkSettings != nil {
		for name, ep := range info.NetworkSettings.Networks {
			state.Networks[name] = NetworkAttachment{
				NetworkID: ep.NetworkID,
				IPAddress: ep.IPAddress,
			}
		}
	}
	return state, nil
}

// parseEngineTime maps the engine's RFC3339 timestamps to time.Time.
// The engine reports "0001-01-01T00:00:00Z" for a container that never
// exited; that and unparsable values both come back as the zero time.
func parseEngineTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

var _ Client = (*DockerClient)(nil)
