package runtimectl

import (
	"context"

	"github.com/X5-main/hr-platform-sub000/internal/model"
)

// ConcurrencyLimitDecorator caps the number of engine calls in flight.
// This bounds pressure on the engine socket; it does not queue or schedule
// whole sessions.
type ConcurrencyLimitDecorator struct {
	client    Client
	semaphore chan struct{}
}

func NewConcurrencyLimitDecorator(client Client, maxConcurrent int) Client {
	return &ConcurrencyLimitDecorator{
		client:    client,
		semaphore: make(chan struct{}, maxConcurrent),
	}
}

func (d *ConcurrencyLimitDecorator) acquire(ctx context.Context) error {
	select {
	case d.semaphore <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *ConcurrencyLimitDecorator) release() {
	<-d.semaphore
}

func (d *ConcurrencyLimitDecorator) Ping(ctx context.Context) error {
	if err := d.acquire(ctx); err != nil {
		return err
	}
	defer d.release()
	return d.client.Ping(ctx)
}

func (d *ConcurrencyLimitDecorator) PullImage(ctx context.Context, ref string) error {
	if err := d.acquire(ctx); err != nil {
		return err
	}
	defer d.release()
	return d.client.PullImage(ctx, ref)
}

func (d *ConcurrencyLimitDecorator) CreateNetwork(ctx context.Context, name string, labels map[string]string) (NetworkID, error) {
	if err := d.acquire(ctx); err != nil {
		return "", err
	}
	defer d.release()
	return d.client.CreateNetwork(ctx, name, labels)
}

func (d *ConcurrencyLimitDecorator) RemoveNetwork(ctx context.Context, id NetworkID) error {
	if err := d.acquire(ctx); err != nil {
		return err
	}
	defer d.release()
	return d.client.RemoveNetwork(ctx, id)
}

func (d *ConcurrencyLimitDecorator) CreateContainer(ctx context.Context, spec model.ContainerSpec) (ContainerID, error) {
	if err := d.acquire(ctx); err != nil {
		return "", err
	}
	defer d.release()
	return d.client.CreateContainer(ctx, spec)
}

func (d *ConcurrencyLimitDecorator) StartContainer(ctx context.Context, id ContainerID) error {
	if err := d.acquire(ctx); err != nil {
		return err
	}
	defer d.release()
	return d.client.StartContainer(ctx, id)
}

func (d *ConcurrencyLimitDecorator) StopContainer(ctx context.Context, id ContainerID, timeoutSeconds int) error {
	if err := d.acquire(ctx); err != nil {
		return err
	}
	defer d.release()
	return d.client.StopContainer(ctx, id, timeoutSeconds)
}

func (d *ConcurrencyLimitDecorator) RemoveContainer(ctx context.Context, id ContainerID, force bool) error {
	if err := d.acquire(ctx); err != nil {
		return err
	}
	defer d.release()
	return d.client.RemoveContainer(ctx, id, force)
}

func (d *ConcurrencyLimitDecorator) ExportWorkspace(ctx context.Context, id ContainerID, path string) ([]byte, error) {
	if err := d.acquire(ctx); err != nil {
		return nil, err
	}
	defer d.release()
	return d.client.ExportWorkspace(ctx, id, path)
}

func (d *ConcurrencyLimitDecorator) Inspect(ctx context.Context, id ContainerID) (*ContainerState, error) {
	if err := d.acquire(ctx); err != nil {
		return nil, err
	}
	defer d.release()
	return d.client.Inspect(ctx, id)
}
