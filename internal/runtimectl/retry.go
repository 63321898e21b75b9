package runtimectl

import (
	"context"
	"fmt"
	"time"

	"github.com/X5-main/hr-platform-sub000/internal/model"
)

// RetryDecorator layers a fixed-delay retry policy over a Client. The core
// client never retries on its own; operators opt into this wrapper when
// the engine socket is flaky.
type RetryDecorator struct {
	client  Client
	retries int
	delay   time.Duration
}

func NewRetryDecorator(client Client, retries int, delay time.Duration) Client {
	return &RetryDecorator{
		client:  client,
		retries: retries,
		delay:   delay,
	}
}

func (d *RetryDecorator) retry(ctx context.Context, fn func() error) error {
	var err error
	for i := 0; i < d.retries; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.delay):
		}
	}
	return fmt.Errorf("after %d attempts: %w", d.retries, err)
}

func isRetryable(err error) bool {
	return err != context.Canceled && err != context.DeadlineExceeded && err != ErrContainerNotFound
}

func (d *RetryDecorator) Ping(ctx context.Context) error {
	return d.retry(ctx, func() error {
		return d.client.Ping(ctx)
	})
}

func (d *RetryDecorator) PullImage(ctx context.Context, ref string) error {
	return d.retry(ctx, func() error {
		return d.client.PullImage(ctx, ref)
	})
}

func (d *RetryDecorator) CreateNetwork(ctx context.Context, name string, labels map[string]string) (NetworkID, error) {
	var id NetworkID
	var err error
	fn := func() error {
		id, err = d.client.CreateNetwork(ctx, name, labels)
		return err
	}
	if err := d.retry(ctx, fn); err != nil {
		return "", err
	}
	return id, nil
}

func (d *RetryDecorator) RemoveNetwork(ctx context.Context, id NetworkID) error {
	return d.retry(ctx, func() error {
		return d.client.RemoveNetwork(ctx, id)
	})
}

func (d *RetryDecorator) CreateContainer(ctx context.Context, spec model.ContainerSpec) (ContainerID, error) {
	var id ContainerID
	var err error
	fn := func() error {
		id, err = d.client.CreateContainer(ctx, spec)
		return err
	}
	if err := d.retry(ctx, fn); err != nil {
		return "", err
	}
	return id, nil
}

func (d *RetryDecorator) StartContainer(ctx context.Context, id ContainerID) error {
	return d.retry(ctx, func() error {
		return d.client.StartContainer(ctx, id)
	})
}

func (d *RetryDecorator) StopContainer(ctx context.Context, id ContainerID, timeoutSeconds int) error {
	return d.retry(ctx, func() error {
		return d.client.StopContainer(ctx, id, timeoutSeconds)
	})
}

func (d *RetryDecorator) RemoveContainer(ctx context.Context, id ContainerID, force bool) error {
	return d.retry(ctx, func() error {
		return d.client.RemoveContainer(ctx, id, force)
	})
}

func (d *RetryDecorator) ExportWorkspace(ctx context.Context, id ContainerID, path string) ([]byte, error) {
	var data []byte
	var err error
	fn := func() error {
		data, err = d.client.ExportWorkspace(ctx, id, path)
		return err
	}
	if err := d.retry(ctx, fn); err != nil {
		return nil, err
	}
	return data, nil
}

func (d *RetryDecorator) Inspect(ctx context.Context, id ContainerID) (*ContainerState, error) {
	var state *ContainerState
	var err error
	fn := func() error {
		state, err = d.client.Inspect(ctx, id)
		return err
	}
	if err := d.retry(ctx, fn); err != nil {
		return nil, err
	}
	return state, nil
}
