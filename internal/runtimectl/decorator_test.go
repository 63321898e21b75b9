package runtimectl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/X5-main/hr-platform-sub000/internal/model"
)

// flakyClient fails each operation a fixed number of times before
// succeeding.
type flakyClient struct {
	failures int
	attempts int
}

func (f *flakyClient) failing() error {
	f.attempts++
	if f.attempts <= f.failures {
		return errors.New("transient engine error")
	}
	return nil
}

func (f *flakyClient) Ping(ctx context.Context) error                  { return f.failing() }
func (f *flakyClient) PullImage(ctx context.Context, ref string) error { return f.failing() }

func (f *flakyClient) CreateNetwork(ctx context.Context, name string, labels map[string]string) (NetworkID, error) {
	return "net-1", f.failing()
}

func (f *flakyClient) RemoveNetwork(ctx context.Context, id NetworkID) error { return f.failing() }

func (f *flakyClient) CreateContainer(ctx context.Context, spec model.ContainerSpec) (ContainerID, error) {
	return "ctr-1", f.failing()
}

func (f *flakyClient) StartContainer(ctx context.Context, id ContainerID) error { return f.failing() }

func (f *flakyClient) StopContainer(ctx context.Context, id ContainerID, timeoutSeconds int) error {
	return f.failing()
}

func (f *flakyClient) RemoveContainer(ctx context.Context, id ContainerID, force bool) error {
	return f.failing()
}

func (f *flakyClient) ExportWorkspace(ctx context.Context, id ContainerID, path string) ([]byte, error) {
	return nil, f.failing()
}

func (f *flakyClient) Inspect(ctx context.Context, id ContainerID) (*ContainerState, error) {
	f.attempts++
	return nil, ErrContainerNotFound
}

func TestRetryDecoratorRecoversTransientFailure(t *testing.T) {
	flaky := &flakyClient{failures: 2}
	d := NewRetryDecorator(flaky, 3, time.Millisecond)

	if err := d.Ping(context.Background()); err != nil {
		t.Fatalf("Ping after retries: %v", err)
	}
	if flaky.attempts != 3 {
		t.Errorf("attempts = %d, want 3", flaky.attempts)
	}
}

func TestRetryDecoratorExhaustsAttempts(t *testing.T) {
	flaky := &flakyClient{failures: 10}
	d := NewRetryDecorator(flaky, 2, time.Millisecond)

	err := d.Ping(context.Background())
	if err == nil {
		t.Fatal("want error after exhausted retries")
	}
	if flaky.attempts != 2 {
		t.Errorf("attempts = %d, want 2", flaky.attempts)
	}
}

func TestRetryDecoratorNotFoundIsNotRetried(t *testing.T) {
	flaky := &flakyClient{}
	d := NewRetryDecorator(flaky, 5, time.Millisecond)

	_, err := d.Inspect(context.Background(), "gone")
	if !errors.Is(err, ErrContainerNotFound) {
		t.Errorf("err = %v, want ErrContainerNotFound passthrough", err)
	}
	if flaky.attempts != 1 {
		t.Errorf("attempts = %d, not-found must not retry", flaky.attempts)
	}
}

func TestConcurrencyLimitDecoratorHonorsContext(t *testing.T) {
	d := NewConcurrencyLimitDecorator(&flakyClient{}, 1).(*ConcurrencyLimitDecorator)

	// Hold the only slot, then a second acquire must give up with the
	// context instead of blocking forever.
	if err := d.acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := d.Ping(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	d.release()

	if err := d.Ping(context.Background()); err != nil {
		t.Errorf("Ping after release: %v", err)
	}
}
