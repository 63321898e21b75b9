// Package session implements the sandbox session lifecycle: provisioning
// of hardened, network-isolated assessment environments, teardown, and
// reconciliation of session status from live runtime state.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/X5-main/hr-platform-sub000/internal/archive"
	"github.com/X5-main/hr-platform-sub000/internal/events"
	"github.com/X5-main/hr-platform-sub000/internal/model"
	"github.com/X5-main/hr-platform-sub000/internal/profile"
	"github.com/X5-main/hr-platform-sub000/internal/runtimectl"
)

// Orchestrator sequences runtime calls into the session-scoped create and
// destroy workflows. It holds no session state of its own; the returned
// SandboxSession is the caller's to persist.
//
// Precondition: "at most one active session per application" is enforced
// by the caller's check-then-create sequence against the record store, not
// here.
type Orchestrator struct {
	runtime runtimectl.Client
	archive archive.Store
	events  *events.Publisher
	logger  *slog.Logger
	cfg     Config
}

func NewOrchestrator(runtime runtimectl.Client, archiveStore archive.Store, publisher *events.Publisher, logger *slog.Logger, cfg Config) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		runtime: runtime,
		archive: archiveStore,
		events:  publisher,
		logger:  logger,
		cfg:     cfg,
	}
}

// CreateSession provisions a complete sandbox session and returns it with
// status active. It either fully succeeds or fails with a coarse error;
// partially created runtime objects are rolled back best-effort so a
// failed call leaks nothing.
//
// durationMinutes <= 0 selects the 60 minute default.
func (o *Orchestrator) CreateSession(ctx context.Context, applicationID, candidateID string, durationMinutes int) (*model.SandboxSession, error) {
	if err := o.runtime.Ping(ctx); err != nil {
		return nil, o.createFailed(fmt.Errorf("%w: %w", ErrRuntimeUnavailable, err))
	}

	sessionID := uuid.NewString()
	createdAt := time.Now().UTC()
	labels := model.OwnershipLabels(sessionID, applicationID, candidateID, createdAt.Format(time.RFC3339))

	if err := o.runtime.PullImage(ctx, o.cfg.Defaults.Image); err != nil {
		return nil, o.createFailed(fmt.Errorf("%w: %w", ErrImagePull, err))
	}

	networkName := model.SessionNetworkName(sessionID)
	networkID, err := o.runtime.CreateNetwork(ctx, networkName, labels)
	if err != nil {
		return nil, o.createFailed(fmt.Errorf("%w: %w", ErrNetworkCreation, err))
	}

	spec := profile.Build(o.cfg.Defaults, profile.Overlay{
		SessionID:   sessionID,
		Labels:      labels,
		NetworkName: networkName,
		NetworkID:   networkID,
	})

	containerID, err := o.runtime.CreateContainer(ctx, spec)
	if err != nil {
		o.rollback(ctx, sessionID, "", networkID)
		return nil, o.createFailed(fmt.Errorf("%w: %w", ErrContainerCreation, err))
	}

	if err := o.runtime.StartContainer(ctx, containerID); err != nil {
		o.rollback(ctx, sessionID, containerID, networkID)
		return nil, o.createFailed(fmt.Errorf("%w: %w", ErrContainerStart, err))
	}

	vncURL, codeURL := o.lookupEndpoints(ctx, sessionID, containerID)

	duration := o.cfg.DefaultDuration
	if durationMinutes > 0 {
		duration = time.Duration(durationMinutes) * time.Minute
	}

	sess := &model.SandboxSession{
		SessionID:     sessionID,
		ApplicationID: applicationID,
		CandidateID:   candidateID,
		ContainerID:   containerID,
		NetworkID:     networkID,
		Status:        model.StatusActive,
		VNCURL:        vncURL,
		CodeServerURL: codeURL,
		WorkspacePath: o.cfg.Defaults.WorkspacePath,
		CreatedAt:     createdAt,
		ExpiresAt:     createdAt.Add(duration),
	}

	o.logger.Info("session created",
		"session_id", sessionID,
		"application_id", applicationID,
		"candidate_id", candidateID,
		"container_id", containerID,
		"network_id", networkID,
		"expires_at", sess.ExpiresAt,
	)
	o.events.Publish(events.SubjectSessionCreated, map[string]interface{}{
		"session_id":     sessionID,
		"application_id": applicationID,
		"candidate_id":   candidateID,
	})

	return sess, nil
}

// lookupEndpoints reads the container's IP on the session network. Missing
// network info yields empty URLs; the session is still usable and a later
// reconcile will pick the endpoints up.
func (o *Orchestrator) lookupEndpoints(ctx context.Context, sessionID string, containerID runtimectl.ContainerID) (string, string) {
	state, err := o.runtime.Inspect(ctx, containerID)
	if err != nil {
		o.logger.Warn("could not inspect container for endpoint URLs",
			"session_id", sessionID, "container_id", containerID, "error", err)
		return "", ""
	}
	return endpointURLs(sessionNetworkIP(state.Networks), o.cfg.VNCPort, o.cfg.CodeServerPort)
}

// DestroySession tears a session down in order: archive, stop, remove
// container, remove network. Archive failure is logged and skipped; the
// remaining steps must succeed or the coarse destroy error is returned.
func (o *Orchestrator) DestroySession(ctx context.Context, sessionID string, containerID runtimectl.ContainerID, networkID runtimectl.NetworkID) error {
	o.archiveWorkspace(ctx, sessionID, containerID)

	if err := o.runtime.StopContainer(ctx, containerID, o.cfg.StopTimeoutSeconds); err != nil {
		return o.destroyFailed(sessionID, err)
	}
	if err := o.runtime.RemoveContainer(ctx, containerID, true); err != nil {
		return o.destroyFailed(sessionID, err)
	}
	if err := o.runtime.RemoveNetwork(ctx, networkID); err != nil {
		return o.destroyFailed(sessionID, err)
	}

	o.logger.Info("session destroyed", "session_id", sessionID, "container_id", containerID)
	o.events.Publish(events.SubjectSessionDestroyed, map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}

// archiveWorkspace exports the candidate's workspace to durable storage.
// Data loss here is accepted rather than blocking teardown.
func (o *Orchestrator) archiveWorkspace(ctx context.Context, sessionID string, containerID runtimectl.ContainerID) {
	if o.archive == nil {
		return
	}
	data, err := o.runtime.ExportWorkspace(ctx, containerID, o.cfg.Defaults.WorkspacePath)
	if err != nil {
		o.logger.Warn("workspace export failed, continuing teardown",
			"session_id", sessionID, "container_id", containerID, "error", err)
		return
	}
	name := fmt.Sprintf("%s/workspace.tar", sessionID)
	if err := o.archive.Put(ctx, o.cfg.ArchiveBucket, name, data); err != nil {
		o.logger.Warn("workspace archive upload failed, continuing teardown",
			"session_id", sessionID, "object", name, "error", err)
	}
}

// rollback removes runtime objects left behind by a failed create. Errors
// are logged only: the original failure is what the caller needs to see.
func (o *Orchestrator) rollback(ctx context.Context, sessionID string, containerID runtimectl.ContainerID, networkID runtimectl.NetworkID) {
	if containerID != "" {
		if err := o.runtime.RemoveContainer(ctx, containerID, true); err != nil {
			o.logger.Warn("rollback: container removal failed",
				"session_id", sessionID, "container_id", containerID, "error", err)
		}
	}
	if networkID != "" {
		if err := o.runtime.RemoveNetwork(ctx, networkID); err != nil {
			o.logger.Warn("rollback: network removal failed",
				"session_id", sessionID, "network_id", networkID, "error", err)
		}
	}
}

func (o *Orchestrator) createFailed(err error) error {
	o.logger.Error("session creation failed", "error", err)
	return fmt.Errorf("failed to create session: %w", err)
}

func (o *Orchestrator) destroyFailed(sessionID string, err error) error {
	o.logger.Error("session teardown failed", "session_id", sessionID, "error", err)
	return fmt.Errorf("failed to destroy session: %w", err)
}
