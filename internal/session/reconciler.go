package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/X5-main/hr-platform-sub000/internal/model"
	"github.com/X5-main/hr-platform-sub000/internal/runtimectl"
)

// Reconciler derives the authoritative session view purely from live
// runtime inspection and ownership labels. It never consults a persisted
// record; polling callers use it to detect drift in theirs.
type Reconciler struct {
	runtime runtimectl.Client
	cfg     Config
}

func NewReconciler(runtime runtimectl.Client, cfg Config) *Reconciler {
	return &Reconciler{runtime: runtime, cfg: cfg}
}

// GetStatus returns the reconciled session for containerID, or nil when
// the container does not exist or is not one of ours.
func (r *Reconciler) GetStatus(ctx context.Context, containerID runtimectl.ContainerID) (*model.SandboxSession, error) {
	state, err := r.runtime.Inspect(ctx, containerID)
	if errors.Is(err, runtimectl.ErrContainerNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile session: %w", err)
	}

	sessionID := state.Labels[model.LabelSessionID]
	if sessionID == "" || state.Labels[model.LabelManaged] != "true" {
		// Exists but is not a managed session container.
		return nil, nil
	}

	status := model.StatusStopped
	switch {
	case state.Running:
		status = model.StatusActive
	case !state.FinishedAt.IsZero():
		status = model.StatusExpired
	}

	ip := sessionNetworkIP(state.Networks)
	vncURL, codeURL := endpointURLs(ip, r.cfg.VNCPort, r.cfg.CodeServerPort)

	var networkID string
	if attachment, ok := state.Networks[model.SessionNetworkName(sessionID)]; ok {
		networkID = attachment.NetworkID
	}

	createdAt, _ := time.Parse(time.RFC3339, state.Labels[model.LabelCreatedAt])

	return &model.SandboxSession{
		SessionID:     sessionID,
		ApplicationID: state.Labels[model.LabelApplicationID],
		CandidateID:   state.Labels[model.LabelCandidateID],
		ContainerID:   containerID,
		NetworkID:     networkID,
		Status:        status,
		VNCURL:        vncURL,
		CodeServerURL: codeURL,
		WorkspacePath: r.cfg.Defaults.WorkspacePath,
		CreatedAt:     createdAt,
	}, nil
}
