package record

import (
	"context"

	"github.com/X5-main/hr-platform-sub000/internal/model"
)

// Store is the persisted session-record collaborator. The lifecycle core
// never touches it; the HTTP layer performs the check-then-create sequence
// here before provisioning, which is where "at most one active session per
// application" is enforced.
type Store interface {
	Save(ctx context.Context, session model.SandboxSession) error
	// Get returns nil without error when no record exists.
	Get(ctx context.Context, sessionID string) (*model.SandboxSession, error)
	SetStatus(ctx context.Context, sessionID string, status model.Status) error

	// ReserveApplication atomically claims the single active-session slot
	// for an application. It returns false when another session holds it.
	ReserveApplication(ctx context.Context, applicationID, token string) (bool, error)
	// AssignApplication overwrites the slot with the final session id once
	// provisioning succeeded.
	AssignApplication(ctx context.Context, applicationID, sessionID string) error
	ReleaseApplication(ctx context.Context, applicationID string) error
}
