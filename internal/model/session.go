package model

import "time"

// Status is the lifecycle state of a sandbox session.
type Status string

const (
	StatusPending  Status = "pending"
	StatusSpawning Status = "spawning"
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusStopped  Status = "stopped"
	StatusError    Status = "error"
)

// Terminal reports whether no further forward transition is allowed.
// A new session must be created instead of re-entering active.
func (s Status) Terminal() bool {
	switch s {
	case StatusExpired, StatusStopped, StatusError:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is a valid forward
// transition. Reconciliation uses active→expired and active→stopped to
// correct drift against live runtime state.
func (s Status) CanTransition(next Status) bool {
	if s.Terminal() {
		return false
	}
	switch s {
	case StatusPending:
		return next == StatusSpawning || next == StatusError
	case StatusSpawning:
		return next == StatusActive || next == StatusError
	case StatusActive:
		return next == StatusExpired || next == StatusStopped || next == StatusError
	}
	return false
}

// SandboxSession is the materialized view of one provisioned assessment
// environment. It is created in-memory and handed to the caller for
// persistence; the runtime container and network are the durable state.
type SandboxSession struct {
	SessionID     string    `json:"sessionId"`
	ApplicationID string    `json:"applicationId"`
	CandidateID   string    `json:"candidateId"`
	ContainerID   string    `json:"containerId"`
	NetworkID     string    `json:"networkId"`
	Status        Status    `json:"status"`
	VNCURL        string    `json:"vncUrl"`
	CodeServerURL string    `json:"codeServerUrl"`
	WorkspacePath string    `json:"workspacePath"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}
