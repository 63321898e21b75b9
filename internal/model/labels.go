package model

// Ownership labels attached to every runtime object this service creates.
// They are the only durable wire format the core owns: getStatus
// reconstructs session identity from them without any other state.
const (
	LabelSessionID     = "assess.session-id"
	LabelApplicationID = "assess.application-id"
	LabelCandidateID   = "assess.candidate-id"
	LabelManaged       = "assess.managed"
	LabelCreatedAt     = "assess.created-at"
)

// SessionNetworkPrefix prefixes the deterministic per-session network name.
const SessionNetworkPrefix = "session-network-"

// SessionNetworkName derives the isolated bridge network name for a session.
func SessionNetworkName(sessionID string) string {
	return SessionNetworkPrefix + sessionID
}

// OwnershipLabels builds the label set stamped onto a session's container
// and network.
func OwnershipLabels(sessionID, applicationID, candidateID, createdAt string) map[string]string {
	return map[string]string{
		LabelSessionID:     sessionID,
		LabelApplicationID: applicationID,
		LabelCandidateID:   candidateID,
		LabelManaged:       "true",
		LabelCreatedAt:     createdAt,
	}
}
