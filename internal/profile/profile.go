// Package profile builds the hardened container specification for a
// sandbox session: deny-by-default capabilities, read-only rootfs with
// sized tmpfs overlays, seccomp/apparmor references and resource caps.
package profile

import (
	"fmt"

	"github.com/X5-main/hr-platform-sub000/internal/model"
)

// Defaults is the static baseline every session container starts from.
type Defaults struct {
	Image           string
	User            string
	WorkspacePath   string
	Cmd             []string
	CPUCount        float64
	MemoryBytes     int64
	PidsLimit       int64
	TmpSizeMB       int
	WorkspaceSizeMB int
	SeccompProfile  string
	ApparmorProfile string
}

// Hardened returns the deny-by-default baseline. Only the capabilities an
// unprivileged interactive shell needs are added back.
func Hardened() Defaults {
	return Defaults{
		Image:           "assessment-sandbox:latest",
		User:            "candidate",
		WorkspacePath:   "/home/candidate/workspace",
		Cmd:             nil,
		CPUCount:        2,
		MemoryBytes:     2 << 30,
		PidsLimit:       256,
		TmpSizeMB:       256,
		WorkspaceSizeMB: 512,
		SeccompProfile:  "builtin",
		ApparmorProfile: "docker-default",
	}
}

// Overlay carries the per-session values layered onto the defaults.
type Overlay struct {
	SessionID string
	Labels    map[string]string
	// Network the container is attached to at creation time.
	NetworkName string
	NetworkID   string
}

// Build materializes the container spec for one session. Writable paths
// are tmpfs mounted noexec,nosuid so nothing persisted there can escalate.
func Build(d Defaults, o Overlay) model.ContainerSpec {
	return model.ContainerSpec{
		Image:      d.Image,
		Name:       "session-sandbox-" + o.SessionID,
		User:       d.User,
		WorkingDir: d.WorkspacePath,
		Env: map[string]string{
			"SESSION_ID": o.SessionID,
			"TERM":       "xterm-256color",
		},
		Cmd:    d.Cmd,
		Labels: o.Labels,
		Resources: model.ResourceLimits{
			CPUCount:    d.CPUCount,
			MemoryBytes: d.MemoryBytes,
			PidsLimit:   d.PidsLimit,
		},
		ReadOnlyRoot: true,
		Tmpfs: []model.TmpfsMount{
			{Path: "/tmp", Options: tmpfsOptions(d.TmpSizeMB)},
			{Path: d.WorkspacePath, Options: tmpfsOptions(d.WorkspaceSizeMB)},
		},
		SecurityOpt: []string{
			"no-new-privileges:true",
			"seccomp=" + d.SeccompProfile,
			"apparmor=" + d.ApparmorProfile,
		},
		CapDrop:     []string{"ALL"},
		CapAdd:      []string{"CHOWN", "SETGID", "SETUID"},
		NetworkName: o.NetworkName,
		NetworkID:   o.NetworkID,
	}
}

func tmpfsOptions(sizeMB int) string {
	return fmt.Sprintf("rw,noexec,nosuid,size=%dm", sizeMB)
}
