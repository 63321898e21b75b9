package model

// TmpfsMount is a writable path layered over the read-only rootfs.
// Options are raw docker tmpfs mount flags, e.g. "rw,noexec,nosuid,size=256m".
type TmpfsMount struct {
	Path    string
	Options string
}

// ResourceLimits caps what one session may consume on the host.
type ResourceLimits struct {
	CPUCount    float64
	MemoryBytes int64
	PidsLimit   int64
}

// ContainerSpec is everything needed to materialize one hardened session
// container. Built once per session from static defaults overlaid with the
// session identifiers; see the profile package.
type ContainerSpec struct {
	Image        string
	Name         string
	User         string
	WorkingDir   string
	Env          map[string]string
	Cmd          []string
	Labels       map[string]string
	Resources    ResourceLimits
	ReadOnlyRoot bool
	Tmpfs        []TmpfsMount
	SecurityOpt  []string
	CapDrop      []string
	CapAdd       []string
	NetworkName  string
	NetworkID    string
}
