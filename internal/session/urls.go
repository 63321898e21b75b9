package session

import (
	"fmt"
	"strings"

	"github.com/X5-main/hr-platform-sub000/internal/model"
	"github.com/X5-main/hr-platform-sub000/internal/runtimectl"
)

// endpointURLs composes the remote-desktop and code-editor URLs from the
// container's IP on its session network. An empty IP yields empty strings,
// never an error.
func endpointURLs(ip string, vncPort, codePort int) (vncURL, codeURL string) {
	if ip == "" {
		return "", ""
	}
	return fmt.Sprintf("http://%s:%d/vnc.html", ip, vncPort),
		fmt.Sprintf("http://%s:%d", ip, codePort)
}

// sessionNetworkIP finds the container's IP on the attachment whose name
// follows the session-network naming convention.
func sessionNetworkIP(networks map[string]runtimectl.NetworkAttachment) string {
	for name, attachment := range networks {
		if strings.HasPrefix(name, model.SessionNetworkPrefix) {
			return attachment.IPAddress
		}
	}
	return ""
}
