// Package rtc holds the WebRTC settings the server hands to browser peers.
// The server never opens a PeerConnection itself; clients build theirs from
// the configuration published here.
package rtc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pion/webrtc/v4"
)

const DefaultSTUN = "stun:stun.l.google.com:19302"

var ErrTURNCredentials = errors.New("turn urls need both username and credential")

// ParseICEServers groups STUN and TURN urls into ICE servers. TURN entries
// share the given credentials.
func ParseICEServers(urls []string, username, credential string) ([]webrtc.ICEServer, error) {
	var stun, turn []string
	for _, raw := range urls {
		u := strings.TrimSpace(raw)
		if u == "" {
			continue
		}
		switch {
		case strings.HasPrefix(u, "stun:"), strings.HasPrefix(u, "stuns:"):
			stun = append(stun, u)
		case strings.HasPrefix(u, "turn:"), strings.HasPrefix(u, "turns:"):
			turn = append(turn, u)
		default:
			return nil, fmt.Errorf("unsupported ice url scheme: %q", u)
		}
	}

	var servers []webrtc.ICEServer
	if len(stun) > 0 {
		servers = append(servers, webrtc.ICEServer{URLs: stun})
	}
	if len(turn) > 0 {
		username = strings.TrimSpace(username)
		if username == "" || credential == "" {
			return nil, ErrTURNCredentials
		}
		servers = append(servers, webrtc.ICEServer{
			URLs:           turn,
			Username:       username,
			Credential:     credential,
			CredentialType: webrtc.ICECredentialTypePassword,
		})
	}
	return servers, nil
}

// DefaultWebRTCConfig is what clients use when nothing is configured.
func DefaultWebRTCConfig() webrtc.Configuration {
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{
				URLs: []string{DefaultSTUN},
			},
		},
	}
}

// WebRTCConfig builds the client configuration, falling back to the
// default when servers is empty.
func WebRTCConfig(servers []webrtc.ICEServer) webrtc.Configuration {
	if len(servers) == 0 {
		return DefaultWebRTCConfig()
	}
	return webrtc.Configuration{ICEServers: servers}
}
