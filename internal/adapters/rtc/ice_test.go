package rtc

import (
	"testing"

	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseICEServers(t *testing.T) {
	servers, err := ParseICEServers([]string{
		" stun:a.example:3478 ",
		"",
		"turn:b.example:3478",
		"turns:b.example:5349",
	}, "user", "pass")
	require.NoError(t, err)
	require.Len(t, servers, 2)

	assert.Equal(t, []string{"stun:a.example:3478"}, servers[0].URLs)
	assert.Empty(t, servers[0].Username)

	assert.Equal(t, []string{"turn:b.example:3478", "turns:b.example:5349"}, servers[1].URLs)
	assert.Equal(t, "user", servers[1].Username)
	assert.Equal(t, "pass", servers[1].Credential)
	assert.Equal(t, webrtc.ICECredentialTypePassword, servers[1].CredentialType)
}

func TestParseICEServersErrors(t *testing.T) {
	_, err := ParseICEServers([]string{"http://nope"}, "", "")
	assert.Error(t, err)

	_, err = ParseICEServers([]string{"turn:x.example"}, "user", "")
	assert.ErrorIs(t, err, ErrTURNCredentials)
}

func TestWebRTCConfig(t *testing.T) {
	cfg := WebRTCConfig(nil)
	require.Len(t, cfg.ICEServers, 1)
	assert.Equal(t, []string{DefaultSTUN}, cfg.ICEServers[0].URLs)

	custom := []webrtc.ICEServer{{URLs: []string{"stun:c.example"}}}
	assert.Equal(t, custom, WebRTCConfig(custom).ICEServers)
}
