// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"
)

const DefaultMaxNameLen = 36

var (
	ErrNameTooLong = errors.New("name too long")
	ErrNameEmpty   = errors.New("name empty")
)

// ConnID identifies one live connection. Assigned by the server.
type ConnID string

// Client is the registry's metadata for one connection.
type Client struct {
	ID         ConnID `json:"id"`
	Name       string `json:"name"`
	Privileged bool   `json:"-"`
}

// NormalizeName trims the name and checks it against maxLen (in runes).
// maxLen <= 0 falls back to DefaultMaxNameLen.
func NormalizeName(name string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxNameLen
	}
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return "", ErrNameEmpty
	}
	if len([]rune(name)) > maxLen {
		return "", ErrNameTooLong
	}
	return name, nil
}
