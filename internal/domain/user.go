// Package domain contains the values the options model is built from:
// participant info, feature flags and color schemes.
package domain

import (
	"errors"
	"net/url"
	"strings"
)

const (
	MaxDisplayNameLen = 128
)

var ErrDisplayNameTooLong = errors.New("display name too long")

// UserInfo describes the local participant. Every field is optional and
// the value never changes once constructed; share it freely.
type UserInfo struct {
	displayName string
	email       string
	avatar      *url.URL
}

// NewUserInfo is a tiny helper to avoid ad-hoc struct literals in adapters.
// A nil avatar means "no avatar".
func NewUserInfo(displayName, email string, avatar *url.URL) *UserInfo {
	u := &UserInfo{displayName: displayName, email: email}
	if avatar != nil {
		cp := *avatar
		u.avatar = &cp
	}
	return u
}

// ParseUserInfo builds a UserInfo from raw strings, as they arrive from
// config files and HTTP payloads. An empty avatar is allowed.
func ParseUserInfo(displayName, email, avatar string) (*UserInfo, error) {
	if len(displayName) > MaxDisplayNameLen {
		return nil, ErrDisplayNameTooLong
	}
	var av *url.URL
	if s := strings.TrimSpace(avatar); s != "" {
		u, err := url.Parse(s)
		if err != nil {
			return nil, err
		}
		av = u
	}
	return NewUserInfo(displayName, email, av), nil
}

func (u *UserInfo) DisplayName() string { return u.displayName }
func (u *UserInfo) Email() string       { return u.email }

// Avatar returns a copy of the avatar URL, or nil.
func (u *UserInfo) Avatar() *url.URL {
	if u.avatar == nil {
		return nil
	}
	cp := *u.avatar
	return &cp
}

// IsEmpty reports whether no field is set.
func (u *UserInfo) IsEmpty() bool {
	return u == nil || (u.displayName == "" && u.email == "" && u.avatar == nil)
}

// Props renders the participant the way the engine expects it.
func (u *UserInfo) Props() map[string]any {
	props := make(map[string]any, 3)
	if u.displayName != "" {
		props["displayName"] = u.displayName
	}
	if u.email != "" {
		props["email"] = u.email
	}
	if u.avatar != nil {
		props["avatarURL"] = u.avatar.String()
	}
	return props
}
