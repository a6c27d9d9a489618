// Package options implements the conference options model: a permissive
// Builder that collects settings and the immutable ConferenceOptions
// snapshot the engine is launched with.
package options

import (
	"github.com/dkeye/videoapi/internal/domain"
)

type optional[T any] struct {
	value T
	set   bool
}

func some[T any](v T) optional[T] { return optional[T]{value: v, set: true} }

// or returns o when it was explicitly set, fallback otherwise.
func (o optional[T]) or(fallback optional[T]) optional[T] {
	if o.set {
		return o
	}
	return fallback
}

// fields holds every scalar setting together with its set-ness.
type fields struct {
	apiID   optional[string]
	apiKey  optional[string]
	room    optional[string]
	subject optional[string]
	token   optional[string]

	colorScheme optional[domain.ColorScheme]

	audioOnly          optional[bool]
	audioMuted         optional[bool]
	videoMuted         optional[bool]
	welcomePageEnabled optional[bool]
}

// Builder stages conference settings. Nothing is validated while setting;
// the last write for a field wins. A Builder is meant for one configuration
// transaction and is not safe for concurrent use.
type Builder struct {
	f        fields
	flags    *domain.FeatureFlagStore
	userInfo *domain.UserInfo
}

func NewBuilder() *Builder {
	return &Builder{flags: domain.NewFeatureFlagStore()}
}

func (b *Builder) SetAPIID(id string) *Builder {
	b.f.apiID = some(id)
	return b
}

func (b *Builder) SetAPIKey(key string) *Builder {
	b.f.apiKey = some(key)
	return b
}

func (b *Builder) SetRoom(room string) *Builder {
	b.f.room = some(room)
	return b
}

func (b *Builder) SetSubject(subject string) *Builder {
	b.f.subject = some(subject)
	return b
}

// SetToken sets the JWT used to authenticate against the conference.
func (b *Builder) SetToken(token string) *Builder {
	b.f.token = some(token)
	return b
}

// SetColorScheme overrides the engine theme. The scheme is copied.
func (b *Builder) SetColorScheme(scheme domain.ColorScheme) *Builder {
	b.f.colorScheme = some(scheme.Clone())
	return b
}

func (b *Builder) SetAudioOnly(v bool) *Builder {
	b.f.audioOnly = some(v)
	return b
}

func (b *Builder) SetAudioMuted(v bool) *Builder {
	b.f.audioMuted = some(v)
	return b
}

func (b *Builder) SetVideoMuted(v bool) *Builder {
	b.f.videoMuted = some(v)
	return b
}

func (b *Builder) SetWelcomePageEnabled(v bool) *Builder {
	b.f.welcomePageEnabled = some(v)
	return b
}

// SetUserInfo sets the local participant; used when no token is given.
func (b *Builder) SetUserInfo(u *domain.UserInfo) *Builder {
	b.userInfo = u
	return b
}

// SetFeatureFlag sets a boolean flag.
func (b *Builder) SetFeatureFlag(name string, v bool) *Builder {
	return b.SetFeatureFlagValue(name, domain.Bool(v))
}

// SetFeatureFlagValue sets a flag of any supported shape. Unknown names
// are kept and forwarded to the engine.
func (b *Builder) SetFeatureFlagValue(name string, v domain.FlagValue) *Builder {
	if b.flags == nil {
		b.flags = domain.NewFeatureFlagStore()
	}
	b.flags.Set(name, v)
	return b
}

// Build snapshots the builder. Later changes to the builder do not affect
// the returned options.
func (b *Builder) Build() *ConferenceOptions {
	o := &ConferenceOptions{built: true, f: b.f}
	if b.f.colorScheme.set {
		o.f.colorScheme = some(b.f.colorScheme.value.Clone())
	}
	if b.flags != nil {
		o.flags = b.flags.Freeze()
	} else {
		o.flags = domain.FlagsFrom(nil)
	}
	o.userInfo.Store(b.userInfo)
	return o
}

// FromBuilder hands a fresh Builder to configure and returns the resulting
// snapshot. configure must not keep the builder. A nil configure yields
// default options.
func FromBuilder(configure func(*Builder)) *ConferenceOptions {
	b := NewBuilder()
	if configure != nil {
		configure(b)
	}
	return b.Build()
}
