package app

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkeye/videoapi/internal/options"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestRouting_Matches(t *testing.T) {
	r := Routing{CustomURLScheme: "videoapi", UniversalLinkDomains: []string{"meet.example.com"}}

	cases := []struct {
		raw  string
		want bool
	}{
		{"videoapi://standup", true},
		{"VideoAPI://standup", true},
		{"https://meet.example.com/standup", true},
		{"https://MEET.example.com/standup", true},
		{"http://meet.example.com:8443/standup", true},
		{"https://evil.meet.example.com/standup", false},
		{"https://meet.example.com.evil.org/standup", false},
		{"ftp://meet.example.com/standup", false},
		{"mailto:someone@example.com", false},
		{"/relative/path", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, r.matches(mustURL(t, tc.raw)), tc.raw)
	}
	assert.False(t, r.matches(nil))
	assert.False(t, Routing{}.matches(mustURL(t, "videoapi://x")))
}

func TestRoomFromURL(t *testing.T) {
	assert.Equal(t, "standup", roomFromURL(mustURL(t, "https://meet.example.com/team/standup/"), "videoapi"))
	assert.Equal(t, "standup", roomFromURL(mustURL(t, "videoapi://standup"), "videoapi"))
	assert.Equal(t, "standup", roomFromURL(mustURL(t, "videoapi:standup"), "videoapi"))
	assert.Equal(t, "", roomFromURL(mustURL(t, "https://meet.example.com/"), "videoapi"))
}

func TestOptionsFromURL(t *testing.T) {
	u := mustURL(t, "https://meet.example.com/app-standup-key?apiID=app&apiKey=key&jwt=tok&subject=Daily&audioMuted=true&videoMuted=nope")
	o := optionsFromURL(u, "videoapi")

	assert.Equal(t, "standup", o.Room())
	assert.Equal(t, "app", o.APIID())
	assert.Equal(t, "key", o.APIKey())
	assert.Equal(t, "tok", o.Token())
	assert.Equal(t, "Daily", o.Subject())
	assert.True(t, o.AudioMuted())
	assert.False(t, o.IsSet(options.FieldVideoMuted), "malformed boolean is ignored")
}

func TestOptionsFromURL_NullRoom(t *testing.T) {
	o := optionsFromURL(mustURL(t, "videoapi://null?token=abc"), "videoapi")
	assert.True(t, o.IsRoomUnset())
	assert.Equal(t, "abc", o.Token())
}
