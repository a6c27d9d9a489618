package domain

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserInfo(t *testing.T) {
	u, err := ParseUserInfo("Ada", "ada@example.com", "https://cdn.example.com/ada.png")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.DisplayName())
	assert.Equal(t, "ada@example.com", u.Email())
	assert.Equal(t, "https://cdn.example.com/ada.png", u.Avatar().String())
	assert.Equal(t, map[string]any{
		"displayName": "Ada",
		"email":       "ada@example.com",
		"avatarURL":   "https://cdn.example.com/ada.png",
	}, u.Props())
}

func TestParseUserInfo_Errors(t *testing.T) {
	_, err := ParseUserInfo(strings.Repeat("x", MaxDisplayNameLen+1), "", "")
	assert.ErrorIs(t, err, ErrDisplayNameTooLong)

	_, err = ParseUserInfo("Ada", "", "http://[::1")
	assert.Error(t, err)
}

func TestUserInfo_AvatarIsCopied(t *testing.T) {
	av, _ := url.Parse("https://cdn.example.com/a.png")
	u := NewUserInfo("", "", av)
	av.Host = "evil.example.com"

	got := u.Avatar()
	got.Path = "/changed"
	assert.Equal(t, "https://cdn.example.com/a.png", u.Avatar().String())
}

func TestUserInfo_IsEmpty(t *testing.T) {
	var nilUser *UserInfo
	assert.True(t, nilUser.IsEmpty())
	assert.True(t, NewUserInfo("", "", nil).IsEmpty())
	assert.False(t, NewUserInfo("", "a@b.c", nil).IsEmpty())
	assert.Empty(t, NewUserInfo("", "", nil).Props())
}

func TestColorScheme_CloneIsDeep(t *testing.T) {
	cs := ColorScheme{"Header": map[string]any{"background": "#000"}, "list": []any{"a"}}
	cp := cs.Clone()
	cp["Header"].(map[string]any)["background"] = "#fff"
	cp["list"].([]any)[0] = "b"

	assert.Equal(t, "#000", cs["Header"].(map[string]any)["background"])
	assert.Equal(t, "a", cs["list"].([]any)[0])
	assert.Nil(t, ColorScheme(nil).Clone())
}
