package options

import "strings"

// NormalizeRoom cleans a room name taken from a link: it trims blanks,
// strips an "<apiID>-" prefix and a "-<apiKey>" suffix, and treats the
// literal "null" as no room.
func NormalizeRoom(room, apiID, apiKey string) string {
	room = strings.TrimSpace(room)
	if apiID != "" {
		room = strings.TrimPrefix(room, apiID+"-")
	}
	if apiKey != "" {
		room = strings.TrimSuffix(room, "-"+apiKey)
	}
	if room == "null" {
		return ""
	}
	return room
}
