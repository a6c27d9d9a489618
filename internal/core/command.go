package core

// Command is a verb understood by the engine's command channel.
type Command string

const (
	CmdGetDevicesList  Command = "vGetDevicesList"
	CmdToggleAudio     Command = "vToggleAudio"
	CmdToggleVideo     Command = "vToggleVideo"
	CmdToggleRaiseHand Command = "vToggleRaiseHand"
	CmdToggleTileView  Command = "vToggleTileView"
)

var commands = map[Command]struct{}{
	CmdGetDevicesList:  {},
	CmdToggleAudio:     {},
	CmdToggleVideo:     {},
	CmdToggleRaiseHand: {},
	CmdToggleTileView:  {},
}

// ParseCommand maps a wire name to a known Command.
func ParseCommand(name string) (Command, bool) {
	c := Command(name)
	_, ok := commands[c]
	return c, ok
}

// Apply returns s after a toggle command. Commands that do not change
// media state return s unchanged.
func (s MediaState) Apply(cmd Command) MediaState {
	switch cmd {
	case CmdToggleAudio:
		s.AudioMuted = !s.AudioMuted
	case CmdToggleVideo:
		s.VideoMuted = !s.VideoMuted
	case CmdToggleRaiseHand:
		s.HandRaised = !s.HandRaised
	case CmdToggleTileView:
		s.TileView = !s.TileView
	}
	return s
}
