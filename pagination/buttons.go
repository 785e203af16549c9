package pagination

import "github.com/bwmarrin/discordgo"

// Role names a navigation control slot on a view.
type Role string

const (
	RoleStart    Role = "start"
	RolePrevious Role = "previous"
	RoleStop     Role = "stop"
	RoleNext     Role = "next"
	RoleEnd      Role = "end"
)

// roleOrder is the on-screen order of the navigation controls.
var roleOrder = []Role{RoleStart, RolePrevious, RoleStop, RoleNext, RoleEnd}

// navigationRoles are the roles that move between pages. They are omitted
// entirely on single-page views; RoleStop is not part of this set.
var navigationRoles = map[Role]bool{
	RoleStart:    true,
	RolePrevious: true,
	RoleNext:     true,
	RoleEnd:      true,
}

// Button describes one navigation control. Either Emoji or Label (or both)
// may be set. Row places the control on the message; controls sharing a row
// are grouped into one action row.
type Button struct {
	Emoji string
	Label string
	Style discordgo.ButtonStyle
	Row   int
}

// defaultButtons returns the built-in control set: emoji buttons on row 1,
// leaving row 0 free for a category dropdown.
func defaultButtons() map[Role]*Button {
	return map[Role]*Button{
		RoleStart:    {Emoji: "⏪", Style: discordgo.SecondaryButton, Row: 1},
		RolePrevious: {Emoji: "◀️", Style: discordgo.SecondaryButton, Row: 1},
		RoleStop:     {Emoji: "⏹️", Style: discordgo.SecondaryButton, Row: 1},
		RoleNext:     {Emoji: "▶️", Style: discordgo.SecondaryButton, Row: 1},
		RoleEnd:      {Emoji: "⏩", Style: discordgo.SecondaryButton, Row: 1},
	}
}

// mergeButtons layers caller overrides on top of the defaults. A nil value
// removes the control, unknown roles are ignored.
func mergeButtons(overrides map[Role]*Button) map[Role]*Button {
	merged := defaultButtons()
	for role, btn := range overrides {
		if _, known := merged[role]; !known {
			continue
		}
		if btn == nil {
			delete(merged, role)
			continue
		}
		merged[role] = btn
	}
	return merged
}

// disabledAt reports whether the control for role should be disabled at the
// given page position. Stop stays enabled for the lifetime of the view.
func disabledAt(role Role, current, maxPages int) bool {
	switch role {
	case RoleStart, RolePrevious:
		return current == 0
	case RoleNext, RoleEnd:
		return current == maxPages-1
	default:
		return false
	}
}

func (b *Button) component(customID string, disabled bool) discordgo.Button {
	btn := discordgo.Button{
		Label:    b.Label,
		Style:    b.Style,
		CustomID: customID,
		Disabled: disabled,
	}
	if b.Emoji != "" {
		btn.Emoji = &discordgo.ComponentEmoji{Name: b.Emoji}
	}
	return btn
}
