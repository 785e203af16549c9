package admin

import (
	"HelpBot/bot"

	"github.com/bwmarrin/discordgo"
)

// canManage reports whether the message author may run enable/disable:
// either a bot admin (users table) or a member holding a role with the
// Administrator permission in this guild.
func canManage(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if isAdmin, err := b.IsAdmin(m.Author.ID); err == nil && isAdmin {
		return true
	}
	if m.Member == nil {
		return false
	}
	for _, roleID := range m.Member.Roles {
		role, err := s.State.Role(m.GuildID, roleID)
		if err != nil {
			continue
		}
		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}
	return false
}
