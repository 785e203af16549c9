package admin

import (
	"fmt"
	"strings"

	"HelpBot/bot"
	"HelpBot/commands"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// DisableCommand allows server admins to disable specific commands or categories in their server
func DisableCommand(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !canManage(b, s, m) {
		s.ChannelMessageSend(m.ChannelID, "You must be an administrator to use this command.")
		return
	}

	if len(args) < 3 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `.disable command <command>` or `.disable category <category>`")
		return
	}

	disableType := strings.ToLower(args[1])
	name := strings.ToLower(args[2])

	if disableType != "command" && disableType != "category" {
		s.ChannelMessageSend(m.ChannelID, "Invalid type. Use 'command' or 'category'.")
		return
	}

	if disableType == "category" {
		if _, ok := commands.FindCategory(name); !ok {
			s.ChannelMessageSend(m.ChannelID, "Invalid category.")
			return
		}
	}

	// Prevent disabling essential commands
	if disableType == "command" && (name == "help" || name == "enable" || name == "disable") {
		s.ChannelMessageSend(m.ChannelID, "You cannot disable this command.")
		return
	}

	_, err := b.Db.Exec(`
		INSERT INTO disabled_commands (guild_id, name, type)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, name, type) DO NOTHING`,
		m.GuildID, name, disableType)
	if err != nil {
		b.Log.Error("disable failed",
			zap.String("type", disableType),
			zap.String("name", name),
			zap.String("guild", m.GuildID),
			zap.Error(err))
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Error disabling %s.", disableType))
		return
	}

	s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Successfully disabled %s `%s`.", disableType, name))
}
