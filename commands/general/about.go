package general

import (
	"fmt"

	"HelpBot/bot"
	"HelpBot/commands"

	"github.com/bwmarrin/discordgo"
)

func About(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	embed := &discordgo.MessageEmbed{
		Title:       "About",
		Description: "A help-menu bot with paginated, interactive command listings.",
		Color:       0x00ff00,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Modules",
				Value:  fmt.Sprintf("%d", len(commands.RegisteredModules)),
				Inline: true,
			},
			{
				Name:   "Commands",
				Value:  fmt.Sprintf("%d", len(commands.CommandDetails)),
				Inline: true,
			},
			{
				Name:   "Servers",
				Value:  fmt.Sprintf("%d", len(s.State.Guilds)),
				Inline: true,
			},
		},
	}
	s.ChannelMessageSendEmbed(m.ChannelID, embed)
}
