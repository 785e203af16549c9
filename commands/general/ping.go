package general

import (
	"fmt"

	"HelpBot/bot"

	"github.com/bwmarrin/discordgo"
)

func Ping(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	latency := s.HeartbeatLatency().Milliseconds()
	s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Pong! `%dms`", latency))
}
