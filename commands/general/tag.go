package general

import (
	"fmt"
	"strings"

	"HelpBot/bot"
	"HelpBot/pagination"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Tag dispatches the tag subcommands: show and list.
func Tag(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		s.ChannelMessageSend(m.ChannelID, "Tags are only available in servers.")
		return
	}
	if len(args) < 2 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `.tag show <name>` or `.tag list`")
		return
	}

	switch strings.ToLower(args[1]) {
	case "show":
		tagShow(b, s, m, args)
	case "list":
		tagList(b, s, m)
	default:
		s.ChannelMessageSend(m.ChannelID, "Unknown subcommand. Use `show` or `list`.")
	}
}

func tagShow(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 3 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `.tag show <name>`")
		return
	}
	name := strings.ToLower(args[2])

	var content string
	err := b.Db.QueryRow(`
		SELECT content FROM tags
		WHERE guild_id = $1 AND name = $2`,
		m.GuildID, name).Scan(&content)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("No tag named `%s` found.", name))
		return
	}
	s.ChannelMessageSend(m.ChannelID, content)
}

func tagList(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) {
	rows, err := b.Db.Query(`
		SELECT name FROM tags
		WHERE guild_id = $1
		ORDER BY name`,
		m.GuildID)
	if err != nil {
		b.Log.Error("tag list query failed", zap.String("guild", m.GuildID), zap.Error(err))
		s.ChannelMessageSend(m.ChannelID, "Error fetching tags.")
		return
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		s.ChannelMessageSend(m.ChannelID, "This server has no tags yet.")
		return
	}

	view, err := pagination.NewView(b.Menus, m.Author.ID, names, tagPage,
		pagination.WithPageSize(10))
	if err != nil {
		b.Log.Error("tag list view failed", zap.Error(err))
		return
	}
	if _, err := view.Start(m.ChannelID); err != nil {
		b.Log.Error("tag list send failed", zap.String("channel", m.ChannelID), zap.Error(err))
	}
}

func tagPage(view *pagination.View[string], page []string) (any, error) {
	var sb strings.Builder
	for _, name := range page {
		fmt.Fprintf(&sb, "`%s`\n", name)
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Tags",
		Description: sb.String(),
		Color:       0x00ff00,
	}
	if view.MaxPages() > 1 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d", view.CurrentPage()+1, view.MaxPages()),
		}
	}
	return embed, nil
}
