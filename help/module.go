package help

import (
	"fmt"
	"strings"

	"HelpBot/bot"
	"HelpBot/commands"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func init() {
	module := &commands.ModuleInfo{
		Name:        "Help",
		Description: "Interactive help menus with category navigation",
		Version:     "1.0.0",
		Author:      "Bot Team",
		Category:    "General",
		Config: map[string]interface{}{
			"commands_per_page": 6,
		},
		Commands: []commands.CommandInfo{
			{
				Name:        "help",
				Aliases:     []string{"h"},
				Description: "Displays help information for commands",
				Usage:       ".help [command|category]",
				Category:    "General",
			},
			{
				Name:        "commandlist",
				Aliases:     []string{"cl"},
				Description: "Lists all available commands by category",
				Usage:       ".commandlist",
				Category:    "General",
			},
		},
	}

	commands.RegisterModule(module)

	commands.RegisterCommand("help", Help, "h")
	commands.RegisterCommand("commandlist", CommandList, "cl")
}

// Help handles the .help command: no argument shows the bot-wide menu, an
// argument resolves to a category, a group, or a leaf command.
func Help(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		return // Don't respond to DMs
	}

	menu := NewMenu(b.Menus, b.Db, b.Log, Options{SortCommands: true})
	owner := m.Author.ID

	if len(args) > 1 {
		sendLookupHelp(b, menu, m, args[1:])
		return
	}

	if err := menu.SendBotHelp(m.GuildID, m.ChannelID, owner); err != nil {
		b.Log.Error("bot help failed", zap.String("guild", m.GuildID), zap.Error(err))
		s.ChannelMessageSend(m.ChannelID, "An error occurred. Please try again.")
	}
}

func sendLookupHelp(b *bot.Bot, menu *Menu, m *discordgo.MessageCreate, tokens []string) {
	owner := m.Author.ID
	query := strings.Join(tokens, " ")

	if cat, ok := commands.FindCategory(tokens[0]); ok && len(tokens) == 1 {
		if err := menu.SendCategoryHelp(m.GuildID, m.ChannelID, owner, cat.Name); err != nil {
			b.Log.Error("category help failed", zap.String("category", cat.Name), zap.Error(err))
		}
		return
	}

	cmd, ok := commands.FindCommand(tokens)
	if !ok {
		if err := menu.SendError(m.ChannelID, owner, fmt.Sprintf("No command called %q found.", query)); err != nil {
			b.Log.Error("error view failed", zap.Error(err))
		}
		return
	}

	disabled, err := commands.LoadDisabled(b.Db, m.GuildID)
	if err != nil {
		b.Log.Error("disabled lookup failed", zap.String("guild", m.GuildID), zap.Error(err))
		disabled = &commands.Disabled{}
	}
	if len(disabled.Filter([]commands.CommandInfo{cmd})) == 0 {
		if err := menu.SendError(m.ChannelID, owner, fmt.Sprintf("Command `%s` is disabled.", cmd.Name)); err != nil {
			b.Log.Error("error view failed", zap.Error(err))
		}
		return
	}

	if cmd.IsGroup() {
		err = menu.SendGroupHelp(m.ChannelID, owner, cmd)
	} else {
		err = menu.SendCommandHelp(m.ChannelID, owner, cmd)
	}
	if err != nil {
		b.Log.Error("command help failed", zap.String("command", cmd.Name), zap.Error(err))
	}
}

// CommandList handles .commandlist: a flat paginated list of every visible
// command, one category at a time.
func CommandList(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		return
	}

	menu := NewMenu(b.Menus, b.Db, b.Log, Options{SortCommands: true})
	if err := menu.SendCommandList(m.GuildID, m.ChannelID, m.Author.ID); err != nil {
		b.Log.Error("command list failed", zap.String("guild", m.GuildID), zap.Error(err))
		s.ChannelMessageSend(m.ChannelID, "An error occurred. Please try again.")
	}
}
