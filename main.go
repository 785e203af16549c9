package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"HelpBot/bot"
	"HelpBot/commands"
	"HelpBot/help"

	_ "HelpBot/commands/admin"
	_ "HelpBot/commands/general"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func handleMessage(b *bot.Bot) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author.ID == s.State.User.ID {
			return
		}

		if !strings.HasPrefix(m.Content, ".") {
			return
		}

		// Process commands that start with "."
		args := strings.Fields(m.Content)
		cmd := strings.ToLower(args[0][1:])
		if cmd == "" {
			return
		}

		if actual, isAlias := commands.CommandAliases[cmd]; isAlias {
			cmd = actual
		}
		handler, ok := commands.CommandMap[cmd]
		if !ok {
			return
		}

		// Commands disabled in this server are ignored outright.
		if m.GuildID != "" {
			disabled, err := commands.LoadDisabled(b.Db, m.GuildID)
			if err != nil {
				b.Log.Warn("disabled lookup failed", zap.String("guild", m.GuildID), zap.Error(err))
			} else if info, known := commands.CommandDetails[cmd]; known {
				if disabled.Commands[cmd] || disabled.CategoryDisabled(info.Category) {
					return
				}
			}
		}

		handler(b, s, m, args)
	}
}

func main() {
	godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	b, err := bot.NewBot(os.Getenv("DISCORD_TOKEN"), os.Getenv("DATABASE_URL"), log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}

	// Interaction failures surface to the user as a dismissable error view.
	menu := help.NewMenu(b.Menus, b.Db, log, help.Options{})
	b.Menus.OnError = menu.InteractionError

	b.Client.AddHandler(handleMessage(b))
	b.Client.AddHandler(b.Menus.Component)

	if err := b.Client.Open(); err != nil {
		log.Fatal("gateway connect failed", zap.Error(err))
	}
	defer b.Client.Close()

	log.Info("bot is running, press ctrl+c to exit")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}
