package general

import (
	"HelpBot/commands"
)

func init() {
	module := &commands.ModuleInfo{
		Name:         "General",
		Description:  "General utility commands",
		Version:      "1.0.0",
		Author:       "Bot Team",
		Category:     "General",
		Dependencies: []string{},
		Config:       map[string]interface{}{},
		Commands: []commands.CommandInfo{
			{
				Name:        "ping",
				Aliases:     []string{},
				Description: "Checks the bot's latency",
				Usage:       ".ping",
				Category:    "General",
			},
			{
				Name:        "about",
				Aliases:     []string{"info"},
				Description: "Shows information about the bot",
				Usage:       ".about",
				Category:    "General",
			},
			{
				Name:        "tag",
				Aliases:     []string{},
				Description: "Manage message tags",
				Usage:       ".tag <show|list> [name]",
				Category:    "General",
				Subcommands: []commands.CommandInfo{
					{
						Name:        "show",
						Description: "Shows a saved tag",
						Usage:       ".tag show <name>",
						Category:    "General",
					},
					{
						Name:        "list",
						Description: "Lists all saved tags",
						Usage:       ".tag list",
						Category:    "General",
					},
				},
			},
		},
	}

	commands.RegisterModule(module)

	commands.RegisterCommand("ping", Ping)
	commands.RegisterCommand("about", About, "info")
	commands.RegisterCommand("tag", Tag)
}
