package bot

import (
	"database/sql"

	"HelpBot/pagination"

	"github.com/bwmarrin/discordgo"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Bot struct {
	Db     *sql.DB
	Client *discordgo.Session
	Log    *zap.Logger
	Menus  *pagination.Manager
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id TEXT PRIMARY KEY,
    is_admin BOOLEAN DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS disabled_commands (
    guild_id TEXT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    PRIMARY KEY (guild_id, name, type)
);

CREATE TABLE IF NOT EXISTS tags (
    guild_id TEXT NOT NULL,
    name TEXT NOT NULL,
    content TEXT NOT NULL,
    PRIMARY KEY (guild_id, name)
);`

func NewBot(token string, dbURL string, log *zap.Logger) (*Bot, error) {
	client, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	client.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	menus := pagination.NewManager(pagination.NewSessionMessenger(client), log)
	return &Bot{Db: db, Client: client, Log: log, Menus: menus}, nil
}

// IsAdmin checks the bot-level admin flag in the users table.
func (b *Bot) IsAdmin(userID string) (bool, error) {
	var isAdmin bool
	err := b.Db.QueryRow("SELECT is_admin FROM users WHERE user_id = $1", userID).Scan(&isAdmin)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil // user not found, cant be admin
		}
		return false, err // db err
	}
	return isAdmin, nil
}
