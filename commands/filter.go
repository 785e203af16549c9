package commands

import (
	"database/sql"
	"fmt"
	"strings"
)

// Disabled holds the per-guild visibility state read from the
// disabled_commands table.
type Disabled struct {
	Commands   map[string]bool
	Categories map[string]bool
}

// LoadDisabled reads the disabled commands and categories for a guild. A nil
// db (tests, DMs) means nothing is disabled.
func LoadDisabled(db *sql.DB, guildID string) (*Disabled, error) {
	d := &Disabled{
		Commands:   make(map[string]bool),
		Categories: make(map[string]bool),
	}
	if db == nil || guildID == "" {
		return d, nil
	}

	rows, err := db.Query("SELECT name, type FROM disabled_commands WHERE guild_id = $1", guildID)
	if err != nil {
		return nil, fmt.Errorf("query disabled commands for guild %s: %w", guildID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, dType string
		if err := rows.Scan(&name, &dType); err != nil {
			return nil, fmt.Errorf("scan disabled command: %w", err)
		}
		switch dType {
		case "command":
			d.Commands[strings.ToLower(name)] = true
		case "category":
			d.Categories[strings.ToLower(name)] = true
		}
	}
	return d, rows.Err()
}

// Filter trims commands hidden for this guild: commands disabled directly
// and commands whose category is disabled.
func (d *Disabled) Filter(cmds []CommandInfo) []CommandInfo {
	if len(d.Commands) == 0 && len(d.Categories) == 0 {
		return cmds
	}
	visible := make([]CommandInfo, 0, len(cmds))
	for _, cmd := range cmds {
		if d.Commands[strings.ToLower(cmd.Name)] {
			continue
		}
		if d.Categories[strings.ToLower(cmd.Category)] {
			continue
		}
		visible = append(visible, cmd)
	}
	return visible
}

// CategoryDisabled reports whether a whole category is hidden for the guild.
func (d *Disabled) CategoryDisabled(name string) bool {
	return d.Categories[strings.ToLower(name)]
}
