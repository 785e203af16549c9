// Package help renders the interactive help menu: a paginated category
// index with a drop-down for drilling into a category's commands, plus
// detail views for single commands, groups and errors. All pagination
// mechanics live in the pagination package; this package only decides what
// each page looks like.
package help

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"HelpBot/commands"
	"HelpBot/pagination"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Options configures the help menu's appearance and behaviour.
type Options struct {
	PerPage         int           // items per page, 0 means 6
	SortCommands    bool          // sort commands by name before paginating
	NoCategory      string        // shown for commands without a category
	NoDocumentation string        // shown for missing descriptions
	Description     string        // bot description on the index's first page
	AccentColor     int           // embed color for normal pages
	ErrorColor      int           // embed color for the error view
	Timeout         time.Duration // idle timeout for every help view
	Buttons         map[pagination.Role]*pagination.Button
}

func (o Options) withDefaults() Options {
	if o.PerPage == 0 {
		o.PerPage = 6
	}
	if o.NoCategory == "" {
		o.NoCategory = "No Category"
	}
	if o.NoDocumentation == "" {
		o.NoDocumentation = "No Documentation"
	}
	if o.AccentColor == 0 {
		o.AccentColor = 0x00ff00
	}
	if o.ErrorColor == 0 {
		o.ErrorColor = 0xff0000
	}
	if o.Timeout == 0 {
		o.Timeout = 3 * time.Minute
	}
	return o
}

// categoryEntry is one row of the bot help index: a category plus the
// commands visible to the requesting guild.
type categoryEntry struct {
	Name        string
	Description string
	Commands    []commands.CommandInfo
}

// Menu builds and starts the help views.
type Menu struct {
	menus *pagination.Manager
	db    *sql.DB
	log   *zap.Logger
	opts  Options
}

func NewMenu(menus *pagination.Manager, db *sql.DB, log *zap.Logger, opts Options) *Menu {
	if log == nil {
		log = zap.NewNop()
	}
	return &Menu{menus: menus, db: db, log: log, opts: opts.withDefaults()}
}

// visibleCategories assembles the category index for a guild, honoring the
// disabled_commands table. Categories whose commands are all filtered out
// are kept with an empty command list so they still render.
func (m *Menu) visibleCategories(guildID string) ([]categoryEntry, error) {
	disabled, err := commands.LoadDisabled(m.db, guildID)
	if err != nil {
		return nil, err
	}

	var entries []categoryEntry
	for _, name := range commands.CategoryNames() {
		if disabled.CategoryDisabled(name) {
			continue
		}
		cat := commands.RegisteredCategories[name]
		cmds := disabled.Filter(commands.GetCommandsByCategory(name))
		if m.opts.SortCommands {
			sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
		}
		entries = append(entries, categoryEntry{
			Name:        name,
			Description: cat.Description,
			Commands:    cmds,
		})
	}
	return entries, nil
}

// SendBotHelp shows the bot-wide index: one field per category, paginated,
// with a dropdown that drills into a category's command list on the same
// message.
func (m *Menu) SendBotHelp(guildID, channelID, ownerID string) error {
	entries, err := m.visibleCategories(guildID)
	if err != nil {
		return err
	}

	view, err := pagination.NewView(m.menus, ownerID, entries, m.formatBotPage, m.viewOptions()...)
	if err != nil {
		return err
	}

	byName := make(map[string]categoryEntry, len(entries))
	cats := make([]pagination.Category, 0, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
		cats = append(cats, pagination.Category{
			Key:         e.Name,
			Label:       e.Name,
			Description: e.Description,
		})
	}

	factory := func(cat pagination.Category) (pagination.Child, error) {
		entry := byName[cat.Key]
		opts := append(m.viewOptions(), pagination.WithKeepAlive(view.ResetTimeout))
		return pagination.NewView(m.menus, ownerID, entry.Commands, m.categoryFormatter(entry), opts...)
	}
	pagination.NewSwitchboard(m.menus, view, cats, factory,
		pagination.WithNoDocumentation(m.opts.NoDocumentation))

	_, err = view.Start(channelID)
	return err
}

// SendCategoryHelp shows one category's commands as a standalone view.
func (m *Menu) SendCategoryHelp(guildID, channelID, ownerID, category string) error {
	entries, err := m.visibleCategories(guildID)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Name != category {
			continue
		}
		view, err := pagination.NewView(m.menus, ownerID, entry.Commands, m.categoryFormatter(entry), m.viewOptions()...)
		if err != nil {
			return err
		}
		_, err = view.Start(channelID)
		return err
	}
	return m.SendError(channelID, ownerID, fmt.Sprintf("No category called %q found.", category))
}

// SendCommandHelp shows the detail view for a single leaf command.
func (m *Menu) SendCommandHelp(channelID, ownerID string, cmd commands.CommandInfo) error {
	view, err := pagination.NewView(m.menus, ownerID,
		[]commands.CommandInfo{cmd},
		func(_ *pagination.View[commands.CommandInfo], page []commands.CommandInfo) (any, error) {
			return m.commandDetail(page[0]), nil
		},
		pagination.WithPageSize(1), pagination.WithTimeout(m.opts.Timeout))
	if err != nil {
		return err
	}
	_, err = view.Start(channelID)
	return err
}

// SendGroupHelp shows the detail view for a group command, listing its
// subcommands beneath the group description.
func (m *Menu) SendGroupHelp(channelID, ownerID string, group commands.CommandInfo) error {
	view, err := pagination.NewView(m.menus, ownerID,
		[]commands.CommandInfo{group},
		func(_ *pagination.View[commands.CommandInfo], page []commands.CommandInfo) (any, error) {
			return m.groupDetail(page[0]), nil
		},
		pagination.WithPageSize(1), pagination.WithTimeout(m.opts.Timeout))
	if err != nil {
		return err
	}
	_, err = view.Start(channelID)
	return err
}

// SendError shows the error view: a red single-page embed whose only
// control is a Close button that deletes the message.
func (m *Menu) SendError(channelID, ownerID, errText string) error {
	view, err := pagination.NewView(m.menus, ownerID,
		[]string{errText},
		func(_ *pagination.View[string], page []string) (any, error) {
			return &discordgo.MessageEmbed{
				Title:       "Something went wrong!",
				Description: page[0],
				Color:       m.opts.ErrorColor,
			}, nil
		},
		pagination.WithPageSize(1),
		pagination.WithTimeout(m.opts.Timeout),
		pagination.WithDeleteAfter(),
		pagination.WithButtons(map[pagination.Role]*pagination.Button{
			pagination.RoleStop: {Label: "Close", Style: discordgo.DangerButton, Row: 1},
		}))
	if err != nil {
		return err
	}
	_, err = view.Start(channelID)
	return err
}

// InteractionError adapts SendError into the pagination manager's OnError
// hook so render failures surface as an error view instead of silence.
func (m *Menu) InteractionError(ic *discordgo.InteractionCreate, err error) {
	owner := pagination.InteractionUser(ic.Interaction)
	if sendErr := m.SendError(ic.ChannelID, owner, err.Error()); sendErr != nil {
		m.log.Error("error view failed", zap.Error(sendErr))
	}
}

func (m *Menu) viewOptions() []pagination.Option {
	opts := []pagination.Option{
		pagination.WithPageSize(m.opts.PerPage),
		pagination.WithTimeout(m.opts.Timeout),
	}
	if m.opts.Buttons != nil {
		opts = append(opts, pagination.WithButtons(m.opts.Buttons))
	}
	return opts
}

func (m *Menu) formatBotPage(v *pagination.View[categoryEntry], page []categoryEntry) (any, error) {
	embed := &discordgo.MessageEmbed{
		Title: "Help",
		Color: m.opts.AccentColor,
	}
	if v.CurrentPage() == 0 {
		embed.Description = m.opts.Description
	}
	for _, entry := range page {
		desc := entry.Description
		if desc == "" {
			desc = m.opts.NoDocumentation
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s (`%d`)", entry.Name, len(entry.Commands)),
			Value:  desc,
			Inline: true,
		})
	}
	if v.MaxPages() > 1 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d", v.CurrentPage()+1, v.MaxPages()),
		}
	}
	return embed, nil
}

// categoryFormatter renders one page of a category's command list. The
// first page opens with the category description and total command count.
func (m *Menu) categoryFormatter(entry categoryEntry) pagination.PageFormatter[commands.CommandInfo] {
	return func(v *pagination.View[commands.CommandInfo], page []commands.CommandInfo) (any, error) {
		title := entry.Name
		if title == "" {
			title = m.opts.NoCategory
		}

		desc := ""
		if v.CurrentPage() == 0 {
			desc = entry.Description
			if desc == "" {
				desc = m.opts.NoDocumentation
			}
			desc += fmt.Sprintf("\n\n**Commands[`%d`]**\n", len(entry.Commands))
		}
		for _, cmd := range page {
			desc += m.commandBrief(cmd)
		}

		return &discordgo.MessageEmbed{
			Title:       title,
			Description: desc,
			Color:       m.opts.AccentColor,
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Page %d of %d", v.CurrentPage()+1, v.MaxPages()),
			},
		}, nil
	}
}

// commandBrief is the one-line listing of a command: signature plus short
// description.
func (m *Menu) commandBrief(cmd commands.CommandInfo) string {
	brief := cmd.Description
	if brief == "" {
		brief = m.opts.NoDocumentation
	}
	return fmt.Sprintf("`%s`\n%s\n", cmd.Signature(), brief)
}

func (m *Menu) commandDetail(cmd commands.CommandInfo) *discordgo.MessageEmbed {
	desc := cmd.Description
	if desc == "" {
		desc = m.opts.NoDocumentation
	}
	if len(cmd.Aliases) > 0 {
		desc += "\n\n**Aliases**\n"
		for i, alias := range cmd.Aliases {
			if i > 0 {
				desc += ", "
			}
			desc += alias
		}
	}
	return &discordgo.MessageEmbed{
		Title:       cmd.Signature(),
		Description: desc,
		Color:       m.opts.AccentColor,
	}
}

func (m *Menu) groupDetail(group commands.CommandInfo) *discordgo.MessageEmbed {
	embed := m.commandDetail(group)
	if len(group.Subcommands) > 0 {
		embed.Description += "\n\n**Subcommands**\n"
		for _, sub := range group.Subcommands {
			embed.Description += m.commandBrief(sub)
		}
	}
	return embed
}
