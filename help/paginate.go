package help

import (
	"fmt"
	"sync"

	"HelpBot/commands"
	"HelpBot/pagination"

	"github.com/bwmarrin/discordgo"
)

// paginateHelp is the flat command-list variant: one category's commands at
// a time, with < / category-name / > switcher buttons that swap the view's
// data source instead of spawning a nested view. The name button jumps back
// to the first page of the current category.
type paginateHelp struct {
	menu    *Menu
	view    *pagination.View[commands.CommandInfo]
	entries []categoryEntry

	mu  sync.Mutex
	cog int
}

// SendCommandList starts the flat list on the first category.
func (m *Menu) SendCommandList(guildID, channelID, ownerID string) error {
	entries, err := m.visibleCategories(guildID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return m.SendError(channelID, ownerID, "There are no commands to show here.")
	}

	p := &paginateHelp{menu: m, entries: entries}
	view, err := pagination.NewView(m.menus, ownerID, entries[0].Commands, p.formatPage, m.viewOptions()...)
	if err != nil {
		return err
	}
	p.view = view
	p.attachSwitcher()

	_, err = view.Start(channelID)
	return err
}

func (p *paginateHelp) attachSwitcher() {
	p.view.Attach("prevcog", 2, discordgo.Button{
		Label:    "<",
		Style:    discordgo.PrimaryButton,
		CustomID: p.view.ControlID("prevcog"),
	}, p.onPrevCog)
	p.view.Attach("namecog", 2, discordgo.Button{
		Label:    p.currentEntry().Name,
		Style:    discordgo.DangerButton,
		CustomID: p.view.ControlID("namecog"),
	}, p.onNameCog)
	p.view.Attach("nextcog", 2, discordgo.Button{
		Label:    ">",
		Style:    discordgo.PrimaryButton,
		CustomID: p.view.ControlID("nextcog"),
	}, p.onNextCog)
}

func (p *paginateHelp) currentEntry() categoryEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.entries[p.cog]
}

func (p *paginateHelp) onPrevCog(ic *discordgo.InteractionCreate, _ discordgo.MessageComponentInteractionData) error {
	p.mu.Lock()
	target := p.cog - 1
	p.mu.Unlock()
	return p.switchCog(ic, target)
}

func (p *paginateHelp) onNextCog(ic *discordgo.InteractionCreate, _ discordgo.MessageComponentInteractionData) error {
	p.mu.Lock()
	target := p.cog + 1
	p.mu.Unlock()
	return p.switchCog(ic, target)
}

func (p *paginateHelp) onNameCog(ic *discordgo.InteractionCreate, _ discordgo.MessageComponentInteractionData) error {
	return p.view.ChangePage(ic.Interaction, 0)
}

// switchCog clamps the target category, relabels the name button and swaps
// the view's data source, which re-renders at a valid page.
func (p *paginateHelp) switchCog(ic *discordgo.InteractionCreate, target int) error {
	p.mu.Lock()
	if target < 0 {
		target = 0
	}
	if target > len(p.entries)-1 {
		target = len(p.entries) - 1
	}
	p.cog = target
	entry := p.entries[target]
	p.mu.Unlock()

	p.view.Attach("namecog", 2, discordgo.Button{
		Label:    entry.Name,
		Style:    discordgo.DangerButton,
		CustomID: p.view.ControlID("namecog"),
	}, p.onNameCog)
	return p.view.ChangeSource(entry.Commands, ic.Interaction)
}

func (p *paginateHelp) formatPage(v *pagination.View[commands.CommandInfo], page []commands.CommandInfo) (any, error) {
	entry := p.currentEntry()
	desc := ""
	for _, cmd := range page {
		desc += p.menu.commandBrief(cmd)
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Command List (%s)", entry.Name),
		Description: desc,
		Color:       p.menu.opts.AccentColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d", v.CurrentPage()+1, v.MaxPages()),
		},
	}, nil
}
