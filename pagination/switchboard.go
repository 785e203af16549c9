package pagination

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// maxSelectOptions is Discord's cap on string select options.
const maxSelectOptions = 25

// Pager is the parent side of a switchboard: the view carrying the category
// dropdown. *View[T] satisfies it for any T.
type Pager interface {
	Attach(id string, row int, comp discordgo.MessageComponent, handler ComponentHandler)
	ControlID(ctl string) string
	CurrentPage() int
	ChangePage(i *discordgo.Interaction, page int) error
	Message() *discordgo.Message
	Owner() string
	ResetTimeout()
}

// Child is a drill-down view spawned by the switchboard. It inherits the
// parent's message via StartAt and releases it untouched when stopped with
// onStop=false. *View[T] satisfies it for any T.
type Child interface {
	StartAt(msg *discordgo.Message) error
	Stop(onStop bool)
	Attach(id string, row int, comp discordgo.MessageComponent, handler ComponentHandler)
	ControlID(ctl string) string
}

// Category is one dropdown entry. Key is the value reported back on
// selection, Label the display name the entries are sorted by.
type Category struct {
	Key         string
	Label       string
	Description string
}

// ChildFactory builds the drill-down view for a selected category.
type ChildFactory func(cat Category) (Child, error)

type switchboardConfig struct {
	placeholder     string
	noDocumentation string
	homeLabel       string
}

// SwitchOption configures a Switchboard.
type SwitchOption func(*switchboardConfig)

// WithPlaceholder sets the dropdown placeholder text.
func WithPlaceholder(s string) SwitchOption {
	return func(c *switchboardConfig) { c.placeholder = s }
}

// WithNoDocumentation sets the text shown for categories without one.
func WithNoDocumentation(s string) SwitchOption {
	return func(c *switchboardConfig) { c.noDocumentation = s }
}

// WithHomeLabel sets the label of the button that collapses a drill-down.
func WithHomeLabel(s string) SwitchOption {
	return func(c *switchboardConfig) { c.homeLabel = s }
}

// Switchboard attaches a category dropdown to a parent view. Selecting a
// category spawns a nested child view on the parent's message; the home
// button attached to the child stops it without clearing the message and
// restores the parent at the page it was on before the drill-down. At most
// one child is active; selecting another category stops the old child first.
type Switchboard struct {
	mgr     *Manager
	parent  Pager
	factory ChildFactory
	cfg     switchboardConfig

	mu      sync.Mutex
	cats    []Category
	child   Child
	visible bool
}

// NewSwitchboard sorts the categories by label, builds the dropdown and
// attaches it to the parent on row 0 (above the default navigation row).
func NewSwitchboard(m *Manager, parent Pager, cats []Category, factory ChildFactory, opts ...SwitchOption) *Switchboard {
	cfg := switchboardConfig{
		placeholder:     "Select a category",
		noDocumentation: "No Documentation",
		homeLabel:       "Home",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	sorted := make([]Category, len(cats))
	copy(sorted, cats)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Label < sorted[j].Label })

	s := &Switchboard{
		mgr:     m,
		parent:  parent,
		factory: factory,
		cfg:     cfg,
		cats:    sorted,
	}
	parent.Attach("category", 0, s.dropdown(), s.onSelect)
	return s
}

// Active reports whether a drill-down child view is currently shown.
func (s *Switchboard) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *Switchboard) dropdown() discordgo.SelectMenu {
	opts := make([]discordgo.SelectMenuOption, 0, len(s.cats))
	for _, cat := range s.cats {
		if len(opts) == maxSelectOptions {
			break
		}
		desc := cat.Description
		if desc == "" {
			desc = s.cfg.noDocumentation
		}
		opts = append(opts, discordgo.SelectMenuOption{
			Label:       cat.Label,
			Value:       cat.Key,
			Description: shorten(desc, 90),
		})
	}
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    s.parent.ControlID("category"),
		Placeholder: s.cfg.placeholder,
		Options:     opts,
	}
}

// onSelect opens the drill-down for the chosen category. Any child already
// active is stopped first with the message left alone; its replacement then
// takes the message over. The transition for one view completes before the
// next begins.
func (s *Switchboard) onSelect(ic *discordgo.InteractionCreate, data discordgo.MessageComponentInteractionData) error {
	if len(data.Values) == 0 {
		return s.parent.ChangePage(ic.Interaction, s.parent.CurrentPage())
	}

	var selected *Category
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cats {
		if s.cats[i].Key == data.Values[0] {
			selected = &s.cats[i]
			break
		}
	}
	if selected == nil {
		return s.parent.ChangePage(ic.Interaction, s.parent.CurrentPage())
	}

	if s.child != nil {
		s.child.Stop(false)
		s.child = nil
		s.visible = false
	}

	child, err := s.factory(*selected)
	if err != nil {
		return fmt.Errorf("category %q view: %w", selected.Key, err)
	}
	child.Attach("home", 2, discordgo.Button{
		Label:    s.cfg.homeLabel,
		Style:    discordgo.SuccessButton,
		CustomID: child.ControlID("home"),
	}, s.onHome)

	if err := s.ackSelect(ic); err != nil {
		return err
	}
	if err := child.StartAt(s.parent.Message()); err != nil {
		return err
	}
	s.child = child
	s.visible = true
	return nil
}

// onHome collapses the drill-down: the child stops without touching the
// shared message, and the parent re-renders at the page it was on before
// the drill-down, not page zero.
func (s *Switchboard) onHome(ic *discordgo.InteractionCreate, _ discordgo.MessageComponentInteractionData) error {
	s.mu.Lock()
	if s.child != nil {
		s.child.Stop(false)
		s.child = nil
	}
	s.visible = false
	s.mu.Unlock()
	s.parent.ResetTimeout()
	return s.parent.ChangePage(ic.Interaction, s.parent.CurrentPage())
}

// ackSelect defers the select interaction so the child can render through a
// plain message edit.
func (s *Switchboard) ackSelect(ic *discordgo.InteractionCreate) error {
	if ic == nil {
		return nil
	}
	return s.mgr.ms.Respond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

func shorten(s string, width int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= width {
		return string(r)
	}
	return string(r[:width-3]) + "..."
}
