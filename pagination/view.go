package pagination

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// PageFormatter renders one page of items. It may return a
// *discordgo.MessageEmbed, a plain string, or a *Render; see Normalize.
type PageFormatter[T any] func(view *View[T], page []T) (any, error)

// ComponentHandler is the callback for a control attached with Attach.
type ComponentHandler func(ic *discordgo.InteractionCreate, data discordgo.MessageComponentInteractionData) error

type viewState int

const (
	stateInitialized viewState = iota
	stateActive
	stateStopped
)

const (
	defaultPageSize = 6
	defaultTimeout  = 3 * time.Minute
)

const notOwnerNotice = "You cannot interact with this message."

type viewConfig struct {
	pageSize    int
	timeout     time.Duration
	buttons     map[Role]*Button
	deleteAfter bool
	strictEmpty bool
	keepAlive   func()
}

// Option configures a View at construction time.
type Option func(*viewConfig)

// WithPageSize sets the number of items per page. Defaults to 6.
func WithPageSize(n int) Option { return func(c *viewConfig) { c.pageSize = n } }

// WithTimeout sets the idle duration after which the view stops itself.
// Defaults to 3 minutes.
func WithTimeout(d time.Duration) Option { return func(c *viewConfig) { c.timeout = d } }

// WithButtons merges control overrides over the default navigation set. A
// nil entry removes that control, unknown roles are ignored.
func WithButtons(overrides map[Role]*Button) Option {
	return func(c *viewConfig) { c.buttons = mergeButtons(overrides) }
}

// WithDeleteAfter deletes the message on stop instead of disabling controls.
func WithDeleteAfter() Option { return func(c *viewConfig) { c.deleteAfter = true } }

// WithStrictEmpty makes NewView fail with ErrEmptySource on an empty data
// source instead of rendering a single empty page.
func WithStrictEmpty() Option { return func(c *viewConfig) { c.strictEmpty = true } }

// WithKeepAlive registers a callback invoked on every accepted interaction.
// A parent view passes its ResetTimeout here so drill-down activity keeps
// the parent from expiring.
func WithKeepAlive(f func()) Option { return func(c *viewConfig) { c.keepAlive = f } }

type extraControl struct {
	id      string
	row     int
	comp    discordgo.MessageComponent
	handler ComponentHandler
}

// View is an interactive paginated message. It owns exactly one transport
// message once started and is the only component that edits or deletes it.
// All state transitions are serialized behind its mutex; Stop is idempotent
// and may be called from a control press, the idle timer, or a parent view
// tearing the view down.
type View[T any] struct {
	mgr         *Manager
	id          string
	owner       string
	format      PageFormatter[T]
	pageSize    int
	timeout     time.Duration
	buttons     map[Role]*Button
	deleteAfter bool
	keepAlive   func()

	mu      sync.Mutex
	state   viewState
	pages   [][]T
	current int
	msg     *discordgo.Message
	timer   *time.Timer
	extras  []extraControl
}

// NewView paginates items and prepares a view owned by the given user ID.
// The view does not touch the transport until Start or StartAt.
func NewView[T any](m *Manager, owner string, items []T, format PageFormatter[T], opts ...Option) (*View[T], error) {
	cfg := viewConfig{
		pageSize: defaultPageSize,
		timeout:  defaultTimeout,
		buttons:  defaultButtons(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.strictEmpty && len(items) == 0 {
		return nil, ErrEmptySource
	}
	pages, err := Paginate(items, cfg.pageSize)
	if err != nil {
		return nil, err
	}

	return &View[T]{
		mgr:         m,
		id:          strconv.FormatUint(m.nextID.Add(1), 10),
		owner:       owner,
		format:      format,
		pageSize:    cfg.pageSize,
		timeout:     cfg.timeout,
		buttons:     cfg.buttons,
		deleteAfter: cfg.deleteAfter,
		keepAlive:   cfg.keepAlive,
		pages:       pages,
	}, nil
}

// ID returns the manager-unique identifier embedded in control custom IDs.
func (v *View[T]) ID() string { return v.id }

// Owner returns the user ID allowed to drive this view's controls.
func (v *View[T]) Owner() string { return v.owner }

// ControlID builds the custom ID for a control belonging to this view.
func (v *View[T]) ControlID(ctl string) string {
	return customIDPrefix + ":" + v.id + ":" + ctl
}

func (v *View[T]) CurrentPage() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

func (v *View[T]) MaxPages() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.pages)
}

// Message returns the transport message this view controls, nil before start.
func (v *View[T]) Message() *discordgo.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.msg
}

// Stopped reports whether the view reached its terminal state.
func (v *View[T]) Stopped() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state == stateStopped
}

// Attach adds (or replaces, when id matches) an extra control such as a
// category dropdown or a home button. The component's CustomID must be built
// with ControlID(id) so interactions route back to handler.
func (v *View[T]) Attach(id string, row int, comp discordgo.MessageComponent, handler ComponentHandler) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.extras {
		if v.extras[i].id == id {
			v.extras[i] = extraControl{id: id, row: row, comp: comp, handler: handler}
			return
		}
	}
	v.extras = append(v.extras, extraControl{id: id, row: row, comp: comp, handler: handler})
}

// Start renders page zero and sends it to the channel. A view starts at most
// once; a second call fails with ErrAlreadyStarted.
func (v *View[T]) Start(channelID string) (*discordgo.Message, error) {
	data, err := v.beginStart()
	if err != nil {
		return nil, err
	}
	r, err := v.renderPage(data)
	if err != nil {
		v.abortStart()
		return nil, err
	}
	msg, err := v.mgr.ms.Send(channelID, r.messageSend())
	if err != nil {
		v.abortStart()
		return nil, fmt.Errorf("send pagination message: %w", err)
	}
	v.finishStart(msg)
	return msg, nil
}

// StartAt takes over an existing message instead of sending a new one. Used
// when a drill-down view inherits its parent's message.
func (v *View[T]) StartAt(msg *discordgo.Message) error {
	data, err := v.beginStart()
	if err != nil {
		return err
	}
	r, err := v.renderPage(data)
	if err != nil {
		v.abortStart()
		return err
	}
	edited, err := v.mgr.ms.Edit(r.messageEdit(msg.ChannelID, msg.ID))
	if err != nil {
		v.abortStart()
		return fmt.Errorf("edit pagination message: %w", err)
	}
	if edited == nil {
		edited = msg
	}
	v.finishStart(edited)
	return nil
}

func (v *View[T]) beginStart() ([]T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != stateInitialized {
		return nil, ErrAlreadyStarted
	}
	v.state = stateActive
	return v.pages[v.current], nil
}

func (v *View[T]) abortStart() {
	v.mu.Lock()
	v.state = stateInitialized
	v.mu.Unlock()
}

func (v *View[T]) finishStart(msg *discordgo.Message) {
	v.mu.Lock()
	v.msg = msg
	v.timer = time.AfterFunc(v.timeout, func() { v.Stop(true) })
	v.mu.Unlock()
	v.mgr.register(v.id, v)
}

// ChangePage validates the target, re-renders and updates the message. The
// built-in controls clamp before calling, so ErrOutOfRange here indicates a
// programmatic caller bug. After a stop this is an acknowledged no-op. A
// formatter failure restores the previous page index before propagating.
func (v *View[T]) ChangePage(i *discordgo.Interaction, page int) error {
	v.mu.Lock()
	if v.state != stateActive {
		v.mu.Unlock()
		return v.ack(i)
	}
	if page < 0 || page >= len(v.pages) {
		v.mu.Unlock()
		return fmt.Errorf("page %d of %d: %w", page, len(v.pages), ErrOutOfRange)
	}
	prev := v.current
	v.current = page
	data := v.pages[page]
	v.mu.Unlock()

	if err := v.display(i, data); err != nil {
		v.mu.Lock()
		v.current = prev
		v.mu.Unlock()
		return err
	}
	v.ResetTimeout()
	return nil
}

// ChangeSource atomically replaces the data source. The current index is
// kept when it still fits and resets to page zero when the new source is too
// small for it. Started views re-render immediately.
func (v *View[T]) ChangeSource(items []T, i *discordgo.Interaction) error {
	v.mu.Lock()
	if v.state == stateStopped {
		v.mu.Unlock()
		return v.ack(i)
	}
	pages, err := Paginate(items, v.pageSize)
	if err != nil {
		v.mu.Unlock()
		return err
	}
	v.pages = pages
	if v.current >= len(pages) {
		v.current = 0
	}
	data := v.pages[v.current]
	started := v.state == stateActive
	v.mu.Unlock()

	if !started {
		return nil
	}
	if err := v.display(i, data); err != nil {
		return err
	}
	v.ResetTimeout()
	return nil
}

// Stop moves the view to its terminal state. It is idempotent: the timeout
// path, an explicit stop press and a parent teardown all converge here and
// teardown side effects run at most once. When onStop is true the attached
// message is edited with every control disabled (or deleted, for views built
// WithDeleteAfter); that edit is best-effort and failures are swallowed
// since the view is stopped regardless. onStop=false releases the message
// untouched, used when ownership returns to a parent view.
func (v *View[T]) Stop(onStop bool) {
	v.mu.Lock()
	if v.state == stateStopped {
		v.mu.Unlock()
		return
	}
	v.state = stateStopped
	if v.timer != nil {
		v.timer.Stop()
	}
	msg := v.msg
	current, maxPages := v.current, len(v.pages)
	v.mu.Unlock()

	v.mgr.unregister(v.id)
	if !onStop || msg == nil {
		return
	}

	if v.deleteAfter {
		_ = v.mgr.ms.Delete(msg.ChannelID, msg.ID)
		return
	}
	comps := v.components(current, maxPages, true)
	_, _ = v.mgr.ms.Edit(&discordgo.MessageEdit{
		Channel:    msg.ChannelID,
		ID:         msg.ID,
		Components: &comps,
	})
}

// ResetTimeout pushes the idle deadline back by the full timeout duration.
func (v *View[T]) ResetTimeout() {
	v.mu.Lock()
	if v.timer != nil && v.state == stateActive {
		v.timer.Reset(v.timeout)
	}
	v.mu.Unlock()
}

// handleComponent is the manager's entry point for an interaction addressed
// to this view. Non-owner invokers get an ephemeral notice and cause no
// state change; interactions after stop are acknowledged no-ops.
func (v *View[T]) handleComponent(ic *discordgo.InteractionCreate) error {
	data := ic.MessageComponentData()
	ctl := controlName(data.CustomID)

	v.mu.Lock()
	if v.state != stateActive {
		v.mu.Unlock()
		return v.ack(ic.Interaction)
	}
	if invoker := InteractionUser(ic.Interaction); invoker != v.owner {
		v.mu.Unlock()
		return v.mgr.ms.Respond(ic.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: notOwnerNotice,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	}
	current, maxPages := v.current, len(v.pages)
	keepAlive := v.keepAlive
	v.mu.Unlock()

	v.ResetTimeout()
	if keepAlive != nil {
		keepAlive()
	}

	switch Role(ctl) {
	case RoleStart:
		return v.ChangePage(ic.Interaction, 0)
	case RolePrevious:
		page := current - 1
		if page < 0 {
			page = 0
		}
		return v.ChangePage(ic.Interaction, page)
	case RoleStop:
		err := v.ack(ic.Interaction)
		v.Stop(true)
		return err
	case RoleNext:
		page := current + 1
		if page > maxPages-1 {
			page = maxPages - 1
		}
		return v.ChangePage(ic.Interaction, page)
	case RoleEnd:
		return v.ChangePage(ic.Interaction, maxPages-1)
	}

	v.mu.Lock()
	var handler ComponentHandler
	for _, e := range v.extras {
		if e.id == ctl {
			handler = e.handler
			break
		}
	}
	v.mu.Unlock()
	if handler == nil {
		return v.ack(ic.Interaction)
	}
	return handler(ic, data)
}

// display renders data through the formatter and pushes the result out,
// through the interaction response when one is pending or a message edit
// otherwise.
func (v *View[T]) display(i *discordgo.Interaction, data []T) error {
	r, err := v.renderPage(data)
	if err != nil {
		return err
	}
	if i != nil {
		return v.mgr.ms.Respond(i, r.responseUpdate())
	}
	msg := v.Message()
	if msg == nil {
		return nil
	}
	_, err = v.mgr.ms.Edit(r.messageEdit(msg.ChannelID, msg.ID))
	return err
}

func (v *View[T]) renderPage(data []T) (*Render, error) {
	out, err := v.format(v, data)
	if err != nil {
		return nil, fmt.Errorf("format page: %w", err)
	}
	r, err := Normalize(out)
	if err != nil {
		return nil, err
	}
	v.mu.Lock()
	current, maxPages := v.current, len(v.pages)
	v.mu.Unlock()
	r.Components = v.components(current, maxPages, false)
	return r, nil
}

// components assembles the action rows: navigation buttons plus attached
// extras, grouped by row. Navigation roles disappear entirely on single-page
// views; stop survives. When stopped, everything renders disabled.
func (v *View[T]) components(current, maxPages int, stopped bool) []discordgo.MessageComponent {
	rows := make(map[int][]discordgo.MessageComponent)

	for _, role := range roleOrder {
		btn, ok := v.buttons[role]
		if !ok {
			continue
		}
		if navigationRoles[role] && maxPages <= 1 {
			continue
		}
		disabled := stopped || disabledAt(role, current, maxPages)
		rows[btn.Row] = append(rows[btn.Row], btn.component(v.ControlID(string(role)), disabled))
	}

	v.mu.Lock()
	extras := make([]extraControl, len(v.extras))
	copy(extras, v.extras)
	v.mu.Unlock()
	for _, e := range extras {
		comp := e.comp
		if stopped {
			comp = disableComponent(comp)
		}
		rows[e.row] = append(rows[e.row], comp)
	}

	keys := make([]int, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]discordgo.MessageComponent, 0, len(keys))
	for _, k := range keys {
		out = append(out, discordgo.ActionsRow{Components: rows[k]})
	}
	return out
}

func (v *View[T]) ack(i *discordgo.Interaction) error {
	if i == nil {
		return nil
	}
	return v.mgr.ms.Respond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

func disableComponent(c discordgo.MessageComponent) discordgo.MessageComponent {
	switch t := c.(type) {
	case discordgo.Button:
		t.Disabled = true
		return t
	case discordgo.SelectMenu:
		t.Disabled = true
		return t
	default:
		return c
	}
}

func controlName(customID string) string {
	parts := strings.SplitN(customID, ":", 3)
	if len(parts) != 3 {
		return ""
	}
	return parts[2]
}

// InteractionUser resolves the invoking user ID from either a guild member
// or a direct-message interaction.
func InteractionUser(i *discordgo.Interaction) string {
	if i == nil {
		return ""
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
