package pagination

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMessenger records every transport call so tests can assert on what a
// view sent without a gateway connection.
type fakeMessenger struct {
	mu        sync.Mutex
	sends     []*discordgo.MessageSend
	edits     []*discordgo.MessageEdit
	deletes   []string
	responses []*discordgo.InteractionResponse
	sendErr   error
	nextID    int
}

func (f *fakeMessenger) Send(channelID string, send *discordgo.MessageSend) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sends = append(f.sends, send)
	f.nextID++
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", f.nextID), ChannelID: channelID}, nil
}

func (f *fakeMessenger) Edit(edit *discordgo.MessageEdit) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, edit)
	return &discordgo.Message{ID: edit.ID, ChannelID: edit.Channel}, nil
}

func (f *fakeMessenger) Delete(channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, messageID)
	return nil
}

func (f *fakeMessenger) Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeMessenger) counts() (sends, edits, deletes, responses int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends), len(f.edits), len(f.deletes), len(f.responses)
}

func (f *fakeMessenger) lastResponse() *discordgo.InteractionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.responses) == 0 {
		return nil
	}
	return f.responses[len(f.responses)-1]
}

func newTestManager() (*Manager, *fakeMessenger) {
	fm := &fakeMessenger{}
	return NewManager(fm, nil), fm
}

// press builds the component interaction a user produces by clicking a
// control in a guild channel.
func press(customID, userID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:   discordgo.InteractionMessageComponent,
		Member: &discordgo.Member{User: &discordgo.User{ID: userID}},
		Data:   discordgo.MessageComponentInteractionData{CustomID: customID},
	}}
}

func textPage(v *View[string], page []string) (any, error) {
	return fmt.Sprintf("page %d: %s", v.CurrentPage(), strings.Join(page, ",")), nil
}

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item-%d", i)
	}
	return out
}

// flattenButtons collects every button from the rendered action rows.
func flattenButtons(comps []discordgo.MessageComponent) []discordgo.Button {
	var btns []discordgo.Button
	for _, c := range comps {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if b, ok := inner.(discordgo.Button); ok {
				btns = append(btns, b)
			}
		}
	}
	return btns
}

func buttonByControl(t *testing.T, comps []discordgo.MessageComponent, ctl string) discordgo.Button {
	t.Helper()
	for _, b := range flattenButtons(comps) {
		if controlName(b.CustomID) == ctl {
			return b
		}
	}
	t.Fatalf("no %q button in components", ctl)
	return discordgo.Button{}
}

func TestViewStartSendsFirstPage(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage)
	require.NoError(t, err)
	assert.Equal(t, 3, v.MaxPages())

	msg, err := v.Start("chan")
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Same(t, msg, v.Message())

	require.Len(t, fm.sends, 1)
	assert.Contains(t, fm.sends[0].Content, "page 0")
	assert.Contains(t, fm.sends[0].Content, "item-0")

	// back controls start disabled, forward controls enabled
	assert.True(t, buttonByControl(t, fm.sends[0].Components, "previous").Disabled)
	assert.False(t, buttonByControl(t, fm.sends[0].Components, "next").Disabled)
	assert.False(t, buttonByControl(t, fm.sends[0].Components, "stop").Disabled)
}

func TestViewStartTwiceFails(t *testing.T) {
	mgr, _ := newTestManager()
	v, err := NewView(mgr, "owner", items(3), textPage)
	require.NoError(t, err)

	_, err = v.Start("chan")
	require.NoError(t, err)
	_, err = v.Start("chan")
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestViewStartSendFailureAllowsRetry(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(3), textPage)
	require.NoError(t, err)

	fm.sendErr = errors.New("boom")
	_, err = v.Start("chan")
	require.Error(t, err)
	assert.False(t, v.Stopped())

	fm.sendErr = nil
	_, err = v.Start("chan")
	assert.NoError(t, err)
}

func TestViewStrictEmpty(t *testing.T) {
	mgr, _ := newTestManager()

	_, err := NewView(mgr, "owner", []string{}, textPage, WithStrictEmpty())
	assert.ErrorIs(t, err, ErrEmptySource)

	// without the option an empty source renders one empty page
	v, err := NewView(mgr, "owner", []string{}, textPage)
	require.NoError(t, err)
	assert.Equal(t, 1, v.MaxPages())
}

func TestViewNextClampsAtLastPage(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage)
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	next := v.ControlID(string(RoleNext))
	mgr.Component(nil, press(next, "owner"))
	assert.Equal(t, 1, v.CurrentPage())
	mgr.Component(nil, press(next, "owner"))
	assert.Equal(t, 2, v.CurrentPage())

	// already on the last page: stays put but still answers the interaction
	mgr.Component(nil, press(next, "owner"))
	assert.Equal(t, 2, v.CurrentPage())

	_, _, _, responses := fm.counts()
	assert.Equal(t, 3, responses)
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, fm.lastResponse().Type)
}

func TestViewStartAndEndJump(t *testing.T) {
	mgr, _ := newTestManager()
	v, err := NewView(mgr, "owner", items(20), textPage)
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	mgr.Component(nil, press(v.ControlID(string(RoleEnd)), "owner"))
	assert.Equal(t, 3, v.CurrentPage())

	mgr.Component(nil, press(v.ControlID(string(RoleStart)), "owner"))
	assert.Equal(t, 0, v.CurrentPage())
}

func TestViewUnauthorizedPress(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage)
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	mgr.Component(nil, press(v.ControlID(string(RoleNext)), "intruder"))

	assert.Equal(t, 0, v.CurrentPage())
	resp := fm.lastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	assert.Equal(t, notOwnerNotice, resp.Data.Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)

	// the message itself was never touched
	_, edits, _, _ := fm.counts()
	assert.Zero(t, edits)
}

func TestViewUnauthorizedDoesNotResetTimer(t *testing.T) {
	mgr, _ := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage, WithTimeout(60*time.Millisecond))
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	// keep pressing as a stranger past the deadline
	for i := 0; i < 4; i++ {
		time.Sleep(25 * time.Millisecond)
		mgr.Component(nil, press(v.ControlID(string(RoleNext)), "intruder"))
	}
	assert.True(t, v.Stopped())
}

func TestViewOwnerPressResetsTimer(t *testing.T) {
	mgr, _ := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage, WithTimeout(80*time.Millisecond))
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		time.Sleep(40 * time.Millisecond)
		mgr.Component(nil, press(v.ControlID(string(RoleNext)), "owner"))
	}
	assert.False(t, v.Stopped())
	v.Stop(false)
}

func TestViewChangePageOutOfRange(t *testing.T) {
	mgr, _ := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage)
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	assert.ErrorIs(t, v.ChangePage(nil, 3), ErrOutOfRange)
	assert.ErrorIs(t, v.ChangePage(nil, -1), ErrOutOfRange)
	assert.Equal(t, 0, v.CurrentPage())
}

func TestViewFormatterErrorRestoresPage(t *testing.T) {
	mgr, _ := newTestManager()
	renderErr := errors.New("render exploded")
	format := func(v *View[string], page []string) (any, error) {
		if v.CurrentPage() == 1 {
			return nil, renderErr
		}
		return "ok", nil
	}

	v, err := NewView(mgr, "owner", items(13), format)
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	err = v.ChangePage(nil, 1)
	assert.ErrorIs(t, err, renderErr)
	assert.Equal(t, 0, v.CurrentPage())

	// the view survives and can still move to a healthy page
	assert.NoError(t, v.ChangePage(nil, 2))
	assert.Equal(t, 2, v.CurrentPage())
}

func TestViewChangeSourceKeepsFittingPage(t *testing.T) {
	mgr, _ := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage)
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	require.NoError(t, v.ChangePage(nil, 1))
	require.NoError(t, v.ChangeSource(items(12), nil))
	assert.Equal(t, 1, v.CurrentPage())
	assert.Equal(t, 2, v.MaxPages())
}

func TestViewChangeSourceShrinkResetsToFirst(t *testing.T) {
	mgr, _ := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage)
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	require.NoError(t, v.ChangePage(nil, 2))
	require.NoError(t, v.ChangeSource(items(3), nil))
	assert.Equal(t, 0, v.CurrentPage())
	assert.Equal(t, 1, v.MaxPages())
}

func TestViewChangeSourceBeforeStart(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(3), textPage)
	require.NoError(t, err)

	require.NoError(t, v.ChangeSource(items(20), nil))
	assert.Equal(t, 4, v.MaxPages())

	sends, edits, _, _ := fm.counts()
	assert.Zero(t, sends)
	assert.Zero(t, edits)
}

func TestViewStopDisablesControlsOnce(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage)
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	v.Stop(true)
	v.Stop(true)
	assert.True(t, v.Stopped())

	_, edits, deletes, _ := fm.counts()
	assert.Equal(t, 1, edits)
	assert.Zero(t, deletes)
	for _, b := range flattenButtons(*fm.edits[0].Components) {
		assert.True(t, b.Disabled, "control %s should be disabled", b.CustomID)
	}
}

func TestViewStopReleasesMessage(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage)
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	v.Stop(false)
	assert.True(t, v.Stopped())

	_, edits, deletes, _ := fm.counts()
	assert.Zero(t, edits)
	assert.Zero(t, deletes)
}

func TestViewStopDeleteAfter(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(3), textPage, WithDeleteAfter())
	require.NoError(t, err)
	msg, err := v.Start("chan")
	require.NoError(t, err)

	v.Stop(true)

	_, edits, _, _ := fm.counts()
	assert.Zero(t, edits)
	require.Len(t, fm.deletes, 1)
	assert.Equal(t, msg.ID, fm.deletes[0])
}

func TestViewStopButtonPress(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage)
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	mgr.Component(nil, press(v.ControlID(string(RoleStop)), "owner"))
	assert.True(t, v.Stopped())

	// the press is acknowledged, then the message edited with dead controls
	assert.Equal(t, discordgo.InteractionResponseDeferredMessageUpdate, fm.responses[0].Type)
	_, edits, _, _ := fm.counts()
	assert.Equal(t, 1, edits)
}

func TestViewTimeoutStops(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage, WithTimeout(30*time.Millisecond))
	require.NoError(t, err)
	msg, err := v.Start("chan")
	require.NoError(t, err)

	require.Eventually(t, v.Stopped, time.Second, 10*time.Millisecond)

	// timeout edits the existing message, never sends a new one
	sends, edits, deletes, _ := fm.counts()
	assert.Equal(t, 1, sends)
	assert.Equal(t, 1, edits)
	assert.Zero(t, deletes)
	assert.Equal(t, msg.ID, fm.edits[0].ID)
}

func TestViewSinglePageOmitsNavigation(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(3), textPage)
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	btns := flattenButtons(fm.sends[0].Components)
	require.Len(t, btns, 1)
	assert.Equal(t, "stop", controlName(btns[0].CustomID))
}

func TestViewInteractionAfterStopIsAcked(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage)
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)
	v.Stop(true)

	// the view is unregistered, so the manager answers the stale press
	mgr.Component(nil, press(v.ControlID(string(RoleNext)), "owner"))
	assert.Equal(t, discordgo.InteractionResponseDeferredMessageUpdate, fm.lastResponse().Type)
	assert.Equal(t, 0, v.CurrentPage())
}

func TestViewStartAtTakesOverMessage(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(13), textPage)
	require.NoError(t, err)

	err = v.StartAt(&discordgo.Message{ID: "existing", ChannelID: "chan"})
	require.NoError(t, err)

	sends, edits, _, _ := fm.counts()
	assert.Zero(t, sends)
	require.Equal(t, 1, edits)
	assert.Equal(t, "existing", fm.edits[0].ID)
	require.NotNil(t, v.Message())
	assert.Equal(t, "existing", v.Message().ID)
}

func TestViewAttachReplacesById(t *testing.T) {
	mgr, fm := newTestManager()
	v, err := NewView(mgr, "owner", items(3), textPage)
	require.NoError(t, err)

	handled := ""
	build := func(label string) (discordgo.MessageComponent, ComponentHandler) {
		return discordgo.Button{Label: label, CustomID: v.ControlID("extra")},
			func(ic *discordgo.InteractionCreate, data discordgo.MessageComponentInteractionData) error {
				handled = label
				return nil
			}
	}
	comp, h := build("first")
	v.Attach("extra", 2, comp, h)
	comp, h = build("second")
	v.Attach("extra", 2, comp, h)

	_, err = v.Start("chan")
	require.NoError(t, err)

	labels := []string{}
	for _, b := range flattenButtons(fm.sends[0].Components) {
		if b.Label != "" {
			labels = append(labels, b.Label)
		}
	}
	assert.Equal(t, []string{"second"}, labels)

	mgr.Component(nil, press(v.ControlID("extra"), "owner"))
	assert.Equal(t, "second", handled)
}

func TestManagerIgnoresForeignCustomIDs(t *testing.T) {
	mgr, fm := newTestManager()

	mgr.Component(nil, press("other:1:thing", "owner"))
	mgr.Component(nil, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: "help"},
	}})

	_, _, _, responses := fm.counts()
	assert.Zero(t, responses)
}

func TestManagerAcksStaleViewID(t *testing.T) {
	mgr, fm := newTestManager()

	mgr.Component(nil, press("pgv:999:next", "owner"))

	require.Len(t, fm.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredMessageUpdate, fm.responses[0].Type)
}

func TestManagerOnError(t *testing.T) {
	mgr, _ := newTestManager()
	renderErr := errors.New("render exploded")
	var got error
	mgr.OnError = func(ic *discordgo.InteractionCreate, err error) { got = err }

	v, err := NewView(mgr, "owner", items(13), func(v *View[string], page []string) (any, error) {
		if v.CurrentPage() > 0 {
			return nil, renderErr
		}
		return "ok", nil
	})
	require.NoError(t, err)
	_, err = v.Start("chan")
	require.NoError(t, err)

	mgr.Component(nil, press(v.ControlID(string(RoleNext)), "owner"))
	assert.ErrorIs(t, got, renderErr)
	assert.Equal(t, 0, v.CurrentPage())
}
