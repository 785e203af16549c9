package pagination

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// customIDPrefix tags every component custom ID the engine emits so the
// manager can tell its interactions apart from the rest of the bot's.
const customIDPrefix = "pgv"

// componentView is what the manager needs from a live view regardless of its
// item type.
type componentView interface {
	handleComponent(ic *discordgo.InteractionCreate) error
}

// Manager routes component interactions to the view that owns them. Views
// register on start and unregister on stop; interactions carrying the custom
// ID of a view that is gone are acknowledged and dropped so Discord does not
// show a failure to the user.
type Manager struct {
	ms  Messenger
	log *zap.Logger

	// OnError receives errors surfaced by view handlers, typically render
	// failures. The help layer wires this to its error view; when nil the
	// error is only logged.
	OnError func(ic *discordgo.InteractionCreate, err error)

	mu     sync.RWMutex
	views  map[string]componentView
	nextID atomic.Uint64
}

func NewManager(ms Messenger, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		ms:    ms,
		log:   log,
		views: make(map[string]componentView),
	}
}

// Messenger returns the transport the manager's views send through.
func (m *Manager) Messenger() Messenger { return m.ms }

// Component is a discordgo handler for InteractionCreate events. Register it
// with Session.AddHandler; it ignores interactions that are not message
// components or not addressed to a pagination view.
func (m *Manager) Component(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic.Type != discordgo.InteractionMessageComponent {
		return
	}
	data := ic.MessageComponentData()
	if !strings.HasPrefix(data.CustomID, customIDPrefix+":") {
		return
	}
	parts := strings.SplitN(data.CustomID, ":", 3)
	if len(parts) != 3 {
		return
	}

	m.mu.RLock()
	view, ok := m.views[parts[1]]
	m.mu.RUnlock()
	if !ok {
		_ = m.ms.Respond(ic.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
		return
	}

	if err := view.handleComponent(ic); err != nil {
		m.log.Warn("pagination interaction failed",
			zap.String("custom_id", data.CustomID),
			zap.String("user", InteractionUser(ic.Interaction)),
			zap.Error(err))
		if m.OnError != nil {
			m.OnError(ic, err)
		}
	}
}

func (m *Manager) register(id string, v componentView) {
	m.mu.Lock()
	m.views[id] = v
	m.mu.Unlock()
}

func (m *Manager) unregister(id string) {
	m.mu.Lock()
	delete(m.views, id)
	m.mu.Unlock()
}
