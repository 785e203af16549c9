package pagination

import "github.com/bwmarrin/discordgo"

// Messenger is the transport surface the engine needs: send, edit and delete
// a message, plus responding to an interaction. *discordgo.Session is the
// production implementation via SessionMessenger; tests substitute a fake.
type Messenger interface {
	Send(channelID string, send *discordgo.MessageSend) (*discordgo.Message, error)
	Edit(edit *discordgo.MessageEdit) (*discordgo.Message, error)
	Delete(channelID, messageID string) error
	Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
}

// SessionMessenger adapts a discordgo session to the Messenger interface.
type SessionMessenger struct {
	Session *discordgo.Session
}

func NewSessionMessenger(s *discordgo.Session) *SessionMessenger {
	return &SessionMessenger{Session: s}
}

func (m *SessionMessenger) Send(channelID string, send *discordgo.MessageSend) (*discordgo.Message, error) {
	return m.Session.ChannelMessageSendComplex(channelID, send)
}

func (m *SessionMessenger) Edit(edit *discordgo.MessageEdit) (*discordgo.Message, error) {
	return m.Session.ChannelMessageEditComplex(edit)
}

func (m *SessionMessenger) Delete(channelID, messageID string) error {
	return m.Session.ChannelMessageDelete(channelID, messageID)
}

func (m *SessionMessenger) Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return m.Session.InteractionRespond(i, resp)
}
