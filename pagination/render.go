package pagination

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Render is the normalized shape every page formatter result is reduced to
// before it reaches the transport. Components is filled in by the view.
type Render struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
}

// Normalize reduces a formatter result to a Render. Accepted shapes are a
// *discordgo.MessageEmbed, a plain string, or a *Render passed through
// unchanged. Anything else is ErrBadRender.
func Normalize(v any) (*Render, error) {
	switch out := v.(type) {
	case *Render:
		cp := *out
		return &cp, nil
	case *discordgo.MessageEmbed:
		return &Render{Embeds: []*discordgo.MessageEmbed{out}}, nil
	case string:
		return &Render{Content: out}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrBadRender, v)
	}
}

func (r *Render) messageSend() *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:    r.Content,
		Embeds:     r.Embeds,
		Components: r.Components,
	}
}

// messageEdit sets every field explicitly so a page that switches between
// text and embed content fully replaces the previous one.
func (r *Render) messageEdit(channelID, messageID string) *discordgo.MessageEdit {
	return &discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Content:    &r.Content,
		Embeds:     &r.Embeds,
		Components: &r.Components,
	}
}

func (r *Render) responseUpdate() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    r.Content,
			Embeds:     r.Embeds,
			Components: r.Components,
		},
	}
}
