package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/bullet-bot/internal/domain"
)

func SendEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, msg string) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("component", "discord").Msg("send ephemeral")
	}
	return err
}

// Defer efímero (para trabajos >3s)
func DeferEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("component", "discord").Msg("defer ephemeral")
	}
	return err
}

func ReplyEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(ic.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err == nil {
		return
	}
	// 10015 = webhook desconocido: el defer no llegó, respondemos directo
	var reqErr *discordgo.RESTError
	if errors.As(err, &reqErr) && reqErr.Message != nil && reqErr.Message.Code == discordgo.ErrCodeUnknownWebhook {
		_ = SendEphemeral(s, ic, content)
		return
	}
	log.Warn().Err(err).Str("component", "discord").Msg("reply ephemeral")
}

// Respond entrega el Outcome: los públicos van al canal donde se invocó el
// comando y el defer efímero se cierra con un ack.
func Respond(s *discordgo.Session, ic *discordgo.InteractionCreate, out domain.Outcome) {
	if out.Message == "" {
		return
	}
	if out.Ephemeral {
		ReplyEphemeral(s, ic, out.Message)
		return
	}
	if _, err := s.ChannelMessageSend(ic.ChannelID, out.Message); err != nil {
		log.Warn().Err(err).Str("component", "discord").Str("channel", ic.ChannelID).Msg("public reply")
		ReplyEphemeral(s, ic, out.Message)
		return
	}
	ReplyEphemeral(s, ic, "✅")
}
