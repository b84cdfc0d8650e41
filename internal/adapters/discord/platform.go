package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/bullet-bot/internal/domain"
)

// Platform implementa service.Platform sobre discordgo. Lee ocupantes de voz del
// State (cache del gateway) y hace el resto por REST.
type Platform struct {
	api   Session
	state *discordgo.State
}

func NewPlatform(api Session, state *discordgo.State) *Platform {
	return &Platform{api: api, state: state}
}

func (p *Platform) VoiceOccupants(ctx context.Context, guildID, channelID string) ([]domain.Occupant, error) {
	g, err := p.state.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("guild %s not in state: %w", guildID, err)
	}

	p.state.RLock()
	states := make([]discordgo.VoiceState, 0, len(g.VoiceStates))
	for _, vs := range g.VoiceStates {
		if vs != nil && vs.ChannelID == channelID {
			states = append(states, *vs)
		}
	}
	p.state.RUnlock()

	out := make([]domain.Occupant, 0, len(states))
	for _, vs := range states {
		m := vs.Member
		if m == nil {
			m, _ = p.state.Member(guildID, vs.UserID)
		}
		if m == nil {
			m, err = p.api.GuildMember(guildID, vs.UserID, discordgo.WithContext(ctx))
			if err != nil {
				log.Warn().Err(err).Str("component", "discord").Str("guild", guildID).Str("user", vs.UserID).Msg("member lookup")
			}
		}
		occ := domain.Occupant{
			ID:          vs.UserID,
			DisplayName: displayName(m, vs.UserID),
			Deaf:        vs.Deaf,
			SelfDeaf:    vs.SelfDeaf,
		}
		if m != nil && m.User != nil {
			occ.Bot = m.User.Bot
		}
		out = append(out, occ)
	}
	return out, nil
}

func (p *Platform) createChannel(ctx context.Context, guildID string, data discordgo.GuildChannelCreateData, reason string) (string, error) {
	ch, err := p.api.GuildChannelCreateComplex(guildID, data, discordgo.WithAuditLogReason(reason), discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}

func (p *Platform) CreateCategory(ctx context.Context, guildID, name, reason string) (string, error) {
	return p.createChannel(ctx, guildID, discordgo.GuildChannelCreateData{
		Name: name,
		Type: discordgo.ChannelTypeGuildCategory,
	}, reason)
}

func (p *Platform) CreateTextChannel(ctx context.Context, guildID, parentID, name, reason string) (string, error) {
	return p.createChannel(ctx, guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: parentID,
	}, reason)
}

func (p *Platform) CreateVoiceChannel(ctx context.Context, guildID, parentID, name, reason string) (string, error) {
	return p.createChannel(ctx, guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildVoice,
		ParentID: parentID,
	}, reason)
}

func (p *Platform) DeleteChannel(ctx context.Context, channelID, reason string) error {
	_, err := p.api.ChannelDelete(channelID, discordgo.WithAuditLogReason(reason), discordgo.WithContext(ctx))
	return err
}

func (p *Platform) MoveMember(ctx context.Context, guildID, userID, channelID string) error {
	ch := channelID
	return p.api.GuildMemberMove(guildID, userID, &ch, discordgo.WithContext(ctx))
}

func (p *Platform) SendMessage(ctx context.Context, channelID, content string) error {
	_, err := p.api.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	return err
}
