package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/bullet-bot/internal/domain"
)

func findOpt(ic *discordgo.InteractionCreate, name string) *discordgo.ApplicationCommandInteractionDataOption {
	if ic.Type != discordgo.InteractionApplicationCommand {
		return nil
	}
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name {
			return o
		}
	}
	return nil
}

func optBool(ic *discordgo.InteractionCreate, name string) (bool, bool) {
	o := findOpt(ic, name)
	if o == nil || o.Type != discordgo.ApplicationCommandOptionBoolean {
		return false, false
	}
	return o.BoolValue(), true
}

func optInt(ic *discordgo.InteractionCreate, name string) (int, bool) {
	o := findOpt(ic, name)
	if o == nil || o.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, false
	}
	return int(o.IntValue()), true
}

// startRequest arma el pedido de /bullet; el canal de voz sale del state, no de la interacción.
func startRequest(ic *discordgo.InteractionCreate, state *discordgo.State) domain.TournamentRequest {
	uid := callerID(ic)
	size, _ := optInt(ic, optType)
	move, _ := optBool(ic, optMove)
	return domain.TournamentRequest{
		RoomID:         ic.GuildID,
		ChannelID:      ic.ChannelID,
		VoiceChannelID: callerVoiceChannel(state, ic.GuildID, uid),
		CallerID:       uid,
		CallerRoles:    callerRoles(ic),
		TeamSize:       size,
		Relocate:       move,
	}
}

func endRequest(ic *discordgo.InteractionCreate) domain.EndRequest {
	return domain.EndRequest{
		RoomID:      ic.GuildID,
		CallerID:    callerID(ic),
		CallerRoles: callerRoles(ic),
	}
}
