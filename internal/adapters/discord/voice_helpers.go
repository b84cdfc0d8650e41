package discord

import "github.com/bwmarrin/discordgo"

// callerVoiceChannel: canal de voz actual del usuario según el state; "" si no está en voz.
func callerVoiceChannel(state *discordgo.State, guildID, userID string) string {
	if state == nil {
		return ""
	}
	vs, err := state.VoiceState(guildID, userID)
	if err != nil || vs == nil {
		return ""
	}
	return vs.ChannelID
}

func displayName(m *discordgo.Member, fallback string) string {
	if m == nil {
		return fallback
	}
	if m.Nick != "" {
		return m.Nick
	}
	if m.User == nil {
		return fallback
	}
	return m.User.DisplayName()
}
