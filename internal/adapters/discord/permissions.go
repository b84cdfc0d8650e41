package discord

import "github.com/bwmarrin/discordgo"

// callerRoles: los roles del miembro que invocó; el service decide si alcanzan.
func callerRoles(ic *discordgo.InteractionCreate) []string {
	if ic.Member == nil {
		return nil
	}
	return ic.Member.Roles
}

func callerID(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.ID
	}
	if ic.User != nil {
		return ic.User.ID
	}
	return ""
}
