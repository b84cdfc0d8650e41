package discord

import "github.com/bwmarrin/discordgo"

const (
	cmdBullet    = "bullet"
	cmdBulletEnd = "bullet_end"

	optMove = "move"
	optType = "type"
)

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        cmdBullet,
		Description: "Creates an instant bullet tournament",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        optMove,
				Description: "Move the members to their team voice channels",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optType,
				Description: "Team size",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "1v1", Value: 1},
					{Name: "2v2", Value: 2},
					{Name: "3v3", Value: 3},
					{Name: "4v4", Value: 4},
				},
			},
		},
	},
	{
		Name:        cmdBulletEnd,
		Description: "Ends the running bullet tournament",
	},
}
