// lógica de InteractionApplicationCommand: sólo arma el pedido y despacha al service
package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/bullet-bot/internal/domain"
)

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	cmd := ic.ApplicationCommandData()
	uid := callerID(ic)
	if ic.GuildID == "" || uid == "" {
		_ = SendEphemeral(s, ic, "This command only works inside a server :x:")
		return
	}
	lg := log.With().Str("component", "discord").Str("cmd", cmd.Name).Str("by", uid).Str("guild", ic.GuildID).Logger()
	lg.Info().Msg("slash")

	defer func() {
		if rec := recover(); rec != nil {
			lg.Error().Interface("panic", rec).Msg("slash panic")
			ReplyEphemeral(s, ic, "Something went wrong :x:")
		}
	}()

	if !r.limiter.Allow(uid) {
		_ = SendEphemeral(s, ic, "⏳ Slow down, try again in a few seconds.")
		return
	}

	_ = DeferEphemeral(s, ic)
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var (
		out domain.Outcome
		err error
	)
	switch cmd.Name {
	case cmdBullet:
		done := step("bullet.start")
		out, err = r.tournaments.Start(ctx, startRequest(ic, s.State))
		done()
	case cmdBulletEnd:
		out, err = r.tournaments.End(ctx, endRequest(ic))
	default:
		ReplyEphemeral(s, ic, "Unknown command :x:")
		return
	}
	if err != nil {
		lg.Debug().Err(err).Msg("slash rejected")
	}
	Respond(s, ic, out)
}
