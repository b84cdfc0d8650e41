package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/bullet-bot/internal/domain"
)

// Tournaments es lo que el router necesita del service.
type Tournaments interface {
	Start(ctx context.Context, req domain.TournamentRequest) (domain.Outcome, error)
	End(ctx context.Context, req domain.EndRequest) (domain.Outcome, error)
}

type Router struct {
	s           *discordgo.Session
	guildIDs    []string
	tournaments Tournaments

	limiter *userLimiter
	timeout time.Duration
}

func NewRouter(s *discordgo.Session, guildIDs []string, tournaments Tournaments) *Router {
	return &Router{
		s:           s,
		guildIDs:    guildIDs,
		tournaments: tournaments,
		limiter:     newUserLimiter(3 * time.Second),
		timeout:     60 * time.Second,
	}
}

// Register publica los comandos en cada guild configurado.
func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, guildID := range r.guildIDs {
		for _, cmd := range Commands {
			if _, err := r.s.ApplicationCommandCreate(appID, guildID, cmd); err != nil {
				return fmt.Errorf("register /%s in guild %s: %w", cmd.Name, guildID, err)
			}
		}
		log.Info().Str("component", "discord").Str("guild", guildID).Int("commands", len(Commands)).Msg("commands registered")
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		r.handleSlashCommand(s, ic)
	})
}
