package challonge

import (
	"context"
	"errors"
	"fmt"

	"github.com/jose-valero/bullet-bot/internal/domain"
)

const (
	nameSuffixLen = 15
	slugLen       = 20
)

// CreateBracket registra un torneo nuevo. El nombre final es "<prefix>-<15 letras>"
// y el slug de la URL son 20 letras al azar.
func (c *Client) CreateBracket(ctx context.Context, prefix string) (domain.BracketHandle, error) {
	if prefix == "" {
		prefix = "Bullet"
	}
	in := createTournamentDTO{
		APIKey: c.apiKey,
		Tournament: tournamentDTO{
			Name:            fmt.Sprintf("%s-%s", prefix, randomString(nameSuffixLen)),
			URL:             randomString(slugLen),
			Description:     "Bracket automatically created by bullet bot",
			RankedBy:        "game wins",
			SignupCap:       100,
			CheckInDuration: 10,
			OpenSignup:      false,
		},
	}

	var dto tournamentEnvelopeDTO
	if err := c.postJSON(ctx, "/tournaments.json", in, &dto); err != nil {
		return domain.BracketHandle{}, err
	}
	if dto.Tournament.ID == 0 {
		return domain.BracketHandle{}, errors.New("challonge: tournament response without id")
	}
	url := dto.Tournament.FullChallongeURL
	if url == "" && dto.Tournament.URL != "" {
		url = "https://challonge.com/" + dto.Tournament.URL
	}
	return domain.BracketHandle{ID: dto.Tournament.ID, URL: url}, nil
}

// AddTeams carga todos los equipos de una; sólo después de CreateBracket.
func (c *Client) AddTeams(ctx context.Context, h domain.BracketHandle, labels []string) error {
	in := bulkAddDTO{APIKey: c.apiKey, Participants: make([]participantDTO, 0, len(labels))}
	for _, l := range labels {
		in.Participants = append(in.Participants, participantDTO{Name: l})
	}
	return c.postJSON(ctx, fmt.Sprintf("/tournaments/%d/participants/bulk_add.json", h.ID), in, nil)
}
