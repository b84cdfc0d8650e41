package service

import (
	"errors"
	"strings"

	"github.com/jose-valero/bullet-bot/internal/domain"
)

// outcomeFor traduce un error de Start/End a la respuesta corta (siempre efímera).
func outcomeFor(err error) domain.Outcome {
	var msg string
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		msg = "Insufficient permissions :x:"
	case errors.Is(err, domain.ErrAlreadyRunning):
		msg = "**There is already a bullet running in this server.** Use /bullet_end to end it!"
	case errors.Is(err, domain.ErrNotRunning):
		msg = "**There is no active bullet to end** :x:"
	case errors.Is(err, domain.ErrNotInVoice):
		msg = "Join a voice channel with the players first :x:"
	case errors.Is(err, domain.ErrInvalidPartition):
		msg = "Invalid number of __undeafened__ users in your voice channel :x:"
	case errors.Is(err, domain.ErrBracketAPI):
		msg = "API request to Challonge failed :x:"
	case errors.Is(err, domain.ErrProvisioning):
		msg = "Could not create the bullet channels :x:"
	case errors.Is(err, domain.ErrShuttingDown):
		msg = "The bot is restarting, try again in a minute :x:"
	case errors.Is(err, domain.ErrInvalidRequest):
		msg = "Invalid bullet options :x:"
	default:
		msg = "Something went wrong starting the bullet :x:"
	}
	return domain.Outcome{Message: msg, Ephemeral: true}
}

func announcement(players []domain.Participant, bracketURL string) string {
	var b strings.Builder
	for _, p := range players {
		b.WriteString("<@" + p.ID + ">")
	}
	b.WriteString("\nBracket: " + bracketURL)
	return b.String()
}
