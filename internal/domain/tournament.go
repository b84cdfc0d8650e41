package domain

import (
	"fmt"
	"strings"
)

// Participant es un ocupante elegible del canal de voz al momento del comando.
type Participant struct {
	ID          string
	DisplayName string
}

// Occupant es lo que la plataforma reporta de cada miembro en un canal de voz.
type Occupant struct {
	ID          string
	DisplayName string
	Bot         bool
	Deaf        bool
	SelfDeaf    bool
}

// Eligible: ni bots ni gente ensordecida (server o self).
func (o Occupant) Eligible() bool {
	return !o.Bot && !o.Deaf && !o.SelfDeaf
}

func (o Occupant) Participant() Participant {
	return Participant{ID: o.ID, DisplayName: o.DisplayName}
}

type Team struct {
	Members []Participant
}

func (t Team) IDs() []string {
	ids := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

// Label es el nombre que ve Challonge y el canal de voz del equipo.
func (t Team) Label() string {
	names := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		names = append(names, m.DisplayName)
	}
	return strings.Join(names, " ")
}

type TournamentRequest struct {
	RoomID         string // guild
	ChannelID      string // canal de texto donde se invocó el comando
	VoiceChannelID string // canal de voz del que salen los jugadores
	CallerID       string
	CallerRoles    []string
	TeamSize       int
	Relocate       bool
}

func (r TournamentRequest) Validate() error {
	if strings.TrimSpace(r.RoomID) == "" {
		return fmt.Errorf("%w: missing room", ErrInvalidRequest)
	}
	if r.TeamSize < 1 {
		return fmt.Errorf("%w: team size %d", ErrInvalidRequest, r.TeamSize)
	}
	if strings.TrimSpace(r.VoiceChannelID) == "" {
		return ErrNotInVoice
	}
	return nil
}

type EndRequest struct {
	RoomID      string
	CallerID    string
	CallerRoles []string
}

type BracketHandle struct {
	ID  int64
	URL string
}

// ProvisionedResources son los canales temporales de una corrida.
type ProvisionedResources struct {
	CategoryID       string
	BracketChannelID string
	TeamChannelIDs   []string
	OriginChannelID  string
}

// Outcome es la respuesta corta al usuario y si debe ser efímera.
type Outcome struct {
	Message   string
	Ephemeral bool
}
