package service

import (
	"context"
	"time"

	"github.com/jose-valero/bullet-bot/internal/domain"
	"github.com/jose-valero/bullet-bot/internal/infra/storage"
)

// Lo implementa internal/adapters/challonge.Client
type BracketAPI interface {
	CreateBracket(ctx context.Context, prefix string) (domain.BracketHandle, error)
	AddTeams(ctx context.Context, h domain.BracketHandle, labels []string) error
}

// Lo implementa internal/adapters/discord.Platform
type Platform interface {
	VoiceOccupants(ctx context.Context, guildID, channelID string) ([]domain.Occupant, error)
	CreateCategory(ctx context.Context, guildID, name, reason string) (string, error)
	CreateTextChannel(ctx context.Context, guildID, parentID, name, reason string) (string, error)
	CreateVoiceChannel(ctx context.Context, guildID, parentID, name, reason string) (string, error)
	DeleteChannel(ctx context.Context, channelID, reason string) error
	MoveMember(ctx context.Context, guildID, userID, channelID string) error
	SendMessage(ctx context.Context, channelID, content string) error
}

// Lo implementa internal/infra/storage.RunsRepo (opcional)
type RunRecorder interface {
	RecordStart(ctx context.Context, run storage.TournamentRun) error
	RecordEnd(ctx context.Context, runID string, endedAt time.Time, cleanupFailures int) error
}

type nopRecorder struct{}

func (nopRecorder) RecordStart(context.Context, storage.TournamentRun) error { return nil }
func (nopRecorder) RecordEnd(context.Context, string, time.Time, int) error { return nil }
