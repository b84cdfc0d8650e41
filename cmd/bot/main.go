package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/bullet-bot/internal/adapters/challonge"
	discordrouter "github.com/jose-valero/bullet-bot/internal/adapters/discord"
	"github.com/jose-valero/bullet-bot/internal/adapters/httpops"
	"github.com/jose-valero/bullet-bot/internal/app/service"
	"github.com/jose-valero/bullet-bot/internal/app/session"
	"github.com/jose-valero/bullet-bot/internal/infra/config"
	"github.com/jose-valero/bullet-bot/internal/infra/storage"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB opcional: sólo historial de runs
	var (
		recorder service.RunRecorder
		runs     httpops.RunLister
	)
	if cfg.DatabaseURL != "" {
		db, err := storage.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("db open")
		}
		defer func(db *sql.DB) { _ = db.Close() }(db)
		if err := storage.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
		repo := storage.NewRunsRepo(db)
		recorder, runs = repo, repo
		log.Info().Msg("✅ DB lista y migrada")
	} else {
		log.Warn().Msg("DATABASE_URL vacío: sin historial de runs")
	}

	bracket := challonge.New(cfg.ChallongeAPIKey, challonge.WithBaseURL(cfg.ChallongeBaseURL))

	auth := strings.TrimSpace(cfg.DiscordToken)
	if !strings.HasPrefix(strings.ToLower(auth), "bot ") {
		auth = "Bot " + auth
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal().Err(err).Msg("discord session")
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates | discordgo.IntentsGuildMembers
	if err := s.Open(); err != nil {
		log.Fatal().Err(err).Msg("discord open")
	}
	defer s.Close()
	log.Info().Str("user", s.State.User.Username).Str("id", s.State.User.ID).Msg("✅ conectado")

	rooms := session.NewRegistry()
	svc := service.NewTournamentService(
		bracket,
		discordrouter.NewPlatform(s, s.State),
		rooms,
		cfg.AllowedRoleIDs,
		service.WithPollInterval(cfg.TeardownPollInterval),
		service.WithTeardownTimeout(cfg.TeardownTimeout),
		service.WithRecorder(recorder),
	)

	r := discordrouter.NewRouter(s, cfg.CommandGuildIDs, svc)
	if err := r.Register(); err != nil {
		log.Fatal().Err(err).Msg("registrando comandos")
	}
	r.Handlers()

	if cfg.HTTPAddr != "" {
		ops := httpops.New(rooms, runs)
		go func() {
			if err := ops.Start(ctx, cfg.HTTPAddr); err != nil {
				log.Error().Err(err).Msg("http server")
			}
		}()
	}

	<-ctx.Done()
	log.Info().Msg("apagando: limpiando bullets activos")

	sctx, cancel := context.WithTimeout(context.Background(), cfg.TeardownTimeout+10*time.Second)
	defer cancel()
	if err := svc.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("shutdown incompleto")
	}
}
