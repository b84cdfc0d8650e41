package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/bullet-bot/internal/app/session"
	"github.com/jose-valero/bullet-bot/internal/app/teams"
	"github.com/jose-valero/bullet-bot/internal/domain"
	"github.com/jose-valero/bullet-bot/internal/infra/storage"
)

const (
	bracketPrefix = "Bullet"

	defaultPollInterval    = time.Second
	defaultTeardownTimeout = 2 * time.Minute

	reasonCategory      = "Temporary category for bullet related channels"
	reasonBracket       = "Temporary bracket channel for the bullet"
	reasonTeamChannel   = "Temporary voice channel for bullet team"
	reasonCleanupTeam   = "Cleaning up team channels after bullet"
	reasonCleanupShared = "Cleaning up channels after bullet"
)

type Option func(*TournamentService)

func WithClock(c clockwork.Clock) Option {
	return func(s *TournamentService) { s.clock = c }
}

// WithPollInterval: cada cuánto se revisa el flag de teardown.
func WithPollInterval(d time.Duration) Option {
	return func(s *TournamentService) {
		if d > 0 {
			s.poll = d
		}
	}
}

func WithPartitioner(p *teams.Partitioner) Option {
	return func(s *TournamentService) { s.teams = p }
}

func WithRecorder(r RunRecorder) Option {
	return func(s *TournamentService) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithTeardownTimeout(d time.Duration) Option {
	return func(s *TournamentService) {
		if d > 0 {
			s.teardownTimeout = d
		}
	}
}

// TournamentService orquesta un bullet por guild: arma equipos, registra el
// bracket, crea los canales, espera /bullet_end y limpia.
type TournamentService struct {
	bracket  BracketAPI
	platform Platform
	rooms    *session.Registry
	teams    *teams.Partitioner
	recorder RunRecorder
	allowed  map[string]struct{}

	clock           clockwork.Clock
	poll            time.Duration
	teardownTimeout time.Duration

	// mu protege closing y los wg.Add: ningún run nuevo entra después de Shutdown
	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup

	log zerolog.Logger
}

// run es propiedad exclusiva de la goroutine que sostiene el torneo.
type run struct {
	id        string
	req       domain.TournamentRequest
	bracket   domain.BracketHandle
	teams     []domain.Team
	res       domain.ProvisionedResources
	startedAt time.Time
}

func NewTournamentService(bracket BracketAPI, platform Platform, rooms *session.Registry, allowedRoleIDs []string, opts ...Option) *TournamentService {
	s := &TournamentService{
		bracket:         bracket,
		platform:        platform,
		rooms:           rooms,
		recorder:        nopRecorder{},
		allowed:         make(map[string]struct{}, len(allowedRoleIDs)),
		clock:           clockwork.NewRealClock(),
		poll:            defaultPollInterval,
		teardownTimeout: defaultTeardownTimeout,
		log:             log.With().Str("component", "tournament").Logger(),
	}
	for _, id := range allowedRoleIDs {
		s.allowed[id] = struct{}{}
	}
	for _, o := range opts {
		o(s)
	}
	if s.teams == nil {
		s.teams = teams.NewPartitioner(nil)
	}
	return s
}

func (s *TournamentService) authorized(roles []string) bool {
	for _, r := range roles {
		if _, ok := s.allowed[r]; ok {
			return true
		}
	}
	return false
}

// Start valida, arma el torneo y deja una goroutine esperando el fin.
// Vuelve en cuanto el torneo queda Running o falla; ante error el room vuelve a Idle.
func (s *TournamentService) Start(ctx context.Context, req domain.TournamentRequest) (domain.Outcome, error) {
	lg := s.log.With().Str("guild", req.RoomID).Str("by", req.CallerID).Logger()

	if !s.authorized(req.CallerRoles) {
		return outcomeFor(domain.ErrPermissionDenied), domain.ErrPermissionDenied
	}
	if err := req.Validate(); err != nil {
		return outcomeFor(err), err
	}
	// check-and-set sin llamadas externas de por medio
	if !s.rooms.TrySetRunning(req.RoomID) {
		return outcomeFor(domain.ErrAlreadyRunning), domain.ErrAlreadyRunning
	}
	if !s.admit() {
		s.rooms.Clear(req.RoomID)
		return outcomeFor(domain.ErrShuttingDown), domain.ErrShuttingDown
	}

	r, err := s.form(ctx, req)
	if err != nil {
		s.rooms.Clear(req.RoomID)
		s.wg.Done()
		lg.Warn().Err(err).Int("team_size", req.TeamSize).Msg("start rejected")
		return outcomeFor(err), err
	}

	lg.Info().Str("run", r.id).Int64("bracket", r.bracket.ID).Int("teams", len(r.teams)).
		Int("team_channels", len(r.res.TeamChannelIDs)).Msg("tournament running")
	go s.hold(r)

	return domain.Outcome{
		Message: fmt.Sprintf("%dv%d bracket: <%s> (<#%s>)", req.TeamSize, req.TeamSize, r.bracket.URL, r.res.BracketChannelID),
	}, nil
}

// End sólo levanta el flag; la goroutine del torneo hace la limpieza.
func (s *TournamentService) End(ctx context.Context, req domain.EndRequest) (domain.Outcome, error) {
	if !s.authorized(req.CallerRoles) {
		return outcomeFor(domain.ErrPermissionDenied), domain.ErrPermissionDenied
	}
	if !s.rooms.RequestTeardown(req.RoomID) {
		return outcomeFor(domain.ErrNotRunning), domain.ErrNotRunning
	}
	s.log.Info().Str("guild", req.RoomID).Str("by", req.CallerID).Msg("teardown requested")
	return domain.Outcome{Message: "**Bullet ending** :white_check_mark:"}, nil
}

func (s *TournamentService) admit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.wg.Add(1)
	return true
}

// Shutdown deja de aceptar Start, pide el fin de todos los torneos activos y
// espera la limpieza. Todo run admitido ya está Running en el registry cuando
// se toma la lista.
func (s *TournamentService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	for _, id := range s.rooms.Running() {
		s.rooms.RequestTeardown(id)
	}
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *TournamentService) form(ctx context.Context, req domain.TournamentRequest) (*run, error) {
	occupants, err := s.platform.VoiceOccupants(ctx, req.RoomID, req.VoiceChannelID)
	if err != nil {
		return nil, fmt.Errorf("voice occupants: %w", err)
	}
	players := make([]domain.Participant, 0, len(occupants))
	for _, o := range occupants {
		if o.Eligible() {
			players = append(players, o.Participant())
		}
	}

	split, err := s.teams.Split(players, req.TeamSize)
	if err != nil {
		return nil, err
	}

	h, err := s.bracket.CreateBracket(ctx, bracketPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: create bracket: %w", domain.ErrBracketAPI, err)
	}
	labels := make([]string, 0, len(split))
	for _, t := range split {
		labels = append(labels, t.Label())
	}
	if err := s.bracket.AddTeams(ctx, h, labels); err != nil {
		return nil, fmt.Errorf("%w: add teams to %d: %w", domain.ErrBracketAPI, h.ID, err)
	}

	r := &run{id: uuid.NewString(), req: req, bracket: h, teams: split}
	if err := s.provision(ctx, r, players); err != nil {
		return nil, err
	}
	r.startedAt = s.clock.Now()

	if err := s.recorder.RecordStart(ctx, storage.TournamentRun{
		RunID:      r.id,
		GuildID:    req.RoomID,
		TeamSize:   req.TeamSize,
		Relocated:  req.Relocate,
		BracketID:  h.ID,
		BracketURL: h.URL,
		TeamLabels: labels,
		StartedAt:  r.startedAt,
	}); err != nil {
		s.log.Warn().Err(err).Str("run", r.id).Msg("record start")
	}
	return r, nil
}

// provision crea categoría + canal del bracket y, si se pidió, un canal de voz por
// equipo moviendo a sus jugadores. Sólo la categoría y el canal del bracket son
// obligatorios; el resto se loguea y se sigue.
func (s *TournamentService) provision(ctx context.Context, r *run, players []domain.Participant) error {
	g := r.req.RoomID
	size := r.req.TeamSize
	r.res.OriginChannelID = r.req.VoiceChannelID

	cat, err := s.platform.CreateCategory(ctx, g, fmt.Sprintf("%dv%d bullet", size, size), reasonCategory)
	if err != nil {
		return fmt.Errorf("%w: category: %w", domain.ErrProvisioning, err)
	}
	r.res.CategoryID = cat

	br, err := s.platform.CreateTextChannel(ctx, g, cat, "bracket", reasonBracket)
	if err != nil {
		rep := &domain.CleanupReport{}
		s.reclaimShared(ctx, rep, r.res)
		s.logCleanup(r, rep)
		return fmt.Errorf("%w: bracket channel: %w", domain.ErrProvisioning, err)
	}
	r.res.BracketChannelID = br

	if err := s.platform.SendMessage(ctx, br, announcement(players, r.bracket.URL)); err != nil {
		s.log.Warn().Err(err).Str("guild", g).Str("channel", br).Msg("announce bracket")
	}

	if !r.req.Relocate {
		return nil
	}
	for _, t := range r.teams {
		vc, err := s.platform.CreateVoiceChannel(ctx, g, cat, t.Label(), reasonTeamChannel)
		if err != nil {
			s.log.Warn().Err(err).Str("guild", g).Str("team", t.Label()).Msg("create team channel")
			continue
		}
		r.res.TeamChannelIDs = append(r.res.TeamChannelIDs, vc)
		for _, id := range t.IDs() {
			// si alguien no se puede mover se queda donde está
			if err := s.platform.MoveMember(ctx, g, id, vc); err != nil {
				s.log.Warn().Err(err).Str("guild", g).Str("user", id).Str("channel", vc).Msg("move to team channel")
			}
		}
	}
	return nil
}

func (s *TournamentService) hold(r *run) {
	defer s.wg.Done()
	s.awaitTeardown(r.req.RoomID)

	ctx, cancel := context.WithTimeout(context.Background(), s.teardownTimeout)
	defer cancel()

	rep := s.teardown(ctx, r)
	s.logCleanup(r, rep)
	if err := s.recorder.RecordEnd(ctx, r.id, s.clock.Now(), len(rep.Failures)); err != nil {
		s.log.Warn().Err(err).Str("run", r.id).Msg("record end")
	}
	s.rooms.Clear(r.req.RoomID)
	s.log.Info().Str("guild", r.req.RoomID).Str("run", r.id).Msg("tournament ended")
}

// awaitTeardown revisa el flag del registry en cada tick; el fin llega a lo
// sumo un intervalo después de /bullet_end.
func (s *TournamentService) awaitTeardown(roomID string) {
	t := s.clock.NewTicker(s.poll)
	defer t.Stop()
	for {
		<-t.Chan()
		if s.rooms.Get(roomID).TeardownRequested {
			return
		}
	}
}

// teardown intenta todos los pasos aunque alguno falle y no reintenta nada.
func (s *TournamentService) teardown(ctx context.Context, r *run) *domain.CleanupReport {
	rep := &domain.CleanupReport{}
	g := r.req.RoomID
	for _, ch := range r.res.TeamChannelIDs {
		var occ []domain.Occupant
		rep.Attempt("list occupants", ch, func() (err error) {
			occ, err = s.platform.VoiceOccupants(ctx, g, ch)
			return err
		})
		for _, o := range occ {
			rep.Attempt("move back "+o.ID, ch, func() error {
				return s.platform.MoveMember(ctx, g, o.ID, r.res.OriginChannelID)
			})
		}
		rep.Attempt("delete team channel", ch, func() error {
			return s.platform.DeleteChannel(ctx, ch, reasonCleanupTeam)
		})
	}
	s.reclaimShared(ctx, rep, r.res)
	return rep
}

func (s *TournamentService) reclaimShared(ctx context.Context, rep *domain.CleanupReport, res domain.ProvisionedResources) {
	if res.BracketChannelID != "" {
		rep.Attempt("delete bracket channel", res.BracketChannelID, func() error {
			return s.platform.DeleteChannel(ctx, res.BracketChannelID, reasonCleanupShared)
		})
	}
	if res.CategoryID != "" {
		rep.Attempt("delete category", res.CategoryID, func() error {
			return s.platform.DeleteChannel(ctx, res.CategoryID, reasonCleanupShared)
		})
	}
}

func (s *TournamentService) logCleanup(r *run, rep *domain.CleanupReport) {
	for _, f := range rep.Failures {
		s.log.Warn().Err(f.Err).Str("guild", r.req.RoomID).Str("run", r.id).
			Str("step", f.Step).Str("channel", f.ChannelID).Msg("cleanup failed")
	}
}
