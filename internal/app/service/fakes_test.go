package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jose-valero/bullet-bot/internal/domain"
	"github.com/jose-valero/bullet-bot/internal/infra/storage"
)

// fakePlatform simula un guild: canales con ocupantes que se mueven de verdad.
type fakePlatform struct {
	mu sync.Mutex

	nextID    int
	occupants map[string][]domain.Occupant

	created  []createdChannel
	deleted  []string
	moves    []move
	messages []sentMessage

	failList     map[string]error
	failCategory error
	failText     error
	failVoice    map[string]error // por nombre
	failMove     map[string]error // por user id
	failDelete   map[string]error // por channel id
}

type createdChannel struct {
	Kind, ID, ParentID, Name, Reason string
}

type move struct {
	UserID, ChannelID string
}

type sentMessage struct {
	ChannelID, Content string
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		occupants:  map[string][]domain.Occupant{},
		failList:   map[string]error{},
		failVoice:  map[string]error{},
		failMove:   map[string]error{},
		failDelete: map[string]error{},
	}
}

func (f *fakePlatform) seat(channelID string, occ ...domain.Occupant) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.occupants[channelID] = append(f.occupants[channelID], occ...)
}

func (f *fakePlatform) VoiceOccupants(_ context.Context, _, channelID string) ([]domain.Occupant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failList[channelID]; err != nil {
		return nil, err
	}
	return append([]domain.Occupant(nil), f.occupants[channelID]...), nil
}

func (f *fakePlatform) create(kind, parentID, name, reason string) string {
	f.nextID++
	id := fmt.Sprintf("%s-%d", kind, f.nextID)
	f.created = append(f.created, createdChannel{Kind: kind, ID: id, ParentID: parentID, Name: name, Reason: reason})
	return id
}

func (f *fakePlatform) CreateCategory(_ context.Context, _, name, reason string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCategory != nil {
		return "", f.failCategory
	}
	return f.create("category", "", name, reason), nil
}

func (f *fakePlatform) CreateTextChannel(_ context.Context, _, parentID, name, reason string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failText != nil {
		return "", f.failText
	}
	return f.create("text", parentID, name, reason), nil
}

func (f *fakePlatform) CreateVoiceChannel(_ context.Context, _, parentID, name, reason string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failVoice[name]; err != nil {
		return "", err
	}
	id := f.create("voice", parentID, name, reason)
	f.occupants[id] = nil
	return id, nil
}

func (f *fakePlatform) DeleteChannel(_ context.Context, channelID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failDelete[channelID]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, channelID)
	delete(f.occupants, channelID)
	return nil
}

func (f *fakePlatform) MoveMember(_ context.Context, _, userID, channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failMove[userID]; err != nil {
		return err
	}
	var who domain.Occupant
	found := false
	for ch, occ := range f.occupants {
		for i, o := range occ {
			if o.ID == userID {
				who, found = o, true
				f.occupants[ch] = append(occ[:i:i], occ[i+1:]...)
				break
			}
		}
		if found {
			break
		}
	}
	if !found {
		return errors.New("user not in voice")
	}
	f.occupants[channelID] = append(f.occupants[channelID], who)
	f.moves = append(f.moves, move{UserID: userID, ChannelID: channelID})
	return nil
}

func (f *fakePlatform) SendMessage(_ context.Context, channelID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, sentMessage{ChannelID: channelID, Content: content})
	return nil
}

func (f *fakePlatform) createdOf(kind string) []createdChannel {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []createdChannel
	for _, c := range f.created {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakePlatform) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func (f *fakePlatform) occupantIDs(channelID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, o := range f.occupants[channelID] {
		ids = append(ids, o.ID)
	}
	return ids
}

func (f *fakePlatform) moveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.moves)
}

type fakeBracket struct {
	mu sync.Mutex

	handle    domain.BracketHandle
	createErr error
	addErr    error

	creates int
	added   [][]string
	// gate, si no es nil, bloquea CreateBracket hasta que se cierre
	gate chan struct{}
}

func newFakeBracket() *fakeBracket {
	return &fakeBracket{handle: domain.BracketHandle{ID: 77, URL: "https://challonge.com/abcdef"}}
}

func (b *fakeBracket) CreateBracket(ctx context.Context, _ string) (domain.BracketHandle, error) {
	if b.gate != nil {
		select {
		case <-b.gate:
		case <-ctx.Done():
			return domain.BracketHandle{}, ctx.Err()
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.creates++
	if b.createErr != nil {
		return domain.BracketHandle{}, b.createErr
	}
	return b.handle, nil
}

func (b *fakeBracket) AddTeams(_ context.Context, h domain.BracketHandle, labels []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.addErr != nil {
		return b.addErr
	}
	b.added = append(b.added, labels)
	return nil
}

func (b *fakeBracket) createCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.creates
}

type fakeRecorder struct {
	mu     sync.Mutex
	starts []storage.TournamentRun
	ends   []recordedEnd
}

type recordedEnd struct {
	RunID    string
	EndedAt  time.Time
	Failures int
}

func (r *fakeRecorder) RecordStart(_ context.Context, run storage.TournamentRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts = append(r.starts, run)
	return nil
}

func (r *fakeRecorder) RecordEnd(_ context.Context, runID string, endedAt time.Time, failures int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ends = append(r.ends, recordedEnd{RunID: runID, EndedAt: endedAt, Failures: failures})
	return nil
}

func (r *fakeRecorder) endCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ends)
}
