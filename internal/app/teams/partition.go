// Package teams reparte jugadores en equipos aleatorios del mismo tamaño.
package teams

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/jose-valero/bullet-bot/internal/domain"
)

// Partition arma len(participants)/teamSize equipos eligiendo al azar, uno por uno,
// un jugador todavía libre. Falla con domain.ErrInvalidPartition si la cuenta no
// es divisible o si saldría un solo equipo. No modifica participants.
func Partition(rng *rand.Rand, participants []domain.Participant, teamSize int) ([]domain.Team, error) {
	n := len(participants)
	if teamSize < 1 {
		return nil, fmt.Errorf("%w: team size %d", domain.ErrInvalidPartition, teamSize)
	}
	if n%teamSize != 0 || n/teamSize < 2 {
		return nil, fmt.Errorf("%w: %d players cannot form at least two teams of %d", domain.ErrInvalidPartition, n, teamSize)
	}

	pool := make([]domain.Participant, n)
	copy(pool, participants)

	out := make([]domain.Team, 0, n/teamSize)
	for len(pool) > 0 {
		members := make([]domain.Participant, 0, teamSize)
		for range teamSize {
			i := rng.IntN(len(pool))
			members = append(members, pool[i])
			// swap-remove: el orden del pool no importa
			last := len(pool) - 1
			pool[i] = pool[last]
			pool = pool[:last]
		}
		out = append(out, domain.Team{Members: members})
	}
	return out, nil
}

// Partitioner envuelve Partition con una fuente aleatoria compartida entre goroutines.
type Partitioner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPartitioner: con rng nil se siembra solo.
func NewPartitioner(rng *rand.Rand) *Partitioner {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Partitioner{rng: rng}
}

func (p *Partitioner) Split(participants []domain.Participant, teamSize int) ([]domain.Team, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Partition(p.rng, participants, teamSize)
}
