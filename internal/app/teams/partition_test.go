package teams

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/bullet-bot/internal/domain"
)

func players(n int) []domain.Participant {
	out := make([]domain.Participant, 0, n)
	for i := range n {
		out = append(out, domain.Participant{ID: fmt.Sprintf("u%d", i), DisplayName: fmt.Sprintf("player%d", i)})
	}
	return out
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestPartition_CoversEveryPlayerOnce(t *testing.T) {
	cases := []struct{ n, size int }{
		{2, 1}, {4, 2}, {8, 2}, {9, 3}, {12, 4}, {16, 4}, {10, 5},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("n=%d/s=%d", tc.n, tc.size), func(t *testing.T) {
			in := players(tc.n)
			got, err := Partition(seeded(uint64(tc.n*31+tc.size)), in, tc.size)
			require.NoError(t, err)
			require.Len(t, got, tc.n/tc.size)

			seen := map[string]int{}
			for _, team := range got {
				assert.Len(t, team.Members, tc.size)
				for _, id := range team.IDs() {
					seen[id]++
				}
			}
			require.Len(t, seen, tc.n)
			for id, c := range seen {
				assert.Equal(t, 1, c, "player %s assigned %d times", id, c)
			}
		})
	}
}

func TestPartition_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		n, size int
	}{
		{"not divisible", 5, 2},
		{"single team", 2, 2},
		{"single player", 1, 1},
		{"empty", 0, 2},
		{"zero size", 4, 0},
		{"negative size", 4, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Partition(seeded(1), players(tc.n), tc.size)
			assert.ErrorIs(t, err, domain.ErrInvalidPartition)
			assert.Nil(t, got)
		})
	}
}

func TestPartition_DoesNotMutateInput(t *testing.T) {
	in := players(6)
	before := append([]domain.Participant(nil), in...)

	_, err := Partition(seeded(7), in, 3)
	require.NoError(t, err)
	assert.Equal(t, before, in)
}

func TestPartition_DeterministicForSeed(t *testing.T) {
	a, err := Partition(seeded(42), players(8), 2)
	require.NoError(t, err)
	b, err := Partition(seeded(42), players(8), 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPartition_ShufflesAcrossSeeds(t *testing.T) {
	first, err := Partition(seeded(1), players(8), 2)
	require.NoError(t, err)

	differs := false
	for seed := uint64(2); seed < 20 && !differs; seed++ {
		other, err := Partition(seeded(seed), players(8), 2)
		require.NoError(t, err)
		differs = fmt.Sprint(other) != fmt.Sprint(first)
	}
	assert.True(t, differs, "expected different seeds to produce different teams")
}

func TestPartitioner_Split(t *testing.T) {
	p := NewPartitioner(nil)
	got, err := p.Split(players(4), 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = p.Split(players(3), 2)
	assert.ErrorIs(t, err, domain.ErrInvalidPartition)
}
