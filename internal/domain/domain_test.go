package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupantEligible(t *testing.T) {
	cases := []struct {
		name string
		occ  Occupant
		want bool
	}{
		{"human", Occupant{ID: "1"}, true},
		{"bot", Occupant{ID: "2", Bot: true}, false},
		{"server deafened", Occupant{ID: "3", Deaf: true}, false},
		{"self deafened", Occupant{ID: "4", SelfDeaf: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.occ.Eligible())
		})
	}
}

func TestTeamLabelAndIDs(t *testing.T) {
	team := Team{Members: []Participant{{ID: "1", DisplayName: "ana"}, {ID: "2", DisplayName: "beto"}}}

	assert.Equal(t, "ana beto", team.Label())
	assert.Equal(t, []string{"1", "2"}, team.IDs())
}

func TestTournamentRequestValidate(t *testing.T) {
	ok := TournamentRequest{RoomID: "g", VoiceChannelID: "vc", TeamSize: 2}
	require.NoError(t, ok.Validate())

	noVoice := ok
	noVoice.VoiceChannelID = ""
	assert.ErrorIs(t, noVoice.Validate(), ErrNotInVoice)

	zero := ok
	zero.TeamSize = 0
	assert.ErrorIs(t, zero.Validate(), ErrInvalidRequest)

	noRoom := ok
	noRoom.RoomID = " "
	assert.ErrorIs(t, noRoom.Validate(), ErrInvalidRequest)
}

func TestCleanupReportAttemptsEveryStep(t *testing.T) {
	boom := errors.New("boom")
	var r CleanupReport
	calls := 0

	r.Attempt("delete team channel", "a", func() error { calls++; return boom })
	r.Attempt("delete team channel", "b", func() error { calls++; return nil })
	r.Attempt("delete category", "c", func() error { calls++; return boom })

	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, r.Attempted)
	require.Len(t, r.Failures, 2)
	assert.Equal(t, "a", r.Failures[0].ChannelID)
	assert.Equal(t, "delete category", r.Failures[1].Step)

	err := r.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var rce *ResourceCleanupError
	assert.True(t, errors.As(err, &rce))
}

func TestCleanupReportEmpty(t *testing.T) {
	var r CleanupReport
	assert.NoError(t, r.Err())
}
