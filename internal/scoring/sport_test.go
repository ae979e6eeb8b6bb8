package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSport(t *testing.T) {
	tests := []struct {
		in   string
		want Sport
	}{
		{"TABLE_TENNIS", SportTableTennis},
		{"table tennis", SportTableTennis},
		{"table-tennis", SportTableTennis},
		{" Tennis ", SportTennis},
		{"badminton", SportBadminton},
	}
	for _, tt := range tests {
		got, err := ParseSport(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseSport("squash")
	assert.ErrorIs(t, err, ErrUnknownSport)
}

func TestProfileFor(t *testing.T) {
	tt, err := ProfileFor(SportTableTennis)
	require.NoError(t, err)
	assert.Equal(t, RallyProfile{Kind: SportTableTennis, PointsToWinSet: 11, MinWinMargin: 2, HardCap: 30, SetsToWin: 3}, tt)
	assert.Equal(t, 5, tt.MaxSets())
	assert.Equal(t, "points", tt.Unit())

	tn, err := ProfileFor(SportTennis)
	require.NoError(t, err)
	assert.Equal(t, 2, tn.SetsToWinMatch())
	assert.Equal(t, 3, tn.MaxSets())
	assert.Equal(t, "games", tn.Unit())

	bd, err := ProfileFor(SportBadminton)
	require.NoError(t, err)
	assert.Equal(t, 21, bd.(RallyProfile).PointsToWinSet)
	assert.Equal(t, 3, bd.MaxSets())

	_, err = ProfileFor("CURLING")
	assert.ErrorIs(t, err, ErrUnknownSport)
	assert.False(t, Sport("CURLING").Valid())
}

func TestProfilesMaxSets(t *testing.T) {
	ps := Profiles()
	require.Len(t, ps, 3)
	for _, p := range ps {
		assert.Equal(t, 2*p.SetsToWinMatch()-1, p.MaxSets(), p.Sport())
		assert.True(t, p.Sport().Valid())
	}
}
