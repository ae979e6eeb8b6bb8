package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMatch(t *testing.T) {
	tests := []struct {
		name       string
		sport      Sport
		wonA, wonB int
		valid      bool
		err        string
	}{
		{"table tennis 3-1", SportTableTennis, 3, 1, true, ""},
		{"table tennis 3-0", SportTableTennis, 3, 0, true, ""},
		{"table tennis 2-3", SportTableTennis, 2, 3, true, ""},
		{"table tennis not finished", SportTableTennis, 2, 1, false, "the winner must take at least 3 sets"},
		{"table tennis too many sets", SportTableTennis, 3, 3, false, "too many sets: at most 5 sets can be played"},
		{"table tennis 4-2", SportTableTennis, 4, 2, false, "too many sets: at most 5 sets can be played"},
		{"tennis 2-1", SportTennis, 2, 1, true, ""},
		{"tennis 1-0", SportTennis, 1, 0, false, "the winner must take at least 2 sets"},
		{"tennis 2-2", SportTennis, 2, 2, false, "too many sets: at most 3 sets can be played"},
		{"badminton 0-2", SportBadminton, 0, 2, true, ""},
		{"badminton 3-1", SportBadminton, 3, 1, false, "too many sets: at most 3 sets can be played"},
		{"negative", SportBadminton, -1, 2, false, "set counts cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateMatch(mustProfile(t, tt.sport), tt.wonA, tt.wonB)
			assert.Equal(t, tt.valid, r.Valid)
			assert.Equal(t, tt.err, r.Error)
			if !tt.valid {
				assert.True(t, errors.Is(r.Err(), ErrMatchScoreInvalid))
			}
		})
	}
}

func TestValidateSets(t *testing.T) {
	tt := mustProfile(t, SportTableTennis)
	tennis := mustProfile(t, SportTennis)

	tests := []struct {
		name  string
		p     Profile
		sets  []SetResult
		valid bool
		kind  ErrorKind
		err   string
	}{
		{
			name:  "four set win",
			p:     tt,
			sets:  []SetResult{{11, 8}, {11, 9}, {9, 11}, {11, 7}},
			valid: true,
		},
		{
			name:  "trailing empty set is skipped",
			p:     tt,
			sets:  []SetResult{{11, 8}, {11, 9}, {11, 7}, {0, 0}},
			valid: true,
		},
		{
			name: "bad second set",
			p:    tt,
			sets: []SetResult{{11, 8}, {11, 10}, {11, 7}},
			kind: KindSetScoreInvalid,
			err:  "set 2: must win by at least 2 points",
		},
		{
			name: "match not finished",
			p:    tt,
			sets: []SetResult{{11, 8}, {11, 9}},
			kind: KindMatchScoreInvalid,
			err:  "the winner must take at least 3 sets",
		},
		{
			name: "set after the deciding set",
			p:    tennis,
			sets: []SetResult{{6, 4}, {6, 3}, {4, 6}},
			kind: KindMatchScoreInvalid,
			err:  "set 3 was played after the match was decided",
		},
		{
			name:  "tennis three sets",
			p:     tennis,
			sets:  []SetResult{{6, 4}, {4, 6}, {5, 7}},
			valid: true,
		},
		{
			name: "nothing played",
			p:    tennis,
			sets: []SetResult{{0, 0}},
			kind: KindMatchScoreInvalid,
			err:  "no sets were played",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := ValidateSets(tc.p, tc.sets)
			assert.Equal(t, tc.valid, r.Valid)
			assert.Equal(t, tc.kind, r.Kind)
			assert.Equal(t, tc.err, r.Error)
		})
	}
}

func TestMatchResult_SetsWonAndWinner(t *testing.T) {
	p := mustProfile(t, SportTableTennis)

	m := MatchResult{Sets: []SetResult{{11, 8}, {9, 11}, {11, 7}, {0, 0}, {11, 5}}}
	a, b := m.SetsWon()
	assert.Equal(t, 3, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, SideA, m.Winner(p))

	assert.Equal(t, SideNone, MatchResult{Sets: []SetResult{{11, 8}}}.Winner(p))
}
