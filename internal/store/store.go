// Package store persists friendly match records.
//
// Handlers talk to the MatchStore interface instead of *gorm.DB so the match
// lifecycle rules (only the opponent resolves a record, only pending records can
// be resolved) live in one place and not in every handler.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fjvbn2003/fingerscore/internal/models"
	"github.com/fjvbn2003/fingerscore/internal/scoring"
)

var (
	// ErrNotFound is returned when no match record has the requested ID.
	ErrNotFound = errors.New("match not found")
	// ErrNotOpponent is returned when someone other than the opponent tries to
	// confirm or reject a record.
	ErrNotOpponent = errors.New("only the opponent can resolve this match")
	// ErrNotPending is returned when the record was already confirmed or rejected.
	ErrNotPending = errors.New("match is no longer pending")
)

// ListFilter narrows ListForPlayer. Zero values mean "any".
type ListFilter struct {
	Sport  scoring.Sport
	Status models.MatchStatus
}

// SportStats aggregates one player's confirmed matches in one sport.
type SportStats struct {
	Sport    scoring.Sport `json:"sport"`
	Played   int           `json:"played"`
	Wins     int           `json:"wins"`
	Losses   int           `json:"losses"`
	SetsWon  int           `json:"sets_won"`
	SetsLost int           `json:"sets_lost"`
}

// MatchStore is the persistence collaborator for finished matches.
type MatchStore interface {
	Create(ctx context.Context, m *models.FriendlyMatch) error
	Get(ctx context.Context, id uuid.UUID) (*models.FriendlyMatch, error)
	ListForPlayer(ctx context.Context, userID uuid.UUID, f ListFilter) ([]models.FriendlyMatch, error)
	Confirm(ctx context.Context, id, userID uuid.UUID) (*models.FriendlyMatch, error)
	Reject(ctx context.Context, id, userID uuid.UUID) (*models.FriendlyMatch, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID) ([]SportStats, error)
}

type gormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewMatchStore returns a MatchStore backed by db.
func NewMatchStore(db *gorm.DB) MatchStore {
	return &gormStore{db: db, now: time.Now}
}

// Create inserts the match and its sets in one transaction. Set numbers are
// assigned from slice order and the status always starts pending.
func (s *gormStore) Create(ctx context.Context, m *models.FriendlyMatch) error {
	m.Status = models.MatchStatusPending
	m.ResolvedAt = nil
	if m.Visibility == "" {
		m.Visibility = models.VisibilityPublic
	}
	for i := range m.Sets {
		m.Sets[i].SetNumber = i + 1
	}

	// BeforeCreate hands out IDs inside the transaction; put the caller's values
	// back on failure so m never carries the ID of a row that was rolled back.
	matchID := m.ID
	setIDs := make([]uuid.UUID, len(m.Sets))
	for i := range m.Sets {
		setIDs[i] = m.Sets[i].ID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sets := m.Sets
		m.Sets = nil
		// Omit the user associations so GORM does not try to upsert them.
		if err := tx.Omit("Submitter", "Opponent").Create(m).Error; err != nil {
			m.Sets = sets
			return err
		}
		for i := range sets {
			sets[i].MatchID = m.ID
		}
		m.Sets = sets
		if len(sets) == 0 {
			return nil
		}
		return tx.Create(&sets).Error
	})
	if err != nil {
		m.ID = matchID
		for i := range m.Sets {
			m.Sets[i].ID = setIDs[i]
			m.Sets[i].MatchID = matchID
		}
	}
	return err
}

func (s *gormStore) Get(ctx context.Context, id uuid.UUID) (*models.FriendlyMatch, error) {
	return s.load(s.db.WithContext(ctx), id)
}

func (s *gormStore) load(tx *gorm.DB, id uuid.UUID) (*models.FriendlyMatch, error) {
	var m models.FriendlyMatch
	err := tx.
		Preload("Sets", func(db *gorm.DB) *gorm.DB { return db.Order("set_number ASC") }).
		Preload("Submitter").
		Preload("Opponent").
		First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListForPlayer returns every record userID took part in, newest first.
func (s *gormStore) ListForPlayer(ctx context.Context, userID uuid.UUID, f ListFilter) ([]models.FriendlyMatch, error) {
	q := s.db.WithContext(ctx).
		Preload("Sets", func(db *gorm.DB) *gorm.DB { return db.Order("set_number ASC") }).
		Preload("Submitter").
		Preload("Opponent").
		Where("submitter_id = ? OR opponent_id = ?", userID, userID)
	if f.Sport != "" {
		q = q.Where("sport = ?", f.Sport)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var matches []models.FriendlyMatch
	if err := q.Order("played_at DESC").Order("created_at DESC").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *gormStore) Confirm(ctx context.Context, id, userID uuid.UUID) (*models.FriendlyMatch, error) {
	return s.resolve(ctx, id, userID, models.MatchStatusConfirmed)
}

func (s *gormStore) Reject(ctx context.Context, id, userID uuid.UUID) (*models.FriendlyMatch, error) {
	return s.resolve(ctx, id, userID, models.MatchStatusRejected)
}

func (s *gormStore) resolve(ctx context.Context, id, userID uuid.UUID, status models.MatchStatus) (*models.FriendlyMatch, error) {
	var out *models.FriendlyMatch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.load(tx, id)
		if err != nil {
			return err
		}
		if m.OpponentID != userID {
			return ErrNotOpponent
		}
		if m.Status != models.MatchStatusPending {
			return ErrNotPending
		}

		resolvedAt := s.now().UTC()
		// The status guard makes a concurrent second resolution a no-op.
		res := tx.Model(&models.FriendlyMatch{}).
			Where("id = ? AND status = ?", id, models.MatchStatusPending).
			Updates(map[string]any{"status": status, "resolved_at": resolvedAt})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		m.Status = status
		m.ResolvedAt = &resolvedAt
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a record and its sets.
func (s *gormStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SQLite does not enforce the cascade unless foreign keys are switched on.
		if err := tx.Where("match_id = ?", id).Delete(&models.MatchSet{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.FriendlyMatch{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Stats summarises userID's confirmed matches per sport, in profile order.
// Sports the player never played are omitted.
func (s *gormStore) Stats(ctx context.Context, userID uuid.UUID) ([]SportStats, error) {
	matches, err := s.ListForPlayer(ctx, userID, ListFilter{Status: models.MatchStatusConfirmed})
	if err != nil {
		return nil, err
	}

	bySport := make(map[scoring.Sport]*SportStats)
	for i := range matches {
		m := &matches[i]
		st, ok := bySport[m.Sport]
		if !ok {
			st = &SportStats{Sport: m.Sport}
			bySport[m.Sport] = st
		}

		// Stored scores are from the submitter's side.
		won, lost := m.SetsWonA, m.SetsWonB
		if m.OpponentID == userID {
			won, lost = lost, won
		}
		st.Played++
		st.SetsWon += won
		st.SetsLost += lost
		switch {
		case m.WinnerID != nil && *m.WinnerID == userID:
			st.Wins++
		case m.WinnerID != nil:
			st.Losses++
		}
	}

	out := make([]SportStats, 0, len(bySport))
	for _, p := range scoring.Profiles() {
		if st, ok := bySport[p.Sport()]; ok {
			out = append(out, *st)
		}
	}
	return out, nil
}
