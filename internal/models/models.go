// Package models defines the data structures that map to database tables.
// GORM uses these structs to generate SQL queries and map rows back to Go values;
// the struct tags describe column types, constraints and relationships.
//
// The data model is intentionally small:
//   - Users are created lazily from identity-provider tokens
//   - FriendlyMatches are results one player records against another
//   - MatchSets hold the per-set scores of a FriendlyMatch
//
// Sport rules live in the scoring package; the models only store their outcome.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fjvbn2003/fingerscore/internal/scoring"
)

// --- Enums ---
// Named string types plus constants, stored as human-readable values.

// UserRole is a user's global permission level.
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"     // Full access, including removing match records
	UserRoleOrganizer UserRole = "organizer" // Runs clubs and tournaments
	UserRoleUser      UserRole = "user"      // Regular player
)

// MatchStatus tracks the confirmation lifecycle of a friendly match record.
type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"   // Recorded by the submitter, waiting for the opponent
	MatchStatusConfirmed MatchStatus = "confirmed" // Opponent agreed with the result
	MatchStatusRejected  MatchStatus = "rejected"  // Opponent disputed the result
)

// Valid reports whether s is a known status.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusPending, MatchStatusConfirmed, MatchStatusRejected:
		return true
	}
	return false
}

// Visibility controls who may see a match record.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityClubOnly Visibility = "club_only"
	VisibilityPrivate  Visibility = "private"
)

// Valid reports whether v is a known visibility.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityClubOnly, VisibilityPrivate:
		return true
	}
	return false
}

// --- Models ---

// User represents a registered person. Rows are created the first time an
// authenticated request arrives; AuthSubject links the row to the identity provider.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthSubject *string   `gorm:"uniqueIndex:idx_users_auth_subject"` // the token's "sub"; nullable for imported rows
	DisplayName string    `gorm:"not null"`
	Email       string    `gorm:"uniqueIndex;not null"`
	AvatarURL   *string
	Role        UserRole `gorm:"type:user_role;not null;default:'user'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BeforeCreate assigns a UUID when the caller did not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FriendlyMatch is a finished match recorded by one player (the submitter, side A)
// against another (the opponent, side B). Scores are always stored from the
// submitter's point of view.
type FriendlyMatch struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Sport       scoring.Sport `gorm:"type:sport_type;not null;index"`
	SubmitterID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Submitter   User          `gorm:"foreignKey:SubmitterID"`
	OpponentID  uuid.UUID     `gorm:"type:uuid;not null;index"`
	Opponent    User          `gorm:"foreignKey:OpponentID"`
	SetsWonA    int           `gorm:"not null"`
	SetsWonB    int           `gorm:"not null"`
	WinnerID    *uuid.UUID    `gorm:"type:uuid"`
	Status      MatchStatus   `gorm:"type:match_status;not null;default:'pending'"`
	Visibility  Visibility    `gorm:"type:visibility;not null;default:'public'"`
	Venue       *string
	PlayedAt    time.Time  `gorm:"not null"`
	ResolvedAt  *time.Time // when the opponent confirmed or rejected
	Sets        []MatchSet `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BeforeCreate assigns a UUID when the caller did not.
func (m *FriendlyMatch) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Result converts the stored sets back into the scoring type, in set order.
func (m *FriendlyMatch) Result() scoring.MatchResult {
	sets := make([]scoring.SetResult, len(m.Sets))
	for i, s := range m.Sets {
		sets[i] = scoring.SetResult{A: s.ScoreA, B: s.ScoreB}
	}
	return scoring.MatchResult{Sets: sets}
}

// Involves reports whether userID played in the match.
func (m *FriendlyMatch) Involves(userID uuid.UUID) bool {
	return m.SubmitterID == userID || m.OpponentID == userID
}

// MatchSet stores one set of a FriendlyMatch. The unique index keeps set numbers
// distinct within a match.
type MatchSet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	MatchID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_set_number"`
	SetNumber int       `gorm:"not null;uniqueIndex:idx_match_set_number"` // 1-based
	ScoreA    int       `gorm:"not null"`
	ScoreB    int       `gorm:"not null"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (s *MatchSet) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
