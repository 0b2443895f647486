// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, default values, and relationships.
//
// The data model represents a fantasy golf tour where:
//   - Members buy a TourCard on one of the season's Tours
//   - Every Tour plays the same schedule of Tournaments
//   - A member submits a Team of ten Golfers for each tournament
//   - Live golfer scores roll up into team scores, positions, earnings, and points
//   - Points accumulate on the tour card and decide the season-ending playoff brackets
//
// There is no separate "league" concept — a Tour IS the league. Several tours share one
// tournament schedule, which keeps the hierarchy simple: Tournament → Team → Golfer picks.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// Using UUIDs instead of auto-incrementing integers makes IDs safe to generate
	// client-side and avoids leaking record counts to end users.
	"github.com/google/uuid"
)

// --- JSONB column helpers ---
// Postgres has no native float array we want to depend on through GORM, so the award
// tables and golfer pick lists are stored as JSONB. A type stored in JSONB must
// implement driver.Valuer (Go value -> database value) and sql.Scanner (database
// value -> Go value) so GORM can read and write it transparently.

// Float64Slice stores an ordered list of numbers as a JSONB column.
// Used for a tier's points and payouts tables, where index 0 is 1st place.
type Float64Slice []float64

// Value serialises the slice to JSON for writing to the database.
func (s Float64Slice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

// Scan deserialises a JSONB database value back into the slice.
func (s *Float64Slice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for Float64Slice")
	}
}

// IntSlice stores an ordered list of integers as a JSONB column.
// Used for a team's golfer picks (external feed IDs).
type IntSlice []int

// Value serialises the slice to JSON for writing to the database.
func (s IntSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

// Scan deserialises a JSONB database value back into the slice.
func (s *IntSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for IntSlice")
	}
}

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string type
// plus constants. This gives us type safety while keeping the values human-readable
// in the database.

// MemberRole represents a member's permission level across the platform.
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"  // Full access: recalculations, schedule management
	MemberRoleMember MemberRole = "member" // Regular player: submits teams, views standings
)

// PlayoffBracket identifies which season-ending competition a tour card qualified for.
// Stored as a plain int on TourCard.Playoff; these constants name the values.
const (
	PlayoffNone   = 0 // Did not qualify (or regular season still in progress)
	PlayoffGold   = 1 // Gold bracket: the top of the standings, playing for the big table
	PlayoffSilver = 2 // Silver bracket: the consolation field, paid from the table's tail
)

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name (snake_cased and
// pluralized) as the table name by default: Member -> members, Tournament -> tournaments.

// Member represents a registered person in the system.
// Members are created automatically the first time a Clerk-authenticated user hits the API.
// The ClerkID links our internal record to Clerk's identity system.
type Member struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"` // UUID primary key; the DB generates it automatically
	ClerkID     *string    `gorm:"uniqueIndex:idx_members_clerk_id"`               // Clerk's user ID (e.g. "user_2abc123"); pointer = nullable for legacy rows
	DisplayName string     `gorm:"not null"`                                       // The name shown in the app; populated from the Clerk JWT "name" claim
	Email       string     `gorm:"uniqueIndex;not null"`                           // Unique email; populated from the Clerk JWT "email" claim
	Role        MemberRole `gorm:"type:member_role;not null;default:'member'"`     // Synced from Clerk publicMetadata via the JWT "role" claim
	CreatedAt   time.Time  // GORM automatically sets this on create
	UpdatedAt   time.Time  // GORM automatically updates this on every save
}

// Season is one year of competition. All tours, tournaments, and tour cards
// hang off a season so historical years stay queryable after a new one starts.
type Season struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Year      int       `gorm:"not null;uniqueIndex"` // Calendar year, e.g. 2026
	Number    int       `gorm:"not null"`             // Ordinal season number since the tour started
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tour is one competition series within a season. Several tours run side by side
// over the same tournament schedule, each with its own standings and payouts —
// cross-tour score comparison never happens outside the TOUR Championship brackets.
type Tour struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SeasonID  uuid.UUID `gorm:"type:uuid;not null"`
	Season    Season    `gorm:"foreignKey:SeasonID"`
	Name      string    `gorm:"not null"`           // e.g. "PGC Tour"
	ShortForm string    `gorm:"not null"`           // e.g. "PGC" — used in compact standings displays
	BuyIn     float64   `gorm:"not null;default:0"` // Season entry fee in dollars
	CreatedAt time.Time
	UpdatedAt time.Time
	Cards     []TourCard `gorm:"foreignKey:TourID"` // One-to-many: the members playing this tour
}

// TourCard is a member's playing card on one tour for one season. It accumulates
// the season-long tallies (earnings, points, finishes) that the standings page
// ranks on, and records the playoff bracket and seed once the season ends.
type TourCard struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MemberID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_member_tour"` // Combined unique index with TourID: one card per member per tour
	Member          Member    `gorm:"foreignKey:MemberID"`
	TourID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_member_tour"`
	Tour            Tour      `gorm:"foreignKey:TourID"`
	DisplayName     string    `gorm:"not null"`           // Card name shown on leaderboards (defaults to the member's name)
	Earnings        float64   `gorm:"not null;default:0"` // Season-to-date prize money
	Points          float64   `gorm:"not null;default:0"` // Season-to-date cup points; decides playoff qualification
	Wins            int       `gorm:"not null;default:0"`
	TopFives        int       `gorm:"not null;default:0"`
	TopTens         int       `gorm:"not null;default:0"`
	AppearanceCount int       `gorm:"not null;default:0"` // Tournaments entered this season
	Playoff         int       `gorm:"not null;default:0"` // 0 = none, 1 = gold bracket, 2 = silver bracket
	PlayoffSeed     int       `gorm:"not null;default:0"` // Seed for the staggered playoff start; 0 = unseeded
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Tier is the award table for a class of tournament (major, standard, playoff...).
// Points and Payouts are ordered by finishing position: index 0 = 1st place.
// Both columns are JSONB so table sizes can differ between tiers without schema changes.
type Tier struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SeasonID  uuid.UUID    `gorm:"type:uuid;not null"`
	Season    Season       `gorm:"foreignKey:SeasonID"`
	Name      string       `gorm:"not null"` // e.g. "Major", "Standard", "Playoff"
	Points    Float64Slice `gorm:"type:jsonb;not null;default:'[]'"`
	Payouts   Float64Slice `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Course represents the venue a tournament is played at.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Location  string    `gorm:"not null;default:''"` // "City, State/Country"; can be filled in later
	Par       int       `gorm:"not null;default:72"` // Course par for one round; team scores are measured against par × 4
	FrontPar  int       `gorm:"not null;default:36"` // Par for holes 1-9
	BackPar   int       `gorm:"not null;default:36"` // Par for holes 10-18
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tournament is one entry on a season's schedule. Every tour's teams compete in the
// same tournament row; the tier decides what finishing positions are worth.
type Tournament struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SeasonID     uuid.UUID `gorm:"type:uuid;not null"`
	Season       Season    `gorm:"foreignKey:SeasonID"`
	TierID       uuid.UUID `gorm:"type:uuid;not null"`
	Tier         Tier      `gorm:"foreignKey:TierID"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null"`
	Course       Course    `gorm:"foreignKey:CourseID"`
	Name         string    `gorm:"not null"` // e.g. "The Masters", "TOUR Championship"
	StartDate    time.Time `gorm:"not null"` // First tee time; team submissions close here
	EndDate      time.Time `gorm:"not null"`
	CurrentRound int       `gorm:"not null;default:1"`     // 1-4; which round is in progress (or next)
	LivePlay     bool      `gorm:"not null;default:false"` // True while golfers are on the course — the cron pass only rescores live events
	PlayoffWeek  int       `gorm:"not null;default:0"`     // 0 = regular season; 1, 2, 3 = playoff events in order
	ExternalID   string    `gorm:"not null;default:''"`    // The golf-stats feed's event id, used to pull live scores
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Teams        []Team   `gorm:"foreignKey:TournamentID"`
	Golfers      []Golfer `gorm:"foreignKey:TournamentID"`
}

// Team is a member's entry in one tournament: ten golfer picks plus the computed
// results. One team exists per (tour card, tournament) pair. The round scores,
// cumulative score, position, earnings, and points columns are recomputed on every
// scoring pass — everything else is set at submission time.
type Team struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TourCardID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_card_tournament"` // Combined unique index with TournamentID: one team per card per tournament
	TourCard     TourCard   `gorm:"foreignKey:TourCardID"`
	TournamentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_card_tournament"`
	Tournament   Tournament `gorm:"foreignKey:TournamentID"`
	GolferIDs    IntSlice   `gorm:"type:jsonb;not null;default:'[]'"` // External feed ids of the ten picks, two per pick group
	Round1       *float64   `gorm:"type:decimal(5,1)"`                // Team round scores (averaged best-N golfers); nullable until the round completes
	Round2       *float64   `gorm:"type:decimal(5,1)"`
	Round3       *float64   `gorm:"type:decimal(5,1)"`
	Round4       *float64   `gorm:"type:decimal(5,1)"`
	Score        *float64   `gorm:"type:decimal(6,1)"` // Cumulative strokes relative to par; nil before play starts
	Today        *float64   `gorm:"type:decimal(5,1)"` // Strokes gained/lost in the current round
	Thru         *int       // Holes completed in the current round (averaged across counted golfers)
	Position     *string    // "CUT", "1", "T4", ... ; nil before the first scoring pass
	PastPosition *string    // Position at the start of today's round — drives the up/down movement arrows
	Earnings     float64    `gorm:"not null;default:0"`
	Points       float64    `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Golfer is one professional's row in one tournament, mirrored from the external
// stats feed. Teams reference golfers by ExternalID (the feed's id), not by UUID,
// because picks are made before the feed creates tournament-specific rows.
type Golfer struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TournamentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_golfer"` // Combined unique index with ExternalID
	Tournament   Tournament `gorm:"foreignKey:TournamentID"`
	ExternalID   int        `gorm:"not null;uniqueIndex:idx_tournament_golfer"` // The feed's golfer id
	Name         string     `gorm:"not null"`
	Group        int        `gorm:"not null;default:0"` // Pick group 1-5, assigned by world rank before the tournament
	WorldRank    int        `gorm:"not null;default:0"`
	Rating       float64    `gorm:"not null;default:0"` // Our own strength rating, used to build pick groups
	Round1       *float64   `gorm:"type:decimal(4,1)"`  // Strokes for each completed round; nullable until posted
	Round2       *float64   `gorm:"type:decimal(4,1)"`
	Round3       *float64   `gorm:"type:decimal(4,1)"`
	Round4       *float64   `gorm:"type:decimal(4,1)"`
	Today        *float64   `gorm:"type:decimal(4,1)"` // Strokes relative to par in the current round
	Thru         *int       // Holes completed in the current round
	Position     *string    // The feed's leaderboard position for the golfer ("CUT", "WD", "T12", ...)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
