package models

import "time"

// Deck represents a registered deck. Decks are never updated or deleted.
type Deck struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Match represents a single recorded game between one of the player's decks
// and an opponent deck.
type Match struct {
	ID             int64     `db:"id" json:"id"`
	MyDeckID       int64     `db:"my_deck_id" json:"my_deck_id"`
	OpponentDeckID int64     `db:"opponent_deck_id" json:"opponent_deck_id"`
	Result         Result    `db:"result" json:"result"`
	Date           Date      `db:"date" json:"date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// MatchHistoryEntry is a match with both deck names resolved.
type MatchHistoryEntry struct {
	ID               int64  `db:"id" json:"id"`
	Date             string `db:"date" json:"date"` // YYYY-MM-DD
	MyDeckName       string `db:"my_deck_name" json:"my_deck_name"`
	OpponentDeckName string `db:"opponent_deck_name" json:"opponent_deck_name"`
	Result           Result `db:"result" json:"result"`
}

// DeckStats holds overall and per-opponent results for one deck.
// Win rates are percentages in the range [0, 100].
type DeckStats struct {
	DeckID         int64            `json:"deck_id"`
	DeckName       string           `json:"deck_name"`
	TotalMatches   int              `json:"total_matches"`
	Wins           int              `json:"wins"`
	OverallWinRate float64          `json:"overall_win_rate"`
	Streak         StreakStats      `json:"streak"`
	Opponents      []*OpponentStats `json:"opponents"`
}

// StreakStats holds consecutive-result runs for a deck.
// CurrentStreak is positive for wins and negative for losses.
type StreakStats struct {
	CurrentStreak     int `json:"current_streak"`
	LongestWinStreak  int `json:"longest_win_streak"`
	LongestLossStreak int `json:"longest_loss_streak"`
}

// OpponentStats holds the results of one deck against a single opponent deck.
type OpponentStats struct {
	OpponentDeckID int64   `db:"opponent_deck_id" json:"opponent_deck_id"`
	OpponentName   string  `db:"opponent_name" json:"opponent_name"`
	TotalMatches   int     `db:"total_matches" json:"total_matches"`
	Wins           int     `db:"wins" json:"wins"`
	WinRate        float64 `db:"-" json:"win_rate"`
}

// Losses returns the number of lost matches in the group.
func (o *OpponentStats) Losses() int {
	return o.TotalMatches - o.Wins
}
