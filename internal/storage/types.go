package storage

// Re-export types from models package so callers only import storage.
import "github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"

type (
	Deck              = models.Deck
	Match             = models.Match
	MatchHistoryEntry = models.MatchHistoryEntry
	DeckStats         = models.DeckStats
	OpponentStats     = models.OpponentStats
	StreakStats       = models.StreakStats
	Result            = models.Result
	Date              = models.Date
)

const (
	ResultWin  = models.ResultWin
	ResultLose = models.ResultLose
)

// ParseResult normalizes a submitted result string.
func ParseResult(s string) (Result, error) {
	return models.ParseResult(s)
}
