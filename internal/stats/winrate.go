package stats

import (
	"fmt"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

// WinRate returns wins as a percentage of total.
// A group with no matches reports 0 rather than NaN.
func WinRate(wins, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}

// FormatWinRate renders a percentage with one decimal place, e.g. "66.7%".
func FormatWinRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// Summarize fills in the per-opponent win rates and derives the overall
// totals from the groups, so the group totals always add up to the deck total.
func Summarize(deck *models.Deck, groups []*models.OpponentStats) *models.DeckStats {
	result := &models.DeckStats{
		DeckID:    deck.ID,
		DeckName:  deck.Name,
		Opponents: make([]*models.OpponentStats, 0, len(groups)),
	}

	for _, g := range groups {
		g.WinRate = WinRate(g.Wins, g.TotalMatches)
		result.TotalMatches += g.TotalMatches
		result.Wins += g.Wins
		result.Opponents = append(result.Opponents, g)
	}

	result.OverallWinRate = WinRate(result.Wins, result.TotalMatches)
	return result
}
