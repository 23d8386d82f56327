package stats

import (
	"fmt"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/storage/models"
)

// Streaks walks a deck's results in play order and reports its current and
// longest runs.
func Streaks(results []models.Result) models.StreakStats {
	var st models.StreakStats
	wins, losses := 0, 0

	for _, r := range results {
		switch r {
		case models.ResultWin:
			wins++
			losses = 0
			if wins > st.LongestWinStreak {
				st.LongestWinStreak = wins
			}
		case models.ResultLose:
			losses++
			wins = 0
			if losses > st.LongestLossStreak {
				st.LongestLossStreak = losses
			}
		default:
			wins, losses = 0, 0
		}
	}

	// Positive for wins, negative for losses.
	switch {
	case wins > 0:
		st.CurrentStreak = wins
	case losses > 0:
		st.CurrentStreak = -losses
	}

	return st
}

// FormatStreak renders a current streak, e.g. "3 win streak".
func FormatStreak(streak int) string {
	switch {
	case streak == 0:
		return "No active streak"
	case streak == 1:
		return "1 win streak"
	case streak > 1:
		return fmt.Sprintf("%d win streak", streak)
	case streak == -1:
		return "1 loss streak"
	default:
		return fmt.Sprintf("%d loss streak", -streak)
	}
}
