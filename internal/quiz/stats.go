package quiz

import "time"

// Fold merges a new result into the running (category, user) aggregate.
// The average is lifetime-weighted by question count, not an average of
// per-test percentages, so long and short tests carry their real weight.
// Callers must serialize folds per (categoryID, username) key; Fold itself
// is a pure function of its inputs plus now.
func Fold(existing CategoryUserStat, exists bool, r Result, now time.Time) CategoryUserStat {
	if !exists {
		return CategoryUserStat{
			Username:            r.Username,
			TotalCorrectAnswers: r.CorrectAnswers,
			TotalQuestions:      r.TotalQuestions,
			TestCount:           1,
			AveragePercentage:   r.Percentage,
			LastUpdated:         now,
		}
	}
	existing.TotalCorrectAnswers += r.CorrectAnswers
	existing.TotalQuestions += r.TotalQuestions
	existing.TestCount++
	existing.AveragePercentage = percentage(existing.TotalCorrectAnswers, existing.TotalQuestions)
	existing.LastUpdated = now
	return existing
}
