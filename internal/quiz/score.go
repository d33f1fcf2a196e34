package quiz

import "math"

// Summarize builds the per-submission result skeleton. Identity fields
// (ID, username, category, submission time) are filled by the caller.
// The denominator is the number of graded answers, not the category's
// question count: a partial submission is scored over what was sent.
func Summarize(correct int, wrong []WrongAnswer, timeSpentSeconds int) Result {
	total := correct + len(wrong)
	return Result{
		TotalQuestions:   total,
		CorrectAnswers:   correct,
		WrongAnswers:     len(wrong),
		Percentage:       percentage(correct, total),
		TimeSpentSeconds: timeSpentSeconds,
		WrongDetails:     wrong,
	}
}

func percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(100 * float64(correct) / float64(total))
}

// round2 rounds half-up to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
