package quiz

import "strings"

// unknownAnswerText is what an unresolvable index answer grades as. It is a
// client error, but it must not abort the rest of the submission.
const unknownAnswerText = "unknown"

// Grade evaluates one answer against its canonical question. Index answers
// (JSON numbers) resolve to the option at that position; out-of-range
// indexes resolve to a sentinel and grade incorrect. Text answers are
// compared verbatim. Comparison is case- and surrounding-whitespace-
// insensitive, exact match only.
func Grade(q Question, a Answer) GradeVerdict {
	text := resolveAnswerText(q, a.Value)
	correct := strings.EqualFold(
		strings.TrimSpace(text),
		strings.TrimSpace(q.CorrectAnswer),
	)
	return GradeVerdict{
		QuestionID:        q.ID,
		IsCorrect:         correct,
		UserAnswerText:    text,
		CorrectAnswerText: q.CorrectAnswer,
	}
}

// GradeAll grades every submitted answer once. Answers whose question ID is
// not in the supplied map (stale cache, tampered ID) are skipped silently
// and count toward nothing, so correct + len(wrong) is always the number of
// graded answers.
func GradeAll(questions map[string]Question, answers []Answer) (correct int, wrong []WrongAnswer) {
	for _, a := range answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			continue
		}
		v := Grade(q, a)
		if v.IsCorrect {
			correct++
		} else {
			wrong = append(wrong, WrongAnswer{
				Question:      q.Text,
				UserAnswer:    v.UserAnswerText,
				CorrectAnswer: v.CorrectAnswerText,
			})
		}
	}
	return correct, wrong
}

// resolveAnswerText turns the polymorphic answer value into comparable
// text. JSON decoding yields float64 for numbers; plain ints show up from
// in-process callers.
func resolveAnswerText(q Question, v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return optionAt(q, val)
	case float64:
		return optionAt(q, int(val))
	default:
		return unknownAnswerText
	}
}

func optionAt(q Question, idx int) string {
	if idx < 0 || idx >= len(q.Options) {
		return unknownAnswerText
	}
	return q.Options[idx]
}
