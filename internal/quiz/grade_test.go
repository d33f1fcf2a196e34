package quiz

import "testing"

var gradeQ = Question{
	ID:            "q1",
	Text:          "Capital of France?",
	Options:       []string{"Berlin", "Paris", "Madrid", "Rome"},
	CorrectAnswer: "Paris",
}

func TestGradeIndexAndTextEquivalence(t *testing.T) {
	cases := []struct {
		name    string
		value   interface{}
		correct bool
	}{
		{"correct index", 1, true},
		{"correct index as float", float64(1), true}, // JSON numbers decode to float64
		{"wrong index", 0, false},
		{"exact text", "Paris", true},
		{"case insensitive", "pArIs", true},
		{"surrounding whitespace", "  Paris \t", true},
		{"wrong text", "Berlin", false},
		{"no partial credit", "Par", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := Grade(gradeQ, Answer{QuestionID: "q1", Value: tc.value})
			if v.IsCorrect != tc.correct {
				t.Fatalf("value %v: got correct=%v, want %v", tc.value, v.IsCorrect, tc.correct)
			}
			if v.CorrectAnswerText != "Paris" {
				t.Fatalf("verdict lost canonical answer: %q", v.CorrectAnswerText)
			}
		})
	}
}

func TestGradeOutOfRangeIndex(t *testing.T) {
	for _, idx := range []int{-1, 4, 100} {
		v := Grade(gradeQ, Answer{QuestionID: "q1", Value: idx})
		if v.IsCorrect {
			t.Fatalf("index %d graded correct", idx)
		}
		if v.UserAnswerText != unknownAnswerText {
			t.Fatalf("index %d resolved to %q, want sentinel", idx, v.UserAnswerText)
		}
	}
}

func TestGradeUnexpectedValueType(t *testing.T) {
	v := Grade(gradeQ, Answer{QuestionID: "q1", Value: []interface{}{"Paris"}})
	if v.IsCorrect || v.UserAnswerText != unknownAnswerText {
		t.Fatalf("unexpected type should degrade to sentinel, got %+v", v)
	}
}

func TestGradeAllSkipsUnknownQuestionIDs(t *testing.T) {
	questions := map[string]Question{"q1": gradeQ}
	answers := []Answer{
		{QuestionID: "q1", Value: "paris"},
		{QuestionID: "ghost", Value: 2}, // stale client cache; must not count
		{QuestionID: "q1", Value: "Berlin"},
	}
	correct, wrong := GradeAll(questions, answers)
	if correct != 1 || len(wrong) != 1 {
		t.Fatalf("got correct=%d wrong=%d, want 1/1", correct, len(wrong))
	}
	if wrong[0].Question != gradeQ.Text || wrong[0].CorrectAnswer != "Paris" {
		t.Fatalf("wrong-answer record incomplete: %+v", wrong[0])
	}
	if wrong[0].UserAnswer != "Berlin" {
		t.Fatalf("wrong-answer record lost the resolved answer: %+v", wrong[0])
	}
}

func TestGradeAllInvariant(t *testing.T) {
	questions := map[string]Question{"q1": gradeQ}
	batches := [][]Answer{
		nil,
		{{QuestionID: "q1", Value: 1}},
		{{QuestionID: "q1", Value: 99}, {QuestionID: "q1", Value: "paris"}},
		{{QuestionID: "missing", Value: 0}},
		{{QuestionID: "q1", Value: nil}},
	}
	for i, answers := range batches {
		correct, wrong := GradeAll(questions, answers)
		res := Summarize(correct, wrong, 0)
		if res.CorrectAnswers+res.WrongAnswers != res.TotalQuestions {
			t.Fatalf("batch %d: correct(%d)+wrong(%d) != total(%d)",
				i, res.CorrectAnswers, res.WrongAnswers, res.TotalQuestions)
		}
	}
}

// Grading must tolerate a stored question whose correct answer is missing
// from its options.
func TestGradeCorruptQuestion(t *testing.T) {
	q := Question{ID: "q2", Options: []string{"a", "b"}, CorrectAnswer: "c"}
	if v := Grade(q, Answer{QuestionID: "q2", Value: 0}); v.IsCorrect {
		t.Fatal("option cannot match an answer outside the option set")
	}
	if v := Grade(q, Answer{QuestionID: "q2", Value: "c"}); !v.IsCorrect {
		t.Fatal("verbatim text match should still grade correct")
	}
}
