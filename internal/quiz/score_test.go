package quiz

import "testing"

func TestSummarizePercentage(t *testing.T) {
	cases := []struct {
		correct int
		wrong   int
		want    float64
	}{
		{10, 0, 100},
		{0, 10, 0},
		{1, 2, 33.33},
		{2, 1, 66.67}, // half-up at the second decimal
		{7, 1, 87.5},
		{0, 0, 0}, // empty submission, no divide-by-zero
	}
	for _, tc := range cases {
		wrong := make([]WrongAnswer, tc.wrong)
		res := Summarize(tc.correct, wrong, 42)
		if res.Percentage != tc.want {
			t.Errorf("%d/%d: got %v, want %v", tc.correct, tc.correct+tc.wrong, res.Percentage, tc.want)
		}
		if res.TotalQuestions != tc.correct+tc.wrong {
			t.Errorf("%d/%d: total=%d", tc.correct, tc.wrong, res.TotalQuestions)
		}
		if res.TimeSpentSeconds != 42 {
			t.Errorf("time spent dropped: %d", res.TimeSpentSeconds)
		}
	}
}

func TestSummarizeKeepsWrongDetails(t *testing.T) {
	wrong := []WrongAnswer{{Question: "Q", UserAnswer: "a", CorrectAnswer: "b"}}
	res := Summarize(0, wrong, 0)
	if res.WrongAnswers != 1 || len(res.WrongDetails) != 1 {
		t.Fatalf("wrong details lost: %+v", res)
	}
	if res.WrongDetails[0].UserAnswer != "a" {
		t.Fatalf("detail mangled: %+v", res.WrongDetails[0])
	}
}
