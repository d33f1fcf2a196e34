package quiz

import (
	"crypto/md5"
	"encoding/binary"
	"math/rand"
	"time"
)

// Deliver produces the shuffled, answer-stripped question set shown to one
// user for one category on one calendar day. For a fixed (userID,
// categoryID, day) the layout is byte-for-byte reproducible, so a user who
// reloads mid-quiz sees the same order within the day and a fresh one the
// next day.
//
// Draw order is fixed for parity across processes: each question's options
// are shuffled first, in input order, then the question sequence itself,
// all from a single generator stream. Changing this order changes every
// layout, so don't.
//
// The seed is derived from public-ish identifiers; this is a usability
// device against casual answer-sharing, not a security boundary.
func Deliver(questions []Question, userID, categoryID string, asOf time.Time) []DeliveredQuestion {
	rng := rand.New(rand.NewSource(layoutSeed(userID, categoryID, asOf)))

	out := make([]DeliveredQuestion, len(questions))
	for i, q := range questions {
		opts := make([]string, len(q.Options))
		copy(opts, q.Options)
		rng.Shuffle(len(opts), func(a, b int) {
			opts[a], opts[b] = opts[b], opts[a]
		})
		out[i] = DeliveredQuestion{ID: q.ID, Text: q.Text, Options: opts}
	}
	rng.Shuffle(len(out), func(a, b int) {
		out[a], out[b] = out[b], out[a]
	})
	return out
}

// layoutSeed hashes userID+categoryID+day (no time-of-day component) and
// folds the first 8 digest bytes into a PRNG seed.
func layoutSeed(userID, categoryID string, asOf time.Time) int64 {
	sum := md5.Sum([]byte(userID + categoryID + asOf.Format("2006-01-02")))
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
