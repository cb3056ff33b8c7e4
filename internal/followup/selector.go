package followup

import (
	"math/rand"
	"time"

	"github.com/petedur/BPD-Tracker/internal/models"
)

// HistoryWindow is how many recent same-bucket entries are checked when
// avoiding prompt repeats.
const HistoryWindow = 3

var pools = map[string][]string{
	models.MoodHigh: {
		"What helped you feel energized today?",
		"What did you do that you'd like to repeat tomorrow?",
		"Were there any moments that felt especially meaningful?",
		"Who shared in today's energy with you?",
		"What made today feel different from an ordinary day?",
		"Is there momentum from today you want to carry forward?",
		"What part of today surprised you in a good way?",
		"Did the energy feel steady, or did it come in bursts?",
		"What would you tell a friend about today?",
		"Is there anything you want to remember about how today started?",
	},
	models.MoodLow: {
		"What felt hardest today, and what felt even slightly easier?",
		"Did anything help your mood or energy, even a little?",
		"What kind of support or rest would feel helpful right now?",
		"Was there a moment today that felt a bit lighter?",
		"What is one small thing that might make tomorrow easier?",
		"Did today feel heavier in the morning or the evening?",
		"Is there something you've been carrying that you could set down?",
		"What usually helps when days feel like this?",
		"Who could you reach out to, even briefly?",
		"What does your body seem to be asking for?",
	},
	models.MoodNeutral: {
		"What stood out to you today?",
		"If today had a theme, what would it be?",
		"What do you want to pay attention to tomorrow?",
		"Was there anything today you almost didn't notice?",
		"What took up most of your attention today?",
		"Is there something unfinished from today worth returning to?",
		"How did today compare to what you expected this morning?",
		"What is one word you'd use for today?",
		"Did anything shift for you today, even slightly?",
		"What are you curious about right now?",
	},
}

// Session holds the per-session prompt memory. It is passed explicitly so
// the selector itself stays stateless.
type Session struct {
	LastFollowup string
}

// Selector chooses follow-up prompts, avoiding recent repeats without ever
// refusing to answer.
type Selector struct {
	rand *rand.Rand
}

// NewSelector returns a selector seeded from the clock.
func NewSelector() *Selector {
	return NewSelectorWithSeed(time.Now().UnixNano())
}

// NewSelectorWithSeed returns a selector with a fixed seed, for tests.
func NewSelectorWithSeed(seed int64) *Selector {
	return &Selector{rand: rand.New(rand.NewSource(seed))}
}

// Select picks one prompt for the given mood bucket. Two soft constraints
// apply in order of preference: skip the session's last shown prompt, and
// skip prompts used by the last HistoryWindow entries sharing the bucket.
// If both would empty the pool, the history constraint is relaxed first,
// then the last-shown constraint, so a prompt is always returned.
func (s *Selector) Select(mood string, entries []models.Entry, sess *Session) string {
	pool, ok := pools[mood]
	if !ok {
		pool = pools[models.MoodNeutral]
	}

	recent := recentBucketPrompts(entries, mood, HistoryWindow)

	candidates := filter(pool, func(p string) bool {
		return p != sess.LastFollowup && !recent[p]
	})
	if len(candidates) == 0 {
		candidates = filter(pool, func(p string) bool {
			return p != sess.LastFollowup
		})
	}
	if len(candidates) == 0 {
		candidates = pool
	}

	choice := candidates[s.rand.Intn(len(candidates))]
	sess.LastFollowup = choice
	return choice
}

// recentBucketPrompts collects the follow-ups shown by the last k entries
// that share the given mood bucket.
func recentBucketPrompts(entries []models.Entry, mood string, k int) map[string]bool {
	used := make(map[string]bool)
	seen := 0
	for i := len(entries) - 1; i >= 0 && seen < k; i-- {
		if entries[i].Mood != mood {
			continue
		}
		seen++
		if entries[i].Followup != "" {
			used[entries[i].Followup] = true
		}
	}
	return used
}

func filter(pool []string, keep func(string) bool) []string {
	var out []string
	for _, p := range pool {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
