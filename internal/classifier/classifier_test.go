package classifier

import (
	"testing"

	"github.com/petedur/BPD-Tracker/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "high majority",
			text: "Felt really energized and productive today",
			want: models.MoodHigh,
		},
		{
			name: "low majority",
			text: "tired, stressed and completely drained",
			want: models.MoodLow,
		},
		{
			name: "no keywords",
			text: "went to the shops, nothing much happened",
			want: models.MoodNeutral,
		},
		{
			name: "tie is neutral",
			text: "happy but also sad",
			want: models.MoodNeutral,
		},
		{
			name: "empty text",
			text: "",
			want: models.MoodNeutral,
		},
		{
			name: "case insensitive",
			text: "AMAZING day, felt CONFIDENT",
			want: models.MoodHigh,
		},
		{
			name: "multi-word phrase",
			text: "completely worn out after everything",
			want: models.MoodLow,
		},
		{
			name: "substring match",
			text: "feeling burnt-out again",
			want: models.MoodLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestScoreState(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{5, models.StateElevated},
		{3, models.StateElevated},
		{2, models.StateStable},
		{0, models.StateStable},
		{-2, models.StateStable},
		{-3, models.StateLow},
		{-5, models.StateLow},
	}

	for _, tt := range tests {
		got := ScoreState(tt.score, DefaultHighAt, DefaultLowAt)
		if got != tt.want {
			t.Errorf("ScoreState(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoreStateCustomThresholds(t *testing.T) {
	if got := ScoreState(2, 2, -2); got != models.StateElevated {
		t.Errorf("ScoreState(2, 2, -2) = %q, want elevated", got)
	}
	if got := ScoreState(-2, 2, -2); got != models.StateLow {
		t.Errorf("ScoreState(-2, 2, -2) = %q, want low", got)
	}
}

func TestValidateMood(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"high energy", models.MoodHigh},
		{"High Energy", models.MoodHigh},
		{"low energy", models.MoodLow},
		{"neutral", models.MoodNeutral},
		{"  neutral  ", models.MoodNeutral},
		{"elated", models.MoodNeutral},
		{"", models.MoodNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ValidateMood(tt.input)
			if got != tt.want {
				t.Errorf("ValidateMood(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
