package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTaskOutcomeMarshal(t *testing.T) {
	t.Run("value marshals as the record", func(t *testing.T) {
		outcome := TaskOutcome[AtsJargonReport]{
			Value: &AtsJargonReport{
				AtsRecommendations: []string{"Use standard headings"},
				JargonFlags:        []JargonFlag{},
				KeywordSuggestions: []string{},
			},
		}
		data, err := json.Marshal(outcome)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(data), `"status"`) {
			t.Errorf("successful slot must not carry a status field: %s", data)
		}
	})

	t.Run("failure marshals as the marker", func(t *testing.T) {
		outcome := TaskOutcome[AtsJargonReport]{
			Failure: NewTaskFailure("malformed JSON", "{oops"),
		}
		data, err := json.Marshal(outcome)
		if err != nil {
			t.Fatal(err)
		}
		want := `{"status":"failed","reason":"malformed JSON","rawExcerpt":"{oops"}`
		if string(data) != want {
			t.Errorf("marshal = %s, want %s", data, want)
		}
	})

	t.Run("empty slot marshals as did-not-run", func(t *testing.T) {
		data, err := json.Marshal(TaskOutcome[AtsJargonReport]{})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "task did not run") {
			t.Errorf("marshal = %s", data)
		}
	})
}

func TestTaskOutcomeUnmarshal(t *testing.T) {
	t.Run("record restores as value", func(t *testing.T) {
		var outcome TaskOutcome[FeedbackRecord]
		raw := `{"qualityScore": 70, "sectionsPresent": [], "sectionsMissing": [], "strengths": [], "suggestions": []}`
		if err := json.Unmarshal([]byte(raw), &outcome); err != nil {
			t.Fatal(err)
		}
		if !outcome.OK() || outcome.Value.QualityScore != 70 {
			t.Errorf("outcome = %+v", outcome)
		}
	})

	t.Run("marker restores as failure", func(t *testing.T) {
		var outcome TaskOutcome[FeedbackRecord]
		raw := `{"status": "failed", "reason": "AI unavailable"}`
		if err := json.Unmarshal([]byte(raw), &outcome); err != nil {
			t.Fatal(err)
		}
		if outcome.OK() || outcome.Failure == nil || outcome.Failure.Reason != "AI unavailable" {
			t.Errorf("outcome = %+v", outcome)
		}
	})
}

func TestStructuredResumeIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		resume StructuredResume
		want   bool
	}{
		{"nothing", StructuredResume{}, true},
		{"personal only", StructuredResume{Personal: PersonalInfo{Name: "Jane Doe"}}, true},
		{"has skills", StructuredResume{Skills: []string{"Go"}}, false},
		{"has experience", StructuredResume{Experience: []ExperienceEntry{{Title: "Engineer"}}}, false},
		{"has education", StructuredResume{Education: []EducationEntry{{Degree: "BSc"}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resume.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidSentimentLevel(t *testing.T) {
	for _, level := range []SentimentLevel{SentimentLow, SentimentMedium, SentimentHigh} {
		if !ValidSentimentLevel(level) {
			t.Errorf("ValidSentimentLevel(%q) = false", level)
		}
	}
	for _, level := range []SentimentLevel{"", "High", "extreme"} {
		if ValidSentimentLevel(level) {
			t.Errorf("ValidSentimentLevel(%q) = true", level)
		}
	}
}

func TestAllTasksOrder(t *testing.T) {
	tasks := AllTasks()
	if len(tasks) != 3 {
		t.Fatalf("AllTasks() returned %d tasks", len(tasks))
	}
	if tasks[0] != TaskFeedback || tasks[1] != TaskStructuredParse || tasks[2] != TaskAtsJargon {
		t.Errorf("AllTasks() = %v", tasks)
	}
}
