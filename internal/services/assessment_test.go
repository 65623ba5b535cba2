package services

import (
	"testing"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

func TestScoreAnswers(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", Question: "What is 2x when x=3?", CorrectAnswer: "6"},
		{ID: "q2", Question: "Solve x+1=2", CorrectAnswer: "1"},
		{ID: "q3", Question: "Solve 2x=10", CorrectAnswer: "5"},
		{ID: "q4", Question: "What is x^0?", CorrectAnswer: "1"},
	}

	score, missed := ScoreAnswers(questions, map[string]string{
		"q1": "6",
		"q2": "3", // wrong
		"q3": "5",
		// q4 unanswered
	})

	if score != 50 {
		t.Fatalf("expected score 50, got %v", score)
	}
	if len(missed) != 1 || missed[0] != "Solve x+1=2" {
		t.Fatalf("only wrongly answered questions are reported missed, got %v", missed)
	}
}

func TestScoreAnswers_AllCorrect(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", CorrectAnswer: "a"},
		{ID: "q2", CorrectAnswer: "b"},
	}

	score, missed := ScoreAnswers(questions, map[string]string{"q1": "a", "q2": "b"})
	if score != 100 {
		t.Fatalf("expected 100, got %v", score)
	}
	if len(missed) != 0 {
		t.Fatalf("expected no missed questions, got %v", missed)
	}
}

func TestScoreAnswers_NoQuestions(t *testing.T) {
	score, missed := ScoreAnswers(nil, map[string]string{"q1": "a"})
	if score != 0 || missed != nil {
		t.Fatalf("empty assessment scores zero, got %v / %v", score, missed)
	}
}
