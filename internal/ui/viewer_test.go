package ui

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type stubUpdater struct {
	lastID    uuid.UUID
	lastPatch models.ProgressUpdate
	result    *models.Progress
}

func (s *stubUpdater) UpdateProgress(ctx context.Context, id uuid.UUID, patch models.ProgressUpdate) (*models.Progress, error) {
	s.lastID = id
	s.lastPatch = patch
	return s.result, nil
}

func TestTogglePatch_CompletedGoesBackToInProgress(t *testing.T) {
	patch := TogglePatch(&models.Progress{Status: models.ProgressCompleted, MasteryLevel: 92})

	if *patch.Status != models.ProgressInProgress {
		t.Fatalf("expected in_progress, got %s", *patch.Status)
	}
	if *patch.CompletionPercentage != 50 {
		t.Fatalf("expected completion 50, got %v", *patch.CompletionPercentage)
	}
	if *patch.MasteryLevel != 92 {
		t.Fatalf("existing mastery must be preserved, got %v", *patch.MasteryLevel)
	}
}

func TestTogglePatch_CompletedWithZeroMasteryDefaultsTo50(t *testing.T) {
	patch := TogglePatch(&models.Progress{Status: models.ProgressCompleted, MasteryLevel: 0})

	if *patch.MasteryLevel != 50 {
		t.Fatalf("expected mastery default 50, got %v", *patch.MasteryLevel)
	}
}

func TestTogglePatch_AnythingElseCompletes(t *testing.T) {
	for _, status := range []string{models.ProgressNotStarted, models.ProgressInProgress, models.ProgressNeedsReview} {
		patch := TogglePatch(&models.Progress{Status: status})

		if *patch.Status != models.ProgressCompleted {
			t.Errorf("status %s: expected completed, got %s", status, *patch.Status)
		}
		if *patch.CompletionPercentage != 100 {
			t.Errorf("status %s: expected completion 100, got %v", status, *patch.CompletionPercentage)
		}
		if *patch.MasteryLevel != 85 {
			t.Errorf("status %s: expected mastery 85, got %v", status, *patch.MasteryLevel)
		}
	}
}

func TestContentViewer_NoProgressDisablesToggle(t *testing.T) {
	v := NewContentViewer(&stubUpdater{}, NewQueryCache(), &models.Content{Title: "Intro"}, nil)

	if v.CanToggle() {
		t.Fatal("toggle must be disabled without a progress record")
	}
	if err := v.Toggle(context.Background()); err != nil {
		t.Fatalf("disabled toggle must be a no-op, got %v", err)
	}
}

func TestContentViewer_ToggleSendsPatchAndInvalidates(t *testing.T) {
	progressID := uuid.New()
	updated := &models.Progress{ID: progressID, Status: models.ProgressCompleted, CompletionPercentage: 100}
	updater := &stubUpdater{result: updated}
	cache := NewQueryCache()

	fetches := 0
	key := Key("progress", "path-1")
	cache.Get(context.Background(), key, func(ctx context.Context) (interface{}, error) {
		fetches++
		return nil, nil
	})

	v := NewContentViewer(updater, cache, &models.Content{}, &models.Progress{
		ID:     progressID,
		Status: models.ProgressInProgress,
	})

	if v.ToggleLabel() != "Mark as Completed" {
		t.Fatalf("unexpected label %q", v.ToggleLabel())
	}

	if err := v.Toggle(context.Background()); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if updater.lastID != progressID {
		t.Fatalf("patched wrong record: %s", updater.lastID)
	}
	if *updater.lastPatch.Status != models.ProgressCompleted {
		t.Fatalf("expected completed patch, got %s", *updater.lastPatch.Status)
	}

	if v.ToggleLabel() != "Mark as In Progress" {
		t.Fatalf("label must follow the updated record, got %q", v.ToggleLabel())
	}

	cache.Get(context.Background(), key, func(ctx context.Context) (interface{}, error) {
		fetches++
		return nil, nil
	})
	if fetches != 2 {
		t.Fatalf("toggle must invalidate progress queries; fetches = %d", fetches)
	}
}

func TestContentViewer_LabelStableAcrossMounts(t *testing.T) {
	progress := &models.Progress{ID: uuid.New(), Status: models.ProgressCompleted}
	content := &models.Content{Title: "Intro"}

	first := NewContentViewer(&stubUpdater{}, NewQueryCache(), content, progress)
	second := NewContentViewer(&stubUpdater{}, NewQueryCache(), content, progress)

	if first.ToggleLabel() != second.ToggleLabel() {
		t.Fatal("same record must produce the same label on every mount")
	}
}
