package ui

import (
	"context"

	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

type progressUpdater interface {
	UpdateProgress(ctx context.Context, id uuid.UUID, patch models.ProgressUpdate) (*models.Progress, error)
}

// ContentViewer renders a content item with its optional progress record and
// exposes the completion toggle. Without a progress record the toggle is
// disabled rather than erroring.
type ContentViewer struct {
	updater progressUpdater
	cache   *QueryCache

	content  *models.Content
	progress *models.Progress
}

func NewContentViewer(updater progressUpdater, cache *QueryCache, content *models.Content, progress *models.Progress) *ContentViewer {
	return &ContentViewer{updater: updater, cache: cache, content: content, progress: progress}
}

func (v *ContentViewer) Content() *models.Content   { return v.content }
func (v *ContentViewer) Progress() *models.Progress { return v.progress }

// CanToggle reports whether a progress record exists for this content.
func (v *ContentViewer) CanToggle() bool { return v.progress != nil }

// ToggleLabel is the completion button's caption, derived only from the
// current progress status.
func (v *ContentViewer) ToggleLabel() string {
	if v.progress != nil && v.progress.Status == models.ProgressCompleted {
		return "Mark as In Progress"
	}
	return "Mark as Completed"
}

// TogglePatch builds the update for the current status: completed goes back
// to in_progress at 50% (mastery preserved, defaulting to 50); anything else
// goes to completed at 100% with mastery 85.
func TogglePatch(progress *models.Progress) models.ProgressUpdate {
	if progress.Status == models.ProgressCompleted {
		status := models.ProgressInProgress
		completion := 50.0
		mastery := progress.MasteryLevel
		if mastery == 0 {
			mastery = 50
		}
		return models.ProgressUpdate{
			Status:               &status,
			CompletionPercentage: &completion,
			MasteryLevel:         &mastery,
		}
	}

	status := models.ProgressCompleted
	completion := 100.0
	mastery := 85.0
	return models.ProgressUpdate{
		Status:               &status,
		CompletionPercentage: &completion,
		MasteryLevel:         &mastery,
	}
}

// Toggle sends the computed patch and, on success, replaces the local record
// and invalidates the progress and learning-path queries.
func (v *ContentViewer) Toggle(ctx context.Context) error {
	if v.progress == nil {
		return nil
	}

	updated, err := v.updater.UpdateProgress(ctx, v.progress.ID, TogglePatch(v.progress))
	if err != nil {
		return err
	}

	v.progress = updated
	v.cache.Invalidate("progress")
	v.cache.Invalidate("learning-paths")
	return nil
}
