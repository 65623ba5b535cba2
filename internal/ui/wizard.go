package ui

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

// WizardStep is the create-learning-path wizard's position. There is no
// backward edge out of StepSuccess.
type WizardStep int

const (
	StepDetails WizardStep = iota
	StepContentSelection
	StepSuccess
)

// SubmitState tracks the creation call as an explicit state machine so tests
// can assert on state rather than timing.
type SubmitState int

const (
	SubmitIdle SubmitState = iota
	SubmitPending
	SubmitSucceeded
	SubmitFailed
)

// PathDetails is the first wizard step's form. Start and target dates are
// accepted as given; ordering between them is not validated.
type PathDetails struct {
	StudentID            uuid.UUID
	SubjectID            uuid.UUID
	Title                string
	Description          string
	DifficultyLevel      string
	StartDate            models.Date
	TargetCompletionDate models.Date
}

type pathCreator interface {
	CreateLearningPath(ctx context.Context, req models.CreateLearningPathRequest) (*models.LearningPath, error)
}

// PathWizard drives the three-step create-learning-path flow. A failed
// creation keeps the user on content selection for retry.
type PathWizard struct {
	creator pathCreator
	cache   *QueryCache

	step        WizardStep
	details     PathDetails
	selected    []uuid.UUID
	submitState SubmitState
	errMessage  string
	created     *models.LearningPath
}

func NewPathWizard(creator pathCreator, cache *QueryCache) *PathWizard {
	return &PathWizard{creator: creator, cache: cache, step: StepDetails}
}

func (w *PathWizard) Step() WizardStep         { return w.step }
func (w *PathWizard) SubmitState() SubmitState { return w.submitState }
func (w *PathWizard) ErrorMessage() string     { return w.errMessage }
func (w *PathWizard) Created() *models.LearningPath { return w.created }

// SubmitDetails validates the required fields and advances to content
// selection. Field errors are returned keyed by field name; an empty map
// means the step advanced.
func (w *PathWizard) SubmitDetails(details PathDetails) map[string]string {
	if w.step != StepDetails {
		return map[string]string{"step": "Details already submitted"}
	}

	fieldErrors := make(map[string]string)
	if details.StudentID == uuid.Nil {
		fieldErrors["student_id"] = "Student is required"
	}
	if details.SubjectID == uuid.Nil {
		fieldErrors["subject_id"] = "Subject is required"
	}
	if strings.TrimSpace(details.Title) == "" {
		fieldErrors["title"] = "Title is required"
	}
	if strings.TrimSpace(details.Description) == "" {
		fieldErrors["description"] = "Description is required"
	}
	if details.DifficultyLevel == "" {
		fieldErrors["difficulty_level"] = "Difficulty is required"
	}
	if details.StartDate.IsZero() {
		fieldErrors["start_date"] = "Start date is required"
	}
	if details.TargetCompletionDate.IsZero() {
		fieldErrors["target_completion_date"] = "Target date is required"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}

	w.details = details
	w.step = StepContentSelection
	return nil
}

// Back returns from content selection to the details step. Success has no
// backward edge.
func (w *PathWizard) Back() bool {
	if w.step != StepContentSelection {
		return false
	}
	w.step = StepDetails
	return true
}

// ToggleContent adds or removes a content id from the selection, preserving
// first-selection order.
func (w *PathWizard) ToggleContent(id uuid.UUID) {
	for i, existing := range w.selected {
		if existing == id {
			w.selected = append(w.selected[:i], w.selected[i+1:]...)
			return
		}
	}
	w.selected = append(w.selected, id)
}

func (w *PathWizard) SelectedContent() []uuid.UUID {
	out := make([]uuid.UUID, len(w.selected))
	copy(out, w.selected)
	return out
}

// Submit creates the learning path. An empty selection is rejected locally
// without a network call. Any creation failure keeps the wizard on content
// selection with a user-visible message.
func (w *PathWizard) Submit(ctx context.Context) error {
	if w.step != StepContentSelection {
		return nil
	}
	if len(w.selected) == 0 {
		w.errMessage = "Select at least one content item"
		return nil
	}

	w.submitState = SubmitPending
	w.errMessage = ""

	req := models.CreateLearningPathRequest{
		StudentID:            w.details.StudentID,
		SubjectID:            w.details.SubjectID,
		Title:                w.details.Title,
		Description:          w.details.Description,
		DifficultyLevel:      w.details.DifficultyLevel,
		StartDate:            w.details.StartDate,
		TargetCompletionDate: w.details.TargetCompletionDate,
		ContentIDs:           w.SelectedContent(),
	}

	created, err := w.creator.CreateLearningPath(ctx, req)
	if err != nil {
		w.submitState = SubmitFailed
		if apiErr, ok := err.(*models.APIError); ok {
			w.errMessage = apiErr.Message
		} else {
			w.errMessage = "Network error, try again"
		}
		return err
	}

	w.submitState = SubmitSucceeded
	w.created = created
	w.step = StepSuccess
	return nil
}

// Goals returns the AI-generated goals rendered on the success step.
func (w *PathWizard) Goals() []string {
	if w.created == nil {
		return nil
	}
	return w.created.PersonalizedGoals
}

// Done closes the wizard after success and invalidates the learning-path
// queries so the parent's next fetch reflects the new path.
func (w *PathWizard) Done() {
	if w.step != StepSuccess {
		return
	}
	w.cache.Invalidate("learning-paths")
}
