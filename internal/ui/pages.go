package ui

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/client"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

// Store gives the pages cached, deduplicated access to the API client. Each
// page reads through it instead of holding data of its own; cross-page
// updates happen only by invalidating and re-fetching.
type Store struct {
	api   *client.Client
	cache *QueryCache
}

func NewStore(api *client.Client, cache *QueryCache) *Store {
	return &Store{api: api, cache: cache}
}

func (s *Store) Cache() *QueryCache  { return s.cache }
func (s *Store) API() *client.Client { return s.api }

func (s *Store) LearningPaths(ctx context.Context, studentID *uuid.UUID) ([]*models.LearningPath, error) {
	key := Key("learning-paths", "all")
	filter := client.LearningPathFilter{}
	if studentID != nil {
		key = Key("learning-paths", studentID.String())
		filter.StudentID = studentID
		filter.ActiveOnly = true
	}
	return Fetch(ctx, s.cache, key, func(ctx context.Context) ([]*models.LearningPath, error) {
		return s.api.ListLearningPaths(ctx, filter)
	})
}

func (s *Store) Students(ctx context.Context) ([]*models.Student, error) {
	return Fetch(ctx, s.cache, Key("students"), func(ctx context.Context) ([]*models.Student, error) {
		return s.api.ListStudents(ctx)
	})
}

func (s *Store) Subjects(ctx context.Context) ([]*models.Subject, error) {
	return Fetch(ctx, s.cache, Key("subjects"), func(ctx context.Context) ([]*models.Subject, error) {
		return s.api.ListSubjects(ctx)
	})
}

func (s *Store) ContentBySubject(ctx context.Context, subjectID uuid.UUID) ([]*models.Content, error) {
	return Fetch(ctx, s.cache, Key("content", "subject", subjectID.String()), func(ctx context.Context) ([]*models.Content, error) {
		return s.api.ListContent(ctx, models.ContentFilter{SubjectID: &subjectID})
	})
}

func (s *Store) Content(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	return Fetch(ctx, s.cache, Key("content", "item", id.String()), func(ctx context.Context) (*models.Content, error) {
		return s.api.GetContent(ctx, id)
	})
}

func (s *Store) PathProgress(ctx context.Context, pathID uuid.UUID) ([]*models.Progress, error) {
	return Fetch(ctx, s.cache, Key("progress", pathID.String()), func(ctx context.Context) ([]*models.Progress, error) {
		return s.api.ListProgress(ctx, models.ProgressFilter{LearningPathID: &pathID})
	})
}

func (s *Store) StudentDashboard(ctx context.Context, studentID uuid.UUID) (*models.StudentDashboard, error) {
	return Fetch(ctx, s.cache, Key("dashboards", "student", studentID.String()), func(ctx context.Context) (*models.StudentDashboard, error) {
		return s.api.StudentDashboard(ctx, studentID)
	})
}

func (s *Store) EducatorDashboard(ctx context.Context) (*models.EducatorDashboard, error) {
	return Fetch(ctx, s.cache, Key("dashboards", "educator"), func(ctx context.Context) (*models.EducatorDashboard, error) {
		return s.api.EducatorDashboard(ctx)
	})
}

// PathDetail is the learning-path detail page's view model: the path plus
// its per-content progress records.
type PathDetail struct {
	Path     *models.LearningPath
	Progress []*models.Progress
}

// LoadPathDetail resolves the selected path from the cached path list and
// fetches its progress records.
func (s *Store) LoadPathDetail(ctx context.Context, pathID uuid.UUID, studentID *uuid.UUID) (*PathDetail, error) {
	paths, err := s.LearningPaths(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var path *models.LearningPath
	for _, p := range paths {
		if p.ID == pathID {
			path = p
			break
		}
	}
	if path == nil {
		return nil, fmt.Errorf("learning path %s not found", pathID)
	}

	progress, err := s.PathProgress(ctx, pathID)
	if err != nil {
		return nil, err
	}
	return &PathDetail{Path: path, Progress: progress}, nil
}

// LoadContentViewer assembles the content viewer's inputs. The progress
// record is optional; without one the viewer's toggle stays disabled.
func (s *Store) LoadContentViewer(ctx context.Context, contentID, pathID uuid.UUID, progressID *uuid.UUID) (*ContentViewer, error) {
	content, err := s.Content(ctx, contentID)
	if err != nil {
		return nil, err
	}

	var progress *models.Progress
	if progressID != nil {
		records, err := s.PathProgress(ctx, pathID)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if rec.ID == *progressID {
				progress = rec
				break
			}
		}
	}

	return NewContentViewer(s.api, s.cache, content, progress), nil
}
