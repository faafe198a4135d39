package store

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"officeHub/internal/logger"
	"officeHub/internal/models/project"
	repo "officeHub/internal/repository"
	"officeHub/internal/repository/collection"

	"go.uber.org/zap"
)

type ProjectStore struct {
	projects *collection.Collection[project.Project]
	writeMtx *sync.Mutex
	opts     options
}

func NewProjectStore(slot repo.Slot, opts ...Option) *ProjectStore {
	return &ProjectStore{
		projects: collection.New[project.Project](repo.SlotProjects, slot),
		writeMtx: &sync.Mutex{},
		opts:     newOptions(opts),
	}
}

func (s *ProjectStore) Load(ctx context.Context, seed []project.Project) error {
	if err := s.projects.Load(ctx, seed); err != nil {
		return fmt.Errorf("загрузка проектов: %w", err)
	}
	return nil
}

// AddProject выставляет прогресс по статусу (100 для completed, иначе 0),
// переданный прогресс игнорируется.
func (s *ProjectStore) AddProject(ctx context.Context, p project.Project) (project.Project, error) {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	id, err := s.opts.newID()
	if err != nil {
		return project.Project{}, fmt.Errorf("генерация id: %w", err)
	}

	p.ID = id
	p.CreatedAt = s.opts.now()
	p.TeamMembers = slices.Clone(p.TeamMembers)
	if p.TeamMembers == nil {
		p.TeamMembers = []string{}
	}
	p.Progress = 0
	if p.Status == project.StatusCompleted {
		p.Progress = 100
	}

	if err := validate(p); err != nil {
		return project.Project{}, err
	}
	if err := s.projects.Insert(ctx, p); err != nil {
		return project.Project{}, mutationError(ResourceProject, p.ID, err)
	}

	logger.Info("Store: Проект создан", zap.String("project_id", p.ID), zap.String("status", string(p.Status)))
	return p.Clone(), nil
}

// UpdateProject применяет только переданные поля. Статус и прогресс здесь не связаны.
func (s *ProjectStore) UpdateProject(ctx context.Context, id string, patch ...project.ProjectOption) (project.Project, error) {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	next, ok := s.projects.Get(id)
	if !ok {
		logger.Info("Store: Проект не найден", zap.String("target_id", id))
		return project.Project{}, NewNotFound(ResourceProject, id)
	}

	createdAt := next.CreatedAt
	for _, opt := range patch {
		if opt != nil {
			opt(&next)
		}
	}
	next.ID = id
	next.CreatedAt = createdAt

	return s.replace(ctx, next)
}

// UpdateProjectProgress при progress >= 100 переводит проект в completed.
// Снижение прогресса статус не возвращает.
func (s *ProjectStore) UpdateProjectProgress(ctx context.Context, id string, progress int) (project.Project, error) {
	if progress < 0 || progress > 100 {
		return project.Project{}, NewValidationError("progress", "допустимый диапазон 0..100, получено "+strconv.Itoa(progress))
	}

	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	next, ok := s.projects.Get(id)
	if !ok {
		logger.Info("Store: Проект не найден", zap.String("target_id", id))
		return project.Project{}, NewNotFound(ResourceProject, id)
	}

	next.Progress = progress
	if progress >= 100 {
		next.Status = project.StatusCompleted
	}

	return s.replace(ctx, next)
}

func (s *ProjectStore) RemoveProject(ctx context.Context, id string) error {
	s.writeMtx.Lock()
	defer s.writeMtx.Unlock()

	if err := s.projects.Delete(ctx, id); err != nil {
		return mutationError(ResourceProject, id, err)
	}
	logger.Info("Store: Проект удалён", zap.String("project_id", id))
	return nil
}

func (s *ProjectStore) GetProjectByID(id string) (project.Project, bool) {
	return s.projects.Get(id)
}

func (s *ProjectStore) GetProjectsByStatus(status project.Status) []project.Project {
	return s.projects.Filter(func(p project.Project) bool { return p.Status == status })
}

// GetProjectsByUser - проекты, где пользователь руководитель или участник.
func (s *ProjectStore) GetProjectsByUser(userID string) []project.Project {
	return s.projects.Filter(func(p project.Project) bool { return p.Involves(userID) })
}

func (s *ProjectStore) ListProjects() []project.Project {
	return s.projects.List()
}

// RecentProjects - не более n проектов, от новых к старым по дате создания.
func (s *ProjectStore) RecentProjects(n int) []project.Project {
	projects := s.projects.List()
	slices.SortStableFunc(projects, func(a, b project.Project) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if n >= 0 && len(projects) > n {
		projects = projects[:n]
	}
	return projects
}

func (s *ProjectStore) replace(ctx context.Context, next project.Project) (project.Project, error) {
	if err := validate(next); err != nil {
		return project.Project{}, err
	}

	updated, err := s.projects.Update(ctx, next.ID, func(p *project.Project) error {
		*p = next
		return nil
	})
	if err != nil {
		return project.Project{}, mutationError(ResourceProject, next.ID, err)
	}

	logger.Info("Store: Проект обновлён",
		zap.String("project_id", next.ID),
		zap.String("status", string(updated.Status)),
		zap.Int("progress", updated.Progress),
	)
	return updated, nil
}
