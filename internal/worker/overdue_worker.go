package worker

import (
	"context"
	"time"

	"officeHub/internal/logger"
	"officeHub/internal/models/project"
	"officeHub/internal/models/task"

	"go.uber.org/zap"
)

const defaultInterval = 5 * time.Minute

type TaskSource interface {
	GetOverdueTasks(now time.Time) []task.Task
	ListTasks() []task.Task
}

type ProjectSource interface {
	ListProjects() []project.Project
}

// Report - результат одной проверки.
type Report struct {
	CheckedTasks    int
	OverdueTasks    []task.Task
	CheckedProjects int
	OverdueProjects []project.Project
}

// OverdueWorker периодически ищет просроченные задачи и проекты. Хранилища не изменяет.
type OverdueWorker struct {
	tasks    TaskSource
	projects ProjectSource
	interval time.Duration
	now      func() time.Time
	onReport func(Report)
}

func NewOverdueWorker(tasks TaskSource, projects ProjectSource, interval *time.Duration) *OverdueWorker {
	intervalToSet := defaultInterval
	if interval != nil && *interval > 0 {
		intervalToSet = *interval
	}

	return &OverdueWorker{
		tasks:    tasks,
		projects: projects,
		interval: intervalToSet,
		now:      time.Now,
	}
}

// OnReport регистрирует обработчик, вызываемый после каждой проверки из Start.
func (w *OverdueWorker) OnReport(fn func(Report)) {
	w.onReport = fn
}

func (w *OverdueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновая проверка сроков", zap.Time("started_at", w.now()))
			report := w.Check(ctx)
			if w.onReport != nil {
				w.onReport(report)
			}
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

func (w *OverdueWorker) Check(ctx context.Context) Report {
	start := time.Now()
	now := w.now()

	report := Report{
		CheckedTasks:    len(w.tasks.ListTasks()),
		OverdueTasks:    w.tasks.GetOverdueTasks(now),
		OverdueProjects: []project.Project{},
	}

	projects := w.projects.ListProjects()
	report.CheckedProjects = len(projects)
	for _, p := range projects {
		if ctx.Err() != nil {
			break
		}
		if p.IsOverdue(now) {
			report.OverdueProjects = append(report.OverdueProjects, p)
		}
	}

	for _, t := range report.OverdueTasks {
		logger.Debug("Worker: Просроченная задача",
			zap.String("task_id", t.ID),
			zap.String("assigned_to", t.AssignedTo),
			zap.Time("due_date", t.DueDate),
		)
	}

	logger.Info(
		"Worker: Завершение проверки сроков",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked_tasks", report.CheckedTasks),
		zap.Int("overdue_tasks", len(report.OverdueTasks)),
		zap.Int("checked_projects", report.CheckedProjects),
		zap.Int("overdue_projects", len(report.OverdueProjects)),
	)
	return report
}
