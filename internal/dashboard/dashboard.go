package dashboard

import (
	"math"
	"strings"

	"officeHub/internal/models/project"
	"officeHub/internal/models/task"
	"officeHub/internal/models/user"

	"golang.org/x/text/cases"
)

const (
	recentProjectsLimit = 3
	UnknownUser         = "Unknown User"
)

type Users interface {
	GetUserByID(id string) (user.User, bool)
	ListEmployees() []user.User
}

type Projects interface {
	ListProjects() []project.Project
	GetProjectsByStatus(status project.Status) []project.Project
	RecentProjects(n int) []project.Project
}

type Tasks interface {
	ListTasks() []task.Task
	GetTasksByUser(userID string) []task.Task
	GetTasksByProject(projectID string) []task.Task
}

type Messages interface {
	GetUnreadCount() int
}

// Dashboard собирает производные представления поверх хранилищ. Только чтение.
type Dashboard struct {
	users    Users
	projects Projects
	tasks    Tasks
	messages Messages
}

func New(users Users, projects Projects, tasks Tasks, messages Messages) *Dashboard {
	return &Dashboard{
		users:    users,
		projects: projects,
		tasks:    tasks,
		messages: messages,
	}
}

type Summary struct {
	TotalProjects     int
	CompletedProjects int
	MyTasks           int
	UnreadMessages    int
	ProjectsByStatus  map[project.Status]int
	MyTasksByStatus   map[task.Status]int
	RecentProjects    []project.Project
}

// Summary - счётчики главной страницы для пользователя viewer.
func (d *Dashboard) Summary(viewer user.User) Summary {
	s := Summary{
		TotalProjects:    len(d.projects.ListProjects()),
		UnreadMessages:   d.messages.GetUnreadCount(),
		ProjectsByStatus: make(map[project.Status]int, len(project.Statuses)),
		MyTasksByStatus:  make(map[task.Status]int, len(task.Statuses)),
		RecentProjects:   d.projects.RecentProjects(recentProjectsLimit),
	}

	for _, status := range project.Statuses {
		s.ProjectsByStatus[status] = len(d.projects.GetProjectsByStatus(status))
	}
	s.CompletedProjects = s.ProjectsByStatus[project.StatusCompleted]

	for _, status := range task.Statuses {
		s.MyTasksByStatus[status] = 0
	}
	if viewer.ID != "" {
		myTasks := d.tasks.GetTasksByUser(viewer.ID)
		s.MyTasks = len(myTasks)
		for _, t := range myTasks {
			s.MyTasksByStatus[t.Status]++
		}
	}
	return s
}

// ProjectTaskProgress - доля выполненных задач проекта в процентах, с округлением; 0 без задач.
func (d *Dashboard) ProjectTaskProgress(projectID string) int {
	tasks := d.tasks.GetTasksByProject(projectID)
	if len(tasks) == 0 {
		return 0
	}

	done := 0
	for _, t := range tasks {
		if t.Status == task.StatusDone {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100))
}

type TaskFilter struct {
	Status    task.Status
	ProjectID string
	Query     string
}

// FilterTasks повторяет фильтры страницы задач. Сотрудник видит только свои задачи,
// основатель - все. Пустые поля фильтра не ограничивают выборку.
func (d *Dashboard) FilterTasks(viewer user.User, f TaskFilter) []task.Task {
	query := fold(strings.TrimSpace(f.Query))

	res := []task.Task{}
	for _, t := range d.tasks.ListTasks() {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.ProjectID != "" && t.ProjectID != f.ProjectID {
			continue
		}
		if !viewer.IsFounder() && t.AssignedTo != viewer.ID {
			continue
		}
		if query != "" && !containsFolded(query, t.Title, t.Description) {
			continue
		}
		res = append(res, t)
	}
	return res
}

// SearchEmployees ищет среди сотрудников по имени, email и должности без учёта регистра.
func (d *Dashboard) SearchEmployees(query string) []user.User {
	employees := d.users.ListEmployees()

	query = fold(strings.TrimSpace(query))
	if query == "" {
		return employees
	}

	res := []user.User{}
	for _, u := range employees {
		if containsFolded(query, u.Name, u.Email, u.Position) {
			res = append(res, u)
		}
	}
	return res
}

// CanAnnounce: объявления отправляют только основатели. Хранилище сообщений это не проверяет.
func CanAnnounce(u user.User) bool {
	return u.IsFounder()
}

func (d *Dashboard) SenderName(senderID string) string {
	if u, ok := d.users.GetUserByID(senderID); ok && u.Name != "" {
		return u.Name
	}
	return UnknownUser
}

func fold(s string) string {
	return cases.Fold().String(s)
}

func containsFolded(query string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(fold(field), query) {
			return true
		}
	}
	return false
}
