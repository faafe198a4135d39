package project

import (
	"slices"
	"time"
)

type ProjectOption func(*Project)

func WithName(name string) ProjectOption {
	return func(p *Project) {
		p.Name = name
	}
}

func WithDescription(description string) ProjectOption {
	return func(p *Project) {
		p.Description = description
	}
}

// WithStatus не трогает прогресс: связь статуса и прогресса односторонняя
// и обрабатывается только в UpdateProjectProgress.
func WithStatus(status Status) ProjectOption {
	if status == "" {
		return nil
	}
	return func(p *Project) {
		p.Status = status
	}
}

func WithDeadline(deadline time.Time) ProjectOption {
	if deadline.IsZero() {
		return nil
	}
	return func(p *Project) {
		p.Deadline = deadline
	}
}

func WithTeamMembers(members []string) ProjectOption {
	members = slices.Clone(members)
	return func(p *Project) {
		p.TeamMembers = members
	}
}

func WithLeadID(leadID string) ProjectOption {
	if leadID == "" {
		return nil
	}
	return func(p *Project) {
		p.LeadID = leadID
	}
}

func WithProgress(progress int) ProjectOption {
	return func(p *Project) {
		p.Progress = progress
	}
}
