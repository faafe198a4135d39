package project

import (
	"slices"
	"time"
)

type Project struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	Name        string    `json:"name" yaml:"name" validate:"required"`
	Description string    `json:"description" yaml:"description"`
	Status      Status    `json:"status" yaml:"status" validate:"oneof=ongoing completed upcoming"`
	Deadline    time.Time `json:"deadline" yaml:"deadline" validate:"required"`
	TeamMembers []string  `json:"teamMembers" yaml:"teamMembers"`
	LeadID      string    `json:"leadId" yaml:"leadId" validate:"required"`
	Progress    int       `json:"progress" yaml:"progress" validate:"min=0,max=100"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

type Status string

const StatusOngoing Status = "ongoing"
const StatusCompleted Status = "completed"
const StatusUpcoming Status = "upcoming"

var Statuses = []Status{StatusOngoing, StatusCompleted, StatusUpcoming}

func (p Project) GetID() string {
	return p.ID
}

// Clone копирует список участников, чтобы наружу не уходил общий слайс.
func (p Project) Clone() Project {
	p.TeamMembers = slices.Clone(p.TeamMembers)
	return p
}

// Involves: пользователь руководит проектом или входит в команду.
func (p Project) Involves(userID string) bool {
	return p.LeadID == userID || slices.Contains(p.TeamMembers, userID)
}

func (p Project) IsOverdue(now time.Time) bool {
	return p.Status != StatusCompleted && !p.Deadline.IsZero() && p.Deadline.Before(now)
}
