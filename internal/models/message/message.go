package message

import "time"

type Message struct {
	ID             string    `json:"id" yaml:"id" validate:"required"`
	SenderID       string    `json:"senderId" yaml:"senderId" validate:"required"`
	Content        string    `json:"content" yaml:"content" validate:"required"`
	Timestamp      time.Time `json:"timestamp" yaml:"timestamp"`
	IsRead         bool      `json:"isRead" yaml:"isRead"`
	IsAnnouncement bool      `json:"isAnnouncement" yaml:"isAnnouncement"`
}

func (m Message) GetID() string {
	return m.ID
}

func (m Message) Clone() Message {
	return m
}
