package store

import (
	"time"

	"github.com/google/uuid"
)

type options struct {
	now   func() time.Time
	newID func() (string, error)
}

type Option func(*options)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	if now == nil {
		return nil
	}
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator подменяет генератор идентификаторов.
func WithIDGenerator(newID func() (string, error)) Option {
	if newID == nil {
		return nil
	}
	return func(o *options) {
		o.newID = newID
	}
}

func newOptions(opts []Option) options {
	o := options{
		now: func() time.Time { return time.Now().UTC() },
		// UUIDv7 содержит миллисекунды момента создания и монотонен в пределах процесса
		newID: func() (string, error) {
			id, err := uuid.NewV7()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
