package storage

import (
	"errors"

	"github.com/julianstephens/burnoutguard/internal/models"
)

// ErrNotFound is returned when a lookup or mutation targets a missing id.
var ErrNotFound = errors.New("not found")

// Provider persists the events and tasks the engine analyzes.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Events
	AddEvent(models.CalendarEvent) error
	GetEvent(id string) (models.CalendarEvent, error)
	GetAllEvents() ([]models.CalendarEvent, error)
	DeleteEvent(id string) error
	// ImportEvents upserts events by id in a single transaction and returns
	// how many were written.
	ImportEvents([]models.CalendarEvent) (int, error)

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
	ImportTasks([]models.Task) (int, error)

	// Utils
	SchemaVersion() (current, latest int, err error)
	GetConfigPath() string
}
