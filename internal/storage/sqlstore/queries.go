// Package sqlstore holds the event and task queries shared by the SQL
// backends. Queries are written with "?" placeholders and rebound per dialect.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/burnoutguard/internal/migration"
	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/storage"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

const createdAtFormat = "2006-01-02T15:04:05.000000000"

type Queries struct {
	DB      *sql.DB
	Dialect migration.Dialect
	// Now stamps created_at. Nil means time.Now.
	Now func() time.Time
}

// Rebind rewrites "?" placeholders into "$n" for PostgreSQL.
func Rebind(d migration.Dialect, query string) string {
	if d != migration.Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (q *Queries) exec(db execer, query string, args ...interface{}) (sql.Result, error) {
	return db.Exec(Rebind(q.Dialect, query), args...)
}

func (q *Queries) createdAt(offset int) string {
	now := time.Now
	if q.Now != nil {
		now = q.Now
	}
	return now().UTC().Add(time.Duration(offset)).Format(createdAtFormat)
}

const eventColumns = `id, summary, description, start_at, end_at`

func scanEvent(row scanner) (models.CalendarEvent, error) {
	var e models.CalendarEvent
	var start, end string
	if err := row.Scan(&e.ID, &e.Summary, &e.Description, &start, &end); err != nil {
		return models.CalendarEvent{}, err
	}

	var err error
	if e.Start, err = utils.ParseTimestamp(start); err != nil {
		return models.CalendarEvent{}, fmt.Errorf("event %q start: %w", e.ID, err)
	}
	if e.End, err = utils.ParseTimestamp(end); err != nil {
		return models.CalendarEvent{}, fmt.Errorf("event %q end: %w", e.ID, err)
	}
	return e, nil
}

func (q *Queries) AddEvent(e models.CalendarEvent) error {
	if err := e.Validate(); err != nil {
		return err
	}
	_, err := q.exec(q.DB, `
		INSERT INTO events (id, summary, description, start_at, end_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Summary, e.Description,
		utils.FormatTimestamp(e.Start), utils.FormatTimestamp(e.End), q.createdAt(0),
	)
	if err != nil {
		return fmt.Errorf("failed to add event %q: %w", e.ID, err)
	}
	return nil
}

func (q *Queries) GetEvent(id string) (models.CalendarEvent, error) {
	row := q.DB.QueryRow(Rebind(q.Dialect, `SELECT `+eventColumns+` FROM events WHERE id = ?`), id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CalendarEvent{}, fmt.Errorf("event %q: %w", id, storage.ErrNotFound)
	}
	return e, err
}

func (q *Queries) GetAllEvents() ([]models.CalendarEvent, error) {
	rows, err := q.DB.Query(`SELECT ` + eventColumns + ` FROM events ORDER BY start_at, created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (q *Queries) DeleteEvent(id string) error {
	res, err := q.exec(q.DB, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "event", id)
}

func (q *Queries) ImportEvents(events []models.CalendarEvent) (int, error) {
	tx, err := q.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	for i, e := range events {
		if err := e.Validate(); err != nil {
			return 0, fmt.Errorf("event %d: %w", i, err)
		}
		_, err := q.exec(tx, `
			INSERT INTO events (id, summary, description, start_at, end_at, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				summary = excluded.summary,
				description = excluded.description,
				start_at = excluded.start_at,
				end_at = excluded.end_at`,
			e.ID, e.Summary, e.Description,
			utils.FormatTimestamp(e.Start), utils.FormatTimestamp(e.End), q.createdAt(i),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to import event %q: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(events), nil
}

const taskColumns = `id, title, description, due_date, priority, completed`

func scanTask(row scanner) (models.Task, error) {
	var t models.Task
	var due sql.NullString
	var priority string
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &due, &priority, &t.Completed); err != nil {
		return models.Task{}, err
	}

	t.Priority = models.Priority(priority)
	if due.Valid && due.String != "" {
		d, err := utils.ParseTimestamp(due.String)
		if err != nil {
			return models.Task{}, fmt.Errorf("task %q due_date: %w", t.ID, err)
		}
		t.DueDate = &d
	}
	return t, nil
}

func dueValue(t models.Task) interface{} {
	if t.DueDate == nil {
		return nil
	}
	return utils.FormatTimestamp(*t.DueDate)
}

func priorityValue(t models.Task) string {
	if t.Priority == "" {
		return string(models.PriorityMedium)
	}
	return string(t.Priority)
}

func (q *Queries) AddTask(t models.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	_, err := q.exec(q.DB, `
		INSERT INTO tasks (id, title, description, due_date, priority, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, dueValue(t), priorityValue(t), t.Completed, q.createdAt(0),
	)
	if err != nil {
		return fmt.Errorf("failed to add task %q: %w", t.ID, err)
	}
	return nil
}

func (q *Queries) GetTask(id string) (models.Task, error) {
	row := q.DB.QueryRow(Rebind(q.Dialect, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %q: %w", id, storage.ErrNotFound)
	}
	return t, err
}

func (q *Queries) GetAllTasks() ([]models.Task, error) {
	rows, err := q.DB.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (q *Queries) UpdateTask(t models.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	res, err := q.exec(q.DB, `
		UPDATE tasks SET title = ?, description = ?, due_date = ?, priority = ?, completed = ?
		WHERE id = ?`,
		t.Title, t.Description, dueValue(t), priorityValue(t), t.Completed, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %q: %w", t.ID, err)
	}
	return requireRow(res, "task", t.ID)
}

func (q *Queries) DeleteTask(id string) error {
	res, err := q.exec(q.DB, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "task", id)
}

func (q *Queries) ImportTasks(tasks []models.Task) (int, error) {
	tx, err := q.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return 0, fmt.Errorf("task %d: %w", i, err)
		}
		_, err := q.exec(tx, `
			INSERT INTO tasks (id, title, description, due_date, priority, completed, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				title = excluded.title,
				description = excluded.description,
				due_date = excluded.due_date,
				priority = excluded.priority,
				completed = excluded.completed`,
			t.ID, t.Title, t.Description, dueValue(t), priorityValue(t), t.Completed, q.createdAt(i),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to import task %q: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(tasks), nil
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
