package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"monthcal/internal/calendar"
)

const dateLayout = "2006-01-02"

var ErrNoteNotFound = errors.New("note not found")

// Note is a line of text attached to a calendar day.
type Note struct {
	ID        int
	Date      time.Time
	Text      string
	CreatedAt time.Time
}

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dbPath, err)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	day TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS notes_day ON notes(day);`
	_, err := s.db.Exec(ddl)
	return err
}

// AddNote stores text under the calendar day of date.
func (s *Store) AddNote(date time.Time, text string) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, errors.New("note text is empty")
	}
	day := calendar.Day(date)
	now := time.Now().UTC()
	res, err := s.db.Exec(`INSERT INTO notes (day, body, created_at) VALUES (?, ?, ?);`,
		day.Format(dateLayout), text, now.Format(time.RFC3339))
	if err != nil {
		return Note{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Note{}, err
	}
	return Note{ID: int(id), Date: day, Text: text, CreatedAt: now.Truncate(time.Second)}, nil
}

func (s *Store) NotesOn(date time.Time) ([]Note, error) {
	rows, err := s.db.Query(`SELECT id, day, body, created_at FROM notes WHERE day = ? ORDER BY id;`,
		calendar.Day(date).Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		var dayStr, createdStr string
		if err := rows.Scan(&n.ID, &dayStr, &n.Text, &createdStr); err != nil {
			return nil, err
		}
		if parsed, err := time.Parse(dateLayout, dayStr); err == nil {
			n.Date = parsed
		}
		if created, err := time.Parse(time.RFC3339, createdStr); err == nil {
			n.CreatedAt = created
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// MarkedDays returns the day numbers of m that carry at least one note.
func (s *Store) MarkedDays(m calendar.MonthRef) (map[int]bool, error) {
	rows, err := s.db.Query(`SELECT DISTINCT day FROM notes WHERE day LIKE ?;`, m.String()+"-%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marked := map[int]bool{}
	for rows.Next() {
		var dayStr string
		if err := rows.Scan(&dayStr); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(dateLayout, dayStr)
		if err != nil {
			continue
		}
		marked[parsed.Day()] = true
	}
	return marked, rows.Err()
}

func (s *Store) DeleteNote(id int) error {
	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNoteNotFound, id)
	}
	return nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
