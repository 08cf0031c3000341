package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"

	"github.com/omzi/memoire/internal/domain"
	"github.com/omzi/memoire/internal/port"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db *sql.DB
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
				"PRAGMA foreign_keys = ON",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

func NewStore(dataDir string) (*Store, error) {
	registerHook()

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "memoire.db"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection: WAL allows concurrent reads but only one writer.
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) GetProject(ctx context.Context, id, userID string) (*domain.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, media_order, frame_rate, aspect_ratio, created_at
		 FROM projects WHERE id = ? AND user_id = ?`, id, userID)

	var p domain.Project
	var orderJSON string
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &orderJSON, &p.FrameRate, &p.AspectRatio, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query project: %w", err)
	}
	if err := json.Unmarshal([]byte(orderJSON), &p.MediaOrder); err != nil {
		return nil, fmt.Errorf("decode media order for project %s: %w", p.ID, err)
	}
	return &p, nil
}

func (s *Store) ListMedia(ctx context.Context, projectID string) ([]domain.MediaItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, source_url, duration, transition
		 FROM media WHERE project_id = ? ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query media: %w", err)
	}
	defer rows.Close()

	var items []domain.MediaItem
	for rows.Next() {
		var m domain.MediaItem
		if err := rows.Scan(&m.ID, &m.Kind, &m.SourceURL, &m.Duration, &m.Transition); err != nil {
			return nil, fmt.Errorf("scan media row: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (s *Store) GetNarration(ctx context.Context, projectID string) (*domain.Narration, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT project_id, transcript, audio_url, voice FROM narrations WHERE project_id = ?`, projectID)

	var n domain.Narration
	err := row.Scan(&n.ProjectID, &n.Transcript, &n.AudioURL, &n.Voice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query narration: %w", err)
	}
	return &n, nil
}

func (s *Store) SaveProject(ctx context.Context, p *domain.Project) error {
	orderJSON, err := json.Marshal(p.MediaOrder)
	if err != nil {
		return fmt.Errorf("encode media order: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO projects (id, user_id, title, media_order, frame_rate, aspect_ratio)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   media_order = excluded.media_order,
		   frame_rate = excluded.frame_rate,
		   aspect_ratio = excluded.aspect_ratio`,
		p.ID, p.UserID, p.Title, string(orderJSON), p.FrameRate, p.AspectRatio)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

func (s *Store) SaveMedia(ctx context.Context, projectID string, m *domain.MediaItem) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO media (id, project_id, kind, source_url, duration, transition)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   kind = excluded.kind,
		   source_url = excluded.source_url,
		   duration = excluded.duration,
		   transition = excluded.transition`,
		m.ID, projectID, string(m.Kind), m.SourceURL, m.Duration, string(m.Transition))
	if err != nil {
		return fmt.Errorf("save media: %w", err)
	}
	return nil
}

func (s *Store) SaveNarration(ctx context.Context, n *domain.Narration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO narrations (project_id, transcript, audio_url, voice)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(project_id) DO UPDATE SET
		   transcript = excluded.transcript,
		   audio_url = excluded.audio_url,
		   voice = excluded.voice,
		   updated_at = CURRENT_TIMESTAMP`,
		n.ProjectID, n.Transcript, n.AudioURL, n.Voice)
	if err != nil {
		return fmt.Errorf("save narration: %w", err)
	}
	return nil
}

var _ port.ProjectStore = (*Store)(nil)
