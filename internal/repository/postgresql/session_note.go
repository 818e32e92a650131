package postgresql

import (
	"context"
	"fmt"

	"github.com/clockwise-org/planning-service-go/internal/domain/worksession"
	"github.com/clockwise-org/planning-service-go/internal/pkg/database"
)

type sessionNoteRepository struct {
	db *database.DB
}

func NewSessionNoteRepository(db *database.DB) worksession.SessionNoteRepository {
	return &sessionNoteRepository{db: db}
}

// Upsert implements worksession.SessionNoteRepository. At most one note
// exists per work session; repeated writes overwrite the content.
func (r *sessionNoteRepository) Upsert(ctx context.Context, n worksession.SessionNote) (worksession.SessionNote, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO session_notes (work_session_id, note)
		VALUES ($1, $2)
		ON CONFLICT (work_session_id)
		DO UPDATE SET note = EXCLUDED.note, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, n.WorkSessionID, n.Note).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return worksession.SessionNote{}, fmt.Errorf("failed to upsert session note: %w", err)
	}

	return n, nil
}

// GetByWorkSessionID implements worksession.SessionNoteRepository.
func (r *sessionNoteRepository) GetByWorkSessionID(ctx context.Context, workSessionID string) (worksession.SessionNote, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, work_session_id, note, created_at, updated_at
		FROM session_notes
		WHERE work_session_id = $1
	`

	var n worksession.SessionNote
	err := q.QueryRow(ctx, query, workSessionID).Scan(
		&n.ID, &n.WorkSessionID, &n.Note, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return worksession.SessionNote{}, err
	}

	return n, nil
}

// DeleteByWorkSessionID implements worksession.SessionNoteRepository.
func (r *sessionNoteRepository) DeleteByWorkSessionID(ctx context.Context, workSessionID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM session_notes WHERE work_session_id = $1`, workSessionID); err != nil {
		return fmt.Errorf("failed to delete session note: %w", err)
	}

	return nil
}
