package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fittrack/fittrack/internal/model"
)

// ErrShareNotFound is returned when a share cannot be found.
var ErrShareNotFound = errors.New("challenge share not found")

// ChallengeShareRepo persists share requests and their lifecycle.
type ChallengeShareRepo struct{ db *sql.DB }

func NewChallengeShareRepo(db *sql.DB) *ChallengeShareRepo { return &ChallengeShareRepo{db: db} }

const shareColumns = "id, from_user_id, to_user_id, challenge_id, status, created_at, updated_at"

func scanShare(row interface{ Scan(...any) error }) (*model.ChallengeShare, error) {
	var s model.ChallengeShare
	err := row.Scan(&s.ID, &s.FromUserID, &s.ToUserID, &s.ChallengeID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a PENDING share unless one already exists for the
// same (challenge, recipient) pair. The guard is a single conditional
// INSERT so two concurrent identical requests cannot both succeed;
// the loser observes zero affected rows and gets ErrConflict.
func (r *ChallengeShareRepo) Create(ctx context.Context, fromUserID, toUserID, challengeID uint64) (*model.ChallengeShare, error) {
	const q = `INSERT INTO challenge_shares (from_user_id, to_user_id, challenge_id, status)
		SELECT ?, ?, ?, 'PENDING' FROM DUAL
		WHERE NOT EXISTS (
			SELECT 1 FROM challenge_shares
			WHERE challenge_id = ? AND to_user_id = ? AND status = 'PENDING'
		)`
	res, err := r.db.ExecContext(ctx, q, fromUserID, toUserID, challengeID, challengeID, toUserID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrConflict
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a share by id.
func (r *ChallengeShareRepo) GetByID(ctx context.Context, id uint64) (*model.ChallengeShare, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+shareColumns+" FROM challenge_shares WHERE id=? LIMIT 1", id)
	s, err := scanShare(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShareNotFound
	}
	return s, err
}

// ListReceived returns pending requests addressed to the user, newest first.
func (r *ChallengeShareRepo) ListReceived(ctx context.Context, toUserID uint64) ([]*model.ChallengeShare, error) {
	return r.list(ctx,
		"SELECT "+shareColumns+" FROM challenge_shares WHERE to_user_id=? AND status='PENDING' ORDER BY created_at DESC",
		toUserID)
}

// ListSent returns every request the user has sent, newest first.
func (r *ChallengeShareRepo) ListSent(ctx context.Context, fromUserID uint64) ([]*model.ChallengeShare, error) {
	return r.list(ctx,
		"SELECT "+shareColumns+" FROM challenge_shares WHERE from_user_id=? ORDER BY created_at DESC",
		fromUserID)
}

// ListAccepted returns the shares the user has accepted and may view.
func (r *ChallengeShareRepo) ListAccepted(ctx context.Context, toUserID uint64) ([]*model.ChallengeShare, error) {
	return r.list(ctx,
		"SELECT "+shareColumns+" FROM challenge_shares WHERE to_user_id=? AND status='ACCEPTED' ORDER BY created_at DESC",
		toUserID)
}

func (r *ChallengeShareRepo) list(ctx context.Context, q string, args ...any) ([]*model.ChallengeShare, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.ChallengeShare
	for rows.Next() {
		s, err := scanShare(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetStatus moves a PENDING share to its terminal status. The WHERE
// clause re-checks PENDING so a second concurrent transition loses and
// gets ErrConflict; terminal states are immutable.
func (r *ChallengeShareRepo) SetStatus(ctx context.Context, id uint64, status string) (*model.ChallengeShare, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE challenge_shares SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=? AND status='PENDING'",
		status, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrConflict
	}
	return r.GetByID(ctx, id)
}
