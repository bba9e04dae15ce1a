package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guild-hub/guild-hub/internal/domain/member"
)

// MemberRepository implements member.Repository.
type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

func (r *MemberRepository) Create(ctx context.Context, m *member.Member) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO guild_members (user_id, username, xp, level, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, m.UserID, m.Username, m.XP, m.Level, m.Status, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
}

func (r *MemberRepository) GetByUserID(ctx context.Context, userID string) (*member.Member, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, username, xp, level, status, created_at, updated_at
		FROM guild_members WHERE user_id=$1
	`, userID)
	return scanMember(row)
}

func (r *MemberRepository) List(ctx context.Context, limit, offset int) ([]*member.Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, username, xp, level, status, created_at, updated_at
		FROM guild_members ORDER BY xp DESC, user_id ASC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*member.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MemberRepository) AddXP(ctx context.Context, userID string, delta int64, level int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE guild_members
		SET xp = xp + $2, level = $3, updated_at = NOW()
		WHERE user_id=$1
	`, userID, delta, level)
	return err
}

func (r *MemberRepository) UpdateStatus(ctx context.Context, userID string, status member.Status) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE guild_members SET status=$2, updated_at=NOW() WHERE user_id=$1
	`, userID, status)
	return err
}

func scanMember(row rowScanner) (*member.Member, error) {
	var m member.Member
	err := row.Scan(&m.ID, &m.UserID, &m.Username, &m.XP, &m.Level, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
