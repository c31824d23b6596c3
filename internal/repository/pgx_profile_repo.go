package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/andreevsm/hackhub/internal/db"
)

type Profile struct {
	ActorID string `db:"actor_id"`
	Email   string `db:"email"`
	IsAdmin bool   `db:"is_admin"`
}

type ProfileRepository interface {
	Get(ctx context.Context, actorID string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
	SetAdmin(ctx context.Context, actorID string, isAdmin bool) (*Profile, error)
}

type pgxProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgxProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &pgxProfileRepository{pool: pool}
}

func (p *pgxProfileRepository) Get(ctx context.Context, actorID string) (*Profile, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("actor_id", "email", "is_admin"),
		sm.From("profiles"),
		sm.Where(psql.Quote("actor_id").EQ(psql.Arg(actorID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	profile := &Profile{}
	if err = e.QueryRow(ctx, sql, args...).Scan(&profile.ActorID, &profile.Email, &profile.IsAdmin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (p *pgxProfileRepository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("actor_id", "email", "is_admin"),
		sm.From("profiles"),
		sm.Where(psql.Quote("email").EQ(psql.Arg(email))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	profile := &Profile{}
	if err = e.QueryRow(ctx, sql, args...).Scan(&profile.ActorID, &profile.Email, &profile.IsAdmin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (p *pgxProfileRepository) Upsert(ctx context.Context, profile *Profile) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("profiles", "actor_id", "email", "is_admin"),
		im.Values(psql.Arg(profile.ActorID), psql.Arg(profile.Email), psql.Arg(profile.IsAdmin)),
		im.OnConflict(psql.Quote("actor_id")).DoUpdate(
			im.SetCol("email").ToArg(profile.Email),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	if _, err = e.Exec(ctx, sql, args...); err != nil {
		return err
	}

	return nil
}

func (p *pgxProfileRepository) SetAdmin(ctx context.Context, actorID string, isAdmin bool) (*Profile, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Update(
		um.Table("profiles"),
		um.SetCol("is_admin").ToArg(isAdmin),
		um.Where(psql.Quote("actor_id").EQ(psql.Arg(actorID))),
		um.Returning("actor_id", "email", "is_admin"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	profile := &Profile{}
	if err = e.QueryRow(ctx, sql, args...).Scan(&profile.ActorID, &profile.Email, &profile.IsAdmin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return profile, nil
}
