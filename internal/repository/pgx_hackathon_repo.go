package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/andreevsm/hackhub/internal/db"
)

type Hackathon struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

type HackathonRepository interface {
	Create(ctx context.Context, hackathon *Hackathon) error
	Get(ctx context.Context, id string) (*Hackathon, error)
	GetActive(ctx context.Context) (*Hackathon, error)
	SetActive(ctx context.Context, id string, isActive bool) (*Hackathon, error)
}

type pgxHackathonRepository struct {
	pool *pgxpool.Pool
}

func NewPgxHackathonRepository(pool *pgxpool.Pool) HackathonRepository {
	return &pgxHackathonRepository{pool: pool}
}

func (p *pgxHackathonRepository) Create(ctx context.Context, hackathon *Hackathon) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("hackathons", "id", "name", "is_active"),
		im.Values(psql.Arg(hackathon.ID), psql.Arg(hackathon.Name), psql.Arg(hackathon.IsActive)),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	_, err = e.Exec(ctx, sql, args...)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}

	return err
}

func (p *pgxHackathonRepository) Get(ctx context.Context, id string) (*Hackathon, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "name", "is_active"),
		sm.From("hackathons"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	h := &Hackathon{}
	if err = e.QueryRow(ctx, sql, args...).Scan(&h.ID, &h.Name, &h.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (p *pgxHackathonRepository) GetActive(ctx context.Context) (*Hackathon, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "name", "is_active"),
		sm.From("hackathons"),
		sm.Where(psql.Quote("is_active").EQ(psql.Arg(true))),
		sm.Limit(1),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	h := &Hackathon{}
	if err = e.QueryRow(ctx, sql, args...).Scan(&h.ID, &h.Name, &h.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (p *pgxHackathonRepository) SetActive(ctx context.Context, id string, isActive bool) (*Hackathon, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Update(
		um.Table("hackathons"),
		um.SetCol("is_active").ToArg(isActive),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning("id", "name", "is_active"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	h := &Hackathon{}
	if err = e.QueryRow(ctx, sql, args...).Scan(&h.ID, &h.Name, &h.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return h, nil
}
