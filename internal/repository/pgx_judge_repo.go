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

	"github.com/andreevsm/hackhub/internal/db"
)

type Judge struct {
	ActorID     string `db:"actor_id"`
	HackathonID string `db:"hackathon_id"`
}

type JudgeRepository interface {
	Create(ctx context.Context, judge *Judge) error
	Get(ctx context.Context, actorID, hackathonID string) (*Judge, error)
}

type pgxJudgeRepository struct {
	pool *pgxpool.Pool
}

func NewPgxJudgeRepository(pool *pgxpool.Pool) JudgeRepository {
	return &pgxJudgeRepository{pool: pool}
}

func (p *pgxJudgeRepository) Create(ctx context.Context, judge *Judge) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("judges", "actor_id", "hackathon_id"),
		im.Values(psql.Arg(judge.ActorID), psql.Arg(judge.HackathonID)),
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

func (p *pgxJudgeRepository) Get(ctx context.Context, actorID, hackathonID string) (*Judge, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("actor_id", "hackathon_id"),
		sm.From("judges"),
		sm.Where(
			psql.Quote("actor_id").EQ(psql.Arg(actorID)).
				And(psql.Quote("hackathon_id").EQ(psql.Arg(hackathonID))),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	judge := &Judge{}
	if err = e.QueryRow(ctx, sql, args...).Scan(&judge.ActorID, &judge.HackathonID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return judge, nil
}
