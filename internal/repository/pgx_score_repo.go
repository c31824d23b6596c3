package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"

	"github.com/andreevsm/hackhub/internal/db"
)

type Score struct {
	ProjectID string `db:"project_id"`
	JudgeID   string `db:"judge_id"`
	Criteria  string `db:"criteria"`
	Value     int    `db:"value"`
}

type ScoreRepository interface {
	Upsert(ctx context.Context, score *Score) error
	ListByProject(ctx context.Context, projectID string) ([]*Score, error)
}

type pgxScoreRepository struct {
	pool *pgxpool.Pool
}

func NewPgxScoreRepository(pool *pgxpool.Pool) ScoreRepository {
	return &pgxScoreRepository{pool: pool}
}

// Upsert keeps one score per (project, judge, criteria); resubmission
// overwrites the previous value.
func (p *pgxScoreRepository) Upsert(ctx context.Context, score *Score) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("scores", "project_id", "judge_id", "criteria", "value"),
		im.Values(
			psql.Arg(score.ProjectID),
			psql.Arg(score.JudgeID),
			psql.Arg(score.Criteria),
			psql.Arg(score.Value),
		),
		im.OnConflict(
			psql.Quote("project_id"),
			psql.Quote("judge_id"),
			psql.Quote("criteria"),
		).DoUpdate(
			im.SetCol("value").ToArg(score.Value),
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

func (p *pgxScoreRepository) ListByProject(ctx context.Context, projectID string) ([]*Score, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("project_id", "judge_id", "criteria", "value"),
		sm.From("scores"),
		sm.Where(psql.Quote("project_id").EQ(psql.Arg(projectID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Score, error) {
		score := &Score{}
		if err = row.Scan(&score.ProjectID, &score.JudgeID, &score.Criteria, &score.Value); err != nil {
			return nil, err
		}
		return score, nil
	})
	if err != nil {
		return nil, err
	}

	return scores, nil
}
