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

type Project struct {
	ID          string `db:"id"`
	TeamID      string `db:"team_id"`
	HackathonID string `db:"hackathon_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	RepoURL     string `db:"repo_url"`
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, hackathonID string) ([]*Project, error)
}

type pgxProjectRepository struct {
	pool *pgxpool.Pool
}

func NewPgxProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &pgxProjectRepository{pool: pool}
}

func (p *pgxProjectRepository) Create(ctx context.Context, project *Project) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("projects", "id", "team_id", "hackathon_id", "name", "description", "repo_url"),
		im.Values(
			psql.Arg(project.ID),
			psql.Arg(project.TeamID),
			psql.Arg(project.HackathonID),
			psql.Arg(project.Name),
			psql.Arg(project.Description),
			psql.Arg(project.RepoURL),
		),
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

func (p *pgxProjectRepository) Get(ctx context.Context, id string) (*Project, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "team_id", "hackathon_id", "name", "description", "repo_url"),
		sm.From("projects"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	project := &Project{}
	if err = e.QueryRow(ctx, sql, args...).Scan(
		&project.ID,
		&project.TeamID,
		&project.HackathonID,
		&project.Name,
		&project.Description,
		&project.RepoURL,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

func (p *pgxProjectRepository) List(ctx context.Context, hackathonID string) ([]*Project, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "team_id", "hackathon_id", "name", "description", "repo_url"),
		sm.From("projects"),
		sm.Where(psql.Quote("hackathon_id").EQ(psql.Arg(hackathonID))),
		sm.OrderBy("name"),
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

	projects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Project, error) {
		project := &Project{}
		if err = row.Scan(
			&project.ID,
			&project.TeamID,
			&project.HackathonID,
			&project.Name,
			&project.Description,
			&project.RepoURL,
		); err != nil {
			return nil, err
		}
		return project, nil
	})
	if err != nil {
		return nil, err
	}

	return projects, nil
}
