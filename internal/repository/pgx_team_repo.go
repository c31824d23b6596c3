package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/andreevsm/hackhub/internal/db"
)

type Team struct {
	ID                string `db:"id"`
	HackathonID       string `db:"hackathon_id"`
	Name              string `db:"name"`
	LookingForMembers bool   `db:"looking_for_members"`
	CreatedBy         string `db:"created_by"`
}

type TeamPatch struct {
	ID                string  `db:"id"`
	Name              *string `db:"name"`
	LookingForMembers *bool   `db:"looking_for_members"`
}

type TeamRepository interface {
	Create(ctx context.Context, team *Team) error
	Get(ctx context.Context, id string) (*Team, error)
	List(ctx context.Context, hackathonID string) ([]*Team, error)
	Patch(ctx context.Context, patch *TeamPatch) (*Team, error)
}

type pgxTeamRepository struct {
	pool *pgxpool.Pool
}

func NewPgxTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &pgxTeamRepository{pool: pool}
}

func (p *pgxTeamRepository) Create(ctx context.Context, team *Team) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("teams", "id", "hackathon_id", "name", "looking_for_members", "created_by"),
		im.Values(
			psql.Arg(team.ID),
			psql.Arg(team.HackathonID),
			psql.Arg(team.Name),
			psql.Arg(team.LookingForMembers),
			psql.Arg(team.CreatedBy),
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

func (p *pgxTeamRepository) Get(ctx context.Context, id string) (*Team, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "hackathon_id", "name", "looking_for_members", "created_by"),
		sm.From("teams"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	team := &Team{}
	if err = e.QueryRow(ctx, sql, args...).Scan(
		&team.ID,
		&team.HackathonID,
		&team.Name,
		&team.LookingForMembers,
		&team.CreatedBy,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return team, nil
}

func (p *pgxTeamRepository) List(ctx context.Context, hackathonID string) ([]*Team, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "hackathon_id", "name", "looking_for_members", "created_by"),
		sm.From("teams"),
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

	teams, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Team, error) {
		team := &Team{}
		if err = row.Scan(
			&team.ID,
			&team.HackathonID,
			&team.Name,
			&team.LookingForMembers,
			&team.CreatedBy,
		); err != nil {
			return nil, err
		}
		return team, nil
	})
	if err != nil {
		return nil, err
	}

	return teams, nil
}

func (p *pgxTeamRepository) Patch(ctx context.Context, patch *TeamPatch) (*Team, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	sets := make([]bob.Mod[*dialect.UpdateQuery], 0, 2)

	if patch.Name != nil {
		sets = append(sets, um.SetCol("name").ToArg(*patch.Name))
	}
	if patch.LookingForMembers != nil {
		sets = append(sets, um.SetCol("looking_for_members").ToArg(*patch.LookingForMembers))
	}

	q := psql.Update(
		um.Table("teams"),
		um.Where(psql.Quote("id").EQ(psql.Arg(patch.ID))),
		um.Returning("id", "hackathon_id", "name", "looking_for_members", "created_by"),
	)

	q.Apply(sets...)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	team := &Team{}
	if err = e.QueryRow(ctx, sql, args...).Scan(
		&team.ID,
		&team.HackathonID,
		&team.Name,
		&team.LookingForMembers,
		&team.CreatedBy,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return team, nil
}
