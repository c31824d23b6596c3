package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/andreevsm/hackhub/internal/db"
)

type Membership struct {
	TeamID     string `db:"team_id"`
	ActorID    string `db:"actor_id"`
	IsLeader   bool   `db:"is_leader"`
	IsApproved bool   `db:"is_approved"`
}

// TeamMemberRow is a membership joined with the member's profile.
type TeamMemberRow struct {
	ActorID    string `db:"actor_id"`
	Email      string `db:"email"`
	IsLeader   bool   `db:"is_leader"`
	IsApproved bool   `db:"is_approved"`
}

type MembershipRepository interface {
	Create(ctx context.Context, membership *Membership) error
	Get(ctx context.Context, teamID, actorID string) (*Membership, error)
	ListByTeam(ctx context.Context, teamID string) ([]*TeamMemberRow, error)
	Approve(ctx context.Context, teamID, actorID string) error
	Delete(ctx context.Context, teamID, actorID string) error
	DemoteLeaders(ctx context.Context, teamID string) error
	Promote(ctx context.Context, teamID, actorID string) error
}

type pgxMembershipRepository struct {
	pool *pgxpool.Pool
}

func NewPgxMembershipRepository(pool *pgxpool.Pool) MembershipRepository {
	return &pgxMembershipRepository{pool: pool}
}

func (p *pgxMembershipRepository) Create(ctx context.Context, membership *Membership) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("team_members", "team_id", "actor_id", "is_leader", "is_approved"),
		im.Values(
			psql.Arg(membership.TeamID),
			psql.Arg(membership.ActorID),
			psql.Arg(membership.IsLeader),
			psql.Arg(membership.IsApproved),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	_, err = e.Exec(ctx, sql, args...)

	// One membership row per (team_id, actor_id).
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}

	return err
}

func (p *pgxMembershipRepository) Get(ctx context.Context, teamID, actorID string) (*Membership, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("team_id", "actor_id", "is_leader", "is_approved"),
		sm.From("team_members"),
		sm.Where(
			psql.Quote("team_id").EQ(psql.Arg(teamID)).
				And(psql.Quote("actor_id").EQ(psql.Arg(actorID))),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	m := &Membership{}
	if err = e.QueryRow(ctx, sql, args...).Scan(&m.TeamID, &m.ActorID, &m.IsLeader, &m.IsApproved); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (p *pgxMembershipRepository) ListByTeam(ctx context.Context, teamID string) ([]*TeamMemberRow, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("team_members.actor_id", "profiles.email", "team_members.is_leader", "team_members.is_approved"),
		sm.From("team_members"),
		sm.InnerJoin("profiles").On(psql.Quote("profiles", "actor_id").EQ(psql.Quote("team_members", "actor_id"))),
		sm.Where(psql.Quote("team_members", "team_id").EQ(psql.Arg(teamID))),
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

	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*TeamMemberRow, error) {
		m := &TeamMemberRow{}
		if err = row.Scan(&m.ActorID, &m.Email, &m.IsLeader, &m.IsApproved); err != nil {
			return nil, err
		}
		return m, nil
	})
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (p *pgxMembershipRepository) Approve(ctx context.Context, teamID, actorID string) error {
	return p.setFlag(ctx, "is_approved", true, teamID, actorID)
}

func (p *pgxMembershipRepository) Delete(ctx context.Context, teamID, actorID string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Delete(
		dm.From("team_members"),
		dm.Where(
			psql.Quote("team_id").EQ(psql.Arg(teamID)).
				And(psql.Quote("actor_id").EQ(psql.Arg(actorID))),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	commandTag, err := e.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DemoteLeaders clears is_leader on every current leader of the team. Step 1
// of the leader reassignment; step 2 is Promote.
func (p *pgxMembershipRepository) DemoteLeaders(ctx context.Context, teamID string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Update(
		um.Table("team_members"),
		um.SetCol("is_leader").ToArg(false),
		um.Where(
			psql.Quote("team_id").EQ(psql.Arg(teamID)).
				And(psql.Quote("is_leader").EQ(psql.Arg(true))),
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

func (p *pgxMembershipRepository) Promote(ctx context.Context, teamID, actorID string) error {
	return p.setFlag(ctx, "is_leader", true, teamID, actorID)
}

func (p *pgxMembershipRepository) setFlag(ctx context.Context, column string, value bool, teamID, actorID string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Update(
		um.Table("team_members"),
		um.SetCol(column).ToArg(value),
		um.Where(
			psql.Quote("team_id").EQ(psql.Arg(teamID)).
				And(psql.Quote("actor_id").EQ(psql.Arg(actorID))),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	commandTag, err := e.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
