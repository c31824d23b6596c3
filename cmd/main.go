package main

import (
	"context"

	"github.com/hellofresh/health-go/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/andreevsm/hackhub/internal/api"
	"github.com/andreevsm/hackhub/internal/auth"
	"github.com/andreevsm/hackhub/internal/config"
	"github.com/andreevsm/hackhub/internal/db"
	"github.com/andreevsm/hackhub/internal/policy"
	"github.com/andreevsm/hackhub/internal/repository"
	"github.com/andreevsm/hackhub/internal/service"
	"github.com/andreevsm/hackhub/pkg/logger"
)

func main() {
	logger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err = pool.Ping(context.Background()); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	logger.Info("database connection established")

	transactor := db.NewPgxTransactor(pool)

	profileRepo := repository.NewPgxProfileRepository(pool)
	hackathonRepo := repository.NewPgxHackathonRepository(pool)
	teamRepo := repository.NewPgxTeamRepository(pool)
	membershipRepo := repository.NewPgxMembershipRepository(pool)
	judgeRepo := repository.NewPgxJudgeRepository(pool)
	projectRepo := repository.NewPgxProjectRepository(pool)
	scoreRepo := repository.NewPgxScoreRepository(pool)

	team := service.NewTeamService(transactor).
		WithTeamRepo(teamRepo).
		WithMembershipRepo(membershipRepo).
		WithHackathonRepo(hackathonRepo)
	project := service.NewProjectService().
		WithTeamRepo(teamRepo).
		WithProjectRepo(projectRepo).
		WithHackathonRepo(hackathonRepo)
	judging := service.NewJudgingService().
		WithProjectRepo(projectRepo).
		WithScoreRepo(scoreRepo)
	admin := service.NewAdminService(transactor).
		WithProfileRepo(profileRepo).
		WithHackathonRepo(hackathonRepo).
		WithMembershipRepo(membershipRepo).
		WithJudgeRepo(judgeRepo)
	profiles := service.NewProfileService().
		WithProfileRepo(profileRepo)

	allowList := policy.NewAllowList(cfg.AllowedDomains)
	roles := policy.NewRoleLookup(profileRepo, membershipRepo, judgeRepo)
	engine := policy.NewEngine(allowList, roles)

	tokens := auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL)

	healthChecker := api.MustNewHealthChecker(health.Config{
		Name: "postgres",
		Check: func(ctx context.Context) error {
			return pool.Ping(ctx)
		},
	})

	e := echo.New()

	handler := api.NewHandler(logger).
		WithHealthChecker(healthChecker).
		WithTeamService(team).
		WithProjectService(project).
		WithJudgingService(judging).
		WithAdminService(admin).
		WithProfileService(profiles).
		WithPolicyEngine(engine).
		WithTokens(tokens)

	handler.RegisterRoutes(e)

	logger.Info("server starting", zap.String("addr", cfg.HTTPAddr))
	if err = e.Start(cfg.HTTPAddr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
