package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/andreevsm/hackhub/internal/auth"
	"github.com/andreevsm/hackhub/internal/model"
	"github.com/andreevsm/hackhub/internal/policy"
	"github.com/andreevsm/hackhub/internal/service"
	"github.com/andreevsm/hackhub/pkg/logger"
)

type Handler struct {
	team     *service.TeamService
	project  *service.ProjectService
	judging  *service.JudgingService
	admin    *service.AdminService
	profiles *service.ProfileService

	policy *policy.Engine
	tokens *auth.Tokens

	healthChecker HealthChecker

	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithTeamService(team *service.TeamService) *Handler {
	h.team = team
	return h
}

func (h *Handler) WithProjectService(project *service.ProjectService) *Handler {
	h.project = project
	return h
}

func (h *Handler) WithJudgingService(judging *service.JudgingService) *Handler {
	h.judging = judging
	return h
}

func (h *Handler) WithAdminService(admin *service.AdminService) *Handler {
	h.admin = admin
	return h
}

func (h *Handler) WithProfileService(profiles *service.ProfileService) *Handler {
	h.profiles = profiles
	return h
}

func (h *Handler) WithPolicyEngine(engine *policy.Engine) *Handler {
	h.policy = engine
	return h
}

func (h *Handler) WithTokens(tokens *auth.Tokens) *Handler {
	h.tokens = tokens
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.Use(middleware.RequestID())
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(ActorResolverMiddleware(h.tokens))

	e.GET("/health", h.healthChecker.HealthCheck())
	e.GET("/faq", h.GetFAQ)

	e.POST("/auth/token", h.SignIn)

	e.GET("/teams", h.ListTeams)
	e.POST("/teams", h.CreateTeam)
	e.GET("/teams/:id", h.GetTeam)
	e.PATCH("/teams/:id", h.EditTeam)
	e.POST("/teams/:id/join", h.JoinTeam)
	e.POST("/teams/:id/members/:actorID/approve", h.ApproveMember)
	e.DELETE("/teams/:id/members/:actorID", h.RemoveMember)

	e.GET("/projects", h.ListProjects)
	e.POST("/projects", h.SubmitProject)
	e.GET("/projects/:id/scores", h.ListScores)
	e.POST("/projects/:id/scores", h.SubmitScore)

	adminGroup := e.Group("/admin", h.RequireAction(policy.ActionAdminAny))

	adminGroup.POST("/hackathons", h.CreateHackathon)
	adminGroup.PATCH("/hackathons/:id", h.SetHackathonActive)
	adminGroup.POST("/profiles/:actorID/admin", h.SetAdmin)
	adminGroup.POST("/teams/:id/leader", h.ReassignLeader)
	adminGroup.POST("/teams/:id/members", h.AddMember)
	adminGroup.POST("/judges", h.AppointJudge)
}

func (h *Handler) SignIn(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("signing in", zap.String("email", req.Email))

	profile, err := h.profiles.EnsureProfile(e.Request().Context(), req.Email)
	if err != nil {
		l.Error("failed to ensure profile", zap.String("email", req.Email), zap.Any("error", err))
		return h.transportError(e, err)
	}

	token, tokenErr := h.tokens.Generate(profile.ActorID, profile.Email)
	if tokenErr != nil {
		l.Error("failed to generate token", zap.Error(tokenErr))
		return h.transportError(e, service.NewError(service.ErrorCodeUnspecified, "failed to generate token"))
	}

	e.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	response := struct {
		Token   string `json:"token"`
		ActorID string `json:"actor_id"`
	}{Token: token, ActorID: profile.ActorID}

	return e.JSON(http.StatusOK, response)
}

func (h *Handler) GetFAQ(e echo.Context) error {
	if _, err := h.authorize(e, policy.ActionFAQRead, policy.Resource{}); err != nil {
		return h.transportError(e, err)
	}

	type entry struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}

	return e.JSON(http.StatusOK, []entry{
		{
			Question: "Who can participate?",
			Answer:   "Anyone signing in with an allow-listed email domain.",
		},
		{
			Question: "How do I join a team?",
			Answer:   "File a join request on the team page; a team leader approves it.",
		},
		{
			Question: "How is judging done?",
			Answer:   "Appointed judges score each submitted project per criteria from 0 to 10.",
		},
	})
}

func (h *Handler) ListTeams(e echo.Context) error {
	if _, err := h.authorize(e, policy.ActionTeamList, policy.Resource{}); err != nil {
		return h.transportError(e, err)
	}

	teams, err := h.team.ListTeams(e.Request().Context())
	if err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, teams)
}

func (h *Handler) CreateTeam(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	actor, authErr := h.authorize(e, policy.ActionTeamCreate, policy.Resource{})
	if authErr != nil {
		return h.transportError(e, authErr)
	}

	var req struct {
		Name string `json:"team_name" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("creating team", zap.String("team_name", req.Name), zap.String("actor_id", actor.ID))

	team, err := h.team.CreateTeam(e.Request().Context(), actor.ID, req.Name)
	if err != nil {
		l.Error("failed to create team", zap.String("team_name", req.Name), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, team)
}

func (h *Handler) GetTeam(e echo.Context) error {
	teamID := e.Param("id")

	if _, err := h.authorize(e, policy.ActionTeamRead, policy.Resource{TeamID: teamID}); err != nil {
		return h.transportError(e, err)
	}

	team, err := h.team.GetTeam(e.Request().Context(), teamID)
	if err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, team)
}

func (h *Handler) EditTeam(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	teamID := e.Param("id")

	if _, err := h.authorize(e, policy.ActionTeamEdit, policy.Resource{TeamID: teamID}); err != nil {
		return h.transportError(e, err)
	}

	var req struct {
		Name              *string `json:"team_name"`
		LookingForMembers *bool   `json:"looking_for_members"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("editing team", zap.String("team_id", teamID))

	team, err := h.team.EditTeam(e.Request().Context(), teamID, req.Name, req.LookingForMembers)
	if err != nil {
		l.Error("failed to edit team", zap.String("team_id", teamID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, team)
}

func (h *Handler) JoinTeam(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	teamID := e.Param("id")

	actor, authErr := h.authorize(e, policy.ActionTeamJoin, policy.Resource{TeamID: teamID})
	if authErr != nil {
		return h.transportError(e, authErr)
	}

	l.Info("join request", zap.String("team_id", teamID), zap.String("actor_id", actor.ID))

	if err := h.team.JoinTeam(e.Request().Context(), teamID, actor.ID); err != nil {
		l.Error("failed to join team", zap.String("team_id", teamID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.NoContent(http.StatusCreated)
}

func (h *Handler) ApproveMember(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	teamID := e.Param("id")
	actorID := e.Param("actorID")

	if _, err := h.authorize(e, policy.ActionTeamManageMembers, policy.Resource{TeamID: teamID}); err != nil {
		return h.transportError(e, err)
	}

	l.Info("approving member", zap.String("team_id", teamID), zap.String("actor_id", actorID))

	if err := h.team.ApproveMember(e.Request().Context(), teamID, actorID); err != nil {
		l.Error("failed to approve member", zap.String("team_id", teamID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.NoContent(http.StatusOK)
}

func (h *Handler) RemoveMember(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	teamID := e.Param("id")
	actorID := e.Param("actorID")

	if _, err := h.authorize(e, policy.ActionTeamManageMembers, policy.Resource{TeamID: teamID}); err != nil {
		return h.transportError(e, err)
	}

	l.Info("removing member", zap.String("team_id", teamID), zap.String("actor_id", actorID))

	if err := h.team.RemoveMember(e.Request().Context(), teamID, actorID); err != nil {
		l.Error("failed to remove member", zap.String("team_id", teamID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.NoContent(http.StatusOK)
}

func (h *Handler) ListProjects(e echo.Context) error {
	if _, err := h.authorize(e, policy.ActionProjectList, policy.Resource{}); err != nil {
		return h.transportError(e, err)
	}

	projects, err := h.project.ListProjects(e.Request().Context())
	if err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, projects)
}

func (h *Handler) SubmitProject(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req struct {
		TeamID      string `json:"team_id" validate:"required"`
		Name        string `json:"project_name" validate:"required"`
		Description string `json:"description"`
		RepoURL     string `json:"repo_url"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	// Submitting on behalf of a team is a leader action on that team.
	if _, err := h.authorize(e, policy.ActionTeamEdit, policy.Resource{TeamID: req.TeamID}); err != nil {
		return h.transportError(e, err)
	}

	l.Info("submitting project",
		zap.String("team_id", req.TeamID),
		zap.String("project_name", req.Name))

	project, err := h.project.SubmitProject(e.Request().Context(), &model.Project{
		TeamID:      req.TeamID,
		Name:        req.Name,
		Description: req.Description,
		RepoURL:     req.RepoURL,
	})
	if err != nil {
		l.Error("failed to submit project", zap.String("team_id", req.TeamID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, project)
}

func (h *Handler) SubmitScore(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	projectID := e.Param("id")

	// The judge role is scoped to the project's hackathon, so the project
	// is fetched before the policy decision.
	project, err := h.project.GetProject(e.Request().Context(), projectID)
	if err != nil {
		return h.transportError(e, err)
	}

	actor, authErr := h.authorize(e, policy.ActionJudgingSubmit, policy.Resource{HackathonID: project.HackathonID})
	if authErr != nil {
		return h.transportError(e, authErr)
	}

	var req struct {
		Criteria string `json:"criteria" validate:"required"`
		Value    int    `json:"value" validate:"min=0,max=10"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("submitting score",
		zap.String("project_id", projectID),
		zap.String("judge_id", actor.ID),
		zap.String("criteria", req.Criteria))

	if err := h.judging.SubmitScore(e.Request().Context(), &model.Score{
		ProjectID: projectID,
		JudgeID:   actor.ID,
		Criteria:  req.Criteria,
		Value:     req.Value,
	}); err != nil {
		l.Error("failed to submit score", zap.String("project_id", projectID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.NoContent(http.StatusCreated)
}

func (h *Handler) ListScores(e echo.Context) error {
	projectID := e.Param("id")

	project, err := h.project.GetProject(e.Request().Context(), projectID)
	if err != nil {
		return h.transportError(e, err)
	}

	// Scores are visible to the hackathon's judges and to admins.
	res := policy.Resource{HackathonID: project.HackathonID}
	if _, err := h.authorizeAny(e, res, policy.ActionJudgingSubmit, policy.ActionAdminAny); err != nil {
		return h.transportError(e, err)
	}

	scores, err := h.judging.ListScores(e.Request().Context(), projectID)
	if err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, scores)
}

func (h *Handler) CreateHackathon(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("creating hackathon", zap.String("name", req.Name))

	hackathon, err := h.admin.CreateHackathon(e.Request().Context(), req.Name)
	if err != nil {
		l.Error("failed to create hackathon", zap.String("name", req.Name), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, hackathon)
}

func (h *Handler) SetHackathonActive(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	hackathonID := e.Param("id")

	var req struct {
		IsActive bool `json:"is_active"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("updating hackathon",
		zap.String("hackathon_id", hackathonID),
		zap.Bool("is_active", req.IsActive))

	hackathon, err := h.admin.SetHackathonActive(e.Request().Context(), hackathonID, req.IsActive)
	if err != nil {
		l.Error("failed to update hackathon", zap.String("hackathon_id", hackathonID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, hackathon)
}

func (h *Handler) SetAdmin(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	actorID := e.Param("actorID")

	var req struct {
		IsAdmin bool `json:"is_admin"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("setting admin flag",
		zap.String("actor_id", actorID),
		zap.Bool("is_admin", req.IsAdmin))

	profile, err := h.admin.SetAdmin(e.Request().Context(), actorID, req.IsAdmin)
	if err != nil {
		l.Error("failed to set admin flag", zap.String("actor_id", actorID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, profile)
}

func (h *Handler) ReassignLeader(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	teamID := e.Param("id")

	var req struct {
		ActorID string `json:"actor_id" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("reassigning team leader",
		zap.String("team_id", teamID),
		zap.String("actor_id", req.ActorID))

	if err := h.admin.ReassignLeader(e.Request().Context(), teamID, req.ActorID); err != nil {
		l.Error("failed to reassign leader",
			zap.String("team_id", teamID),
			zap.String("actor_id", req.ActorID),
			zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.NoContent(http.StatusOK)
}

func (h *Handler) AddMember(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	teamID := e.Param("id")

	var req struct {
		ActorID string `json:"actor_id" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("adding member", zap.String("team_id", teamID), zap.String("actor_id", req.ActorID))

	if err := h.admin.AddMember(e.Request().Context(), teamID, req.ActorID); err != nil {
		l.Error("failed to add member", zap.String("team_id", teamID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.NoContent(http.StatusCreated)
}

func (h *Handler) AppointJudge(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req struct {
		ActorID     string `json:"actor_id" validate:"required"`
		HackathonID string `json:"hackathon_id" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("appointing judge",
		zap.String("actor_id", req.ActorID),
		zap.String("hackathon_id", req.HackathonID))

	if err := h.admin.AppointJudge(e.Request().Context(), req.ActorID, req.HackathonID); err != nil {
		l.Error("failed to appoint judge", zap.String("actor_id", req.ActorID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.NoContent(http.StatusCreated)
}

func (h *Handler) decodeRequest(e echo.Context, req any) *service.Error {
	if err := e.Bind(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "invalid request body")
	}

	if err := e.Validate(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, errors.Wrap(err, "request validation failed").Error())
	}
	return nil
}

func (h *Handler) transportError(e echo.Context, err *service.Error) error {
	response := struct {
		Error *service.Error `json:"error"`
	}{Error: err}

	switch err.Code {
	case service.ErrorCodeNotFound:
		return e.JSON(http.StatusNotFound, response)
	case service.ErrorCodeInvalidBody:
		return e.JSON(http.StatusBadRequest, response)
	case service.ErrorCodeAuthRequired:
		return e.JSON(http.StatusUnauthorized, response)
	case service.ErrorCodeForbidden, service.ErrorCodeUnauthorizedDomain:
		return e.JSON(http.StatusForbidden, response)
	case service.ErrorCodeAlreadyExists, service.ErrorCodeNoActiveHackathon, service.ErrorCodeMemberNotApproved:
		return e.JSON(http.StatusConflict, response)
	default:
		return e.JSON(http.StatusInternalServerError, response)
	}
}
