package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/peerclass/peerclass/core"
	"github.com/peerclass/peerclass/core/completion"
	"github.com/peerclass/peerclass/core/progress"
	"github.com/peerclass/peerclass/core/task"
	restapi "github.com/peerclass/peerclass/storage/rest"
)

type boardApi struct {
	sessions *SessionManager
	validate *validator.Validate
}

func registerBoardAPI(g *echo.Group, auth echo.MiddlewareFunc, sessions *SessionManager, validate *validator.Validate) {
	api := boardApi{sessions: sessions, validate: validate}

	// un-authed endpoints
	g.POST("/login", api.login)

	// authed endpoints
	ag := g.Group("", auth)
	ag.POST("/logout", api.logout)
	ag.GET("/users/me", api.me)
	ag.GET("/categories", api.categoryQuery)
	ag.GET("/courses", api.courseQuery)
	ag.GET("/board/tasks", api.boardTasks)
	ag.GET("/board/reviews", api.boardReviews)
	ag.GET("/board/progress", api.boardProgress)
	ag.POST("/board/refresh", api.boardRefresh)
	ag.POST("/tasks/:id/complete", api.taskComplete)
	ag.POST("/completions/:id/approve", api.completionApprove)
}

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string      `json:"token"`
		User  interface{} `json:"user"`
	}
)

func (r *LoginRequest) Validate(validate *validator.Validate) error {
	r.Username = core.CleanString(r.Username, true)
	return validate.Struct(r)
}

// Handlers

func (api *boardApi) login(ctx echo.Context) error {
	data := new(LoginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess, token, err := api.sessions.Open(ctx.Request().Context(), data.Username, data.Password)
	if err != nil {
		if errors.Is(err, restapi.ErrUnauthorized) {
			return errAuthenticationFailed
		}
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: sess.Workspace.User})
}

func (api *boardApi) logout(ctx echo.Context) error {
	api.sessions.Close(bearerToken(ctx))
	return ctx.NoContent(http.StatusNoContent)
}

func (api *boardApi) me(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess.Workspace.User)
}

func (api *boardApi) categoryQuery(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess.Workspace.Categories.List())
}

func (api *boardApi) courseQuery(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	if term := ctx.QueryParam("search"); term != "" {
		return ctx.JSON(http.StatusOK, sess.Workspace.Courses.Search(term))
	}
	return ctx.JSON(http.StatusOK, sess.Workspace.Courses.List())
}

// boardTasks returns the acting user's tasks. With a `status` query
// param only that bucket is returned; without it all three buckets are
// returned keyed by status.
func (api *boardApi) boardTasks(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}

	if raw := ctx.QueryParam("status"); raw != "" {
		status := progress.Status(raw)
		if !status.Valid() {
			return core.NewValidationError(nil, core.FieldError{Field: "status", Error: "invalid status"})
		}
		return ctx.JSON(http.StatusOK, sess.Workspace.StudentTasks(status))
	}

	buckets := make(map[progress.Status][]progress.StudentTask, len(progress.Statuses))
	for _, status := range progress.Statuses {
		buckets[status] = sess.Workspace.StudentTasks(status)
	}
	return ctx.JSON(http.StatusOK, buckets)
}

func (api *boardApi) boardReviews(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess.Workspace.ReviewTasks())
}

func (api *boardApi) boardProgress(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess.Workspace.CourseProgress())
}

func (api *boardApi) boardRefresh(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	if err := sess.Workspace.RefreshAll(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *boardApi) taskComplete(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	switch err := sess.Workspace.Complete(ctx.Request().Context(), id); err {
	case nil:
		return ctx.NoContent(http.StatusNoContent)
	case task.ErrNotFound:
		return errHttpNotFound
	case completion.ErrNotEnrolled:
		return core.NewValidationError(err)
	case completion.ErrSubmissionInFlight:
		return errHttpConflict
	default:
		return err
	}
}

func (api *boardApi) completionApprove(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	switch err := sess.Workspace.Approve(ctx.Request().Context(), id); err {
	case nil:
		return ctx.NoContent(http.StatusNoContent)
	case completion.ErrNotFound:
		return errHttpNotFound
	default:
		return err
	}
}

func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}
