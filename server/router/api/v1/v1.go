// Package v1 exposes the presence statistics JSON API.
package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/presence-analyzer/internal/profile"
	apperrors "github.com/hrygo/presence-analyzer/internal/errors"
	"github.com/hrygo/presence-analyzer/server/internal/observability"
	"github.com/hrygo/presence-analyzer/server/service/presence"
	"github.com/hrygo/presence-analyzer/store"
)

// APIV1Service wires the presence aggregation service into echo routes.
type APIV1Service struct {
	Profile  *profile.Profile
	Store    *store.Store
	Presence *presence.Service
	Metrics  *observability.Metrics
}

// NewAPIV1Service creates the v1 API service. The metrics collector is
// shared with the request logging middleware.
func NewAPIV1Service(profile *profile.Profile, store *store.Store, metrics *observability.Metrics) *APIV1Service {
	return &APIV1Service{
		Profile:  profile,
		Store:    store,
		Presence: presence.NewService(store),
		Metrics:  metrics,
	}
}

// RegisterRoutes registers the API routes with the given echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.GET("/users", s.listUsers)
	g.GET("/mean_time_weekday/:id", s.meanTimeWeekday)
	g.GET("/presence_weekday/:id", s.presenceWeekday)
	g.GET("/presence_start_end/:id", s.presenceStartEnd)
	g.GET("/mean_time_month/:id", s.meanTimeMonth)
	g.GET("/user_avatar_url/:id", s.userAvatarURL)
	g.GET("/metrics", s.metrics)
}

// listUsers returns every user found in the record source for the dropdown,
// with roster names where available.
func (s *APIV1Service) listUsers(c echo.Context) error {
	users, err := s.Presence.ListUsers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// meanTimeWeekday returns mean presence time of the given user grouped by
// weekday.
func (s *APIV1Service) meanTimeWeekday(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}
	rows, err := s.Presence.MeanTimeWeekday(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// presenceWeekday returns total presence time of the given user grouped by
// weekday, with a header row.
func (s *APIV1Service) presenceWeekday(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}
	rows, err := s.Presence.PresenceWeekday(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// presenceStartEnd returns the mean times the given user has come to and left
// work, per weekday.
func (s *APIV1Service) presenceStartEnd(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}
	result, err := s.Presence.PresenceStartEnd(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// meanTimeMonth returns mean presence time of the given user grouped by
// calendar month.
func (s *APIV1Service) meanTimeMonth(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}
	rows, err := s.Presence.MeanTimeMonth(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// userAvatarURL returns the avatar URL for the given user, 404 when the
// roster has no avatar for the id.
func (s *APIV1Service) userAvatarURL(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return err
	}
	url, err := s.Presence.AvatarURL(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, url)
}

// metrics returns in-process request metrics.
func (s *APIV1Service) metrics(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"request_total":  s.Metrics.RequestTotal(),
		"request_failed": s.Metrics.RequestFailed(),
		"routes":         s.Metrics.Snapshot(),
	})
}

// pathUserID parses the :id path parameter.
func pathUserID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return int32(id), nil
}

// httpError maps domain error codes onto HTTP status codes.
func httpError(err error) error {
	switch apperrors.GetCodeFromError(err, apperrors.ErrCodeSourceUnavailable) {
	case apperrors.ErrCodeUnknownUser, apperrors.ErrCodeRosterMismatch:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperrors.ErrCodeInvalidArgument:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
