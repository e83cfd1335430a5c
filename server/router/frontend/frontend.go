// Package frontend serves the statistics pages that embed the chart views.
package frontend

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// View describes one statistics page.
type View struct {
	Name        string
	Description string
}

// Views are the available statistics pages, keyed by URL segment.
var Views = map[string]View{
	"presence_weekday":   {Name: "presence_weekday", Description: "Presence by weekday"},
	"mean_time_weekday":  {Name: "mean_time_weekday", Description: "Presence mean time"},
	"presence_start_end": {Name: "presence_start_end", Description: "Presence start-end"},
	"mean_time_month":    {Name: "mean_time_month", Description: "Presence mean time by month"},
}

// Service renders the statistics pages.
type Service struct {
	tmpl *template.Template
}

// NewService parses the embedded templates.
func NewService() (*Service, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing frontend templates")
	}
	return &Service{tmpl: tmpl}, nil
}

// RegisterRoutes registers the page routes with the given echo instance.
func (s *Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/", s.index)
	e.GET("/statistics/:chosen/", s.statistics)
}

// index redirects to the default statistics page.
func (s *Service) index(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/statistics/presence_weekday/")
}

// statistics renders the chosen statistics page, 404 for unknown views.
func (s *Service) statistics(c echo.Context) error {
	view, ok := Views[c.Param("chosen")]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown statistics view")
	}

	var buf bytes.Buffer
	err := s.tmpl.ExecuteTemplate(&buf, "statistics.html", map[string]any{
		"View":  view,
		"Views": Views,
	})
	if err != nil {
		return errors.Wrap(err, "rendering statistics page")
	}
	return c.HTML(http.StatusOK, buf.String())
}
