package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"rateorder/app"
	"rateorder/internal"
	"rateorder/internal/errors"
	"rateorder/internal/input"
	"rateorder/internal/report"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// ReportApp serves the HTML report page
type ReportApp struct {
	router    *chi.Mux
	service   *app.AnalysisService
	templates *template.Template
	logger    *internal.Logger
}

// reportPage is the data for templates/report.html
type reportPage struct {
	TimeInput          string
	ConcentrationInput string
	Error              string
	AnalysisID         string
	Report             template.HTML
}

// NewReportApp creates the report page application
func NewReportApp(service *app.AnalysisService) (*ReportApp, error) {
	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &ReportApp{
		router:    chi.NewRouter(),
		service:   service,
		templates: templates,
		logger:    internal.DefaultLogger.WithPrefix("ReportApp"),
	}

	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.NoCache)
	a.router.Get("/report", a.handleForm)
	a.router.Post("/report", a.handleReport)

	return a, nil
}

// ServeHTTP implements http.Handler
func (a *ReportApp) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *ReportApp) handleForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, reportPage{})
}

func (a *ReportApp) handleReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.render(w, http.StatusBadRequest, reportPage{Error: "Input error: " + err.Error()})
		return
	}

	page := reportPage{
		TimeInput:          r.PostForm.Get("time"),
		ConcentrationInput: r.PostForm.Get("concentration"),
	}

	series, err := input.ParseSeries(page.TimeInput, page.ConcentrationInput)
	if err != nil {
		page.Error = "Input error: " + err.Error()
		a.render(w, http.StatusBadRequest, page)
		return
	}

	rep, err := a.service.Analyze(r.Context(), series)
	if err != nil {
		page.Error = "Error during analysis: " + err.Error()
		a.render(w, errors.HTTPStatus(errors.CodeFor(err)), page)
		return
	}

	page.AnalysisID = rep.ID.String()
	page.Report = template.HTML(report.HTML(rep.Summary))
	a.render(w, http.StatusOK, page)
}

func (a *ReportApp) render(w http.ResponseWriter, status int, page reportPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.templates.ExecuteTemplate(w, "report.html", page); err != nil {
		a.logger.Error("render report page: %v", err)
	}
}
