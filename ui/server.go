package ui

import (
	"bytes"
	"fmt"
	"net/http"

	"rateorder/app"
	"rateorder/domain/kinetics"
	"rateorder/internal"
	"rateorder/internal/errors"
	"rateorder/internal/report"
	"rateorder/ports"
	"rateorder/ui/middleware"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Server exposes the analysis over HTTP
type Server struct {
	router   *gin.Engine
	service  *app.AnalysisService
	exporter ports.ChartExporter
	dataset  ports.SeriesReader
	logger   *internal.Logger
}

// SeriesRequest is the JSON body of the analysis endpoints
type SeriesRequest struct {
	Time          []float64 `json:"time" binding:"required"`
	Concentration []float64 `json:"concentration" binding:"required"`
}

// TransformRequest asks for a single linearization
type TransformRequest struct {
	SeriesRequest
	Order *int `json:"order" binding:"required"`
}

// AnalysisResponse is returned by POST /api/v1/analyze
type AnalysisResponse struct {
	AnalysisID  string         `json:"analysis_id"`
	DatasetHash string         `json:"dataset_hash"`
	Order       int            `json:"order"`
	RSquared    float64        `json:"r_squared"`
	Slope       float64        `json:"slope"`
	Intercept   float64        `json:"intercept"`
	SignFactor  float64        `json:"sign_factor"`
	YLabel      string         `json:"y_label"`
	Y           []float64      `json:"y"`
	FitLine     []float64      `json:"fit_line"`
	Fit         kinetics.Fit   `json:"fit"`
	Summary     report.Summary `json:"summary"`
}

// NewServer creates a new web server instance.
// dataset may be nil when no data file is configured.
func NewServer(service *app.AnalysisService, exporter ports.ChartExporter, dataset ports.SeriesReader) (*Server, error) {
	s := &Server{
		router:   gin.New(),
		service:  service,
		exporter: exporter,
		dataset:  dataset,
		logger:   internal.DefaultLogger.WithPrefix("Server"),
	}
	s.router.Use(middleware.RequestID(), gin.Logger(), gin.Recovery(), middleware.RequestLogger(internal.DefaultLogger))

	reportApp, err := NewReportApp(service)
	if err != nil {
		return nil, err
	}
	s.setupRoutes(reportApp)
	return s, nil
}

func (s *Server) setupRoutes(reportApp http.Handler) {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api/v1")
	api.POST("/analyze", s.handleAnalyze)
	api.POST("/analyze/workbook", s.handleWorkbook)
	api.POST("/transform", s.handleTransform)
	api.GET("/dataset/analyze", s.handleDataset)

	// HTML report page is routed by chi
	s.router.GET("/report", gin.WrapH(reportApp))
	s.router.POST("/report", gin.WrapH(reportApp))
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server on addr
func (s *Server) Start(addr string) error {
	s.logger.Info("listening on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req SeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.ParseError("invalid request body", err))
		return
	}

	rep, err := s.service.Analyze(c.Request.Context(), kinetics.NewSeries(req.Time, req.Concentration))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAnalysisResponse(rep))
}

func (s *Server) handleDataset(c *gin.Context) {
	if s.dataset == nil {
		s.respondError(c, errors.NotFound("configured dataset"))
		return
	}

	rep, err := s.service.AnalyzeFrom(c.Request.Context(), s.dataset)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAnalysisResponse(rep))
}

func newAnalysisResponse(rep *app.AnalysisReport) AnalysisResponse {
	return AnalysisResponse{
		AnalysisID:  rep.ID.String(),
		DatasetHash: rep.DatasetKey.String(),
		Order:       int(rep.Best.Order),
		RSquared:    rep.Best.RSquared,
		Slope:       rep.Best.Slope,
		Intercept:   rep.Best.Intercept,
		SignFactor:  rep.Best.SignFactor,
		YLabel:      rep.Best.YLabel,
		Y:           rep.Best.Y,
		FitLine:     rep.Best.FitLine(rep.Series.Time),
		Fit:         rep.Best.Fit,
		Summary:     rep.Summary,
	}
}

func (s *Server) handleWorkbook(c *gin.Context) {
	var req SeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.ParseError("invalid request body", err))
		return
	}

	rep, err := s.service.Analyze(c.Request.Context(), kinetics.NewSeries(req.Time, req.Concentration))
	if err != nil {
		s.respondError(c, err)
		return
	}

	// buffered so an export failure can still become an error response
	var buf bytes.Buffer
	if err := s.exporter.Export(&buf, rep.Series, rep.Best); err != nil {
		s.respondError(c, errors.Wrapf(err, "workbook export for %s failed", rep.ID))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="rate-order-%s.xlsx"`, rep.ID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) handleTransform(c *gin.Context) {
	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.ParseError("invalid request body", err))
		return
	}

	tr, err := s.service.TransformOnly(kinetics.NewSeries(req.Time, req.Concentration), kinetics.Order(*req.Order))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tr)
}

func (s *Server) respondError(c *gin.Context, err error) {
	code := errors.CodeFor(err)
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
