package http

import (
	"context"
	"errors"
	"io"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kmmndr/motion_analyzer/internal/database"
	"github.com/kmmndr/motion_analyzer/internal/log"
	"github.com/kmmndr/motion_analyzer/internal/metrics"
	"github.com/kmmndr/motion_analyzer/internal/models"
	"github.com/kmmndr/motion_analyzer/internal/motion"
	"github.com/kmmndr/motion_analyzer/internal/outputs"
)

const (
	defaultLimit = 100
	maxLimit     = 1000

	serverErrorMessage = "Server error. Please try again later"
)

// Analyzer runs motion detection over an uploaded video.
type Analyzer interface {
	Analyze(ctx context.Context, r io.Reader) motion.Result
}

type Handler struct {
	analyzer      Analyzer
	repository    database.Repository
	metrics       *metrics.Metrics
	publisher     outputs.Publisher
	maxUploadSize int64
	timeout       time.Duration
}

func NewHandler(analyzer Analyzer, repository database.Repository, m *metrics.Metrics, publisher outputs.Publisher, maxUploadSize int64, timeout time.Duration) *Handler {
	if publisher == nil {
		publisher = outputs.NoopPublisher{}
	}
	return &Handler{
		analyzer:      analyzer,
		repository:    repository,
		metrics:       m,
		publisher:     publisher,
		maxUploadSize: maxUploadSize,
		timeout:       timeout,
	}
}

func detail(message string) gin.H {
	return gin.H{"detail": message}
}

// AnalyzeVideo accepts a multipart "file" field, analyzes it and stores the
// outcome. Failed analyses are still answered with 200 and status failed.
func (h *Handler) AnalyzeVideo(c *gin.Context) {
	if h.maxUploadSize > 0 {
		if c.Request.ContentLength > h.maxUploadSize {
			c.JSON(nethttp.StatusRequestEntityTooLarge, detail("File too large"))
			return
		}
		c.Request.Body = nethttp.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *nethttp.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(nethttp.StatusRequestEntityTooLarge, detail("File too large"))
			return
		}
		c.JSON(nethttp.StatusUnprocessableEntity, detail("Field required: file"))
		return
	}
	if fileHeader.Filename == "" {
		c.JSON(nethttp.StatusUnprocessableEntity, detail("Field required: filename"))
		return
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "video/") {
		c.JSON(nethttp.StatusBadRequest, detail("File must be a video"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Log.Error("http.AnalyzeVideo(): unable to open upload: " + err.Error())
		c.JSON(nethttp.StatusInternalServerError, detail(serverErrorMessage))
		return
	}
	defer file.Close()

	h.metrics.Begin()
	defer h.metrics.End()

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	result := h.analyzer.Analyze(ctx, file)
	cancel()

	h.metrics.Record(result)

	analysis, err := h.repository.Add(c.Request.Context(), models.NewAnalysisCreate(
		fileHeader.Filename, result.ProcessingTime, result.HasMovement, result.ErrorMessage))
	if err != nil {
		log.Log.Error("http.AnalyzeVideo(): unable to store analysis: " + err.Error())
		c.JSON(nethttp.StatusInternalServerError, detail(serverErrorMessage))
		return
	}

	report := motion.NewMotionReport(analysis.ID, fileHeader.Filename, result)
	if err := h.publisher.Publish(report); err != nil {
		log.Log.Warning("http.AnalyzeVideo(): unable to publish report: " + err.Error())
	}

	c.JSON(nethttp.StatusOK, report)
}

func (h *Handler) GetAnalysis(c *gin.Context) {
	analysis, err := h.repository.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Log.Error("http.GetAnalysis(): " + err.Error())
		c.JSON(nethttp.StatusInternalServerError, detail(serverErrorMessage))
		return
	}
	if analysis == nil {
		c.JSON(nethttp.StatusNotFound, detail("Analysis not found"))
		return
	}

	c.JSON(nethttp.StatusOK, analysis)
}

func (h *Handler) ListAnalyses(c *gin.Context) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil || skip < 0 {
		c.JSON(nethttp.StatusUnprocessableEntity, detail("skip must be a non negative integer"))
		return
	}
	limit, err := queryInt(c, "limit", defaultLimit)
	if err != nil || limit < 1 || limit > maxLimit {
		c.JSON(nethttp.StatusUnprocessableEntity, detail("limit must be between 1 and 1000"))
		return
	}

	filter := models.AnalysisFilter{Filename: c.Query("filename")}
	if v, ok := c.GetQuery("movement_detected"); ok {
		movement, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(nethttp.StatusUnprocessableEntity, detail("movement_detected must be a boolean"))
			return
		}
		filter.MovementDetected = &movement
	}

	ctx := c.Request.Context()
	total, err := h.repository.Count(ctx, filter)
	if err != nil {
		log.Log.Error("http.ListAnalyses(): " + err.Error())
		c.JSON(nethttp.StatusInternalServerError, detail(serverErrorMessage))
		return
	}
	items, err := h.repository.FindAll(ctx, filter, skip, limit)
	if err != nil {
		log.Log.Error("http.ListAnalyses(): " + err.Error())
		c.JSON(nethttp.StatusInternalServerError, detail(serverErrorMessage))
		return
	}
	if items == nil {
		items = []models.Analysis{}
	}

	c.JSON(nethttp.StatusOK, gin.H{
		"total": total,
		"items": items,
	})
}

func (h *Handler) DeleteAnalysis(c *gin.Context) {
	deleted, err := h.repository.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Log.Error("http.DeleteAnalysis(): " + err.Error())
		c.JSON(nethttp.StatusInternalServerError, detail(serverErrorMessage))
		return
	}
	if deleted == 0 {
		c.JSON(nethttp.StatusNotFound, detail("Analysis not found"))
		return
	}

	c.Status(nethttp.StatusNoContent)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(nethttp.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func queryInt(c *gin.Context, key string, defaultVal int) (int, error) {
	v, ok := c.GetQuery(key)
	if !ok {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}
