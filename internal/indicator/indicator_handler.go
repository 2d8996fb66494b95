package indicator

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vendas-sistemas/perroni-sub000/internal/config"
	"github.com/vendas-sistemas/perroni-sub000/internal/shared/apperror"
	"github.com/vendas-sistemas/perroni-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service AnalyticsService
}

func NewHandler(service AnalyticsService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseFilter(c *gin.Context) (Filter, bool) {
	f := Filter{
		JobID:    c.Query("job_id"),
		StageID:  c.Query("stage_id"),
		WorkerID: c.Query("worker_id"),
		Weather:  c.Query("weather"),
	}
	if v := c.Query("date_from"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date_from", nil)
			return Filter{}, false
		}
		f.DateFrom = &d
	}
	if v := c.Query("date_to"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date_to", nil)
			return Filter{}, false
		}
		f.DateTo = &d
	}
	return f, true
}

func validIndicator(code string) bool {
	for _, known := range config.IndicatorCodes {
		if known == code {
			return true
		}
	}
	return false
}

func (h *Handler) RankingByIndicator(c *gin.Context) {
	code := c.Param("code")
	if !validIndicator(code) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown indicator code", nil)
		return
	}

	f, ok := parseFilter(c)
	if !ok {
		return
	}
	top, _ := strconv.Atoi(c.DefaultQuery("top", "5"))
	bottom, _ := strconv.Atoi(c.DefaultQuery("bottom", "5"))

	resp, err := h.service.RankingByIndicator(c.Request.Context(), code, f, top, bottom)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RankingFirstCompletion(c *gin.Context) {
	code := c.Param("code")
	if !validIndicator(code) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown indicator code", nil)
		return
	}

	f, ok := parseFilter(c)
	if !ok {
		return
	}
	top, _ := strconv.Atoi(c.DefaultQuery("top", "10"))

	resp, err := h.service.RankingFirstCompletion(c.Request.Context(), code, f, top)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) StageDurationAverage(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.StageDurationAverage(c.Request.Context(), f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) WorkerSummary(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.WorkerSummary(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CrossIndicatorAverages(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.CrossIndicatorAverages(c.Request.Context(), f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
