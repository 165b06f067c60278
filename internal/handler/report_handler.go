package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kvreport/internal/middleware"
	"kvreport/internal/report"
	"kvreport/pkg/params"
	"kvreport/pkg/response"
)

// ReportHandler exposes the sales reports over HTTP.
type ReportHandler struct {
	reports *report.Service
}

func NewReportHandler(reports *report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	reports.Use(middleware.RequireAuth())
	{
		reports.GET("/top-products", h.GetTopProducts)
		reports.GET("/potential", h.GetPotential)
		reports.GET("/comparison", h.GetComparison)
	}

	questions := router.Group("/api/questions")
	questions.Use(middleware.RequireAuth())
	{
		questions.POST("", h.PostQuestion)
	}
}

// GetTopProducts returns a ranked top-N product report
// @Summary      Top products report
// @Description  Ranks products by quantity, revenue or order count over a month or year
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        metric  query  string  false  "Ranking metric: quantity, revenue, orders (default: quantity)"
// @Param        top     query  int     false  "Number of products (default 10, max 100)"
// @Param        month   query  int     false  "Month 1-12 (omit for a whole-year report)"
// @Param        year    query  int     false  "Year (default: current)"
// @Success      200  {object}  response.Response{data=report.Report}
// @Failure      400  {object}  response.Response
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) GetTopProducts(c *gin.Context) {
	period, ok := params.Period(c)
	if !ok {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid month/year parameters"))
		return
	}

	req := report.ReportRequest{
		Metric: parseMetric(c.DefaultQuery("metric", "quantity")),
		Period: period,
		TopN:   params.TopN(c),
	}

	rep, err := h.reports.TopProducts(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, err.Error()))
		return
	}

	respondWithFetch(c, rep.Fetch, rep)
}

// GetPotential returns the marketing-potential report
// @Summary      Marketing potential report
// @Description  Flags high-value products with few orders as marketing candidates
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        top    query  int  false  "Number of products (default 10)"
// @Param        month  query  int  false  "Month 1-12 (omit for a whole-year report)"
// @Param        year   query  int  false  "Year (default: current)"
// @Success      200  {object}  response.Response{data=report.PotentialReport}
// @Failure      400  {object}  response.Response
// @Router       /api/reports/potential [get]
func (h *ReportHandler) GetPotential(c *gin.Context) {
	period, ok := params.Period(c)
	if !ok {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid month/year parameters"))
		return
	}

	rep, err := h.reports.Potential(c.Request.Context(), period, params.TopN(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, err.Error()))
		return
	}

	respondWithFetch(c, rep.Fetch, rep)
}

// GetComparison returns the order-count vs revenue comparison report
// @Summary      Ranking comparison report
// @Description  Contrasts the order-count and revenue top-N lists for one period
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        top    query  int  false  "Size of each top list (default 10)"
// @Param        month  query  int  false  "Month 1-12 (omit for a whole-year report)"
// @Param        year   query  int  false  "Year (default: current)"
// @Success      200  {object}  response.Response{data=report.ComparisonReport}
// @Failure      400  {object}  response.Response
// @Router       /api/reports/comparison [get]
func (h *ReportHandler) GetComparison(c *gin.Context) {
	period, ok := params.Period(c)
	if !ok {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid month/year parameters"))
		return
	}

	rep, err := h.reports.Comparison(c.Request.Context(), period, params.TopN(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, err.Error()))
		return
	}

	respondWithFetch(c, rep.Fetch, rep)
}

type questionRequest struct {
	Question string `json:"question" binding:"required"`
}

// PostQuestion answers a Vietnamese free-text question with a report
// @Summary      Ask a question
// @Description  Best-effort natural-language entry point over the structured report API
// @Tags         reports
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  questionRequest  true  "Question payload"
// @Success      200  {object}  response.Response{data=report.Report}
// @Failure      400  {object}  response.Response
// @Router       /api/questions [post]
func (h *ReportHandler) PostQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rep, err := h.reports.Answer(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, report.ErrNotUnderstood) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "question not understood; try e.g. 'top 10 sản phẩm bán chạy nhất năm 2024'"))
			return
		}
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, err.Error()))
		return
	}

	respondWithFetch(c, rep.Fetch, rep)
}

func parseMetric(s string) report.Metric {
	switch s {
	case "revenue":
		return report.MetricRevenue
	case "orders":
		return report.MetricOrderCount
	default:
		return report.MetricQuantity
	}
}

// respondWithFetch surfaces a truncated fetch as a warning instead of
// silently returning partial numbers.
func respondWithFetch(c *gin.Context, fetch report.FetchInfo, data interface{}) {
	if fetch.Status == report.FetchPartial {
		c.JSON(http.StatusOK, response.PartialSuccess(http.StatusOK,
			data, "report built from a partial fetch: "+fetch.Error))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, data))
}
