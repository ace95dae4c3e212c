package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	models "BasketNa/internal/domain/models"
	"BasketNa/internal/repository"
	"BasketNa/internal/usecase"
	xhttp "BasketNa/pkg/http"
	xlogger "BasketNa/pkg/logger"
)

// HeaderUserID carries the authenticated user identity.
const HeaderUserID = "X-User-ID"

// Handler wires all HTTP routes to the query and command usecases.
type Handler struct {
	logger      *xlogger.Logger
	forecaster  *usecase.Forecaster
	recommender *usecase.Recommender
	tracker     *usecase.Tracker
	collector   *usecase.PriceCollector
}

func NewHandler(
	logger *xlogger.Logger,
	forecaster *usecase.Forecaster,
	recommender *usecase.Recommender,
	tracker *usecase.Tracker,
	collector *usecase.PriceCollector,
) *Handler {
	return &Handler{
		logger:      logger,
		forecaster:  forecaster,
		recommender: recommender,
		tracker:     tracker,
		collector:   collector,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/products", h.Products)
	g.GET("/search", h.Search)
	g.GET("/forecast/:product_id", h.Forecast)
	g.GET("/compare/:product_id", h.Compare)
	g.GET("/analysis/competitive/:product_id", h.Competitive)
	g.GET("/analysis/trend/:product_id", h.Trend)

	g.GET("/recommendations/personalized", h.PersonalizedRecommendations)
	g.GET("/recommendations/session", h.SessionRecommendations)
	g.GET("/recommendations/category/:category", h.CategoryRecommendations)
	g.GET("/recommendations/trending", h.TrendingRecommendations)
	g.GET("/recommendations/best-deals", h.BestDeals)

	g.POST("/session", h.CreateSession)
	g.POST("/activity/view/:product_id", h.RecordView)
	g.POST("/track/:product_id", h.Track)
	g.DELETE("/track/:product_id", h.Untrack)
	g.GET("/me/tracked", h.Tracked)
}

func (h *Handler) Health(c echo.Context) error {
	status := map[string]interface{}{"status": "ok"}
	if h.collector != nil {
		status["stream_connected"] = h.collector.IsConnected()
	}
	return xhttp.SuccessResponse(c, status)
}

func (h *Handler) Products(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.forecaster.Products(c.Request().Context()))
}

func (h *Handler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.forecaster.Search(c.Request().Context(), req.Query)
	if err != nil {
		return h.respondError(c, "search", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.forecaster.Forecast(c.Request().Context(), req.ProductID, models.Retailer(req.Retailer), req.Horizon)
	if err != nil {
		return h.respondError(c, "forecast", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Compare(c echo.Context) error {
	req := &models.CompareRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.forecaster.Compare(c.Request().Context(), req.ProductID)
	if err != nil {
		return h.respondError(c, "compare", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Competitive(c echo.Context) error {
	req := &models.CompetitiveRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.forecaster.Competitive(c.Request().Context(), req.ProductID, req.Horizon)
	if err != nil {
		return h.respondError(c, "competitive", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Trend(c echo.Context) error {
	req := &models.TrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.forecaster.TrendAnalysis(c.Request().Context(), req.ProductID, req.DaysBack)
	if err != nil {
		return h.respondError(c, "trend", err)
	}
	return xhttp.SuccessResponse(c, res)
}

// userID extracts the identity header, empty when anonymous.
func (h *Handler) userID(c echo.Context) string {
	return c.Request().Header.Get(HeaderUserID)
}

func (h *Handler) respondError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()).WithError(err))
	case errors.Is(err, usecase.ErrInsufficientHistory):
		return xhttp.AppErrorResponse(c, xhttp.InsufficientHistoryError("not enough price history").WithError(err))
	case errors.Is(err, repository.ErrNotTracked):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("product is not tracked").WithError(err))
	default:
		h.logger.Error(op+" usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}
