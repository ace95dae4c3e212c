package api

import (
	"github.com/labstack/echo/v4"

	models "BasketNa/internal/domain/models"
	xhttp "BasketNa/pkg/http"
)

func (h *Handler) PersonalizedRecommendations(c echo.Context) error {
	userID := h.userID(c)
	if userID == "" {
		return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("missing "+HeaderUserID+" header"))
	}
	req := &models.PersonalizedRecommendationsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.recommender.Personalized(c.Request().Context(), userID, req.Limit)
	if err != nil {
		return h.respondError(c, "personalized recommendations", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) SessionRecommendations(c echo.Context) error {
	req := &models.SessionRecommendationsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ok, err := h.tracker.SessionExists(c.Request().Context(), req.SessionID)
	if err != nil {
		return h.respondError(c, "session lookup", err)
	}
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("unknown or expired session"))
	}
	res, err := h.recommender.ForSession(c.Request().Context(), req.SessionID, req.Limit)
	if err != nil {
		return h.respondError(c, "session recommendations", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) CategoryRecommendations(c echo.Context) error {
	req := &models.CategoryRecommendationsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.recommender.ByCategory(c.Request().Context(), req.Category, req.Limit, req.Exclude)
	if err != nil {
		return h.respondError(c, "category recommendations", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) TrendingRecommendations(c echo.Context) error {
	req := &models.TrendingRecommendationsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.recommender.Trending(c.Request().Context(), req.Limit)
	if err != nil {
		return h.respondError(c, "trending recommendations", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) BestDeals(c echo.Context) error {
	req := &models.BestDealsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.recommender.BestDeals(c.Request().Context(), req.Limit)
	if err != nil {
		return h.respondError(c, "best deals", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) CreateSession(c echo.Context) error {
	session, err := h.tracker.CreateSession(c.Request().Context())
	if err != nil {
		return h.respondError(c, "create session", err)
	}
	return xhttp.CreatedResponse(c, session)
}

// RecordView attributes a product view to a user, a session, or both.
func (h *Handler) RecordView(c echo.Context) error {
	req := &models.RecordViewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	userID := h.userID(c)
	if userID == "" && req.SessionID == "" {
		return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("a user header or session_id is required"))
	}
	if err := h.tracker.RecordView(c.Request().Context(), userID, req.SessionID, req.ProductID); err != nil {
		return h.respondError(c, "record view", err)
	}
	return xhttp.NoContentResponse(c)
}

func (h *Handler) Track(c echo.Context) error {
	userID := h.userID(c)
	if userID == "" {
		return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("missing "+HeaderUserID+" header"))
	}
	req := &models.TrackRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	item, err := h.tracker.Track(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return h.respondError(c, "track", err)
	}
	return xhttp.CreatedResponse(c, item)
}

func (h *Handler) Untrack(c echo.Context) error {
	userID := h.userID(c)
	if userID == "" {
		return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("missing "+HeaderUserID+" header"))
	}
	req := &models.TrackRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.tracker.Untrack(c.Request().Context(), userID, req.ProductID); err != nil {
		return h.respondError(c, "untrack", err)
	}
	return xhttp.NoContentResponse(c)
}

func (h *Handler) Tracked(c echo.Context) error {
	userID := h.userID(c)
	if userID == "" {
		return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("missing "+HeaderUserID+" header"))
	}
	items, err := h.tracker.Tracked(c.Request().Context(), userID)
	if err != nil {
		return h.respondError(c, "tracked list", err)
	}
	return xhttp.SuccessResponse(c, items)
}
