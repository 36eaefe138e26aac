package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"noticeadmin/internal/notices"
)

type NoticeHandler struct {
	uc  *notices.Manager
	log *slog.Logger
}

func NewNoticeHandler(uc *notices.Manager, log *slog.Logger) *NoticeHandler {
	return &NoticeHandler{
		uc:  uc,
		log: log,
	}
}

func (h *NoticeHandler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, map[string]string{"error": message})
}

// Notices handles GET /api/notices
// @Summary Search notices
// @Description Retrieves notices matching the optional search parameters, newest first
// @Tags notices
// @Produce json
// @Param dateSearchType query string false "MODIFIED_DATE or CREATED_DATE"
// @Param startDate query string false "RFC3339 lower bound"
// @Param endDate query string false "RFC3339 upper bound"
// @Param createdId query string false "Exact author match"
// @Param type query string false "ALL, EXPOSED or HIDDEN"
// @Param text query string false "Substring match against title or content"
// @Success 200 {array} rest.Notice
// @Failure 400,500 {object} map[string]string
// @Router /api/notices [get]
func (h *NoticeHandler) Notices(c echo.Context) error {
	var req NoticeSearchRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	filter, err := req.toFilter()
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	list, err := h.uc.NoticesByFilter(c.Request().Context(), filter)
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, NewNotices(list))
}

// NoticeByID handles GET /api/notices/:id
// @Summary Get notice by ID
// @Tags notices
// @Produce json
// @Param id path int true "Notice ID"
// @Success 200 {object} rest.Notice
// @Failure 400,404,500 {object} map[string]string
// @Router /api/notices/{id} [get]
func (h *NoticeHandler) NoticeByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	n, err := h.uc.NoticeByID(c.Request().Context(), id)
	if errors.Is(err, notices.ErrNotFound) {
		return h.handleError(c, err, http.StatusNotFound, "notice not found")
	}
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, NewNotice(*n))
}

// CreateNotice handles POST /api/notices
// @Summary Create notice
// @Tags notices
// @Accept json
// @Produce json
// @Param request body rest.CreateNoticeRequest true "Notice payload; isExposed is the string true/false"
// @Success 201 {object} rest.Notice
// @Failure 400,500 {object} map[string]string
// @Router /api/notices [post]
func (h *NoticeHandler) CreateNotice(c echo.Context) error {
	var req CreateNoticeRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	n, err := h.uc.Create(c.Request().Context(), req.Title, req.Content, bool(req.IsExposed))
	var validationErr *notices.ValidationError
	if errors.As(err, &validationErr) {
		return h.handleError(c, err, http.StatusBadRequest, validationErr.Error())
	}
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusCreated, NewNotice(*n))
}

// UpdateNotice handles PUT /api/notices/:id
// @Summary Update notice
// @Description Updates title, content and exposure; id, author and createdAt never change
// @Tags notices
// @Accept json
// @Produce json
// @Param id path int true "Notice ID"
// @Param request body rest.UpdateNoticeRequest true "Notice payload; isExposed is the string true/false"
// @Success 200 {object} rest.Notice
// @Failure 400,404,500 {object} map[string]string
// @Router /api/notices/{id} [put]
func (h *NoticeHandler) UpdateNotice(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var req UpdateNoticeRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	n, err := h.uc.Update(c.Request().Context(), id, req.Title, req.Content, bool(req.IsExposed))
	var validationErr *notices.ValidationError
	if errors.As(err, &validationErr) {
		return h.handleError(c, err, http.StatusBadRequest, validationErr.Error())
	}
	if errors.Is(err, notices.ErrNotFound) {
		return h.handleError(c, err, http.StatusNotFound, "notice not found")
	}
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, NewNotice(*n))
}
