package api

import (
	"context"
	"net/http"

	reqdto "resource-hub/internal/handler/dto/request"
	resdto "resource-hub/internal/handler/dto/response"
	"resource-hub/internal/handler/httperr"
	"resource-hub/internal/handler/middleware"
	"resource-hub/internal/usecase/commands"
	"resource-hub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Request a time window on a resource. The reservation starts pending.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	r, err := h.cmds.Create(c.Request.Context(), req.ToInput(userID))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservation(r))
}

// @Summary List my reservations
// @Description List the caller's reservations, most recently created first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page (max 100)"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	var q reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid query parameters")
		return
	}
	status, err := q.StatusFilter()
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid status")
		return
	}

	page, err := h.q.ListForRequester(c.Request.Context(), userID, status, q.PageRequest())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

// @Summary Pending approvals
// @Description Pending reservations the caller may decide on
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationResponse
// @Failure 401 {object} httperr.Response
// @Router /reservations/pending [get]
func (h *ReservationHandler) Pending(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	views, err := h.q.PendingApprovals(c.Request.Context(), userID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Upcoming reservations
// @Description The caller's active reservations that have not started yet
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum items (default 10)"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 401 {object} httperr.Response
// @Router /reservations/upcoming [get]
func (h *ReservationHandler) Upcoming(c *gin.Context) {
	h.timeline(c, h.q.Upcoming)
}

// @Summary Past reservations
// @Description The caller's reservations whose window has ended
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum items (default 10)"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 401 {object} httperr.Response
// @Router /reservations/past [get]
func (h *ReservationHandler) Past(c *gin.Context) {
	h.timeline(c, h.q.Past)
}

type timelineFunc func(ctx context.Context, requesterID uuid.UUID, limit int) ([]*queries.ReservationView, error)

func (h *ReservationHandler) timeline(c *gin.Context, list timelineFunc) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	var q reqdto.TimelineQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid query parameters")
		return
	}
	views, err := list(c.Request.Context(), userID, q.Limit)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Check availability
// @Description Report whether a window could be booked right now, without booking it
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckAvailabilityRequest true "Window to check"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/check-availability [post]
func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	var req reqdto.CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}
	availability, err := h.q.CheckAvailability(c.Request.Context(), req.ResourceID, req.StartTime, req.EndTime)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailability(availability))
}

// @Summary Get reservation
// @Description Get a reservation visible to the caller
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Approve reservation
// @Description Approve a pending reservation. Fails if an approved booking now overlaps it.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ApproveReservationRequest false "Approval notes"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/approve [post]
func (h *ReservationHandler) Approve(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	var req reqdto.ApproveReservationRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	r, err := h.cmds.Approve(c.Request.Context(), id, userID, req.Notes)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(r))
}

// @Summary Reject reservation
// @Description Reject a pending reservation with a reason
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RejectReservationRequest true "Rejection reason"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/reject [post]
func (h *ReservationHandler) Reject(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	var req reqdto.RejectReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}
	r, err := h.cmds.Reject(c.Request.Context(), id, userID, req.Reason)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(r))
}

// @Summary Cancel reservation
// @Description Cancel a pending or approved reservation before its window ends
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancellation reason"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	var req reqdto.CancelReservationRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	r, err := h.cmds.Cancel(c.Request.Context(), id, userID, req.Reason)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(r))
}

// @Summary List reservations of a resource
// @Description Reservations on one resource, ordered by start time
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param status query string false "Status filter"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id}/reservations [get]
func (h *ReservationHandler) ListForResource(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid resource ID format")
		return
	}
	var q reqdto.ListReservationsQuery
	if bindErr := c.ShouldBindQuery(&q); bindErr != nil {
		httperr.Abort(c, http.StatusBadRequest, bindErr, "Invalid query parameters")
		return
	}
	status, err := q.StatusFilter()
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid status")
		return
	}

	views, err := h.q.ListForResource(c.Request.Context(), resourceID, status)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

func reservationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid reservation ID format")
		return uuid.Nil, false
	}
	return id, true
}

// An empty body is allowed for endpoints whose fields are all optional.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.Abort(c, http.StatusBadRequest, err, "Invalid request format")
		return false
	}
	return true
}
