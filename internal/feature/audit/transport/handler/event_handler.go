// Package handler provides HTTP handlers for the audit feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account_backend/internal/api"
	"account_backend/internal/feature/audit/domain"
	"account_backend/internal/feature/audit/domain/entity"
	"account_backend/internal/feature/audit/transport/http/dto"
	"account_backend/internal/feature/audit/usecase"
	"account_backend/internal/platform/http/params"
	"account_backend/internal/platform/http/response"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/shared/pagination"
)

// EventUsecase defines the read operations of the audit log.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type EventUsecase interface {
	EventsByUser(ctx context.Context, userID uint, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error)
	EventsByType(ctx context.Context, eventType entity.EventType, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error)
	EventsByFilters(ctx context.Context, filter usecase.EventFilter, p pagination.Pageable) (*pagination.Page[entity.UserEvent], error)
	LatestForUser(ctx context.Context, userID uint) ([]entity.UserEvent, error)
	GetEvent(ctx context.Context, id uint) (*entity.UserEvent, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountByType(ctx context.Context, eventType entity.EventType) (int64, error)
}

// defaultEventSort lists the newest events first.
var defaultEventSort = pagination.Sort{Field: "eventTime", Desc: true}

// EventHandler serves /events.
type EventHandler struct {
	events EventUsecase
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events EventUsecase) *EventHandler {
	return &EventHandler{events: events}
}

// List returns one page of events. The optional userId, eventType, startDate
// and endDate query parameters are combined with AND.
func (h *EventHandler) List(c *gin.Context) {
	p, err := params.Pageable(c, defaultEventSort)
	if err != nil {
		badRequest(c, err)
		return
	}
	filter, err := filterFromQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	page, err := h.events.EventsByFilters(c.Request.Context(), filter, p)
	if err != nil {
		respondError(c, "list events", err)
		return
	}
	c.JSON(http.StatusOK, dto.EventPage(page))
}

// MyEvents returns one page of the caller's events.
func (h *EventHandler) MyEvents(c *gin.Context) {
	id, ok := jwtmw.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	p, err := params.Pageable(c, defaultEventSort)
	if err != nil {
		badRequest(c, err)
		return
	}
	page, err := h.events.EventsByUser(c.Request.Context(), id.UserID, p)
	if err != nil {
		respondError(c, "list my events", err)
		return
	}
	c.JSON(http.StatusOK, dto.EventPage(page))
}

// MyLatest returns the caller's ten most recent events.
func (h *EventHandler) MyLatest(c *gin.Context) {
	id, ok := jwtmw.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	events, err := h.events.LatestForUser(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, "latest events", err)
		return
	}
	c.JSON(http.StatusOK, dto.EventsFromEntities(events))
}

// Get returns the event named by :id.
func (h *EventHandler) Get(c *gin.Context) {
	eventID, err := params.PathUint(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	event, err := h.events.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, "get event", err)
		return
	}
	c.JSON(http.StatusOK, dto.EventFromEntity(event))
}

// ByUser returns one page of the events of :userId.
func (h *EventHandler) ByUser(c *gin.Context) {
	userID, err := params.PathUint(c, "userId")
	if err != nil {
		badRequest(c, err)
		return
	}
	p, err := params.Pageable(c, defaultEventSort)
	if err != nil {
		badRequest(c, err)
		return
	}
	page, err := h.events.EventsByUser(c.Request.Context(), userID, p)
	if err != nil {
		respondError(c, "list events by user", err)
		return
	}
	c.JSON(http.StatusOK, dto.EventPage(page))
}

// ByType returns one page of the events of :eventType.
func (h *EventHandler) ByType(c *gin.Context) {
	eventType, ok := entity.ParseEventType(c.Param("eventType"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid event type")
		return
	}
	p, err := params.Pageable(c, defaultEventSort)
	if err != nil {
		badRequest(c, err)
		return
	}
	page, err := h.events.EventsByType(c.Request.Context(), eventType, p)
	if err != nil {
		respondError(c, "list events by type", err)
		return
	}
	c.JSON(http.StatusOK, dto.EventPage(page))
}

// CountByUser returns the number of events of :userId.
func (h *EventHandler) CountByUser(c *gin.Context) {
	userID, err := params.PathUint(c, "userId")
	if err != nil {
		badRequest(c, err)
		return
	}
	n, err := h.events.CountByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "count events by user", err)
		return
	}
	c.JSON(http.StatusOK, api.CountResponse{Count: n})
}

// CountByType returns the number of events of :eventType.
func (h *EventHandler) CountByType(c *gin.Context) {
	eventType, ok := entity.ParseEventType(c.Param("eventType"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid event type")
		return
	}
	n, err := h.events.CountByType(c.Request.Context(), eventType)
	if err != nil {
		respondError(c, "count events by type", err)
		return
	}
	c.JSON(http.StatusOK, api.CountResponse{Count: n})
}

func filterFromQuery(c *gin.Context) (usecase.EventFilter, error) {
	var (
		q      api.ListEventsParams
		filter usecase.EventFilter
		err    error
	)
	if err = c.ShouldBindQuery(&q); err != nil {
		return filter, err
	}
	if q.UserId != nil {
		userID := uint(*q.UserId)
		filter.UserID = &userID
	}
	if q.EventType != nil && *q.EventType != "" {
		t, ok := entity.ParseEventType(*q.EventType)
		if !ok {
			return filter, errors.New("invalid eventType")
		}
		filter.Type = &t
	}
	if q.StartDate != nil {
		if filter.Start, err = params.ParseTime("startDate", *q.StartDate); err != nil {
			return filter, err
		}
	}
	if q.EndDate != nil {
		if filter.End, err = params.ParseTime("endDate", *q.EndDate); err != nil {
			return filter, err
		}
	}
	if filter.Start != nil && filter.End != nil && filter.End.Before(*filter.Start) {
		return filter, errors.New("endDate must not be before startDate")
	}
	return filter, nil
}

func respondError(c *gin.Context, op string, err error) {
	if errors.Is(err, domain.ErrEventNotFound) {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}
	zap.L().Error(op+" failed", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
	response.Error(c, http.StatusInternalServerError, "internal server error")
}

func badRequest(c *gin.Context, err error) {
	zap.L().Debug("invalid event query", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
	response.Error(c, http.StatusBadRequest, err.Error())
}
