// Package dto converts audit entities into the generated API payloads.
package dto

import (
	"account_backend/internal/api"
	"account_backend/internal/feature/audit/domain/entity"
	"account_backend/internal/shared/pagination"
)

// EventFromEntity flattens an event with its owner's name and email.
func EventFromEntity(e *entity.UserEvent) api.EventResponse {
	res := api.EventResponse{
		Id:        int64(e.ID),
		UserId:    int64(e.UserID),
		EventType: string(e.EventType),
		EventTime: e.EventTime,
	}
	if e.User != nil {
		username, email := e.User.Username, e.User.Email
		res.Username = &username
		res.Email = &email
	}
	return res
}

func EventsFromEntities(events []entity.UserEvent) []api.EventResponse {
	out := make([]api.EventResponse, len(events))
	for i := range events {
		out[i] = EventFromEntity(&events[i])
	}
	return out
}

func EventPage(p *pagination.Page[entity.UserEvent]) api.EventPage {
	return api.EventPage{
		Content:       EventsFromEntities(p.Content),
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}
