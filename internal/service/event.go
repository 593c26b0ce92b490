package service

import (
	"context"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/repository"
)

type eventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int32) (*domain.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) validate(e *domain.Event) error {
	return ValidateRequired(map[string]string{
		"title":       e.Title,
		"description": e.Description,
		"start_date":  e.StartDate,
		"end_date":    e.EndDate,
		"location":    e.Location,
	}, []string{"title", "description", "start_date", "end_date", "location"})
}

func (s *eventService) CreateEvent(ctx context.Context, e *domain.Event) error {
	if err := s.validate(e); err != nil {
		return err
	}
	return s.eventRepo.Create(ctx, e)
}

func (s *eventService) UpdateEvent(ctx context.Context, e *domain.Event) error {
	if err := s.validate(e); err != nil {
		return err
	}
	return s.eventRepo.Update(ctx, e)
}

func (s *eventService) DeleteEvent(ctx context.Context, id int32) error {
	return s.eventRepo.Delete(ctx, id)
}
