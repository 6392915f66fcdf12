package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"vecindario/contexts/community/announcement-service/domain/entities"
	domainerrors "vecindario/contexts/community/announcement-service/domain/errors"
	"vecindario/contexts/community/announcement-service/ports"
)

// ComunicadoInput carries the editable fields of an announcement.
type ComunicadoInput struct {
	Title    string
	Content  string
	Category entities.ComunicadoCategory
	Pinned   bool
}

type Service struct {
	Comunicados ports.ComunicadoRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (s Service) Create(ctx context.Context, input ComunicadoInput, authorID string) (entities.Comunicado, error) {
	if err := validateInput(input); err != nil {
		return entities.Comunicado{}, err
	}

	comunicadoID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Comunicado{}, err
	}
	now := s.now()

	comunicado := entities.Comunicado{
		ComunicadoID: comunicadoID,
		Title:        strings.TrimSpace(input.Title),
		Content:      strings.TrimSpace(input.Content),
		Category:     input.Category,
		Pinned:       input.Pinned,
		AuthorID:     strings.TrimSpace(authorID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Comunicados.CreateComunicado(ctx, comunicado); err != nil {
		return entities.Comunicado{}, err
	}

	s.logger().Info("comunicado published",
		"event", "announcements_created",
		"module", "community/announcement-service",
		"layer", "application",
		"comunicado_id", comunicadoID,
		"category", string(comunicado.Category),
		"pinned", comunicado.Pinned,
	)
	return comunicado, nil
}

func (s Service) Update(ctx context.Context, comunicadoID string, input ComunicadoInput) (entities.Comunicado, error) {
	if err := validateInput(input); err != nil {
		return entities.Comunicado{}, err
	}

	comunicado, err := s.Comunicados.GetComunicado(ctx, strings.TrimSpace(comunicadoID))
	if err != nil {
		return entities.Comunicado{}, err
	}
	comunicado.Title = strings.TrimSpace(input.Title)
	comunicado.Content = strings.TrimSpace(input.Content)
	comunicado.Category = input.Category
	comunicado.Pinned = input.Pinned
	comunicado.UpdatedAt = s.now()

	if err := s.Comunicados.UpdateComunicado(ctx, comunicado); err != nil {
		return entities.Comunicado{}, err
	}
	return comunicado, nil
}

func (s Service) Delete(ctx context.Context, comunicadoID string) error {
	if strings.TrimSpace(comunicadoID) == "" {
		return domainerrors.ErrInvalidInput
	}
	return s.Comunicados.DeleteComunicado(ctx, strings.TrimSpace(comunicadoID))
}

func (s Service) Get(ctx context.Context, comunicadoID string) (entities.Comunicado, error) {
	if strings.TrimSpace(comunicadoID) == "" {
		return entities.Comunicado{}, domainerrors.ErrInvalidInput
	}
	return s.Comunicados.GetComunicado(ctx, strings.TrimSpace(comunicadoID))
}

func (s Service) List(ctx context.Context, filter ports.ComunicadoFilter) ([]entities.Comunicado, int, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, 0, domainerrors.ErrInvalidCategory
	}
	return s.Comunicados.ListComunicados(ctx, filter)
}

// Latest returns the n most recent announcements for the home board. Pinned
// ordering applies here too.
func (s Service) Latest(ctx context.Context, limit int) ([]entities.Comunicado, error) {
	if limit < 1 || limit > 20 {
		limit = 5
	}
	return s.Comunicados.LatestComunicados(ctx, limit)
}

func validateInput(input ComunicadoInput) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return domainerrors.ErrInvalidInput
	}
	if !input.Category.IsValid() {
		return domainerrors.ErrInvalidCategory
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
