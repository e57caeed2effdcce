package service

import (
	"context"

	"notetaking-be/internal/dto"
	"notetaking-be/internal/pkg/apperror"
	"notetaking-be/internal/repository/unitofwork"
)

type IHealthService interface {
	Check(ctx context.Context) (*dto.HealthResponse, error)
}

type healthService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewHealthService(uowFactory unitofwork.RepositoryFactory) IHealthService {
	return &healthService{
		uowFactory: uowFactory,
	}
}

// Check counts notes, which doubles as a database round trip.
func (c *healthService) Check(ctx context.Context) (*dto.HealthResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.NoteRepository().Count(ctx)
	if err != nil {
		return nil, apperror.Store("database unavailable", err)
	}

	return &dto.HealthResponse{
		Status: "ok",
		Notes:  count,
	}, nil
}
