package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"campus/infras/otel"
	"campus/infras/postgres"
	"campus/internal/domains/activity/model"
	gDto "campus/shared/dto"
	gRepo "campus/shared/repository"
	"context"
)

type Activity interface {
	Insert(ctx context.Context, model model.ActivityReservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ActivityReservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ActivityReservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.ActivityReservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Activity {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ActivityReservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
