package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"campus/infras/otel"
	"campus/infras/postgres"
	"campus/internal/domains/gatepass/model"
	gDto "campus/shared/dto"
	gRepo "campus/shared/repository"
	"context"
)

type GatePass interface {
	Insert(ctx context.Context, model model.GatePass) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.GatePass, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.GatePass, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.GatePass]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) GatePass {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.GatePass](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
