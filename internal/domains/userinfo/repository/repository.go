package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"campus/infras/otel"
	"campus/infras/postgres"
	"campus/internal/domains/userinfo/model"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/logger"
	gRepo "campus/shared/repository"
	"context"
	"fmt"
)

type UserInfo interface {
	Insert(ctx context.Context, model model.UserInfo) error
	Upsert(ctx context.Context, model model.UserInfo) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.UserInfo, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.UserInfo, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.UserInfo]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) UserInfo {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.UserInfo](model.EntityName, model.TableName, model.FieldUserID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert inserts the profile row or overwrites it in place when the user
// already has one. A single statement, so concurrent first upserts cannot race
// an existence check into a key violation.
func (repo *repositoryImpl) Upsert(ctx context.Context, info model.UserInfo) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.upsert", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf(`INSERT INTO %s (user_id, first_name, last_name, contact_number, semester, email, created_at, modified_at, created_by, modified_by)
		VALUES (:user_id, :first_name, :last_name, :contact_number, :semester, :email, :created_at, :modified_at, :created_by, :modified_by)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			contact_number = EXCLUDED.contact_number,
			semester = EXCLUDED.semester,
			email = EXCLUDED.email,
			modified_at = EXCLUDED.modified_at,
			modified_by = EXCLUDED.modified_by`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, info); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return nil
}
