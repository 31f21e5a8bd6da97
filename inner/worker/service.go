package worker

import (
	"context"
	"fmt"

	"workers/inner/common"
	"workers/inner/gender"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Service struct {
	repo       Repo
	genders    GenderRepo
	validation Validation
	builder    Builder
	logger     *common.Logger
}

type Repo interface {
	BeginTransaction(ctx context.Context) (*sqlx.Tx, error)
	ExistsTx(ctx context.Context, tx *sqlx.Tx, pesel, email string) (bool, error)
	SaveTx(ctx context.Context, tx *sqlx.Tx, worker *Entity) (int64, error)
	FindById(ctx context.Context, id int64) (Entity, error)
	FindAll(ctx context.Context, spec QuerySpec) ([]Entity, error)
	Update(ctx context.Context, worker *Entity) error
	DeleteById(ctx context.Context, id int64) error
}

type GenderRepo interface {
	FindByName(ctx context.Context, name string) (gender.Entity, error)
}

type Validation interface {
	Validate(payload Payload) error
}

type Builder interface {
	Build(target *Entity, payload Payload, genderRecord gender.Entity) (*Entity, error)
}

// WriteOptions параметры одной операции записи.
// SkipValidation используется только заполнением синтетическими данными
type WriteOptions struct {
	SkipValidation bool
}

// функция-конструктор
func NewService(repo Repo, genders GenderRepo, validation Validation, builder Builder, logger *common.Logger) *Service {
	return &Service{
		repo:       repo,
		genders:    genders,
		validation: validation,
		builder:    builder,
		logger:     logger,
	}
}

// AddWorker создаёт работника: проверка уникальности, правила, сборка записи, сохранение.
// Проверка уникальности и вставка идут в одной транзакции, гонку между ними закрывают уникальные индексы
func (svc *Service) AddWorker(ctx context.Context, payload Payload, opts WriteOptions) (id int64, err error) {
	svc.logger.Info("Creating new worker",
		zap.String("email", payload.Email),
		zap.Bool("skip_validation", opts.SkipValidation))

	// запрашиваем у репозитория новую транзакцию
	tx, err := svc.repo.BeginTransaction(ctx)
	if err != nil {
		svc.logger.Error("Failed to begin transaction for worker creation",
			zap.String("email", payload.Email),
			zap.Error(err))
		return 0, fmt.Errorf("error create worker: error creating transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				svc.logger.Error("Failed to rollback transaction",
					zap.String("email", payload.Email),
					zap.Error(rollbackErr))
			}
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			svc.logger.Error("Failed to commit transaction",
				zap.String("email", payload.Email),
				zap.Error(commitErr))
			id, err = 0, fmt.Errorf("error create worker: commit failed: %w", commitErr)
		}
	}()

	isExist, err := svc.repo.ExistsTx(ctx, tx, payload.Pesel, payload.Email)
	if err != nil {
		svc.logger.Error("Failed to check if worker exists",
			zap.String("email", payload.Email),
			zap.Error(err))
		return 0, err
	}
	if isExist {
		svc.logger.Warn("Worker with this pesel or email already exists",
			zap.String("email", payload.Email))
		err = common.AlreadyExistsError{Message: MsgAlreadyExists}
		return 0, err
	}

	var record Entity
	if err = svc.prepareRecord(ctx, &record, payload, opts); err != nil {
		return 0, err
	}

	id, err = svc.repo.SaveTx(ctx, tx, &record)
	if err != nil {
		svc.logger.Error("Failed to save new worker",
			zap.String("email", payload.Email),
			zap.Error(err))
		return 0, err
	}

	svc.logger.Info("Worker created successfully",
		zap.String("email", payload.Email),
		zap.Int64("id", id))
	return id, nil
}

// UpdateWorker переписывает поля существующей записи.
// При любой ошибке сохранённая запись не меняется
func (svc *Service) UpdateWorker(ctx context.Context, existing Entity, payload Payload, opts WriteOptions) (UpdateResponse, error) {
	svc.logger.Info("Updating worker", zap.Int64("id", existing.Id))

	record := existing
	if err := svc.prepareRecord(ctx, &record, payload, opts); err != nil {
		return UpdateResponse{}, err
	}

	if err := svc.repo.Update(ctx, &record); err != nil {
		svc.logger.Error("Failed to update worker",
			zap.Int64("id", existing.Id),
			zap.Error(err))
		return UpdateResponse{}, err
	}

	svc.logger.Info("Worker updated successfully", zap.Int64("id", existing.Id))
	return record.toUpdateResponse(), nil
}

func (svc *Service) prepareRecord(ctx context.Context, target *Entity, payload Payload, opts WriteOptions) error {
	if !opts.SkipValidation {
		if err := svc.validation.Validate(payload); err != nil {
			svc.logger.Warn("Worker data validation failed",
				zap.String("email", payload.Email),
				zap.Error(err))
			return err
		}
	}

	genderRecord, err := svc.genders.FindByName(ctx, payload.Gender)
	if err != nil {
		svc.logger.Warn("Failed to resolve gender",
			zap.String("gender", payload.Gender),
			zap.Error(err))
		return err
	}

	if _, err = svc.builder.Build(target, payload, genderRecord); err != nil {
		svc.logger.Error("Failed to build worker record",
			zap.String("email", payload.Email),
			zap.Error(err))
		return err
	}
	return nil
}

func (svc *Service) FindById(ctx context.Context, id int64) (Entity, error) {
	svc.logger.Debug("Finding worker by ID", zap.Int64("id", id))

	entity, err := svc.repo.FindById(ctx, id)
	if err != nil {
		svc.logger.Debug("Failed to find worker by ID",
			zap.Int64("id", id),
			zap.Error(err))
		return Entity{}, fmt.Errorf("error finding worker with id %d: %w", id, err)
	}
	return entity, nil
}

func (svc *Service) FindAll(ctx context.Context, spec QuerySpec) ([]ListResponse, error) {
	svc.logger.Debug("Finding workers",
		zap.Int("conditions", len(spec.Conditions)),
		zap.Uint64("limit", spec.Limit),
		zap.Uint64("offset", spec.Offset))

	entities, err := svc.repo.FindAll(ctx, spec)
	if err != nil {
		svc.logger.Error("Failed to find workers", zap.Error(err))
		return nil, fmt.Errorf("error finding workers: %w", err)
	}

	responses := make([]ListResponse, len(entities))
	for i, entity := range entities {
		responses[i] = entity.toListResponse()
	}
	svc.logger.Debug("Found workers", zap.Int("count", len(responses)))
	return responses, nil
}

func (svc *Service) DeleteById(ctx context.Context, id int64) error {
	svc.logger.Info("Deleting worker by ID", zap.Int64("id", id))

	err := svc.repo.DeleteById(ctx, id)
	if err != nil {
		svc.logger.Error("Failed to delete worker by ID",
			zap.Int64("id", id),
			zap.Error(err))
		return fmt.Errorf("error deleting worker with id %d: %w", id, err)
	}

	svc.logger.Info("Worker deleted successfully", zap.Int64("id", id))
	return nil
}
