package implementation

import (
	"context"
	"errors"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/mapper"
	"ai-salesagent-be/internal/model"
	"ai-salesagent-be/internal/repository/contract"
	"ai-salesagent-be/internal/repository/specification"

	"gorm.io/gorm"
)

type DemoRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DemoMapper
}

func NewDemoRepository(db *gorm.DB) contract.DemoRepository {
	return &DemoRepositoryImpl{
		db:     db,
		mapper: mapper.NewDemoMapper(),
	}
}

func (r *DemoRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DemoRepositoryImpl) Create(ctx context.Context, demo *entity.Demo) error {
	m := r.mapper.ToModel(demo)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*demo = *r.mapper.ToEntity(m)
	return nil
}

func (r *DemoRepositoryImpl) Update(ctx context.Context, demo *entity.Demo) error {
	m := r.mapper.ToModel(demo)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*demo = *r.mapper.ToEntity(m)
	return nil
}

func (r *DemoRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Demo, error) {
	var m model.Demo
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DemoRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Demo, error) {
	var models []*model.Demo
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Demo, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *DemoRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Demo{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
