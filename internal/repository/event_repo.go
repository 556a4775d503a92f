package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// EventRepository 活动数据访问接口
type EventRepository interface {
	Create(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, schoolIDs []string, keyword string, offset, limit int) ([]model.Event, int64, error)
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, schoolIDs []string) (int64, error)
}

// eventRepo EventRepository 的 GORM 实现
type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	err := r.db.WithContext(ctx).
		Where("event_id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepo) List(ctx context.Context, schoolIDs []string, keyword string, offset, limit int) ([]model.Event, int64, error) {
	var list []model.Event
	var total int64

	db := scopeBySchoolOrGlobal(r.db.WithContext(ctx).Model(&model.Event{}), schoolIDs)
	if keyword != "" {
		db = db.Where("title ILIKE ?", "%"+keyword+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("start_time DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *eventRepo) Update(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("event_id = ?", id).Delete(&model.Event{}).Error
}

func (r *eventRepo) Count(ctx context.Context, schoolIDs []string) (int64, error) {
	var n int64
	err := scopeBySchoolOrGlobal(r.db.WithContext(ctx).Model(&model.Event{}), schoolIDs).Count(&n).Error
	return n, err
}
