package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// ClassListFilters 班级列表过滤条件
type ClassListFilters struct {
	Keyword string
}

// ClassRepository 班级数据访问接口
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	GetByID(ctx context.Context, id string) (*model.Class, error)
	GetByName(ctx context.Context, schoolID, name string) (*model.Class, error)
	List(ctx context.Context, schoolIDs []string, filters *ClassListFilters, offset, limit int) ([]model.Class, int64, error)
	Update(ctx context.Context, class *model.Class) error
	Delete(ctx context.Context, id string, deletedBy string) error
	Count(ctx context.Context, schoolIDs []string) (int64, error)
	CountStudents(ctx context.Context, classID string) (int64, error)
}

// classRepo ClassRepository 的 GORM 实现
type classRepo struct {
	db *gorm.DB
}

// NewClassRepo 创建 ClassRepository 实例
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) Create(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Preload("School").
		Preload("Formmaster").
		Where("class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) GetByName(ctx context.Context, schoolID, name string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("school_id = ? AND name = ?", schoolID, name).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) List(ctx context.Context, schoolIDs []string, filters *ClassListFilters, offset, limit int) ([]model.Class, int64, error) {
	var classes []model.Class
	var total int64

	db := scopeBySchool(r.db.WithContext(ctx).Model(&model.Class{}), schoolIDs)
	if filters != nil && filters.Keyword != "" {
		db = db.Where("name ILIKE ?", "%"+filters.Keyword+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("School").Preload("Formmaster").
		Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&classes).Error; err != nil {
		return nil, 0, err
	}

	return classes, total, nil
}

func (r *classRepo) Update(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *classRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(&model.Class{}).
		Where("class_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("class_id = ?", id).Delete(&model.Class{}).Error
}

func (r *classRepo) Count(ctx context.Context, schoolIDs []string) (int64, error) {
	var n int64
	err := scopeBySchool(r.db.WithContext(ctx).Model(&model.Class{}), schoolIDs).Count(&n).Error
	return n, err
}

func (r *classRepo) CountStudents(ctx context.Context, classID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("class_id = ?", classID).
		Count(&n).Error
	return n, err
}
