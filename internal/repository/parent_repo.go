package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// ParentListFilters 家长列表过滤条件
type ParentListFilters struct {
	Keyword string
}

// ParentRepository 家长数据访问接口
// 家长不直接挂学校，按子女所在学校的交集做范围过滤
type ParentRepository interface {
	Create(ctx context.Context, parent *model.Parent) error
	GetByID(ctx context.Context, id string) (*model.Parent, error)
	GetByEmail(ctx context.Context, email string) (*model.Parent, error)
	List(ctx context.Context, schoolIDs []string, filters *ParentListFilters, offset, limit int) ([]model.Parent, int64, error)
	Update(ctx context.Context, parent *model.Parent) error
	Delete(ctx context.Context, id string, deletedBy string) error
	Count(ctx context.Context, schoolIDs []string) (int64, error)
}

// parentRepo ParentRepository 的 GORM 实现
type parentRepo struct {
	db *gorm.DB
}

// NewParentRepo 创建 ParentRepository 实例
func NewParentRepo(db *gorm.DB) ParentRepository {
	return &parentRepo{db: db}
}

func (r *parentRepo) Create(ctx context.Context, parent *model.Parent) error {
	return r.db.WithContext(ctx).Create(parent).Error
}

func (r *parentRepo) GetByID(ctx context.Context, id string) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.WithContext(ctx).
		Preload("Children").
		Where("parent_id = ?", id).
		First(&parent).Error
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *parentRepo) GetByEmail(ctx context.Context, email string) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&parent).Error
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

// scoped 将查询限定到子女在给定学校集合内的家长
func (r *parentRepo) scoped(ctx context.Context, schoolIDs []string) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Parent{})
	if len(schoolIDs) == 0 {
		return db
	}
	return db.Where("parent_id IN (?)",
		r.db.Model(&model.Student{}).Select("parent_id").
			Where("parent_id IS NOT NULL AND school_id IN ?", schoolIDs),
	)
}

func (r *parentRepo) List(ctx context.Context, schoolIDs []string, filters *ParentListFilters, offset, limit int) ([]model.Parent, int64, error) {
	var parents []model.Parent
	var total int64

	db := r.scoped(ctx, schoolIDs)
	if filters != nil && filters.Keyword != "" {
		kw := "%" + filters.Keyword + "%"
		db = db.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", kw, kw, kw)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Children").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&parents).Error; err != nil {
		return nil, 0, err
	}

	return parents, total, nil
}

func (r *parentRepo) Update(ctx context.Context, parent *model.Parent) error {
	return r.db.WithContext(ctx).Save(parent).Error
}

func (r *parentRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(&model.Parent{}).
		Where("parent_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("parent_id = ?", id).Delete(&model.Parent{}).Error
}

func (r *parentRepo) Count(ctx context.Context, schoolIDs []string) (int64, error) {
	var n int64
	err := r.scoped(ctx, schoolIDs).Count(&n).Error
	return n, err
}
