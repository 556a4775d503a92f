package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// AdministrationListFilters 行政账号列表过滤条件
type AdministrationListFilters struct {
	Role    string
	Keyword string
}

// AdministrationRepository 行政账号数据访问接口
type AdministrationRepository interface {
	Create(ctx context.Context, admin *model.Administration) error
	GetByID(ctx context.Context, id string) (*model.Administration, error)
	GetByEmail(ctx context.Context, email string) (*model.Administration, error)
	List(ctx context.Context, schoolIDs []string, filters *AdministrationListFilters, offset, limit int) ([]model.Administration, int64, error)
	Update(ctx context.Context, admin *model.Administration) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// administrationRepo AdministrationRepository 的 GORM 实现
type administrationRepo struct {
	db *gorm.DB
}

// NewAdministrationRepo 创建 AdministrationRepository 实例
func NewAdministrationRepo(db *gorm.DB) AdministrationRepository {
	return &administrationRepo{db: db}
}

func (r *administrationRepo) Create(ctx context.Context, admin *model.Administration) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *administrationRepo) GetByID(ctx context.Context, id string) (*model.Administration, error) {
	var admin model.Administration
	err := r.db.WithContext(ctx).
		Preload("School").
		Where("admin_id = ?", id).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *administrationRepo) GetByEmail(ctx context.Context, email string) (*model.Administration, error) {
	var admin model.Administration
	err := r.db.WithContext(ctx).
		Preload("School").
		Where("email = ?", email).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *administrationRepo) List(ctx context.Context, schoolIDs []string, filters *AdministrationListFilters, offset, limit int) ([]model.Administration, int64, error) {
	var admins []model.Administration
	var total int64

	db := scopeBySchool(r.db.WithContext(ctx).Model(&model.Administration{}), schoolIDs)
	if filters != nil {
		if filters.Role != "" {
			db = db.Where("role = ?", filters.Role)
		}
		if filters.Keyword != "" {
			db = db.Where("username ILIKE ? OR email ILIKE ?", "%"+filters.Keyword+"%", "%"+filters.Keyword+"%")
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("School").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&admins).Error; err != nil {
		return nil, 0, err
	}

	return admins, total, nil
}

func (r *administrationRepo) Update(ctx context.Context, admin *model.Administration) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

func (r *administrationRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(&model.Administration{}).
		Where("admin_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("admin_id = ?", id).Delete(&model.Administration{}).Error
}
