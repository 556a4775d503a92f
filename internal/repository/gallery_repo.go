package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// GalleryRepository 相册数据访问接口
type GalleryRepository interface {
	Create(ctx context.Context, g *model.Gallery) error
	GetByID(ctx context.Context, id string) (*model.Gallery, error)
	List(ctx context.Context, schoolIDs []string, keyword string, offset, limit int) ([]model.Gallery, int64, error)
	Update(ctx context.Context, g *model.Gallery) error
	Delete(ctx context.Context, id string) error
}

// galleryRepo GalleryRepository 的 GORM 实现
type galleryRepo struct {
	db *gorm.DB
}

// NewGalleryRepo 创建 GalleryRepository 实例
func NewGalleryRepo(db *gorm.DB) GalleryRepository {
	return &galleryRepo{db: db}
}

func (r *galleryRepo) Create(ctx context.Context, g *model.Gallery) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *galleryRepo) GetByID(ctx context.Context, id string) (*model.Gallery, error) {
	var g model.Gallery
	err := r.db.WithContext(ctx).
		Where("gallery_id = ?", id).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *galleryRepo) List(ctx context.Context, schoolIDs []string, keyword string, offset, limit int) ([]model.Gallery, int64, error) {
	var list []model.Gallery
	var total int64

	db := scopeBySchool(r.db.WithContext(ctx).Model(&model.Gallery{}), schoolIDs)
	if keyword != "" {
		db = db.Where("title ILIKE ?", "%"+keyword+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *galleryRepo) Update(ctx context.Context, g *model.Gallery) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *galleryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("gallery_id = ?", id).Delete(&model.Gallery{}).Error
}
