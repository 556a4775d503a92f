package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// NewsRepository 新闻数据访问接口
type NewsRepository interface {
	Create(ctx context.Context, n *model.News) error
	GetByID(ctx context.Context, id string) (*model.News, error)
	List(ctx context.Context, schoolIDs []string, keyword string, publishedOnly bool, offset, limit int) ([]model.News, int64, error)
	Update(ctx context.Context, n *model.News) error
	Delete(ctx context.Context, id string) error
}

// newsRepo NewsRepository 的 GORM 实现
type newsRepo struct {
	db *gorm.DB
}

// NewNewsRepo 创建 NewsRepository 实例
func NewNewsRepo(db *gorm.DB) NewsRepository {
	return &newsRepo{db: db}
}

func (r *newsRepo) Create(ctx context.Context, n *model.News) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *newsRepo) GetByID(ctx context.Context, id string) (*model.News, error) {
	var n model.News
	err := r.db.WithContext(ctx).
		Where("news_id = ?", id).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *newsRepo) List(ctx context.Context, schoolIDs []string, keyword string, publishedOnly bool, offset, limit int) ([]model.News, int64, error) {
	var list []model.News
	var total int64

	db := scopeBySchoolOrGlobal(r.db.WithContext(ctx).Model(&model.News{}), schoolIDs)
	if keyword != "" {
		db = db.Where("title ILIKE ?", "%"+keyword+"%")
	}
	if publishedOnly {
		db = db.Where("published = ?", true)
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

func (r *newsRepo) Update(ctx context.Context, n *model.News) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *newsRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("news_id = ?", id).Delete(&model.News{}).Error
}
