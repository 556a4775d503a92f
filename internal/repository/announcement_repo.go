package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// AnnouncementRepository 公告数据访问接口
type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	List(ctx context.Context, schoolIDs []string, keyword string, offset, limit int) ([]model.Announcement, int64, error)
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, schoolIDs []string) (int64, error)
}

// announcementRepo AnnouncementRepository 的 GORM 实现
type announcementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo 创建 AnnouncementRepository 实例
func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *announcementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	var a model.Announcement
	err := r.db.WithContext(ctx).
		Where("announcement_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepo) List(ctx context.Context, schoolIDs []string, keyword string, offset, limit int) ([]model.Announcement, int64, error) {
	var list []model.Announcement
	var total int64

	db := scopeBySchoolOrGlobal(r.db.WithContext(ctx).Model(&model.Announcement{}), schoolIDs)
	if keyword != "" {
		db = db.Where("title ILIKE ?", "%"+keyword+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("date DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *announcementRepo) Update(ctx context.Context, a *model.Announcement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *announcementRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("announcement_id = ?", id).Delete(&model.Announcement{}).Error
}

func (r *announcementRepo) Count(ctx context.Context, schoolIDs []string) (int64, error) {
	var n int64
	err := scopeBySchoolOrGlobal(r.db.WithContext(ctx).Model(&model.Announcement{}), schoolIDs).Count(&n).Error
	return n, err
}
