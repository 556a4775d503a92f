package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// LessonListFilters 课程安排列表过滤条件
type LessonListFilters struct {
	ClassID   string
	TeacherID string
	Day       string
}

// LessonRepository 课程安排数据访问接口
type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	GetByID(ctx context.Context, id string) (*model.Lesson, error)
	List(ctx context.Context, schoolIDs []string, filters *LessonListFilters, offset, limit int) ([]model.Lesson, int64, error)
	Update(ctx context.Context, lesson *model.Lesson) error
	Delete(ctx context.Context, id string, deletedBy string) error
	Count(ctx context.Context, schoolIDs []string) (int64, error)
}

// lessonRepo LessonRepository 的 GORM 实现
type lessonRepo struct {
	db *gorm.DB
}

// NewLessonRepo 创建 LessonRepository 实例
func NewLessonRepo(db *gorm.DB) LessonRepository {
	return &lessonRepo{db: db}
}

func (r *lessonRepo) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepo) GetByID(ctx context.Context, id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Class").
		Preload("Teacher").
		Where("lesson_id = ?", id).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) List(ctx context.Context, schoolIDs []string, filters *LessonListFilters, offset, limit int) ([]model.Lesson, int64, error) {
	var lessons []model.Lesson
	var total int64

	db := scopeBySchool(r.db.WithContext(ctx).Model(&model.Lesson{}), schoolIDs)
	if filters != nil {
		if filters.ClassID != "" {
			db = db.Where("class_id = ?", filters.ClassID)
		}
		if filters.TeacherID != "" {
			db = db.Where("teacher_id = ?", filters.TeacherID)
		}
		if filters.Day != "" {
			db = db.Where("day = ?", filters.Day)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Subject").Preload("Class").Preload("Teacher").
		Offset(offset).Limit(limit).
		Order("day ASC, start_time ASC").
		Find(&lessons).Error; err != nil {
		return nil, 0, err
	}

	return lessons, total, nil
}

func (r *lessonRepo) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Save(lesson).Error
}

func (r *lessonRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(&model.Lesson{}).
		Where("lesson_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("lesson_id = ?", id).Delete(&model.Lesson{}).Error
}

func (r *lessonRepo) Count(ctx context.Context, schoolIDs []string) (int64, error) {
	var n int64
	err := scopeBySchool(r.db.WithContext(ctx).Model(&model.Lesson{}), schoolIDs).Count(&n).Error
	return n, err
}
