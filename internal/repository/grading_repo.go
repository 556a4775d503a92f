package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// GradingListFilters 成绩册列表过滤条件
type GradingListFilters struct {
	Session       string
	Term          string
	PublishedOnly bool
}

// GradingRepository 成绩册数据访问接口
type GradingRepository interface {
	Create(ctx context.Context, grading *model.Grading) error
	GetByID(ctx context.Context, id string) (*model.Grading, error)
	GetBySchoolSessionTerm(ctx context.Context, schoolID, session, term string) (*model.Grading, error)
	List(ctx context.Context, schoolIDs []string, filters *GradingListFilters, offset, limit int) ([]model.Grading, int64, error)
	Update(ctx context.Context, grading *model.Grading) error
	CascadeDelete(ctx context.Context, id string) (int64, error)
	CountGrades(ctx context.Context, gradingID string) (int64, error)
	UpsertGrades(ctx context.Context, grades []model.Grade) error
	ListGrades(ctx context.Context, gradingID string, studentIDs []string) ([]model.Grade, error)
}

// gradingRepo GradingRepository 的 GORM 实现
type gradingRepo struct {
	db *gorm.DB
}

// NewGradingRepo 创建 GradingRepository 实例
func NewGradingRepo(db *gorm.DB) GradingRepository {
	return &gradingRepo{db: db}
}

func (r *gradingRepo) Create(ctx context.Context, grading *model.Grading) error {
	return r.db.WithContext(ctx).Create(grading).Error
}

func (r *gradingRepo) GetByID(ctx context.Context, id string) (*model.Grading, error) {
	var grading model.Grading
	err := r.db.WithContext(ctx).
		Preload("School").
		Where("grading_id = ?", id).
		First(&grading).Error
	if err != nil {
		return nil, err
	}
	return &grading, nil
}

func (r *gradingRepo) GetBySchoolSessionTerm(ctx context.Context, schoolID, session, term string) (*model.Grading, error) {
	var grading model.Grading
	err := r.db.WithContext(ctx).
		Where("school_id = ? AND session = ? AND term = ?", schoolID, session, term).
		First(&grading).Error
	if err != nil {
		return nil, err
	}
	return &grading, nil
}

func (r *gradingRepo) List(ctx context.Context, schoolIDs []string, filters *GradingListFilters, offset, limit int) ([]model.Grading, int64, error) {
	var gradings []model.Grading
	var total int64

	db := scopeBySchool(r.db.WithContext(ctx).Model(&model.Grading{}), schoolIDs)
	if filters != nil {
		if filters.Session != "" {
			db = db.Where("session = ?", filters.Session)
		}
		if filters.Term != "" {
			db = db.Where("term = ?", filters.Term)
		}
		if filters.PublishedOnly {
			db = db.Where("published = ?", true)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("School").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&gradings).Error; err != nil {
		return nil, 0, err
	}

	return gradings, total, nil
}

func (r *gradingRepo) Update(ctx context.Context, grading *model.Grading) error {
	return r.db.WithContext(ctx).Save(grading).Error
}

// CascadeDelete 在事务中删除成绩册及其全部成绩，返回删除的成绩条数
func (r *gradingRepo) CascadeDelete(ctx context.Context, id string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("grading_id = ?", id).Delete(&model.Grade{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		return tx.Where("grading_id = ?", id).Delete(&model.Grading{}).Error
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *gradingRepo) CountGrades(ctx context.Context, gradingID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Grade{}).
		Where("grading_id = ?", gradingID).
		Count(&n).Error
	return n, err
}

// UpsertGrades 批量写入成绩；同一 (grading, student, subject) 已存在时覆盖分数
func (r *gradingRepo) UpsertGrades(ctx context.Context, grades []model.Grade) error {
	if len(grades) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "grading_id"}, {Name: "student_id"}, {Name: "subject_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"ca1", "ca2", "exam", "total", "remark",
				"affective", "psychomotor", "updated_at", "updated_by",
			}),
		}).
		Create(&grades).Error
}

// ListGrades 查询成绩明细；studentIDs 非空时仅返回给定学生的成绩
func (r *gradingRepo) ListGrades(ctx context.Context, gradingID string, studentIDs []string) ([]model.Grade, error) {
	var grades []model.Grade

	db := r.db.WithContext(ctx).
		Where("grading_id = ?", gradingID)
	if len(studentIDs) > 0 {
		db = db.Where("student_id IN ?", studentIDs)
	}

	err := db.Preload("Student").Preload("Subject").
		Order("created_at ASC").
		Find(&grades).Error
	return grades, err
}
