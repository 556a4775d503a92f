package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// StudentListFilters 学生列表过滤条件
type StudentListFilters struct {
	ClassID  string
	ParentID string
	Gender   string
	Keyword  string
}

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	GetByAdmissionNumber(ctx context.Context, number string) (*model.Student, error)
	List(ctx context.Context, schoolIDs []string, filters *StudentListFilters, offset, limit int) ([]model.Student, int64, error)
	ListByParent(ctx context.Context, parentID string) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id string, deletedBy string) error
	Count(ctx context.Context, schoolIDs []string) (int64, error)
	CountByGender(ctx context.Context, schoolIDs []string, gender string) (int64, error)
	CountByAdmissionPrefix(ctx context.Context, prefix string) (int64, error)
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("School").
		Preload("Class").
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("School").
		Where("email = ?", email).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByAdmissionNumber(ctx context.Context, number string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("admission_number = ?", number).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context, schoolIDs []string, filters *StudentListFilters, offset, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	db := scopeBySchool(r.db.WithContext(ctx).Model(&model.Student{}), schoolIDs)
	if filters != nil {
		if filters.ClassID != "" {
			db = db.Where("class_id = ?", filters.ClassID)
		}
		if filters.ParentID != "" {
			db = db.Where("parent_id = ?", filters.ParentID)
		}
		if filters.Gender != "" {
			db = db.Where("gender = ?", filters.Gender)
		}
		if filters.Keyword != "" {
			kw := "%" + filters.Keyword + "%"
			db = db.Where("first_name ILIKE ? OR last_name ILIKE ? OR admission_number ILIKE ?", kw, kw, kw)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("School").Preload("Class").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepo) ListByParent(ctx context.Context, parentID string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Preload("School").
		Preload("Class").
		Where("parent_id = ?", parentID).
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(&model.Student{}).
		Where("student_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("student_id = ?", id).Delete(&model.Student{}).Error
}

func (r *studentRepo) Count(ctx context.Context, schoolIDs []string) (int64, error) {
	var n int64
	err := scopeBySchool(r.db.WithContext(ctx).Model(&model.Student{}), schoolIDs).Count(&n).Error
	return n, err
}

func (r *studentRepo) CountByGender(ctx context.Context, schoolIDs []string, gender string) (int64, error) {
	var n int64
	err := scopeBySchool(r.db.WithContext(ctx).Model(&model.Student{}), schoolIDs).
		Where("gender = ?", gender).
		Count(&n).Error
	return n, err
}

// CountByAdmissionPrefix 统计学籍号前缀下的学生数（含软删除，序号不回收）
func (r *studentRepo) CountByAdmissionPrefix(ctx context.Context, prefix string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Unscoped().Model(&model.Student{}).
		Where("admission_number LIKE ?", prefix+"%").
		Count(&n).Error
	return n, err
}
