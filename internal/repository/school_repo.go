package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// SchoolListFilters 学校列表过滤条件
type SchoolListFilters struct {
	Keyword    string
	SchoolType string
}

// CascadeCounts 级联删除学校时各依赖表的删除行数
type CascadeCounts struct {
	Teachers      int64
	Students      int64
	Classes       int64
	Subjects      int64
	Lessons       int64
	Attendances   int64
	Payments      int64
	Gradings      int64
	Grades        int64
	Announcements int64
	Events        int64
	News          int64
	Galleries     int64
}

// SchoolRepository 学校数据访问接口
type SchoolRepository interface {
	Create(ctx context.Context, school *model.School) error
	GetByID(ctx context.Context, id string) (*model.School, error)
	GetByEmail(ctx context.Context, email string) (*model.School, error)
	List(ctx context.Context, schoolIDs []string, filters *SchoolListFilters, offset, limit int) ([]model.School, int64, error)
	Update(ctx context.Context, school *model.School) error
	CascadeDelete(ctx context.Context, id string, deletedBy string) (*CascadeCounts, error)
	Count(ctx context.Context) (int64, error)
}

// schoolRepo SchoolRepository 的 GORM 实现
type schoolRepo struct {
	db *gorm.DB
}

// NewSchoolRepo 创建 SchoolRepository 实例
func NewSchoolRepo(db *gorm.DB) SchoolRepository {
	return &schoolRepo{db: db}
}

func (r *schoolRepo) Create(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *schoolRepo) GetByID(ctx context.Context, id string) (*model.School, error) {
	var school model.School
	err := r.db.WithContext(ctx).
		Where("school_id = ?", id).
		First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepo) GetByEmail(ctx context.Context, email string) (*model.School, error) {
	var school model.School
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepo) List(ctx context.Context, schoolIDs []string, filters *SchoolListFilters, offset, limit int) ([]model.School, int64, error) {
	var schools []model.School
	var total int64

	db := r.db.WithContext(ctx).Model(&model.School{})
	if len(schoolIDs) > 0 {
		db = db.Where("school_id IN ?", schoolIDs)
	}
	if filters != nil {
		if filters.Keyword != "" {
			db = db.Where("name ILIKE ?", "%"+filters.Keyword+"%")
		}
		if filters.SchoolType != "" {
			db = db.Where("school_type = ?", filters.SchoolType)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&schools).Error; err != nil {
		return nil, 0, err
	}

	return schools, total, nil
}

func (r *schoolRepo) Update(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Save(school).Error
}

// CascadeDelete 在单个事务中删除学校及其全部从属数据
// 删除顺序遵循外键依赖：成绩 → 成绩册 → 考勤 → 课程 → 科目 → 学生 → 班级 → 教师 → ...
func (r *schoolRepo) CascadeDelete(ctx context.Context, id string, deletedBy string) (*CascadeCounts, error) {
	counts := &CascadeCounts{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("grading_id IN (?)",
			tx.Model(&model.Grading{}).Select("grading_id").Where("school_id = ?", id),
		).Delete(&model.Grade{})
		if res.Error != nil {
			return res.Error
		}
		counts.Grades = res.RowsAffected

		res = tx.Where("school_id = ?", id).Delete(&model.Grading{})
		if res.Error != nil {
			return res.Error
		}
		counts.Gradings = res.RowsAffected

		res = tx.Where("school_id = ?", id).Delete(&model.Attendance{})
		if res.Error != nil {
			return res.Error
		}
		counts.Attendances = res.RowsAffected

		res = tx.Where("school_id = ?", id).Delete(&model.Payment{})
		if res.Error != nil {
			return res.Error
		}
		counts.Payments = res.RowsAffected

		res = tx.Where("school_id = ?", id).Delete(&model.Lesson{})
		if res.Error != nil {
			return res.Error
		}
		counts.Lessons = res.RowsAffected

		res = tx.Where("school_id = ?", id).Delete(&model.Subject{})
		if res.Error != nil {
			return res.Error
		}
		counts.Subjects = res.RowsAffected

		res = tx.Where("school_id = ?", id).Delete(&model.Student{})
		if res.Error != nil {
			return res.Error
		}
		counts.Students = res.RowsAffected

		res = tx.Where("school_id = ?", id).Delete(&model.Class{})
		if res.Error != nil {
			return res.Error
		}
		counts.Classes = res.RowsAffected

		res = tx.Where("school_id = ?", id).Delete(&model.Teacher{})
		if res.Error != nil {
			return res.Error
		}
		counts.Teachers = res.RowsAffected

		res = tx.Where("school_id = ?", id).Delete(&model.Announcement{})
		if res.Error != nil {
			return res.Error
		}
		counts.Announcements = res.RowsAffected

		res = tx.Where("school_id = ?", id).Delete(&model.Event{})
		if res.Error != nil {
			return res.Error
		}
		counts.Events = res.RowsAffected

		res = tx.Where("school_id = ?", id).Delete(&model.News{})
		if res.Error != nil {
			return res.Error
		}
		counts.News = res.RowsAffected

		res = tx.Where("school_id = ?", id).Delete(&model.Gallery{})
		if res.Error != nil {
			return res.Error
		}
		counts.Galleries = res.RowsAffected

		// 行政账号随学校一并移除（super 账号 school_id 为 NULL，不受影响）
		if err := tx.Where("school_id = ?", id).Delete(&model.Administration{}).Error; err != nil {
			return err
		}

		deleted := tx.Model(&model.School{}).
			Where("school_id = ?", id).
			Update("deleted_by", deletedBy)
		if deleted.Error != nil {
			return deleted.Error
		}
		return tx.Where("school_id = ?", id).Delete(&model.School{}).Error
	})
	if err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *schoolRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.School{}).Count(&n).Error
	return n, err
}
