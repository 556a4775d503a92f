package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// AttendanceListFilters 考勤列表过滤条件
type AttendanceListFilters struct {
	StudentID string
	LessonID  string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// StudentAttendanceCount 按学生聚合的考勤计数
type StudentAttendanceCount struct {
	StudentID string
	Total     int64
	Present   int64
}

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	UpsertBatch(ctx context.Context, records []model.Attendance) error
	List(ctx context.Context, schoolIDs []string, filters *AttendanceListFilters, offset, limit int) ([]model.Attendance, int64, error)
	CountByStudents(ctx context.Context, schoolIDs []string, classID string, from, to *time.Time) ([]StudentAttendanceCount, error)
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

// UpsertBatch 批量写入考勤；同一 (student, lesson, date) 重复打卡时覆盖 present
func (r *attendanceRepo) UpsertBatch(ctx context.Context, records []model.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "lesson_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"present", "updated_at", "updated_by"}),
		}).
		Create(&records).Error
}

func (r *attendanceRepo) List(ctx context.Context, schoolIDs []string, filters *AttendanceListFilters, offset, limit int) ([]model.Attendance, int64, error) {
	var records []model.Attendance
	var total int64

	db := scopeBySchool(r.db.WithContext(ctx).Model(&model.Attendance{}), schoolIDs)
	if filters != nil {
		if filters.StudentID != "" {
			db = db.Where("student_id = ?", filters.StudentID)
		}
		if filters.LessonID != "" {
			db = db.Where("lesson_id = ?", filters.LessonID)
		}
		if filters.DateFrom != nil {
			db = db.Where("date >= ?", *filters.DateFrom)
		}
		if filters.DateTo != nil {
			db = db.Where("date <= ?", *filters.DateTo)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Student").Preload("Lesson").
		Offset(offset).Limit(limit).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// CountByStudents 按学生聚合 总数/出勤数，用于考勤统计
func (r *attendanceRepo) CountByStudents(ctx context.Context, schoolIDs []string, classID string, from, to *time.Time) ([]StudentAttendanceCount, error) {
	var rows []StudentAttendanceCount

	db := scopeBySchool(r.db.WithContext(ctx).Model(&model.Attendance{}), schoolIDs).
		Select("attendances.student_id AS student_id, COUNT(*) AS total, COUNT(*) FILTER (WHERE present) AS present")
	if classID != "" {
		db = db.Joins("JOIN students ON students.student_id = attendances.student_id").
			Where("students.class_id = ?", classID)
	}
	if from != nil {
		db = db.Where("attendances.date >= ?", *from)
	}
	if to != nil {
		db = db.Where("attendances.date <= ?", *to)
	}

	err := db.Group("attendances.student_id").Scan(&rows).Error
	return rows, err
}
