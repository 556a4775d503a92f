package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	School         SchoolRepository
	Administration AdministrationRepository
	Teacher        TeacherRepository
	Student        StudentRepository
	Parent         ParentRepository
	Class          ClassRepository
	Subject        SubjectRepository
	Lesson         LessonRepository
	Attendance     AttendanceRepository
	Payment        PaymentRepository
	Grading        GradingRepository
	Announcement   AnnouncementRepository
	Event          EventRepository
	News           NewsRepository
	Gallery        GalleryRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		School:         NewSchoolRepo(db),
		Administration: NewAdministrationRepo(db),
		Teacher:        NewTeacherRepo(db),
		Student:        NewStudentRepo(db),
		Parent:         NewParentRepo(db),
		Class:          NewClassRepo(db),
		Subject:        NewSubjectRepo(db),
		Lesson:         NewLessonRepo(db),
		Attendance:     NewAttendanceRepo(db),
		Payment:        NewPaymentRepo(db),
		Grading:        NewGradingRepo(db),
		Announcement:   NewAnnouncementRepo(db),
		Event:          NewEventRepo(db),
		News:           NewNewsRepo(db),
		Gallery:        NewGalleryRepo(db),
		db:             db,
	}
}

// BeginTx 开启事务，返回事务句柄
func (r *Repository) BeginTx() *gorm.DB {
	return r.db.Begin()
}

// WithTx 基于事务句柄创建新的 Repository 聚合
// 用于跨 Repository 的原子写操作
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction 在单个事务中执行 fn，fn 返回错误则整体回滚
// db 为空时退化为直接执行（内存实现无事务语义）
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// ── 学校范围过滤 ──

// scopeBySchool 将查询限定到给定学校集合；集合为空表示全局视角
func scopeBySchool(db *gorm.DB, schoolIDs []string) *gorm.DB {
	if len(schoolIDs) == 0 {
		return db
	}
	return db.Where("school_id IN ?", schoolIDs)
}

// scopeBySchoolOrGlobal 同 scopeBySchool，但额外包含 school_id 为 NULL 的全局记录
func scopeBySchoolOrGlobal(db *gorm.DB, schoolIDs []string) *gorm.DB {
	if len(schoolIDs) == 0 {
		return db
	}
	return db.Where("school_id IN ? OR school_id IS NULL", schoolIDs)
}
