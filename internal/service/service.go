package service

import (
	"go.uber.org/zap"

	"github.com/Filson-aj/hallmarkacademy-sub000/config"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/repository"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/jwt"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth           AuthService
	School         SchoolService
	Administration AdministrationService
	Teacher        TeacherService
	Student        StudentService
	Parent         ParentService
	Class          ClassService
	Subject        SubjectService
	Lesson         LessonService
	Attendance     AttendanceService
	Payment        PaymentService
	Grading        GradingService
	Announcement   AnnouncementService
	Event          EventService
	News           NewsService
	Gallery        GalleryService
	Stats          StatsService
	Export         ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	attendance := NewAttendanceService(repo, logger)

	return &Service{
		Auth:           NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		School:         NewSchoolService(repo, logger),
		Administration: NewAdministrationService(repo, logger),
		Teacher:        NewTeacherService(repo, logger),
		Student:        NewStudentService(cfg, repo, logger),
		Parent:         NewParentService(repo, logger),
		Class:          NewClassService(repo, logger),
		Subject:        NewSubjectService(repo, logger),
		Lesson:         NewLessonService(repo, logger),
		Attendance:     attendance,
		Payment:        NewPaymentService(repo, logger),
		Grading:        NewGradingService(repo, logger),
		Announcement:   NewAnnouncementService(repo, logger),
		Event:          NewEventService(repo, logger),
		News:           NewNewsService(repo, logger),
		Gallery:        NewGalleryService(repo, logger),
		Stats:          NewStatsService(repo, logger),
		Export:         NewExportService(repo, attendance, logger),
	}
}
