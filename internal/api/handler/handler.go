package handler

import "github.com/Filson-aj/hallmarkacademy-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth           *AuthHandler
	School         *SchoolHandler
	Administration *AdministrationHandler
	Teacher        *TeacherHandler
	Student        *StudentHandler
	Parent         *ParentHandler
	Class          *ClassHandler
	Subject        *SubjectHandler
	Lesson         *LessonHandler
	Attendance     *AttendanceHandler
	Payment        *PaymentHandler
	Grading        *GradingHandler
	Announcement   *AnnouncementHandler
	Event          *EventHandler
	News           *NewsHandler
	Gallery        *GalleryHandler
	Stats          *StatsHandler
	Export         *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:           NewAuthHandler(svc.Auth),
		School:         NewSchoolHandler(svc.School),
		Administration: NewAdministrationHandler(svc.Administration),
		Teacher:        NewTeacherHandler(svc.Teacher),
		Student:        NewStudentHandler(svc.Student),
		Parent:         NewParentHandler(svc.Parent),
		Class:          NewClassHandler(svc.Class),
		Subject:        NewSubjectHandler(svc.Subject),
		Lesson:         NewLessonHandler(svc.Lesson),
		Attendance:     NewAttendanceHandler(svc.Attendance),
		Payment:        NewPaymentHandler(svc.Payment),
		Grading:        NewGradingHandler(svc.Grading),
		Announcement:   NewAnnouncementHandler(svc.Announcement),
		Event:          NewEventHandler(svc.Event),
		News:           NewNewsHandler(svc.News),
		Gallery:        NewGalleryHandler(svc.Gallery),
		Stats:          NewStatsHandler(svc.Stats),
		Export:         NewExportHandler(svc.Export),
	}
}
