package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	ErrAttendanceNotOwnLesson = errors.New("教师只能为自己的课程点名")
	ErrStudentNotInLesson     = errors.New("学生不属于该课程的班级")
)

// AttendanceService 考勤业务接口
// 点名由教师（本人课程）或管理角色发起，重复点名走 upsert 覆盖
type AttendanceService interface {
	Mark(ctx context.Context, p *Principal, req *dto.MarkAttendanceRequest) (*dto.MarkAttendanceResponse, error)
	List(ctx context.Context, p *Principal, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, int64, error)
	Summary(ctx context.Context, p *Principal, req *dto.AttendanceSummaryRequest) (*dto.AttendanceSummaryResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ────────────────────── Mark ──────────────────────

func (s *attendanceService) Mark(ctx context.Context, p *Principal, req *dto.MarkAttendanceRequest) (*dto.MarkAttendanceResponse, error) {
	if p.Role != RoleTeacher && !p.CanManage() {
		return nil, ErrForbidden
	}

	lesson, err := s.repo.Lesson.GetByID(ctx, req.LessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		s.logger.Error("查询课程安排失败", zap.Error(err))
		return nil, err
	}

	switch {
	case p.Role == RoleTeacher:
		if lesson.TeacherID != p.UserID {
			return nil, ErrAttendanceNotOwnLesson
		}
	case !p.IsGlobal():
		if lesson.SchoolID != p.SchoolID {
			return nil, ErrForbidden
		}
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, err
	}

	// 校验每个学生属于课程班级
	records := make([]model.Attendance, 0, len(req.Records))
	for _, entry := range req.Records {
		student, err := s.repo.Student.GetByID(ctx, entry.StudentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStudentNotFound
			}
			return nil, err
		}
		if student.ClassID == nil || *student.ClassID != lesson.ClassID {
			return nil, ErrStudentNotInLesson
		}

		rec := model.Attendance{
			Date:      date,
			Present:   entry.Present,
			StudentID: entry.StudentID,
			LessonID:  lesson.LessonID,
			SchoolID:  lesson.SchoolID,
		}
		rec.CreatedBy = &p.UserID
		rec.UpdatedBy = &p.UserID
		records = append(records, rec)
	}

	if err := s.repo.Attendance.UpsertBatch(ctx, records); err != nil {
		s.logger.Error("写入考勤失败", zap.String("lesson_id", req.LessonID), zap.Error(err))
		return nil, err
	}

	return &dto.MarkAttendanceResponse{Marked: len(records)}, nil
}

// ────────────────────── List ──────────────────────

func (s *attendanceService) List(ctx context.Context, p *Principal, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}

	filters := &repository.AttendanceListFilters{
		StudentID: req.StudentID,
		LessonID:  req.LessonID,
	}
	if req.DateFrom != "" {
		if from, err := time.Parse(dateLayout, req.DateFrom); err == nil {
			filters.DateFrom = &from
		}
	}
	if req.DateTo != "" {
		if to, err := time.Parse(dateLayout, req.DateTo); err == nil {
			filters.DateTo = &to
		}
	}
	// 学生只看自己的考勤
	if p.Role == RoleStudent {
		filters.StudentID = p.UserID
	}

	records, total, err := s.repo.Attendance.List(ctx, scope, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出考勤失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		rec := &records[i]
		resp := dto.AttendanceResponse{
			ID:      rec.AttendanceID,
			Date:    rec.Date.Format(dateLayout),
			Present: rec.Present,
		}
		if rec.Student != nil {
			resp.Student = &dto.StudentBrief{
				ID:              rec.Student.StudentID,
				Name:            rec.Student.FirstName + " " + rec.Student.LastName,
				AdmissionNumber: rec.Student.AdmissionNumber,
			}
		}
		if rec.Lesson != nil {
			resp.Lesson = rec.Lesson.Name
		}
		result = append(result, resp)
	}
	return result, total, nil
}

// ────────────────────── Summary ──────────────────────

func (s *attendanceService) Summary(ctx context.Context, p *Principal, req *dto.AttendanceSummaryRequest) (*dto.AttendanceSummaryResponse, error) {
	if p.Role == RoleStudent || p.Role == RoleParent {
		return nil, ErrForbidden
	}
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}

	var from, to *time.Time
	if req.DateFrom != "" {
		if t, err := time.Parse(dateLayout, req.DateFrom); err == nil {
			from = &t
		}
	}
	if req.DateTo != "" {
		if t, err := time.Parse(dateLayout, req.DateTo); err == nil {
			to = &t
		}
	}

	rows, err := s.repo.Attendance.CountByStudents(ctx, scope, req.ClassID, from, to)
	if err != nil {
		s.logger.Error("考勤统计失败", zap.Error(err))
		return nil, err
	}

	summary := &dto.AttendanceSummaryResponse{}
	for _, row := range rows {
		summary.Total += row.Total
		summary.Present += row.Present

		student, err := s.repo.Student.GetByID(ctx, row.StudentID)
		if err != nil {
			continue
		}
		rate := 0.0
		if row.Total > 0 {
			rate = float64(row.Present) / float64(row.Total)
		}
		summary.Students = append(summary.Students, dto.StudentAttendanceRow{
			Student: dto.StudentBrief{
				ID:              student.StudentID,
				Name:            student.FirstName + " " + student.LastName,
				AdmissionNumber: student.AdmissionNumber,
			},
			Total:   row.Total,
			Present: row.Present,
			Rate:    rate,
		})
	}
	summary.Absent = summary.Total - summary.Present
	if summary.Total > 0 {
		summary.Rate = float64(summary.Present) / float64(summary.Total)
	}

	return summary, nil
}
