package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/repository"
)

// ── 课程安排模块业务错误 ──

var (
	ErrLessonNotFound  = errors.New("课程安排不存在")
	ErrLessonCrossSite = errors.New("科目、班级与教师必须属于同一所学校")
	ErrLessonTimeOrder = errors.New("结束时间必须晚于开始时间")
)

// LessonService 课程安排业务接口
// 一节课绑定 科目 × 班级 × 教师，三者必须同校
type LessonService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateLessonRequest) (*dto.LessonResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.LessonResponse, error)
	List(ctx context.Context, p *Principal, req *dto.LessonListRequest) ([]dto.LessonResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error)
	Delete(ctx context.Context, p *Principal, id string) error
}

type lessonService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLessonService 创建 LessonService 实例
func NewLessonService(repo *repository.Repository, logger *zap.Logger) LessonService {
	return &lessonService{repo: repo, logger: logger}
}

func (s *lessonService) Create(ctx context.Context, p *Principal, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}
	if req.EndTime <= req.StartTime {
		return nil, ErrLessonTimeOrder
	}

	subject, err := s.repo.Subject.GetByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	class, err := s.repo.Class.GetByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	teacher, err := s.repo.Teacher.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	// 三方同校校验
	if subject.SchoolID != class.SchoolID || class.SchoolID != teacher.SchoolID {
		return nil, ErrLessonCrossSite
	}
	if !p.IsGlobal() && subject.SchoolID != p.SchoolID {
		return nil, ErrForbidden
	}

	lesson := &model.Lesson{
		Name:      req.Name,
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		SubjectID: req.SubjectID,
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
		SchoolID:  subject.SchoolID,
	}
	lesson.CreatedBy = &p.UserID
	lesson.UpdatedBy = &p.UserID

	if err := s.repo.Lesson.Create(ctx, lesson); err != nil {
		s.logger.Error("创建课程安排失败", zap.Error(err))
		return nil, err
	}

	return toLessonResponse(lesson), nil
}

func (s *lessonService) GetByID(ctx context.Context, p *Principal, id string) (*dto.LessonResponse, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		s.logger.Error("查询课程安排失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !inScope(scope, lesson.SchoolID) {
		return nil, ErrForbidden
	}

	return toLessonResponse(lesson), nil
}

func (s *lessonService) List(ctx context.Context, p *Principal, req *dto.LessonListRequest) ([]dto.LessonResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}
	if p.IsGlobal() && req.SchoolID != "" {
		scope = []string{req.SchoolID}
	}

	filters := &repository.LessonListFilters{
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
		Day:       req.Day,
	}
	// 教师只看自己的课表
	if p.Role == RoleTeacher {
		filters.TeacherID = p.UserID
	}

	lessons, total, err := s.repo.Lesson.List(ctx, scope, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出课程安排失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		result = append(result, *toLessonResponse(&lessons[i]))
	}
	return result, total, nil
}

func (s *lessonService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		s.logger.Error("查询课程安排失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() && lesson.SchoolID != p.SchoolID {
		return nil, ErrForbidden
	}

	if req.SubjectID != nil {
		subject, err := s.repo.Subject.GetByID(ctx, *req.SubjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSubjectNotFound
			}
			return nil, err
		}
		if subject.SchoolID != lesson.SchoolID {
			return nil, ErrLessonCrossSite
		}
		lesson.SubjectID = *req.SubjectID
	}
	if req.TeacherID != nil {
		teacher, err := s.repo.Teacher.GetByID(ctx, *req.TeacherID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeacherNotFound
			}
			return nil, err
		}
		if teacher.SchoolID != lesson.SchoolID {
			return nil, ErrLessonCrossSite
		}
		lesson.TeacherID = *req.TeacherID
	}
	if req.Name != nil {
		lesson.Name = *req.Name
	}
	if req.Day != nil {
		lesson.Day = *req.Day
	}
	if req.StartTime != nil {
		lesson.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		lesson.EndTime = *req.EndTime
	}
	if lesson.EndTime <= lesson.StartTime {
		return nil, ErrLessonTimeOrder
	}
	lesson.UpdatedBy = &p.UserID

	if err := s.repo.Lesson.Update(ctx, lesson); err != nil {
		s.logger.Error("更新课程安排失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toLessonResponse(lesson), nil
}

func (s *lessonService) Delete(ctx context.Context, p *Principal, id string) error {
	if !p.CanManage() {
		return ErrForbidden
	}

	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLessonNotFound
		}
		s.logger.Error("查询课程安排失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if !p.IsGlobal() && lesson.SchoolID != p.SchoolID {
		return ErrForbidden
	}

	if err := s.repo.Lesson.Delete(ctx, id, p.UserID); err != nil {
		s.logger.Error("删除课程安排失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toLessonResponse(lesson *model.Lesson) *dto.LessonResponse {
	resp := &dto.LessonResponse{
		ID:        lesson.LessonID,
		Name:      lesson.Name,
		Day:       lesson.Day,
		StartTime: lesson.StartTime,
		EndTime:   lesson.EndTime,
		CreatedAt: lesson.CreatedAt.Format(timeLayout),
	}
	if lesson.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: lesson.Subject.SubjectID, Name: lesson.Subject.Name}
	}
	if lesson.Class != nil {
		resp.Class = &dto.ClassBrief{ID: lesson.Class.ClassID, Name: lesson.Class.Name}
	}
	if lesson.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{
			ID:   lesson.Teacher.TeacherID,
			Name: lesson.Teacher.FirstName + " " + lesson.Teacher.LastName,
		}
	}
	return resp
}
