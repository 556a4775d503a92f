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

// ── 科目模块业务错误 ──

var (
	ErrSubjectNotFound    = errors.New("科目不存在")
	ErrSubjectNameExists  = errors.New("科目名称在该学校已存在")
	ErrTeacherNotInSchool = errors.New("教师不属于该学校")
)

// SubjectService 科目业务接口
// teacher 角色列表时自动限定为自己任教的科目
type SubjectService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.SubjectResponse, error)
	List(ctx context.Context, p *Principal, req *dto.SubjectListRequest) ([]dto.SubjectResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, p *Principal, id string) error
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

func (s *subjectService) Create(ctx context.Context, p *Principal, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	schoolID, err := resolveTargetSchool(p, req.SchoolID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.School.GetByID(ctx, schoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, err
	}

	existing, err := s.repo.Subject.GetByName(ctx, schoolID, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询科目失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrSubjectNameExists
	}

	if req.TeacherID != nil {
		if err := s.checkTeacher(ctx, *req.TeacherID, schoolID); err != nil {
			return nil, err
		}
	}

	subject := &model.Subject{
		Name:      req.Name,
		Category:  req.Category,
		SchoolID:  schoolID,
		TeacherID: req.TeacherID,
	}
	subject.CreatedBy = &p.UserID
	subject.UpdatedBy = &p.UserID

	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("创建科目失败", zap.Error(err))
		return nil, err
	}

	return toSubjectResponse(subject), nil
}

func (s *subjectService) GetByID(ctx context.Context, p *Principal, id string) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !inScope(scope, subject.SchoolID) {
		return nil, ErrForbidden
	}

	return toSubjectResponse(subject), nil
}

func (s *subjectService) List(ctx context.Context, p *Principal, req *dto.SubjectListRequest) ([]dto.SubjectResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}
	if p.IsGlobal() && req.SchoolID != "" {
		scope = []string{req.SchoolID}
	}

	filters := &repository.SubjectListFilters{
		TeacherID: req.TeacherID,
		Keyword:   req.Keyword,
	}
	// 教师只看自己任教的科目
	if p.Role == RoleTeacher {
		filters.TeacherID = p.UserID
	}

	subjects, total, err := s.repo.Subject.List(ctx, scope, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出科目失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, *toSubjectResponse(&subjects[i]))
	}
	return result, total, nil
}

func (s *subjectService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() && subject.SchoolID != p.SchoolID {
		return nil, ErrForbidden
	}

	if req.Name != nil && *req.Name != subject.Name {
		existing, err := s.repo.Subject.GetByName(ctx, subject.SchoolID, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrSubjectNameExists
		}
		subject.Name = *req.Name
	}
	if req.TeacherID != nil {
		if err := s.checkTeacher(ctx, *req.TeacherID, subject.SchoolID); err != nil {
			return nil, err
		}
		subject.TeacherID = req.TeacherID
	}
	if req.Category != nil {
		subject.Category = *req.Category
	}
	subject.UpdatedBy = &p.UserID

	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Error("更新科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSubjectResponse(subject), nil
}

func (s *subjectService) Delete(ctx context.Context, p *Principal, id string) error {
	if !p.CanManage() {
		return ErrForbidden
	}

	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if !p.IsGlobal() && subject.SchoolID != p.SchoolID {
		return ErrForbidden
	}

	if err := s.repo.Subject.Delete(ctx, id, p.UserID); err != nil {
		s.logger.Error("删除科目失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *subjectService) checkTeacher(ctx context.Context, teacherID, schoolID string) error {
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}
	if teacher.SchoolID != schoolID {
		return ErrTeacherNotInSchool
	}
	return nil
}

func toSubjectResponse(subject *model.Subject) *dto.SubjectResponse {
	resp := &dto.SubjectResponse{
		ID:        subject.SubjectID,
		Name:      subject.Name,
		Category:  subject.Category,
		CreatedAt: subject.CreatedAt.Format(timeLayout),
	}
	if subject.School != nil {
		resp.School = &dto.SchoolBrief{ID: subject.School.SchoolID, Name: subject.School.Name}
	}
	if subject.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{
			ID:   subject.Teacher.TeacherID,
			Name: subject.Teacher.FirstName + " " + subject.Teacher.LastName,
		}
	}
	return resp
}
