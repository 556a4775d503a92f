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

// ── 教师模块业务错误 ──

var (
	ErrTeacherNotFound    = errors.New("教师不存在")
	ErrTeacherEmailExists = errors.New("教师邮箱已被占用")
)

// TeacherService 教师业务接口
type TeacherService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context, p *Principal, req *dto.TeacherListRequest) ([]dto.TeacherResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, p *Principal, id string) error
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

func (s *teacherService) Create(ctx context.Context, p *Principal, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
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

	existing, err := s.repo.Teacher.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询教师失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrTeacherEmailExists
	}

	// 密码为空时生成临时密码，随创建响应返回一次
	password := req.Password
	tempPassword := ""
	if password == "" {
		tempPassword = generateTempPassword()
		password = tempPassword
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	teacher := &model.Teacher{
		Title:        req.Title,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		OtherName:    req.OtherName,
		Gender:       req.Gender,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PasswordHash: hash,
		SchoolID:     schoolID,
	}
	if req.Birthday != "" {
		if bd, err := time.Parse(dateLayout, req.Birthday); err == nil {
			teacher.Birthday = &bd
		}
	}
	teacher.CreatedBy = &p.UserID
	teacher.UpdatedBy = &p.UserID

	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}

	resp := toTeacherResponse(teacher)
	resp.TempPassword = tempPassword
	return resp, nil
}

func (s *teacherService) GetByID(ctx context.Context, p *Principal, id string) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !inScope(scope, teacher.SchoolID) {
		return nil, ErrForbidden
	}

	return toTeacherResponse(teacher), nil
}

func (s *teacherService) List(ctx context.Context, p *Principal, req *dto.TeacherListRequest) ([]dto.TeacherResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}
	// super 可用 school_id 查询参数缩小范围
	if p.IsGlobal() && req.SchoolID != "" {
		scope = []string{req.SchoolID}
	}

	filters := &repository.TeacherListFilters{Keyword: req.Keyword}
	teachers, total, err := s.repo.Teacher.List(ctx, scope, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, *toTeacherResponse(&teachers[i]))
	}
	return result, total, nil
}

func (s *teacherService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() && teacher.SchoolID != p.SchoolID {
		return nil, ErrForbidden
	}

	if req.Email != nil && *req.Email != teacher.Email {
		existing, err := s.repo.Teacher.GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrTeacherEmailExists
		}
		teacher.Email = *req.Email
	}
	if req.Title != nil {
		teacher.Title = *req.Title
	}
	if req.FirstName != nil {
		teacher.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		teacher.LastName = *req.LastName
	}
	if req.OtherName != nil {
		teacher.OtherName = *req.OtherName
	}
	if req.Gender != nil {
		teacher.Gender = *req.Gender
	}
	if req.Phone != nil {
		teacher.Phone = *req.Phone
	}
	if req.Address != nil {
		teacher.Address = *req.Address
	}
	if req.Birthday != nil {
		if bd, err := time.Parse(dateLayout, *req.Birthday); err == nil {
			teacher.Birthday = &bd
		}
	}
	teacher.UpdatedBy = &p.UserID

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		s.logger.Error("更新教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toTeacherResponse(teacher), nil
}

func (s *teacherService) Delete(ctx context.Context, p *Principal, id string) error {
	if !p.CanManage() {
		return ErrForbidden
	}

	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if !p.IsGlobal() && teacher.SchoolID != p.SchoolID {
		return ErrForbidden
	}

	if err := s.repo.Teacher.Delete(ctx, id, p.UserID); err != nil {
		s.logger.Error("删除教师失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toTeacherResponse(teacher *model.Teacher) *dto.TeacherResponse {
	resp := &dto.TeacherResponse{
		ID:        teacher.TeacherID,
		Title:     teacher.Title,
		FirstName: teacher.FirstName,
		LastName:  teacher.LastName,
		OtherName: teacher.OtherName,
		Gender:    teacher.Gender,
		Email:     teacher.Email,
		Phone:     teacher.Phone,
		Address:   teacher.Address,
		CreatedAt: teacher.CreatedAt.Format(timeLayout),
	}
	if teacher.Birthday != nil {
		resp.Birthday = teacher.Birthday.Format(dateLayout)
	}
	if teacher.School != nil {
		resp.School = &dto.SchoolBrief{ID: teacher.School.SchoolID, Name: teacher.School.Name}
	}
	for _, sub := range teacher.Subjects {
		resp.Subjects = append(resp.Subjects, dto.SubjectBrief{ID: sub.SubjectID, Name: sub.Name})
	}
	return resp
}
