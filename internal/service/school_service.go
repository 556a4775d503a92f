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

// ── 学校模块业务错误 ──

var (
	ErrSchoolNotFound    = errors.New("学校不存在")
	ErrSchoolEmailExists = errors.New("学校邮箱已被占用")
)

// SchoolService 学校业务接口
// 创建与删除仅 super 可用；删除为级联删除并返回各表删除行数
type SchoolService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateSchoolRequest) (*dto.SchoolResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.SchoolResponse, error)
	List(ctx context.Context, p *Principal, req *dto.SchoolListRequest) ([]dto.SchoolResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateSchoolRequest) (*dto.SchoolResponse, error)
	Delete(ctx context.Context, p *Principal, id string) (*dto.DeleteSchoolResponse, error)
}

type schoolService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSchoolService 创建 SchoolService 实例
func NewSchoolService(repo *repository.Repository, logger *zap.Logger) SchoolService {
	return &schoolService{repo: repo, logger: logger}
}

func (s *schoolService) Create(ctx context.Context, p *Principal, req *dto.CreateSchoolRequest) (*dto.SchoolResponse, error) {
	if !p.IsGlobal() {
		return nil, ErrForbidden
	}

	// 邮箱唯一性
	existing, err := s.repo.School.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学校失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrSchoolEmailExists
	}

	school := &model.School{
		Name:       req.Name,
		Subtitle:   req.Subtitle,
		SchoolType: req.SchoolType,
		Address:    req.Address,
		Phone:      req.Phone,
		Email:      req.Email,
		Logo:       req.Logo,
		RegNumber:  req.RegNumber,
		Principal:  req.Principal,
	}
	if school.SchoolType == "" {
		school.SchoolType = "SECONDARY"
	}
	school.CreatedBy = &p.UserID
	school.UpdatedBy = &p.UserID

	if err := s.repo.School.Create(ctx, school); err != nil {
		s.logger.Error("创建学校失败", zap.Error(err))
		return nil, err
	}

	return toSchoolResponse(school), nil
}

func (s *schoolService) GetByID(ctx context.Context, p *Principal, id string) (*dto.SchoolResponse, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !inScope(scope, id) {
		return nil, ErrForbidden
	}

	school, err := s.repo.School.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		s.logger.Error("查询学校失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSchoolResponse(school), nil
}

func (s *schoolService) List(ctx context.Context, p *Principal, req *dto.SchoolListRequest) ([]dto.SchoolResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}

	filters := &repository.SchoolListFilters{
		Keyword:    req.Keyword,
		SchoolType: req.SchoolType,
	}
	schools, total, err := s.repo.School.List(ctx, scope, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出学校失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SchoolResponse, 0, len(schools))
	for i := range schools {
		result = append(result, *toSchoolResponse(&schools[i]))
	}
	return result, total, nil
}

func (s *schoolService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateSchoolRequest) (*dto.SchoolResponse, error) {
	// super 可改任意学校；management/admin 仅能改自身学校
	if !p.CanManage() {
		return nil, ErrForbidden
	}
	if !p.IsGlobal() && p.SchoolID != id {
		return nil, ErrForbidden
	}

	school, err := s.repo.School.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		s.logger.Error("查询学校失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Email != nil && *req.Email != school.Email {
		existing, err := s.repo.School.GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrSchoolEmailExists
		}
		school.Email = *req.Email
	}
	if req.Name != nil {
		school.Name = *req.Name
	}
	if req.Subtitle != nil {
		school.Subtitle = *req.Subtitle
	}
	if req.SchoolType != nil {
		school.SchoolType = *req.SchoolType
	}
	if req.Address != nil {
		school.Address = *req.Address
	}
	if req.Phone != nil {
		school.Phone = *req.Phone
	}
	if req.Logo != nil {
		school.Logo = *req.Logo
	}
	if req.RegNumber != nil {
		school.RegNumber = *req.RegNumber
	}
	if req.Principal != nil {
		school.Principal = *req.Principal
	}
	school.UpdatedBy = &p.UserID

	if err := s.repo.School.Update(ctx, school); err != nil {
		s.logger.Error("更新学校失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSchoolResponse(school), nil
}

func (s *schoolService) Delete(ctx context.Context, p *Principal, id string) (*dto.DeleteSchoolResponse, error) {
	if !p.IsGlobal() {
		return nil, ErrForbidden
	}

	if _, err := s.repo.School.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		s.logger.Error("查询学校失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	counts, err := s.repo.School.CascadeDelete(ctx, id, p.UserID)
	if err != nil {
		s.logger.Error("级联删除学校失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("学校已删除",
		zap.String("id", id),
		zap.Int64("students", counts.Students),
		zap.Int64("teachers", counts.Teachers),
	)

	return &dto.DeleteSchoolResponse{
		Teachers:      counts.Teachers,
		Students:      counts.Students,
		Classes:       counts.Classes,
		Subjects:      counts.Subjects,
		Lessons:       counts.Lessons,
		Attendances:   counts.Attendances,
		Payments:      counts.Payments,
		Gradings:      counts.Gradings,
		Grades:        counts.Grades,
		Announcements: counts.Announcements,
		Events:        counts.Events,
		News:          counts.News,
		Galleries:     counts.Galleries,
	}, nil
}

// ── 内部辅助方法 ──

func toSchoolResponse(school *model.School) *dto.SchoolResponse {
	return &dto.SchoolResponse{
		ID:         school.SchoolID,
		Name:       school.Name,
		Subtitle:   school.Subtitle,
		SchoolType: school.SchoolType,
		Address:    school.Address,
		Phone:      school.Phone,
		Email:      school.Email,
		Logo:       school.Logo,
		RegNumber:  school.RegNumber,
		Principal:  school.Principal,
		CreatedAt:  school.CreatedAt.Format(timeLayout),
	}
}
