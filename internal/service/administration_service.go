package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/repository"
)

// ── 行政账号模块业务错误 ──

var (
	ErrAdminNotFound      = errors.New("行政账号不存在")
	ErrAdminEmailExists   = errors.New("邮箱已被占用")
	ErrSuperNeedsNoSchool = errors.New("super 账号不能归属学校")
	ErrAdminNeedsSchool   = errors.New("management/admin 账号必须归属学校")
	ErrCannotDeleteSelf   = errors.New("不能删除自己的账号")
)

// AdministrationService 行政账号业务接口
type AdministrationService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateAdministrationRequest) (*dto.AdministrationResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.AdministrationResponse, error)
	List(ctx context.Context, p *Principal, req *dto.AdministrationListRequest) ([]dto.AdministrationResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateAdministrationRequest) (*dto.AdministrationResponse, error)
	Delete(ctx context.Context, p *Principal, id string) error
}

type administrationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAdministrationService 创建 AdministrationService 实例
func NewAdministrationService(repo *repository.Repository, logger *zap.Logger) AdministrationService {
	return &administrationService{repo: repo, logger: logger}
}

func (s *administrationService) Create(ctx context.Context, p *Principal, req *dto.CreateAdministrationRequest) (*dto.AdministrationResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}
	// super/management 账号只能由 super 创建
	if req.Role != RoleAdmin && !p.IsGlobal() {
		return nil, ErrForbidden
	}

	var schoolID *string
	switch req.Role {
	case RoleSuper:
		if req.SchoolID != nil && *req.SchoolID != "" {
			return nil, ErrSuperNeedsNoSchool
		}
	default:
		target, err := resolveTargetSchool(p, req.SchoolID)
		if err != nil {
			if errors.Is(err, ErrSchoolMissing) {
				return nil, ErrAdminNeedsSchool
			}
			return nil, err
		}
		if _, err := s.repo.School.GetByID(ctx, target); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSchoolNotFound
			}
			return nil, err
		}
		schoolID = &target
	}

	existing, err := s.repo.Administration.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询行政账号失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrAdminEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &model.Administration{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		SchoolID:     schoolID,
	}
	admin.CreatedBy = &p.UserID
	admin.UpdatedBy = &p.UserID

	if err := s.repo.Administration.Create(ctx, admin); err != nil {
		s.logger.Error("创建行政账号失败", zap.Error(err))
		return nil, err
	}

	return toAdministrationResponse(admin), nil
}

func (s *administrationService) GetByID(ctx context.Context, p *Principal, id string) (*dto.AdministrationResponse, error) {
	admin, err := s.repo.Administration.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		s.logger.Error("查询行政账号失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !p.IsGlobal() {
		if admin.SchoolID == nil || *admin.SchoolID != p.SchoolID {
			return nil, ErrForbidden
		}
	}

	return toAdministrationResponse(admin), nil
}

func (s *administrationService) List(ctx context.Context, p *Principal, req *dto.AdministrationListRequest) ([]dto.AdministrationResponse, int64, error) {
	if !p.CanManage() {
		return nil, 0, ErrForbidden
	}
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}

	filters := &repository.AdministrationListFilters{
		Role:    req.Role,
		Keyword: req.Keyword,
	}
	admins, total, err := s.repo.Administration.List(ctx, scope, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出行政账号失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AdministrationResponse, 0, len(admins))
	for i := range admins {
		result = append(result, *toAdministrationResponse(&admins[i]))
	}
	return result, total, nil
}

func (s *administrationService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateAdministrationRequest) (*dto.AdministrationResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	admin, err := s.repo.Administration.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		s.logger.Error("查询行政账号失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !p.IsGlobal() {
		if admin.SchoolID == nil || *admin.SchoolID != p.SchoolID {
			return nil, ErrForbidden
		}
		// 角色提升与跨校迁移只有 super 可做
		if req.Role != nil || req.SchoolID != nil {
			return nil, ErrForbidden
		}
	}

	if req.Email != nil && *req.Email != admin.Email {
		existing, err := s.repo.Administration.GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrAdminEmailExists
		}
		admin.Email = *req.Email
	}
	if req.Username != nil {
		admin.Username = *req.Username
	}
	if req.Role != nil {
		if *req.Role == RoleSuper {
			admin.SchoolID = nil
		}
		admin.Role = *req.Role
	}
	if req.SchoolID != nil && admin.Role != RoleSuper {
		if _, err := s.repo.School.GetByID(ctx, *req.SchoolID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSchoolNotFound
			}
			return nil, err
		}
		admin.SchoolID = req.SchoolID
	}
	admin.UpdatedBy = &p.UserID

	if err := s.repo.Administration.Update(ctx, admin); err != nil {
		s.logger.Error("更新行政账号失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toAdministrationResponse(admin), nil
}

func (s *administrationService) Delete(ctx context.Context, p *Principal, id string) error {
	if !p.CanManage() {
		return ErrForbidden
	}
	if id == p.UserID {
		return ErrCannotDeleteSelf
	}

	admin, err := s.repo.Administration.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		s.logger.Error("查询行政账号失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if !p.IsGlobal() {
		if admin.SchoolID == nil || *admin.SchoolID != p.SchoolID {
			return ErrForbidden
		}
		if admin.Role != RoleAdmin {
			return ErrForbidden
		}
	}

	if err := s.repo.Administration.Delete(ctx, id, p.UserID); err != nil {
		s.logger.Error("删除行政账号失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toAdministrationResponse(admin *model.Administration) *dto.AdministrationResponse {
	resp := &dto.AdministrationResponse{
		ID:        admin.AdminID,
		Username:  admin.Username,
		Email:     admin.Email,
		Role:      admin.Role,
		CreatedAt: admin.CreatedAt.Format(timeLayout),
	}
	if admin.School != nil {
		resp.School = &dto.SchoolBrief{ID: admin.School.SchoolID, Name: admin.School.Name}
	}
	return resp
}
