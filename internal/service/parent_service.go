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

// ── 家长模块业务错误 ──

var (
	ErrParentEmailExists = errors.New("家长邮箱已被占用")
	ErrParentHasChildren = errors.New("家长名下仍有学生，无法删除")
)

// ParentService 家长业务接口
type ParentService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateParentRequest) (*dto.ParentResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.ParentResponse, error)
	List(ctx context.Context, p *Principal, req *dto.ParentListRequest) ([]dto.ParentResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateParentRequest) (*dto.ParentResponse, error)
	Delete(ctx context.Context, p *Principal, id string) error
}

type parentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewParentService 创建 ParentService 实例
func NewParentService(repo *repository.Repository, logger *zap.Logger) ParentService {
	return &parentService{repo: repo, logger: logger}
}

func (s *parentService) Create(ctx context.Context, p *Principal, req *dto.CreateParentRequest) (*dto.ParentResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	existing, err := s.repo.Parent.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询家长失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrParentEmailExists
	}

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

	parent := &model.Parent{
		Title:        req.Title,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Occupation:   req.Occupation,
		PasswordHash: hash,
	}
	parent.CreatedBy = &p.UserID
	parent.UpdatedBy = &p.UserID

	if err := s.repo.Parent.Create(ctx, parent); err != nil {
		s.logger.Error("创建家长失败", zap.Error(err))
		return nil, err
	}

	resp := toParentResponse(parent)
	resp.TempPassword = tempPassword
	return resp, nil
}

func (s *parentService) GetByID(ctx context.Context, p *Principal, id string) (*dto.ParentResponse, error) {
	// 家长只能看自己
	if p.Role == RoleParent && p.UserID != id {
		return nil, ErrForbidden
	}
	if p.Role == RoleStudent {
		return nil, ErrForbidden
	}

	parent, err := s.repo.Parent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		s.logger.Error("查询家长失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 校内角色：家长至少有一个子女在可见学校范围内
	if p.Role != RoleParent && !p.IsGlobal() {
		scope, err := resolveSchoolScope(ctx, s.repo, p)
		if err != nil {
			return nil, err
		}
		visible := false
		for _, child := range parent.Children {
			if inScope(scope, child.SchoolID) {
				visible = true
				break
			}
		}
		if !visible {
			return nil, ErrForbidden
		}
	}

	return toParentResponse(parent), nil
}

func (s *parentService) List(ctx context.Context, p *Principal, req *dto.ParentListRequest) ([]dto.ParentResponse, int64, error) {
	if !p.CanManage() {
		return nil, 0, ErrForbidden
	}
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}

	filters := &repository.ParentListFilters{Keyword: req.Keyword}
	parents, total, err := s.repo.Parent.List(ctx, scope, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出家长失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ParentResponse, 0, len(parents))
	for i := range parents {
		result = append(result, *toParentResponse(&parents[i]))
	}
	return result, total, nil
}

func (s *parentService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateParentRequest) (*dto.ParentResponse, error) {
	// 家长可改自己的资料，管理角色可改任意家长
	if p.Role == RoleParent && p.UserID != id {
		return nil, ErrForbidden
	}
	if p.Role != RoleParent && !p.CanManage() {
		return nil, ErrForbidden
	}

	parent, err := s.repo.Parent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		s.logger.Error("查询家长失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Email != nil && *req.Email != parent.Email {
		existing, err := s.repo.Parent.GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrParentEmailExists
		}
		parent.Email = *req.Email
	}
	if req.Title != nil {
		parent.Title = *req.Title
	}
	if req.FirstName != nil {
		parent.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		parent.LastName = *req.LastName
	}
	if req.Phone != nil {
		parent.Phone = *req.Phone
	}
	if req.Address != nil {
		parent.Address = *req.Address
	}
	if req.Occupation != nil {
		parent.Occupation = *req.Occupation
	}
	parent.UpdatedBy = &p.UserID

	if err := s.repo.Parent.Update(ctx, parent); err != nil {
		s.logger.Error("更新家长失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toParentResponse(parent), nil
}

func (s *parentService) Delete(ctx context.Context, p *Principal, id string) error {
	if !p.CanManage() {
		return ErrForbidden
	}

	parent, err := s.repo.Parent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentNotFound
		}
		s.logger.Error("查询家长失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if len(parent.Children) > 0 {
		return ErrParentHasChildren
	}

	if err := s.repo.Parent.Delete(ctx, id, p.UserID); err != nil {
		s.logger.Error("删除家长失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toParentResponse(parent *model.Parent) *dto.ParentResponse {
	resp := &dto.ParentResponse{
		ID:         parent.ParentID,
		Title:      parent.Title,
		FirstName:  parent.FirstName,
		LastName:   parent.LastName,
		Email:      parent.Email,
		Phone:      parent.Phone,
		Address:    parent.Address,
		Occupation: parent.Occupation,
		CreatedAt:  parent.CreatedAt.Format(timeLayout),
	}
	for _, child := range parent.Children {
		resp.Children = append(resp.Children, dto.StudentBrief{
			ID:              child.StudentID,
			Name:            child.FirstName + " " + child.LastName,
			AdmissionNumber: child.AdmissionNumber,
		})
	}
	return resp
}
