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

// ── 公告模块业务错误 ──

var ErrAnnouncementNotFound = errors.New("公告不存在")

// AnnouncementService 公告业务接口
// school_id 为空的公告是全局公告，所有学校可见；仅 super 可发全局公告
type AnnouncementService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.AnnouncementResponse, error)
	List(ctx context.Context, p *Principal, req *dto.ContentListRequest) ([]dto.AnnouncementResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Delete(ctx context.Context, p *Principal, id string) error
}

type announcementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAnnouncementService 创建 AnnouncementService 实例
func NewAnnouncementService(repo *repository.Repository, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, logger: logger}
}

// resolveContentSchool 解析内容写操作的目标学校
// super 不传 school_id 时发布全局内容；其余管理角色固定为自身学校
func resolveContentSchool(p *Principal, requested *string) (*string, error) {
	if p.IsGlobal() {
		if requested == nil || *requested == "" {
			return nil, nil
		}
		return requested, nil
	}
	if p.SchoolID == "" {
		return nil, ErrForbidden
	}
	if requested != nil && *requested != "" && *requested != p.SchoolID {
		return nil, ErrForbidden
	}
	schoolID := p.SchoolID
	return &schoolID, nil
}

func (s *announcementService) Create(ctx context.Context, p *Principal, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	schoolID, err := resolveContentSchool(p, req.SchoolID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, err
	}

	a := &model.Announcement{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		SchoolID:    schoolID,
		ClassID:     req.ClassID,
	}
	a.CreatedBy = &p.UserID
	a.UpdatedBy = &p.UserID

	if err := s.repo.Announcement.Create(ctx, a); err != nil {
		s.logger.Error("创建公告失败", zap.Error(err))
		return nil, err
	}

	return toAnnouncementResponse(a), nil
}

func (s *announcementService) GetByID(ctx context.Context, p *Principal, id string) (*dto.AnnouncementResponse, error) {
	a, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		s.logger.Error("查询公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !inScopeOrGlobal(scope, a.SchoolID) {
		return nil, ErrForbidden
	}

	return toAnnouncementResponse(a), nil
}

func (s *announcementService) List(ctx context.Context, p *Principal, req *dto.ContentListRequest) ([]dto.AnnouncementResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}
	if p.IsGlobal() && req.SchoolID != "" {
		scope = []string{req.SchoolID}
	}

	list, total, err := s.repo.Announcement.List(ctx, scope, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出公告失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AnnouncementResponse, 0, len(list))
	for i := range list {
		result = append(result, *toAnnouncementResponse(&list[i]))
	}
	return result, total, nil
}

func (s *announcementService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	a, err := s.loadManaged(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Date != nil {
		if date, err := time.Parse(dateLayout, *req.Date); err == nil {
			a.Date = date
		}
	}
	a.UpdatedBy = &p.UserID

	if err := s.repo.Announcement.Update(ctx, a); err != nil {
		s.logger.Error("更新公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toAnnouncementResponse(a), nil
}

func (s *announcementService) Delete(ctx context.Context, p *Principal, id string) error {
	if _, err := s.loadManaged(ctx, p, id); err != nil {
		return err
	}

	if err := s.repo.Announcement.Delete(ctx, id); err != nil {
		s.logger.Error("删除公告失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// loadManaged 加载公告并校验写权限（全局公告仅 super 可改）
func (s *announcementService) loadManaged(ctx context.Context, p *Principal, id string) (*model.Announcement, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	a, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		s.logger.Error("查询公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() {
		if a.SchoolID == nil || *a.SchoolID != p.SchoolID {
			return nil, ErrForbidden
		}
	}
	return a, nil
}

func toAnnouncementResponse(a *model.Announcement) *dto.AnnouncementResponse {
	resp := &dto.AnnouncementResponse{
		ID:          a.AnnouncementID,
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date.Format(dateLayout),
		CreatedAt:   a.CreatedAt.Format(timeLayout),
	}
	if a.SchoolID != nil {
		resp.SchoolID = *a.SchoolID
	}
	if a.ClassID != nil {
		resp.ClassID = *a.ClassID
	}
	return resp
}
