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

// ── 相册模块业务错误 ──

var ErrGalleryNotFound = errors.New("相册不存在")

// GalleryService 相册业务接口
// 相册必须归属学校，不支持全局相册
type GalleryService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateGalleryRequest) (*dto.GalleryResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.GalleryResponse, error)
	List(ctx context.Context, p *Principal, req *dto.ContentListRequest) ([]dto.GalleryResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateGalleryRequest) (*dto.GalleryResponse, error)
	Delete(ctx context.Context, p *Principal, id string) error
}

type galleryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGalleryService 创建 GalleryService 实例
func NewGalleryService(repo *repository.Repository, logger *zap.Logger) GalleryService {
	return &galleryService{repo: repo, logger: logger}
}

func (s *galleryService) Create(ctx context.Context, p *Principal, req *dto.CreateGalleryRequest) (*dto.GalleryResponse, error) {
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

	g := &model.Gallery{
		Title:       req.Title,
		Description: req.Description,
		Images:      model.StringArray(req.Images),
		SchoolID:    schoolID,
	}
	g.CreatedBy = &p.UserID
	g.UpdatedBy = &p.UserID

	if err := s.repo.Gallery.Create(ctx, g); err != nil {
		s.logger.Error("创建相册失败", zap.Error(err))
		return nil, err
	}

	return toGalleryResponse(g), nil
}

func (s *galleryService) GetByID(ctx context.Context, p *Principal, id string) (*dto.GalleryResponse, error) {
	g, err := s.repo.Gallery.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		s.logger.Error("查询相册失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !inScope(scope, g.SchoolID) {
		return nil, ErrForbidden
	}

	return toGalleryResponse(g), nil
}

func (s *galleryService) List(ctx context.Context, p *Principal, req *dto.ContentListRequest) ([]dto.GalleryResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}
	if p.IsGlobal() && req.SchoolID != "" {
		scope = []string{req.SchoolID}
	}

	list, total, err := s.repo.Gallery.List(ctx, scope, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出相册失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.GalleryResponse, 0, len(list))
	for i := range list {
		result = append(result, *toGalleryResponse(&list[i]))
	}
	return result, total, nil
}

func (s *galleryService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateGalleryRequest) (*dto.GalleryResponse, error) {
	g, err := s.loadManaged(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		g.Title = *req.Title
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.Images != nil {
		g.Images = model.StringArray(req.Images)
	}
	g.UpdatedBy = &p.UserID

	if err := s.repo.Gallery.Update(ctx, g); err != nil {
		s.logger.Error("更新相册失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toGalleryResponse(g), nil
}

func (s *galleryService) Delete(ctx context.Context, p *Principal, id string) error {
	if _, err := s.loadManaged(ctx, p, id); err != nil {
		return err
	}

	if err := s.repo.Gallery.Delete(ctx, id); err != nil {
		s.logger.Error("删除相册失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *galleryService) loadManaged(ctx context.Context, p *Principal, id string) (*model.Gallery, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	g, err := s.repo.Gallery.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryNotFound
		}
		s.logger.Error("查询相册失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() && g.SchoolID != p.SchoolID {
		return nil, ErrForbidden
	}
	return g, nil
}

func toGalleryResponse(g *model.Gallery) *dto.GalleryResponse {
	return &dto.GalleryResponse{
		ID:          g.GalleryID,
		Title:       g.Title,
		Description: g.Description,
		Images:      []string(g.Images),
		SchoolID:    g.SchoolID,
		CreatedAt:   g.CreatedAt.Format(timeLayout),
	}
}
