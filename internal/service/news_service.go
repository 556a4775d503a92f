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

// ── 新闻模块业务错误 ──

var ErrNewsNotFound = errors.New("新闻不存在")

// NewsService 新闻业务接口
// 非管理角色只能看到已发布的新闻
type NewsService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateNewsRequest) (*dto.NewsResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.NewsResponse, error)
	List(ctx context.Context, p *Principal, req *dto.ContentListRequest) ([]dto.NewsResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateNewsRequest) (*dto.NewsResponse, error)
	Delete(ctx context.Context, p *Principal, id string) error
}

type newsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNewsService 创建 NewsService 实例
func NewNewsService(repo *repository.Repository, logger *zap.Logger) NewsService {
	return &newsService{repo: repo, logger: logger}
}

func (s *newsService) Create(ctx context.Context, p *Principal, req *dto.CreateNewsRequest) (*dto.NewsResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	schoolID, err := resolveContentSchool(p, req.SchoolID)
	if err != nil {
		return nil, err
	}

	n := &model.News{
		Title:     req.Title,
		Body:      req.Body,
		Image:     req.Image,
		Published: req.Published,
		SchoolID:  schoolID,
	}
	n.CreatedBy = &p.UserID
	n.UpdatedBy = &p.UserID

	if err := s.repo.News.Create(ctx, n); err != nil {
		s.logger.Error("创建新闻失败", zap.Error(err))
		return nil, err
	}

	return toNewsResponse(n), nil
}

func (s *newsService) GetByID(ctx context.Context, p *Principal, id string) (*dto.NewsResponse, error) {
	n, err := s.repo.News.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		s.logger.Error("查询新闻失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !n.Published && !p.CanManage() {
		return nil, ErrNewsNotFound
	}

	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !inScopeOrGlobal(scope, n.SchoolID) {
		return nil, ErrForbidden
	}

	return toNewsResponse(n), nil
}

func (s *newsService) List(ctx context.Context, p *Principal, req *dto.ContentListRequest) ([]dto.NewsResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}
	if p.IsGlobal() && req.SchoolID != "" {
		scope = []string{req.SchoolID}
	}

	publishedOnly := !p.CanManage()
	list, total, err := s.repo.News.List(ctx, scope, req.Keyword, publishedOnly, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出新闻失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.NewsResponse, 0, len(list))
	for i := range list {
		result = append(result, *toNewsResponse(&list[i]))
	}
	return result, total, nil
}

func (s *newsService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateNewsRequest) (*dto.NewsResponse, error) {
	n, err := s.loadManaged(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Body != nil {
		n.Body = *req.Body
	}
	if req.Image != nil {
		n.Image = *req.Image
	}
	if req.Published != nil {
		n.Published = *req.Published
	}
	n.UpdatedBy = &p.UserID

	if err := s.repo.News.Update(ctx, n); err != nil {
		s.logger.Error("更新新闻失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toNewsResponse(n), nil
}

func (s *newsService) Delete(ctx context.Context, p *Principal, id string) error {
	if _, err := s.loadManaged(ctx, p, id); err != nil {
		return err
	}

	if err := s.repo.News.Delete(ctx, id); err != nil {
		s.logger.Error("删除新闻失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *newsService) loadManaged(ctx context.Context, p *Principal, id string) (*model.News, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	n, err := s.repo.News.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		s.logger.Error("查询新闻失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() {
		if n.SchoolID == nil || *n.SchoolID != p.SchoolID {
			return nil, ErrForbidden
		}
	}
	return n, nil
}

func toNewsResponse(n *model.News) *dto.NewsResponse {
	resp := &dto.NewsResponse{
		ID:        n.NewsID,
		Title:     n.Title,
		Body:      n.Body,
		Image:     n.Image,
		Published: n.Published,
		CreatedAt: n.CreatedAt.Format(timeLayout),
	}
	if n.SchoolID != nil {
		resp.SchoolID = *n.SchoolID
	}
	return resp
}
