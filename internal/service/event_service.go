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

// ── 活动模块业务错误 ──

var (
	ErrEventNotFound  = errors.New("活动不存在")
	ErrEventTimeOrder = errors.New("活动结束时间必须晚于开始时间")
	ErrEventBadTime   = errors.New("时间格式必须为 RFC3339")
)

// EventService 活动日程业务接口
type EventService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.EventResponse, error)
	List(ctx context.Context, p *Principal, req *dto.ContentListRequest) ([]dto.EventResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, p *Principal, id string) error
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) Create(ctx context.Context, p *Principal, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	schoolID, err := resolveContentSchool(p, req.SchoolID)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrEventBadTime
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, ErrEventBadTime
	}
	if !end.After(start) {
		return nil, ErrEventTimeOrder
	}

	e := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   start,
		EndTime:     end,
		SchoolID:    schoolID,
		ClassID:     req.ClassID,
	}
	e.CreatedBy = &p.UserID
	e.UpdatedBy = &p.UserID

	if err := s.repo.Event.Create(ctx, e); err != nil {
		s.logger.Error("创建活动失败", zap.Error(err))
		return nil, err
	}

	return toEventResponse(e), nil
}

func (s *eventService) GetByID(ctx context.Context, p *Principal, id string) (*dto.EventResponse, error) {
	e, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !inScopeOrGlobal(scope, e.SchoolID) {
		return nil, ErrForbidden
	}

	return toEventResponse(e), nil
}

func (s *eventService) List(ctx context.Context, p *Principal, req *dto.ContentListRequest) ([]dto.EventResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}
	if p.IsGlobal() && req.SchoolID != "" {
		scope = []string{req.SchoolID}
	}

	list, total, err := s.repo.Event.List(ctx, scope, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出活动失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.EventResponse, 0, len(list))
	for i := range list {
		result = append(result, *toEventResponse(&list[i]))
	}
	return result, total, nil
}

func (s *eventService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	e, err := s.loadManaged(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.StartTime != nil {
		start, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return nil, ErrEventBadTime
		}
		e.StartTime = start
	}
	if req.EndTime != nil {
		end, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return nil, ErrEventBadTime
		}
		e.EndTime = end
	}
	if !e.EndTime.After(e.StartTime) {
		return nil, ErrEventTimeOrder
	}
	e.UpdatedBy = &p.UserID

	if err := s.repo.Event.Update(ctx, e); err != nil {
		s.logger.Error("更新活动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toEventResponse(e), nil
}

func (s *eventService) Delete(ctx context.Context, p *Principal, id string) error {
	if _, err := s.loadManaged(ctx, p, id); err != nil {
		return err
	}

	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.logger.Error("删除活动失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *eventService) loadManaged(ctx context.Context, p *Principal, id string) (*model.Event, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	e, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() {
		if e.SchoolID == nil || *e.SchoolID != p.SchoolID {
			return nil, ErrForbidden
		}
	}
	return e, nil
}

func toEventResponse(e *model.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:          e.EventID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime.Format(time.RFC3339),
		EndTime:     e.EndTime.Format(time.RFC3339),
		CreatedAt:   e.CreatedAt.Format(timeLayout),
	}
	if e.SchoolID != nil {
		resp.SchoolID = *e.SchoolID
	}
	if e.ClassID != nil {
		resp.ClassID = *e.ClassID
	}
	return resp
}
