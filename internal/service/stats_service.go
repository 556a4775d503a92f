package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/repository"
)

// StatsService 仪表盘统计业务接口
// 范围按调用者角色裁剪：super 全局，其余限自身（子女）学校
type StatsService interface {
	Dashboard(ctx context.Context, p *Principal) (*dto.StatsResponse, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) Dashboard(ctx context.Context, p *Principal) (*dto.StatsResponse, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}

	resp := &dto.StatsResponse{}

	if p.IsGlobal() {
		if resp.Schools, err = s.repo.School.Count(ctx); err != nil {
			s.logger.Error("统计学校数失败", zap.Error(err))
			return nil, err
		}
	}

	if resp.Students, err = s.repo.Student.Count(ctx, scope); err != nil {
		s.logger.Error("统计学生数失败", zap.Error(err))
		return nil, err
	}
	if resp.Teachers, err = s.repo.Teacher.Count(ctx, scope); err != nil {
		s.logger.Error("统计教师数失败", zap.Error(err))
		return nil, err
	}
	if resp.Parents, err = s.repo.Parent.Count(ctx, scope); err != nil {
		s.logger.Error("统计家长数失败", zap.Error(err))
		return nil, err
	}
	if resp.Classes, err = s.repo.Class.Count(ctx, scope); err != nil {
		s.logger.Error("统计班级数失败", zap.Error(err))
		return nil, err
	}
	if resp.Subjects, err = s.repo.Subject.Count(ctx, scope); err != nil {
		s.logger.Error("统计科目数失败", zap.Error(err))
		return nil, err
	}
	if resp.Lessons, err = s.repo.Lesson.Count(ctx, scope); err != nil {
		s.logger.Error("统计课程数失败", zap.Error(err))
		return nil, err
	}
	if resp.Announcements, err = s.repo.Announcement.Count(ctx, scope); err != nil {
		s.logger.Error("统计公告数失败", zap.Error(err))
		return nil, err
	}
	if resp.Events, err = s.repo.Event.Count(ctx, scope); err != nil {
		s.logger.Error("统计活动数失败", zap.Error(err))
		return nil, err
	}

	if resp.Gender.Male, err = s.repo.Student.CountByGender(ctx, scope, "MALE"); err != nil {
		s.logger.Error("统计性别分布失败", zap.Error(err))
		return nil, err
	}
	if resp.Gender.Female, err = s.repo.Student.CountByGender(ctx, scope, "FEMALE"); err != nil {
		s.logger.Error("统计性别分布失败", zap.Error(err))
		return nil, err
	}

	// 近 30 天缴费汇总
	since := time.Now().AddDate(0, 0, -30)
	count, total, err := s.repo.Payment.SumSince(ctx, scope, since)
	if err != nil {
		s.logger.Error("统计缴费失败", zap.Error(err))
		return nil, err
	}
	resp.Payments = dto.PaymentsSummed{Count: count, Total: total}

	return resp, nil
}
