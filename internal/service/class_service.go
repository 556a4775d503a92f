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

// ── 班级模块业务错误 ──

var (
	ErrClassNotFound         = errors.New("班级不存在")
	ErrClassNameExists       = errors.New("班级名称在该学校已存在")
	ErrClassHasStudents      = errors.New("班级下仍有学生，无法删除")
	ErrFormmasterNotInSchool = errors.New("班主任不属于该学校")
)

// ClassService 班级业务接口
type ClassService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.ClassResponse, error)
	List(ctx context.Context, p *Principal, req *dto.ClassListRequest) ([]dto.ClassResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateClassRequest) (*dto.ClassResponse, error)
	Delete(ctx context.Context, p *Principal, id string) error
}

type classService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassService 创建 ClassService 实例
func NewClassService(repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{repo: repo, logger: logger}
}

func (s *classService) Create(ctx context.Context, p *Principal, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
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

	// 班级名在学校内唯一
	existing, err := s.repo.Class.GetByName(ctx, schoolID, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询班级失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrClassNameExists
	}

	if req.FormmasterID != nil {
		if err := s.checkFormmaster(ctx, *req.FormmasterID, schoolID); err != nil {
			return nil, err
		}
	}

	class := &model.Class{
		Name:         req.Name,
		Category:     req.Category,
		Capacity:     req.Capacity,
		FormmasterID: req.FormmasterID,
		SchoolID:     schoolID,
	}
	if class.Capacity == 0 {
		class.Capacity = 40
	}
	class.CreatedBy = &p.UserID
	class.UpdatedBy = &p.UserID

	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.logger.Error("创建班级失败", zap.Error(err))
		return nil, err
	}

	return s.toClassResponse(ctx, class), nil
}

func (s *classService) GetByID(ctx context.Context, p *Principal, id string) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !inScope(scope, class.SchoolID) {
		return nil, ErrForbidden
	}

	return s.toClassResponse(ctx, class), nil
}

func (s *classService) List(ctx context.Context, p *Principal, req *dto.ClassListRequest) ([]dto.ClassResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}
	if p.IsGlobal() && req.SchoolID != "" {
		scope = []string{req.SchoolID}
	}

	filters := &repository.ClassListFilters{Keyword: req.Keyword}
	classes, total, err := s.repo.Class.List(ctx, scope, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出班级失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, *s.toClassResponse(ctx, &classes[i]))
	}
	return result, total, nil
}

func (s *classService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateClassRequest) (*dto.ClassResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() && class.SchoolID != p.SchoolID {
		return nil, ErrForbidden
	}

	if req.Name != nil && *req.Name != class.Name {
		existing, err := s.repo.Class.GetByName(ctx, class.SchoolID, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrClassNameExists
		}
		class.Name = *req.Name
	}
	if req.FormmasterID != nil {
		if err := s.checkFormmaster(ctx, *req.FormmasterID, class.SchoolID); err != nil {
			return nil, err
		}
		class.FormmasterID = req.FormmasterID
	}
	if req.Category != nil {
		class.Category = *req.Category
	}
	if req.Capacity != nil {
		class.Capacity = *req.Capacity
	}
	class.UpdatedBy = &p.UserID

	if err := s.repo.Class.Update(ctx, class); err != nil {
		s.logger.Error("更新班级失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toClassResponse(ctx, class), nil
}

func (s *classService) Delete(ctx context.Context, p *Principal, id string) error {
	if !p.CanManage() {
		return ErrForbidden
	}

	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if !p.IsGlobal() && class.SchoolID != p.SchoolID {
		return ErrForbidden
	}

	count, err := s.repo.Class.CountStudents(ctx, id)
	if err != nil {
		s.logger.Error("查询班级学生数失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrClassHasStudents
	}

	if err := s.repo.Class.Delete(ctx, id, p.UserID); err != nil {
		s.logger.Error("删除班级失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *classService) checkFormmaster(ctx context.Context, teacherID, schoolID string) error {
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}
	if teacher.SchoolID != schoolID {
		return ErrFormmasterNotInSchool
	}
	return nil
}

func (s *classService) toClassResponse(ctx context.Context, class *model.Class) *dto.ClassResponse {
	studentCount, _ := s.repo.Class.CountStudents(ctx, class.ClassID)
	resp := &dto.ClassResponse{
		ID:           class.ClassID,
		Name:         class.Name,
		Category:     class.Category,
		Capacity:     class.Capacity,
		StudentCount: studentCount,
		CreatedAt:    class.CreatedAt.Format(timeLayout),
	}
	if class.School != nil {
		resp.School = &dto.SchoolBrief{ID: class.School.SchoolID, Name: class.School.Name}
	}
	if class.Formmaster != nil {
		resp.Formmaster = &dto.TeacherBrief{
			ID:   class.Formmaster.TeacherID,
			Name: class.Formmaster.FirstName + " " + class.Formmaster.LastName,
		}
	}
	return resp
}
