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

// ── 成绩模块业务错误 ──

var (
	ErrGradingNotFound     = errors.New("成绩册不存在")
	ErrGradingExists       = errors.New("该学年学期的成绩册已存在")
	ErrGradingNotPublished = errors.New("成绩册尚未发布")
	ErrGradeCrossSchool    = errors.New("学生或科目不属于成绩册学校")
)

// GradingService 成绩业务接口
// 学生/家长只能看已发布成绩册中属于自己（子女）的成绩
type GradingService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateGradingRequest) (*dto.GradingResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.GradingDetailResponse, error)
	List(ctx context.Context, p *Principal, req *dto.GradingListRequest) ([]dto.GradingResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateGradingRequest) (*dto.GradingResponse, error)
	Delete(ctx context.Context, p *Principal, id string) (int64, error)
	Publish(ctx context.Context, p *Principal, id string) (*dto.GradingResponse, error)
	UpsertGrades(ctx context.Context, p *Principal, gradingID string, req *dto.UpsertGradesRequest) (*dto.UpsertGradesResponse, error)
}

type gradingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGradingService 创建 GradingService 实例
func NewGradingService(repo *repository.Repository, logger *zap.Logger) GradingService {
	return &gradingService{repo: repo, logger: logger}
}

// deriveRemark 由总分推导等级
func deriveRemark(total int) string {
	switch {
	case total >= 70:
		return "A"
	case total >= 60:
		return "B"
	case total >= 50:
		return "C"
	case total >= 45:
		return "D"
	case total >= 40:
		return "E"
	}
	return "F"
}

// ────────────────────── Create ──────────────────────

func (s *gradingService) Create(ctx context.Context, p *Principal, req *dto.CreateGradingRequest) (*dto.GradingResponse, error) {
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

	// (school, session, term) 唯一
	existing, err := s.repo.Grading.GetBySchoolSessionTerm(ctx, schoolID, req.Session, req.Term)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询成绩册失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrGradingExists
	}

	grading := &model.Grading{
		Session:  req.Session,
		Term:     req.Term,
		SchoolID: schoolID,
	}
	grading.CreatedBy = &p.UserID
	grading.UpdatedBy = &p.UserID

	if err := s.repo.Grading.Create(ctx, grading); err != nil {
		s.logger.Error("创建成绩册失败", zap.Error(err))
		return nil, err
	}

	return s.toGradingResponse(ctx, grading), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *gradingService) GetByID(ctx context.Context, p *Principal, id string) (*dto.GradingDetailResponse, error) {
	grading, err := s.repo.Grading.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradingNotFound
		}
		s.logger.Error("查询成绩册失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, err
	}
	if !inScope(scope, grading.SchoolID) {
		return nil, ErrForbidden
	}

	// 学生/家长：只能看已发布，且成绩明细限定到本人/子女
	var studentIDs []string
	switch p.Role {
	case RoleStudent:
		if !grading.Published {
			return nil, ErrGradingNotPublished
		}
		studentIDs = []string{p.UserID}
	case RoleParent:
		if !grading.Published {
			return nil, ErrGradingNotPublished
		}
		children, err := s.repo.Student.ListByParent(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			studentIDs = append(studentIDs, c.StudentID)
		}
		if len(studentIDs) == 0 {
			return nil, ErrForbidden
		}
	}

	grades, err := s.repo.Grading.ListGrades(ctx, id, studentIDs)
	if err != nil {
		s.logger.Error("查询成绩明细失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	detail := &dto.GradingDetailResponse{
		GradingResponse: *s.toGradingResponse(ctx, grading),
		Grades:          make([]dto.GradeResponse, 0, len(grades)),
	}
	for i := range grades {
		detail.Grades = append(detail.Grades, *toGradeResponse(&grades[i]))
	}
	return detail, nil
}

// ────────────────────── List ──────────────────────

func (s *gradingService) List(ctx context.Context, p *Principal, req *dto.GradingListRequest) ([]dto.GradingResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}
	if p.IsGlobal() && req.SchoolID != "" {
		scope = []string{req.SchoolID}
	}

	filters := &repository.GradingListFilters{
		Session: req.Session,
		Term:    req.Term,
		// 学生/家长只看已发布的成绩册
		PublishedOnly: p.Role == RoleStudent || p.Role == RoleParent,
	}
	gradings, total, err := s.repo.Grading.List(ctx, scope, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出成绩册失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.GradingResponse, 0, len(gradings))
	for i := range gradings {
		result = append(result, *s.toGradingResponse(ctx, &gradings[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *gradingService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateGradingRequest) (*dto.GradingResponse, error) {
	grading, err := s.loadManaged(ctx, p, id)
	if err != nil {
		return nil, err
	}

	session := grading.Session
	term := grading.Term
	if req.Session != nil {
		session = *req.Session
	}
	if req.Term != nil {
		term = *req.Term
	}
	if session != grading.Session || term != grading.Term {
		existing, err := s.repo.Grading.GetBySchoolSessionTerm(ctx, grading.SchoolID, session, term)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrGradingExists
		}
		grading.Session = session
		grading.Term = term
	}
	grading.UpdatedBy = &p.UserID

	if err := s.repo.Grading.Update(ctx, grading); err != nil {
		s.logger.Error("更新成绩册失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toGradingResponse(ctx, grading), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 级联删除成绩册及其全部成绩，返回删除的成绩条数
func (s *gradingService) Delete(ctx context.Context, p *Principal, id string) (int64, error) {
	if _, err := s.loadManaged(ctx, p, id); err != nil {
		return 0, err
	}

	deleted, err := s.repo.Grading.CascadeDelete(ctx, id)
	if err != nil {
		s.logger.Error("删除成绩册失败", zap.String("id", id), zap.Error(err))
		return 0, err
	}

	s.logger.Info("成绩册已删除", zap.String("id", id), zap.Int64("grades", deleted))
	return deleted, nil
}

// ────────────────────── Publish ──────────────────────

func (s *gradingService) Publish(ctx context.Context, p *Principal, id string) (*dto.GradingResponse, error) {
	grading, err := s.loadManaged(ctx, p, id)
	if err != nil {
		return nil, err
	}

	grading.Published = true
	grading.UpdatedBy = &p.UserID

	if err := s.repo.Grading.Update(ctx, grading); err != nil {
		s.logger.Error("发布成绩册失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("成绩册已发布", zap.String("id", id), zap.String("school_id", grading.SchoolID))
	return s.toGradingResponse(ctx, grading), nil
}

// ────────────────────── UpsertGrades ──────────────────────

// UpsertGrades 批量录入成绩；total 与 remark 由服务端计算
// 教师可录入自己任教科目的成绩，管理角色不受科目限制
func (s *gradingService) UpsertGrades(ctx context.Context, p *Principal, gradingID string, req *dto.UpsertGradesRequest) (*dto.UpsertGradesResponse, error) {
	if p.Role != RoleTeacher && !p.CanManage() {
		return nil, ErrForbidden
	}

	grading, err := s.repo.Grading.GetByID(ctx, gradingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradingNotFound
		}
		s.logger.Error("查询成绩册失败", zap.String("id", gradingID), zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() && grading.SchoolID != p.SchoolID {
		return nil, ErrForbidden
	}

	subjectCache := make(map[string]*model.Subject)
	grades := make([]model.Grade, 0, len(req.Grades))
	for _, entry := range req.Grades {
		student, err := s.repo.Student.GetByID(ctx, entry.StudentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStudentNotFound
			}
			return nil, err
		}
		if student.SchoolID != grading.SchoolID {
			return nil, ErrGradeCrossSchool
		}

		subject, ok := subjectCache[entry.SubjectID]
		if !ok {
			subject, err = s.repo.Subject.GetByID(ctx, entry.SubjectID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrSubjectNotFound
				}
				return nil, err
			}
			subjectCache[entry.SubjectID] = subject
		}
		if subject.SchoolID != grading.SchoolID {
			return nil, ErrGradeCrossSchool
		}
		// 教师只能录入自己任教科目的成绩
		if p.Role == RoleTeacher {
			if subject.TeacherID == nil || *subject.TeacherID != p.UserID {
				return nil, ErrForbidden
			}
		}

		total := entry.CA1 + entry.CA2 + entry.Exam
		grade := model.Grade{
			GradingID:   gradingID,
			StudentID:   entry.StudentID,
			SubjectID:   entry.SubjectID,
			CA1:         entry.CA1,
			CA2:         entry.CA2,
			Exam:        entry.Exam,
			Total:       total,
			Remark:      deriveRemark(total),
			Affective:   entry.Affective,
			Psychomotor: entry.Psychomotor,
		}
		grade.CreatedBy = &p.UserID
		grade.UpdatedBy = &p.UserID
		grades = append(grades, grade)
	}

	if err := s.repo.Grading.UpsertGrades(ctx, grades); err != nil {
		s.logger.Error("写入成绩失败", zap.String("grading_id", gradingID), zap.Error(err))
		return nil, err
	}

	return &dto.UpsertGradesResponse{Upserted: len(grades)}, nil
}

// ── 内部辅助方法 ──

// loadManaged 加载成绩册并校验管理权限
func (s *gradingService) loadManaged(ctx context.Context, p *Principal, id string) (*model.Grading, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	grading, err := s.repo.Grading.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradingNotFound
		}
		s.logger.Error("查询成绩册失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() && grading.SchoolID != p.SchoolID {
		return nil, ErrForbidden
	}
	return grading, nil
}

func (s *gradingService) toGradingResponse(ctx context.Context, grading *model.Grading) *dto.GradingResponse {
	gradeCount, _ := s.repo.Grading.CountGrades(ctx, grading.GradingID)
	resp := &dto.GradingResponse{
		ID:         grading.GradingID,
		Session:    grading.Session,
		Term:       grading.Term,
		Published:  grading.Published,
		GradeCount: gradeCount,
		CreatedAt:  grading.CreatedAt.Format(timeLayout),
	}
	if grading.School != nil {
		resp.School = &dto.SchoolBrief{ID: grading.School.SchoolID, Name: grading.School.Name}
	}
	return resp
}

func toGradeResponse(grade *model.Grade) *dto.GradeResponse {
	resp := &dto.GradeResponse{
		ID:          grade.GradeID,
		CA1:         grade.CA1,
		CA2:         grade.CA2,
		Exam:        grade.Exam,
		Total:       grade.Total,
		Remark:      grade.Remark,
		Affective:   grade.Affective,
		Psychomotor: grade.Psychomotor,
	}
	if grade.Student != nil {
		resp.Student = &dto.StudentBrief{
			ID:              grade.Student.StudentID,
			Name:            grade.Student.FirstName + " " + grade.Student.LastName,
			AdmissionNumber: grade.Student.AdmissionNumber,
		}
	}
	if grade.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: grade.Subject.SubjectID, Name: grade.Subject.Name}
	}
	return resp
}
