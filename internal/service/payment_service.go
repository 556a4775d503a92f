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

// ── 缴费模块业务错误 ──

var (
	ErrPaymentNotFound = errors.New("缴费记录不存在")
)

// PaymentService 缴费业务接口
type PaymentService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.PaymentResponse, error)
	List(ctx context.Context, p *Principal, req *dto.PaymentListRequest) ([]dto.PaymentResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdatePaymentRequest) (*dto.PaymentResponse, error)
	Delete(ctx context.Context, p *Principal, id string) error
}

type paymentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPaymentService 创建 PaymentService 实例
func NewPaymentService(repo *repository.Repository, logger *zap.Logger) PaymentService {
	return &paymentService{repo: repo, logger: logger}
}

func (s *paymentService) Create(ctx context.Context, p *Principal, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	student, err := s.repo.Student.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() && student.SchoolID != p.SchoolID {
		return nil, ErrForbidden
	}

	payment := &model.Payment{
		Amount:    req.Amount,
		Session:   req.Session,
		Term:      req.Term,
		Method:    req.Method,
		Reference: req.Reference,
		PaidAt:    time.Now(),
		StudentID: req.StudentID,
		SchoolID:  student.SchoolID,
	}
	if payment.Method == "" {
		payment.Method = "CASH"
	}
	payment.CreatedBy = &p.UserID
	payment.UpdatedBy = &p.UserID

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.logger.Error("创建缴费记录失败", zap.Error(err))
		return nil, err
	}
	payment.Student = student

	return toPaymentResponse(payment), nil
}

func (s *paymentService) GetByID(ctx context.Context, p *Principal, id string) (*dto.PaymentResponse, error) {
	payment, err := s.repo.Payment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("查询缴费记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 学生/家长只能看自己（家）的缴费记录
	switch p.Role {
	case RoleStudent:
		if payment.StudentID != p.UserID {
			return nil, ErrForbidden
		}
	case RoleParent:
		if payment.Student == nil || payment.Student.ParentID == nil || *payment.Student.ParentID != p.UserID {
			return nil, ErrForbidden
		}
	default:
		scope, err := resolveSchoolScope(ctx, s.repo, p)
		if err != nil {
			return nil, err
		}
		if !inScope(scope, payment.SchoolID) {
			return nil, ErrForbidden
		}
	}

	return toPaymentResponse(payment), nil
}

func (s *paymentService) List(ctx context.Context, p *Principal, req *dto.PaymentListRequest) ([]dto.PaymentResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}

	filters := &repository.PaymentListFilters{
		StudentID: req.StudentID,
		Session:   req.Session,
		Term:      req.Term,
	}
	// 学生只看自己的缴费记录，家长只看子女的缴费记录
	switch p.Role {
	case RoleStudent:
		filters.StudentID = p.UserID
	case RoleParent:
		filters.ParentID = p.UserID
	}

	payments, total, err := s.repo.Payment.List(ctx, scope, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出缴费记录失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		result = append(result, *toPaymentResponse(&payments[i]))
	}
	return result, total, nil
}

func (s *paymentService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	payment, err := s.repo.Payment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("查询缴费记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() && payment.SchoolID != p.SchoolID {
		return nil, ErrForbidden
	}

	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.Method != nil {
		payment.Method = *req.Method
	}
	if req.Reference != nil {
		payment.Reference = *req.Reference
	}
	payment.UpdatedBy = &p.UserID

	if err := s.repo.Payment.Update(ctx, payment); err != nil {
		s.logger.Error("更新缴费记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toPaymentResponse(payment), nil
}

func (s *paymentService) Delete(ctx context.Context, p *Principal, id string) error {
	if !p.CanManage() {
		return ErrForbidden
	}

	payment, err := s.repo.Payment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		s.logger.Error("查询缴费记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if !p.IsGlobal() && payment.SchoolID != p.SchoolID {
		return ErrForbidden
	}

	if err := s.repo.Payment.Delete(ctx, id, p.UserID); err != nil {
		s.logger.Error("删除缴费记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toPaymentResponse(payment *model.Payment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:        payment.PaymentID,
		Amount:    payment.Amount,
		Session:   payment.Session,
		Term:      payment.Term,
		Method:    payment.Method,
		Reference: payment.Reference,
		PaidAt:    payment.PaidAt.Format(timeLayout),
	}
	if payment.Student != nil {
		resp.Student = &dto.StudentBrief{
			ID:              payment.Student.StudentID,
			Name:            payment.Student.FirstName + " " + payment.Student.LastName,
			AdmissionNumber: payment.Student.AdmissionNumber,
		}
	}
	return resp
}
