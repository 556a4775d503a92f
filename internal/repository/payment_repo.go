package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

// PaymentListFilters 缴费列表过滤条件
type PaymentListFilters struct {
	StudentID string
	ParentID  string
	Session   string
	Term      string
}

// PaymentRepository 缴费数据访问接口
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	List(ctx context.Context, schoolIDs []string, filters *PaymentListFilters, offset, limit int) ([]model.Payment, int64, error)
	Update(ctx context.Context, payment *model.Payment) error
	Delete(ctx context.Context, id string, deletedBy string) error
	SumSince(ctx context.Context, schoolIDs []string, since time.Time) (int64, float64, error)
}

// paymentRepo PaymentRepository 的 GORM 实现
type paymentRepo struct {
	db *gorm.DB
}

// NewPaymentRepo 创建 PaymentRepository 实例
func NewPaymentRepo(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepo) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("payment_id = ?", id).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepo) List(ctx context.Context, schoolIDs []string, filters *PaymentListFilters, offset, limit int) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	db := scopeBySchool(r.db.WithContext(ctx).Model(&model.Payment{}), schoolIDs)
	if filters != nil {
		if filters.StudentID != "" {
			db = db.Where("student_id = ?", filters.StudentID)
		}
		if filters.ParentID != "" {
			db = db.Where("student_id IN (?)",
				r.db.Model(&model.Student{}).Select("student_id").Where("parent_id = ?", filters.ParentID))
		}
		if filters.Session != "" {
			db = db.Where("session = ?", filters.Session)
		}
		if filters.Term != "" {
			db = db.Where("term = ?", filters.Term)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Student").
		Offset(offset).Limit(limit).
		Order("paid_at DESC").
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (r *paymentRepo) Update(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	if err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("payment_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("payment_id = ?", id).Delete(&model.Payment{}).Error
}

// SumSince 统计某时间点以来的缴费笔数与总额
func (r *paymentRepo) SumSince(ctx context.Context, schoolIDs []string, since time.Time) (int64, float64, error) {
	var row struct {
		Count int64
		Total float64
	}
	err := scopeBySchool(r.db.WithContext(ctx).Model(&model.Payment{}), schoolIDs).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("paid_at >= ?", since).
		Scan(&row).Error
	return row.Count, row.Total, err
}
