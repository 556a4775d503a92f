package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/config"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/repository"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/jwt"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrAccountNotFound    = errors.New("账号不存在")
	ErrInvalidRefresh     = errors.New("refresh token 无效")
	ErrOldPasswordWrong   = errors.New("原密码错误")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, p *Principal) (*dto.AccountResponse, error)
	ChangePassword(ctx context.Context, p *Principal, req *dto.ChangePasswordRequest) error
}

// tokenBlacklist Token 黑名单读写，生产实现为 *redis.Client
type tokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    tokenBlacklist
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
// rdb 允许为 nil（未部署 Redis 时登出仅依赖 Token 自然过期）
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	s := &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		logger: logger,
	}
	if rdb != nil {
		s.rdb = rdb
	}
	return s
}

// account 跨角色账号的统一内部视图
type account struct {
	ID           string
	Name         string
	Email        string
	Role         string
	SchoolID     string
	School       *dto.SchoolBrief
	PasswordHash string
}

// findByEmail 按 行政 → 教师 → 学生 → 家长 顺序查找账号
func (s *authService) findByEmail(ctx context.Context, email string) (*account, error) {
	if admin, err := s.repo.Administration.GetByEmail(ctx, email); err == nil {
		acc := &account{
			ID:           admin.AdminID,
			Name:         admin.Username,
			Email:        admin.Email,
			Role:         admin.Role,
			PasswordHash: admin.PasswordHash,
		}
		if admin.SchoolID != nil {
			acc.SchoolID = *admin.SchoolID
		}
		if admin.School != nil {
			acc.School = &dto.SchoolBrief{ID: admin.School.SchoolID, Name: admin.School.Name}
		}
		return acc, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if t, err := s.repo.Teacher.GetByEmail(ctx, email); err == nil {
		acc := &account{
			ID:           t.TeacherID,
			Name:         t.FirstName + " " + t.LastName,
			Email:        t.Email,
			Role:         RoleTeacher,
			SchoolID:     t.SchoolID,
			PasswordHash: t.PasswordHash,
		}
		if t.School != nil {
			acc.School = &dto.SchoolBrief{ID: t.School.SchoolID, Name: t.School.Name}
		}
		return acc, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if st, err := s.repo.Student.GetByEmail(ctx, email); err == nil {
		acc := &account{
			ID:           st.StudentID,
			Name:         st.FirstName + " " + st.LastName,
			Email:        st.Email,
			Role:         RoleStudent,
			SchoolID:     st.SchoolID,
			PasswordHash: st.PasswordHash,
		}
		if st.School != nil {
			acc.School = &dto.SchoolBrief{ID: st.School.SchoolID, Name: st.School.Name}
		}
		return acc, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if pa, err := s.repo.Parent.GetByEmail(ctx, email); err == nil {
		return &account{
			ID:           pa.ParentID,
			Name:         pa.FirstName + " " + pa.LastName,
			Email:        pa.Email,
			Role:         RoleParent,
			PasswordHash: pa.PasswordHash,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, gorm.ErrRecordNotFound
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 跨角色查找账号
	acc, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对
	return s.issueTokens(acc, req.RememberMe)
}

func (s *authService) issueTokens(acc *account, rememberMe bool) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(acc.ID, acc.Role, acc.SchoolID)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(acc.ID, acc.Role, acc.SchoolID, rememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.AccountResponse{
			ID:       acc.ID,
			Name:     acc.Name,
			Email:    acc.Email,
			Role:     acc.Role,
			School:   acc.School,
			SchoolID: acc.SchoolID,
		},
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefresh
	}

	// 已登出的 refresh token 不能续签
	// Redis 出错时降级放行，与认证中间件的行为一致
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("查询黑名单失败", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidRefresh
		}
	}

	// 重新加载账号，角色或学校变更后立即生效
	p := &Principal{UserID: claims.UserID, Role: claims.Role, SchoolID: claims.SchoolID}
	acc, err := s.loadAccount(ctx, p)
	if err != nil {
		return nil, err
	}

	// 旧 refresh token 作废（轮换）
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("refresh token 加入黑名单失败", zap.Error(err))
		}
	}

	return s.issueTokens(acc, claims.RememberMe)
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		s.logger.Error("token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, p *Principal) (*dto.AccountResponse, error) {
	acc, err := s.loadAccount(ctx, p)
	if err != nil {
		return nil, err
	}
	return &dto.AccountResponse{
		ID:       acc.ID,
		Name:     acc.Name,
		Email:    acc.Email,
		Role:     acc.Role,
		School:   acc.School,
		SchoolID: acc.SchoolID,
	}, nil
}

// loadAccount 按角色从对应表加载账号
func (s *authService) loadAccount(ctx context.Context, p *Principal) (*account, error) {
	switch p.Role {
	case RoleSuper, RoleManagement, RoleAdmin:
		admin, err := s.repo.Administration.GetByID(ctx, p.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAccountNotFound
			}
			return nil, err
		}
		acc := &account{
			ID:           admin.AdminID,
			Name:         admin.Username,
			Email:        admin.Email,
			Role:         admin.Role,
			PasswordHash: admin.PasswordHash,
		}
		if admin.SchoolID != nil {
			acc.SchoolID = *admin.SchoolID
		}
		if admin.School != nil {
			acc.School = &dto.SchoolBrief{ID: admin.School.SchoolID, Name: admin.School.Name}
		}
		return acc, nil
	case RoleTeacher:
		t, err := s.repo.Teacher.GetByID(ctx, p.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAccountNotFound
			}
			return nil, err
		}
		acc := &account{
			ID:           t.TeacherID,
			Name:         t.FirstName + " " + t.LastName,
			Email:        t.Email,
			Role:         RoleTeacher,
			SchoolID:     t.SchoolID,
			PasswordHash: t.PasswordHash,
		}
		if t.School != nil {
			acc.School = &dto.SchoolBrief{ID: t.School.SchoolID, Name: t.School.Name}
		}
		return acc, nil
	case RoleStudent:
		st, err := s.repo.Student.GetByID(ctx, p.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAccountNotFound
			}
			return nil, err
		}
		acc := &account{
			ID:           st.StudentID,
			Name:         st.FirstName + " " + st.LastName,
			Email:        st.Email,
			Role:         RoleStudent,
			SchoolID:     st.SchoolID,
			PasswordHash: st.PasswordHash,
		}
		if st.School != nil {
			acc.School = &dto.SchoolBrief{ID: st.School.SchoolID, Name: st.School.Name}
		}
		return acc, nil
	case RoleParent:
		pa, err := s.repo.Parent.GetByID(ctx, p.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAccountNotFound
			}
			return nil, err
		}
		return &account{
			ID:           pa.ParentID,
			Name:         pa.FirstName + " " + pa.LastName,
			Email:        pa.Email,
			Role:         RoleParent,
			PasswordHash: pa.PasswordHash,
		}, nil
	}
	return nil, ErrAccountNotFound
}

func (s *authService) ChangePassword(ctx context.Context, p *Principal, req *dto.ChangePasswordRequest) error {
	acc, err := s.loadAccount(ctx, p)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrOldPasswordWrong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	newHash := string(hash)

	switch p.Role {
	case RoleSuper, RoleManagement, RoleAdmin:
		admin, err := s.repo.Administration.GetByID(ctx, p.UserID)
		if err != nil {
			return err
		}
		admin.PasswordHash = newHash
		admin.UpdatedBy = &p.UserID
		return s.repo.Administration.Update(ctx, admin)
	case RoleTeacher:
		t, err := s.repo.Teacher.GetByID(ctx, p.UserID)
		if err != nil {
			return err
		}
		t.PasswordHash = newHash
		t.UpdatedBy = &p.UserID
		return s.repo.Teacher.Update(ctx, t)
	case RoleStudent:
		st, err := s.repo.Student.GetByID(ctx, p.UserID)
		if err != nil {
			return err
		}
		st.PasswordHash = newHash
		st.UpdatedBy = &p.UserID
		return s.repo.Student.Update(ctx, st)
	case RoleParent:
		pa, err := s.repo.Parent.GetByID(ctx, p.UserID)
		if err != nil {
			return err
		}
		pa.PasswordHash = newHash
		pa.UpdatedBy = &p.UserID
		return s.repo.Parent.Update(ctx, pa)
	}
	return ErrAccountNotFound
}
