package service

import (
	"context"
	"errors"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/repository"
)

// ── 角色常量 ──

const (
	RoleSuper      = "super"
	RoleManagement = "management"
	RoleAdmin      = "admin"
	RoleTeacher    = "teacher"
	RoleStudent    = "student"
	RoleParent     = "parent"
)

// 时间序列化格式，与前端约定一致
const (
	timeLayout = "2006-01-02T15:04:05Z"
	dateLayout = "2006-01-02"
)

// ── 通用业务错误 ──

var (
	ErrForbidden     = errors.New("无权访问该资源")
	ErrSchoolMissing = errors.New("必须指定学校")
)

// Principal 当前调用者身份，由认证中间件从 JWT 解析注入
// SchoolID 对 super 角色为空字符串
type Principal struct {
	UserID   string
	Role     string
	SchoolID string
}

// IsGlobal 是否拥有全局视角（不受学校范围限制）
func (p *Principal) IsGlobal() bool {
	return p.Role == RoleSuper
}

// CanManage 是否拥有写权限（学校/账号/教学资源的增删改）
func (p *Principal) CanManage() bool {
	switch p.Role {
	case RoleSuper, RoleManagement, RoleAdmin:
		return true
	}
	return false
}

// resolveSchoolScope 解析调用者的学校可见范围
// 返回 nil 表示全局视角；parent 角色按子女所在学校聚合
func resolveSchoolScope(ctx context.Context, repo *repository.Repository, p *Principal) ([]string, error) {
	switch p.Role {
	case RoleSuper:
		return nil, nil
	case RoleManagement, RoleAdmin, RoleTeacher, RoleStudent:
		if p.SchoolID == "" {
			return nil, ErrForbidden
		}
		return []string{p.SchoolID}, nil
	case RoleParent:
		children, err := repo.Student.ListByParent(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{}, len(children))
		scope := make([]string, 0, len(children))
		for _, c := range children {
			if _, ok := seen[c.SchoolID]; ok {
				continue
			}
			seen[c.SchoolID] = struct{}{}
			scope = append(scope, c.SchoolID)
		}
		if len(scope) == 0 {
			// 无子女的家长看不到任何学校数据
			return []string{"00000000-0000-0000-0000-000000000000"}, nil
		}
		return scope, nil
	}
	return nil, ErrForbidden
}

// resolveTargetSchool 解析写操作的目标学校
// super 必须显式携带 school_id，其余管理角色固定为自身学校
func resolveTargetSchool(p *Principal, requested *string) (string, error) {
	if p.IsGlobal() {
		if requested == nil || *requested == "" {
			return "", ErrSchoolMissing
		}
		return *requested, nil
	}
	if p.SchoolID == "" {
		return "", ErrForbidden
	}
	if requested != nil && *requested != "" && *requested != p.SchoolID {
		return "", ErrForbidden
	}
	return p.SchoolID, nil
}

// inScope 判断某学校是否在可见范围内（scope 为 nil 表示全局）
func inScope(scope []string, schoolID string) bool {
	if len(scope) == 0 {
		return true
	}
	for _, id := range scope {
		if id == schoolID {
			return true
		}
	}
	return false
}

// inScopeOrGlobal 同 inScope，但 school_id 为空（全局记录）时放行
func inScopeOrGlobal(scope []string, schoolID *string) bool {
	if schoolID == nil || *schoolID == "" {
		return true
	}
	return inScope(scope, *schoolID)
}
