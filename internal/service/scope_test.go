package service

import (
	"context"
	"testing"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

func TestResolveSchoolScope_Super(t *testing.T) {
	repo, _ := newMockRepository()
	scope, err := resolveSchoolScope(context.Background(), repo, &Principal{UserID: "u1", Role: RoleSuper})
	if err != nil {
		t.Fatalf("解析范围失败: %v", err)
	}
	if scope != nil {
		t.Errorf("期望 super 角色返回 nil（全局视角），实际: %v", scope)
	}
}

func TestResolveSchoolScope_SchoolRoles(t *testing.T) {
	repo, _ := newMockRepository()
	for _, role := range []string{RoleManagement, RoleAdmin, RoleTeacher, RoleStudent} {
		scope, err := resolveSchoolScope(context.Background(), repo, &Principal{
			UserID: "u1", Role: role, SchoolID: "school-1",
		})
		if err != nil {
			t.Fatalf("角色 %s 解析范围失败: %v", role, err)
		}
		if len(scope) != 1 || scope[0] != "school-1" {
			t.Errorf("角色 %s 期望范围 [school-1]，实际: %v", role, scope)
		}
	}
}

// 学校角色缺少 school_id 时拒绝访问
func TestResolveSchoolScope_MissingSchoolID(t *testing.T) {
	repo, _ := newMockRepository()
	_, err := resolveSchoolScope(context.Background(), repo, &Principal{UserID: "u1", Role: RoleAdmin})
	if err != ErrForbidden {
		t.Errorf("期望 ErrForbidden，实际: %v", err)
	}
}

func TestResolveSchoolScope_UnknownRole(t *testing.T) {
	repo, _ := newMockRepository()
	_, err := resolveSchoolScope(context.Background(), repo, &Principal{UserID: "u1", Role: "visitor"})
	if err != ErrForbidden {
		t.Errorf("期望 ErrForbidden，实际: %v", err)
	}
}

// 家长范围为子女所在学校去重聚合
func TestResolveSchoolScope_ParentAggregatesChildren(t *testing.T) {
	repo, mocks := newMockRepository()
	parentID := "parent-1"
	mocks.Student.students["s1"] = &model.Student{StudentID: "s1", SchoolID: "school-1", ParentID: &parentID}
	mocks.Student.students["s2"] = &model.Student{StudentID: "s2", SchoolID: "school-1", ParentID: &parentID}
	mocks.Student.students["s3"] = &model.Student{StudentID: "s3", SchoolID: "school-2", ParentID: &parentID}

	scope, err := resolveSchoolScope(context.Background(), repo, &Principal{UserID: parentID, Role: RoleParent})
	if err != nil {
		t.Fatalf("解析范围失败: %v", err)
	}
	if len(scope) != 2 {
		t.Fatalf("期望去重后 2 所学校，实际: %v", scope)
	}
	if !inScope(scope, "school-1") || !inScope(scope, "school-2") {
		t.Errorf("期望范围包含 school-1 和 school-2，实际: %v", scope)
	}
}

// 无子女的家长得到一个永不匹配的范围，而不是全局视角
func TestResolveSchoolScope_ChildlessParent(t *testing.T) {
	repo, _ := newMockRepository()
	scope, err := resolveSchoolScope(context.Background(), repo, &Principal{UserID: "parent-x", Role: RoleParent})
	if err != nil {
		t.Fatalf("解析范围失败: %v", err)
	}
	if len(scope) != 1 {
		t.Fatalf("期望单元素哨兵范围，实际: %v", scope)
	}
	if inScope(scope, "school-1") {
		t.Error("无子女家长的范围不应匹配任何真实学校")
	}
}

func TestResolveTargetSchool(t *testing.T) {
	tests := []struct {
		name      string
		principal *Principal
		requested *string
		want      string
		wantErr   error
	}{
		{
			name:      "super 显式指定学校",
			principal: &Principal{Role: RoleSuper},
			requested: strPtr("school-2"),
			want:      "school-2",
		},
		{
			name:      "super 未指定学校",
			principal: &Principal{Role: RoleSuper},
			wantErr:   ErrSchoolMissing,
		},
		{
			name:      "super 指定空字符串",
			principal: &Principal{Role: RoleSuper},
			requested: strPtr(""),
			wantErr:   ErrSchoolMissing,
		},
		{
			name:      "admin 默认自身学校",
			principal: &Principal{Role: RoleAdmin, SchoolID: "school-1"},
			want:      "school-1",
		},
		{
			name:      "admin 显式指定自身学校",
			principal: &Principal{Role: RoleAdmin, SchoolID: "school-1"},
			requested: strPtr("school-1"),
			want:      "school-1",
		},
		{
			name:      "admin 指定他校被拒绝",
			principal: &Principal{Role: RoleAdmin, SchoolID: "school-1"},
			requested: strPtr("school-2"),
			wantErr:   ErrForbidden,
		},
		{
			name:      "management 缺少 school_id",
			principal: &Principal{Role: RoleManagement},
			wantErr:   ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTargetSchool(tt.principal, tt.requested)
			if err != tt.wantErr {
				t.Fatalf("期望错误 %v，实际: %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("期望学校 %q，实际: %q", tt.want, got)
			}
		})
	}
}

func TestInScope(t *testing.T) {
	if !inScope(nil, "school-1") {
		t.Error("nil 范围应匹配所有学校")
	}
	if !inScope([]string{}, "school-1") {
		t.Error("空范围应匹配所有学校")
	}
	if !inScope([]string{"school-1", "school-2"}, "school-2") {
		t.Error("期望 school-2 在范围内")
	}
	if inScope([]string{"school-1"}, "school-3") {
		t.Error("期望 school-3 不在范围内")
	}
}

func TestInScopeOrGlobal(t *testing.T) {
	scope := []string{"school-1"}
	if !inScopeOrGlobal(scope, nil) {
		t.Error("全局记录（nil school_id）应对所有范围可见")
	}
	if !inScopeOrGlobal(scope, strPtr("")) {
		t.Error("全局记录（空 school_id）应对所有范围可见")
	}
	if !inScopeOrGlobal(scope, strPtr("school-1")) {
		t.Error("期望 school-1 在范围内")
	}
	if inScopeOrGlobal(scope, strPtr("school-2")) {
		t.Error("期望 school-2 不在范围内")
	}
}
