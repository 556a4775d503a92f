package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/jwt"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.AccountResponse
	meErr         error
	changePwdErr  error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}

func (m *mockAuthService) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}

func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}

func (m *mockAuthService) Me(_ context.Context, _ *service.Principal) (*dto.AccountResponse, error) {
	return m.meResult, m.meErr
}

func (m *mockAuthService) ChangePassword(_ context.Context, _ *service.Principal, _ *dto.ChangePasswordRequest) error {
	return m.changePwdErr
}

type mockStudentService struct {
	createResult *dto.StudentResponse
	createErr    error
	getResult    *dto.StudentResponse
	getErr       error
	listResult   []dto.StudentResponse
	listTotal    int64
	listErr      error
	updateResult *dto.StudentResponse
	updateErr    error
	deleteErr    error
	importResult *dto.ImportStudentResponse
	importErr    error
}

func (m *mockStudentService) Create(_ context.Context, _ *service.Principal, _ *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	return m.createResult, m.createErr
}

func (m *mockStudentService) GetByID(_ context.Context, _ *service.Principal, _ string) (*dto.StudentResponse, error) {
	return m.getResult, m.getErr
}

func (m *mockStudentService) List(_ context.Context, _ *service.Principal, _ *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

func (m *mockStudentService) Update(_ context.Context, _ *service.Principal, _ string, _ *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	return m.updateResult, m.updateErr
}

func (m *mockStudentService) Delete(_ context.Context, _ *service.Principal, _ string) error {
	return m.deleteErr
}

func (m *mockStudentService) Import(_ context.Context, _ *service.Principal, _ *string, _ io.Reader) (*dto.ImportStudentResponse, error) {
	return m.importResult, m.importErr
}

type mockGradingService struct {
	createResult  *dto.GradingResponse
	createErr     error
	getResult     *dto.GradingDetailResponse
	getErr        error
	listResult    []dto.GradingResponse
	listTotal     int64
	listErr       error
	updateResult  *dto.GradingResponse
	updateErr     error
	deleted       int64
	deleteErr     error
	publishResult *dto.GradingResponse
	publishErr    error
	upsertResult  *dto.UpsertGradesResponse
	upsertErr     error
}

func (m *mockGradingService) Create(_ context.Context, _ *service.Principal, _ *dto.CreateGradingRequest) (*dto.GradingResponse, error) {
	return m.createResult, m.createErr
}

func (m *mockGradingService) GetByID(_ context.Context, _ *service.Principal, _ string) (*dto.GradingDetailResponse, error) {
	return m.getResult, m.getErr
}

func (m *mockGradingService) List(_ context.Context, _ *service.Principal, _ *dto.GradingListRequest) ([]dto.GradingResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

func (m *mockGradingService) Update(_ context.Context, _ *service.Principal, _ string, _ *dto.UpdateGradingRequest) (*dto.GradingResponse, error) {
	return m.updateResult, m.updateErr
}

func (m *mockGradingService) Delete(_ context.Context, _ *service.Principal, _ string) (int64, error) {
	return m.deleted, m.deleteErr
}

func (m *mockGradingService) Publish(_ context.Context, _ *service.Principal, _ string) (*dto.GradingResponse, error) {
	return m.publishResult, m.publishErr
}

func (m *mockGradingService) UpsertGrades(_ context.Context, _ *service.Principal, _ string, _ *dto.UpsertGradesRequest) (*dto.UpsertGradesResponse, error) {
	return m.upsertResult, m.upsertErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// fakeAuth 模拟认证中间件注入的上下文
func fakeAuth(userID, role, schoolID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Set("school_id", schoolID)
		c.Next()
	}
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("序列化请求体失败: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) *response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v, body: %s", err, w.Body.String())
	}
	return &resp
}

// ═══════════════════════════════════════════════════════════
// Auth Handler
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			ExpiresIn:    900,
			User:         dto.AccountResponse{ID: "admin-1", Role: "admin"},
		},
	}
	h := NewAuthHandler(mock)

	engine := gin.New()
	engine.POST("/api/v1/auth/login", h.Login)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email": "principal@hallmark.test", "password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("期望状态码 200，实际: %d, body: %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("期望业务码 0，实际: %d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	engine := gin.New()
	engine.POST("/api/v1/auth/login", h.Login)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email": "principal@hallmark.test", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望状态码 401，实际: %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 20001 {
		t.Errorf("期望业务码 20001，实际: %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadRequest(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	engine := gin.New()
	engine.POST("/api/v1/auth/login", h.Login)

	// 缺少 password 字段
	w := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email": "principal@hallmark.test",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望状态码 400，实际: %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 10001 {
		t.Errorf("期望业务码 10001，实际: %d", resp.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	// 未经过认证中间件，上下文缺少身份信息
	engine := gin.New()
	engine.GET("/api/v1/auth/me", h.Me)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望状态码 401，实际: %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 10002 {
		t.Errorf("期望业务码 10002，实际: %d", resp.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOld(t *testing.T) {
	mock := &mockAuthService{changePwdErr: service.ErrOldPasswordWrong}
	h := NewAuthHandler(mock)

	engine := gin.New()
	engine.PUT("/api/v1/auth/password", fakeAuth("admin-1", "admin", "school-1"), h.ChangePassword)

	w := doJSON(t, engine, http.MethodPut, "/api/v1/auth/password", gin.H{
		"old_password": "wrong-old", "new_password": "new-password-456",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望状态码 400，实际: %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 20004 {
		t.Errorf("期望业务码 20004，实际: %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// Student Handler
// ═══════════════════════════════════════════════════════════

func newStudentTestEngine(mock *mockStudentService) *gin.Engine {
	h := NewStudentHandler(mock)
	engine := gin.New()
	auth := fakeAuth("admin-1", "admin", "school-1")
	engine.POST("/api/v1/students", auth, h.CreateStudent)
	engine.GET("/api/v1/students", auth, h.ListStudents)
	engine.GET("/api/v1/students/:id", auth, h.GetStudent)
	engine.DELETE("/api/v1/students/:id", auth, h.DeleteStudent)
	return engine
}

func TestStudentHandler_Create(t *testing.T) {
	mock := &mockStudentService{
		createResult: &dto.StudentResponse{
			ID: "s1", AdmissionNumber: "HA/HAL/2026/0001",
			FirstName: "Chidi", LastName: "Okafor",
		},
	}
	engine := newStudentTestEngine(mock)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/students", gin.H{
		"first_name": "Chidi", "last_name": "Okafor",
		"gender": "MALE", "email": "chidi@hallmark.test",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("期望状态码 201，实际: %d, body: %s", w.Code, w.Body.String())
	}
}

func TestStudentHandler_Create_DuplicateEmail(t *testing.T) {
	mock := &mockStudentService{createErr: service.ErrStudentEmailExists}
	engine := newStudentTestEngine(mock)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/students", gin.H{
		"first_name": "Chidi", "last_name": "Okafor",
		"gender": "MALE", "email": "taken@hallmark.test",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望状态码 400，实际: %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 24002 {
		t.Errorf("期望业务码 24002，实际: %d", resp.Code)
	}
}

func TestStudentHandler_Get_NotFound(t *testing.T) {
	mock := &mockStudentService{getErr: service.ErrStudentNotFound}
	engine := newStudentTestEngine(mock)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/students/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望状态码 404，实际: %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 24001 {
		t.Errorf("期望业务码 24001，实际: %d", resp.Code)
	}
}

func TestStudentHandler_Get_Forbidden(t *testing.T) {
	mock := &mockStudentService{getErr: service.ErrForbidden}
	engine := newStudentTestEngine(mock)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/students/s2", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("期望状态码 403，实际: %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 10003 {
		t.Errorf("期望业务码 10003，实际: %d", resp.Code)
	}
}

func TestStudentHandler_List_Pagination(t *testing.T) {
	mock := &mockStudentService{
		listResult: []dto.StudentResponse{{ID: "s1"}, {ID: "s2"}},
		listTotal:  42,
	}
	engine := newStudentTestEngine(mock)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/students?page=2&page_size=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望状态码 200，实际: %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code int               `json:"code"`
		Data response.PageData `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析分页响应失败: %v", err)
	}
	if resp.Data.Pagination.Total != 42 {
		t.Errorf("期望 total 42，实际: %d", resp.Data.Pagination.Total)
	}
	if resp.Data.Pagination.Page != 2 {
		t.Errorf("期望 page 2，实际: %d", resp.Data.Pagination.Page)
	}
	if resp.Data.Pagination.TotalPages != 21 {
		t.Errorf("期望 total_pages 21，实际: %d", resp.Data.Pagination.TotalPages)
	}
}

// ═══════════════════════════════════════════════════════════
// Grading Handler
// ═══════════════════════════════════════════════════════════

func newGradingTestEngine(mock *mockGradingService) *gin.Engine {
	h := NewGradingHandler(mock)
	engine := gin.New()
	auth := fakeAuth("admin-1", "admin", "school-1")
	engine.POST("/api/v1/gradings", auth, h.CreateGrading)
	engine.DELETE("/api/v1/gradings/:id", auth, h.DeleteGrading)
	engine.POST("/api/v1/gradings/:id/publish", auth, h.PublishGrading)
	engine.PUT("/api/v1/gradings/:id/grades", auth, h.UpsertGrades)
	return engine
}

func TestGradingHandler_Create_Duplicate(t *testing.T) {
	mock := &mockGradingService{createErr: service.ErrGradingExists}
	engine := newGradingTestEngine(mock)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/gradings", gin.H{
		"session": "2025/2026", "term": "FIRST",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("期望状态码 409，实际: %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 34002 {
		t.Errorf("期望业务码 34002，实际: %d", resp.Code)
	}
}

func TestGradingHandler_Delete_ReturnsDeletedCount(t *testing.T) {
	mock := &mockGradingService{deleted: 35}
	engine := newGradingTestEngine(mock)

	w := doJSON(t, engine, http.MethodDelete, "/api/v1/gradings/grading-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望状态码 200，实际: %d", w.Code)
	}

	var resp struct {
		Data struct {
			DeletedGrades int64 `json:"deleted_grades"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Data.DeletedGrades != 35 {
		t.Errorf("期望 deleted_grades 35，实际: %d", resp.Data.DeletedGrades)
	}
}

func TestGradingHandler_UpsertGrades_TeacherForbidden(t *testing.T) {
	mock := &mockGradingService{upsertErr: service.ErrForbidden}
	engine := newGradingTestEngine(mock)

	w := doJSON(t, engine, http.MethodPut, "/api/v1/gradings/grading-1/grades", gin.H{
		"grades": []gin.H{{
			"student_id": "3f2b8c14-9e27-4a61-8d05-1c9f7e2a5b40",
			"subject_id": "b7a61d92-4c38-4f05-9e21-6d84a0c3f175",
			"ca1":        10, "ca2": 10, "exam": 40,
		}},
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("期望状态码 403，实际: %d", w.Code)
	}
}
