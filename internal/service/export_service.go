package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoStudents   = errors.New("当前范围内无学生数据")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 学生花名册与考勤统计导出为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 范围按调用者角色裁剪，与对应列表接口一致
type ExportService interface {
	// ExportStudents 导出学生花名册
	ExportStudents(ctx context.Context, p *Principal, schoolID, classID string) (*bytes.Buffer, string, error)
	// ExportAttendance 导出考勤统计
	ExportAttendance(ctx context.Context, p *Principal, req *dto.AttendanceSummaryRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo       *repository.Repository
	attendance AttendanceService
	logger     *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, attendance AttendanceService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, attendance: attendance, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportStudents — 导出学生花名册
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "Students"
//   - 列：学籍号 | 姓 | 名 | 性别 | 邮箱 | 电话 | 班级 | 学校

func (s *exportService) ExportStudents(ctx context.Context, p *Principal, schoolID, classID string) (*bytes.Buffer, string, error) {
	if p.Role == RoleStudent || p.Role == RoleParent {
		return nil, "", ErrForbidden
	}

	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, "", err
	}
	if p.IsGlobal() && schoolID != "" {
		scope = []string{schoolID}
	}

	filters := &repository.StudentListFilters{ClassID: classID}
	students, _, err := s.repo.Student.List(ctx, scope, filters, 0, 10000)
	if err != nil {
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, "", err
	}
	if len(students) == 0 {
		return nil, "", ErrExportNoStudents
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Students"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Admission Number", "Last Name", "First Name", "Gender", "Email", "Phone", "Class", "School"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i := range students {
		st := &students[i]
		row := i + 2
		className := ""
		if st.Class != nil {
			className = st.Class.Name
		}
		schoolName := ""
		if st.School != nil {
			schoolName = st.School.Name
		}
		values := []interface{}{
			st.AdmissionNumber, st.LastName, st.FirstName,
			st.Gender, st.Email, st.Phone, className, schoolName,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("students_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportAttendance — 导出考勤统计
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "Attendance"
//   - 列：学籍号 | 姓名 | 总课次 | 出勤 | 缺勤 | 出勤率

func (s *exportService) ExportAttendance(ctx context.Context, p *Principal, req *dto.AttendanceSummaryRequest) (*bytes.Buffer, string, error) {
	summary, err := s.attendance.Summary(ctx, p, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Admission Number", "Name", "Total", "Present", "Absent", "Rate"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range summary.Students {
		r := i + 2
		values := []interface{}{
			row.Student.AdmissionNumber,
			row.Student.Name,
			row.Total,
			row.Present,
			row.Total - row.Present,
			fmt.Sprintf("%.1f%%", row.Rate*100),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, r)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}
