package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/config"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/repository"
)

// ── 学生模块业务错误 ──

var (
	ErrStudentNotFound    = errors.New("学生不存在")
	ErrStudentEmailExists = errors.New("学生邮箱已被占用")
	ErrClassNotInSchool   = errors.New("班级不属于该学校")
	ErrParentNotFound     = errors.New("家长不存在")
	ErrImportFileInvalid  = errors.New("导入文件格式无效")
)

// StudentService 学生业务接口
// 学籍号与默认密码由服务端生成
type StudentService interface {
	Create(ctx context.Context, p *Principal, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, p *Principal, id string) (*dto.StudentResponse, error)
	List(ctx context.Context, p *Principal, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error)
	Update(ctx context.Context, p *Principal, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	Delete(ctx context.Context, p *Principal, id string) error
	// Import 从 xlsx 花名册批量导入学生
	Import(ctx context.Context, p *Principal, schoolID *string, file io.Reader) (*dto.ImportStudentResponse, error)
}

type studentService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── 学籍号生成 ──────────────────────

// schoolPrefix 取学校名称前三个字母（大写）作为学籍号段
func schoolPrefix(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() >= 3 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "SCH"
	}
	return b.String()
}

// nextAdmissionNumber 生成学籍号：HA/<校名前缀>/<年份>/<序号>
// 序号按前缀下的历史总数递增（含软删除，序号不回收）
func (s *studentService) nextAdmissionNumber(ctx context.Context, school *model.School) (string, error) {
	prefix := fmt.Sprintf("%s/%s/%d/",
		s.cfg.Academy.AdmissionPrefix,
		schoolPrefix(school.Name),
		time.Now().Year(),
	)
	count, err := s.repo.Student.CountByAdmissionPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, p *Principal, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	schoolID, err := resolveTargetSchool(p, req.SchoolID)
	if err != nil {
		return nil, err
	}
	school, err := s.repo.School.GetByID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, err
	}

	existing, err := s.repo.Student.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrStudentEmailExists
	}

	// 班级、家长归属校验
	if req.ClassID != nil {
		class, err := s.repo.Class.GetByID(ctx, *req.ClassID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClassNotFound
			}
			return nil, err
		}
		if class.SchoolID != schoolID {
			return nil, ErrClassNotInSchool
		}
	}
	if req.ParentID != nil {
		if _, err := s.repo.Parent.GetByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
	}

	tempPassword := generateTempPassword()
	hash, err := hashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		OtherName:    req.OtherName,
		Gender:       req.Gender,
		Address:      req.Address,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		SchoolID:     schoolID,
		ClassID:      req.ClassID,
		ParentID:     req.ParentID,
	}
	if req.Birthday != "" {
		if bd, err := time.Parse(dateLayout, req.Birthday); err == nil {
			student.Birthday = &bd
		}
	}
	student.CreatedBy = &p.UserID
	student.UpdatedBy = &p.UserID

	// 学籍号按计数生成，并发创建可能撞号，撞唯一键后重算序号重试
	for attempt := 0; ; attempt++ {
		admissionNumber, err := s.nextAdmissionNumber(ctx, school)
		if err != nil {
			s.logger.Error("生成学籍号失败", zap.Error(err))
			return nil, err
		}
		student.AdmissionNumber = admissionNumber

		err = s.repo.Student.Create(ctx, student)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < 2 {
			continue
		}
		s.logger.Error("创建学生失败", zap.Error(err))
		return nil, err
	}

	resp := toStudentResponse(student)
	resp.TempPassword = tempPassword
	return resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studentService) GetByID(ctx context.Context, p *Principal, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 学生只能看自己；家长只能看自己的子女
	switch p.Role {
	case RoleStudent:
		if student.StudentID != p.UserID {
			return nil, ErrForbidden
		}
	case RoleParent:
		if student.ParentID == nil || *student.ParentID != p.UserID {
			return nil, ErrForbidden
		}
	default:
		scope, err := resolveSchoolScope(ctx, s.repo, p)
		if err != nil {
			return nil, err
		}
		if !inScope(scope, student.SchoolID) {
			return nil, ErrForbidden
		}
	}

	return toStudentResponse(student), nil
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context, p *Principal, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	scope, err := resolveSchoolScope(ctx, s.repo, p)
	if err != nil {
		return nil, 0, err
	}
	if p.IsGlobal() && req.SchoolID != "" {
		scope = []string{req.SchoolID}
	}

	filters := &repository.StudentListFilters{
		ClassID: req.ClassID,
		Gender:  req.Gender,
		Keyword: req.Keyword,
	}
	// 家长只能列出自己的子女
	if p.Role == RoleParent {
		filters.ParentID = p.UserID
	}

	students, total, err := s.repo.Student.List(ctx, scope, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *toStudentResponse(&students[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, p *Principal, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !p.IsGlobal() && student.SchoolID != p.SchoolID {
		return nil, ErrForbidden
	}

	if req.Email != nil && *req.Email != student.Email {
		existing, err := s.repo.Student.GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrStudentEmailExists
		}
		student.Email = *req.Email
	}
	if req.ClassID != nil {
		class, err := s.repo.Class.GetByID(ctx, *req.ClassID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClassNotFound
			}
			return nil, err
		}
		if class.SchoolID != student.SchoolID {
			return nil, ErrClassNotInSchool
		}
		student.ClassID = req.ClassID
	}
	if req.ParentID != nil {
		if _, err := s.repo.Parent.GetByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		student.ParentID = req.ParentID
	}
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.OtherName != nil {
		student.OtherName = *req.OtherName
	}
	if req.Gender != nil {
		student.Gender = *req.Gender
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Birthday != nil {
		if bd, err := time.Parse(dateLayout, *req.Birthday); err == nil {
			student.Birthday = &bd
		}
	}
	student.UpdatedBy = &p.UserID

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("更新学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toStudentResponse(student), nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, p *Principal, id string) error {
	if !p.CanManage() {
		return ErrForbidden
	}

	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if !p.IsGlobal() && student.SchoolID != p.SchoolID {
		return ErrForbidden
	}

	if err := s.repo.Student.Delete(ctx, id, p.UserID); err != nil {
		s.logger.Error("删除学生失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// Import — xlsx 花名册批量导入
// ═══════════════════════════════════════════════════════════
//
// 设计说明：
//   - 第一阶段逐行解析并校验，问题行记入 Errors，不阻断其余行
//   - 第二阶段在单个事务中写入全部合法行，任一写入失败整体回滚
//   - 表头固定：first_name | last_name | gender | email | phone | birthday | class

type importRow struct {
	rowNum    int
	firstName string
	lastName  string
	gender    string
	email     string
	phone     string
	birthday  *time.Time
	classID   *string
}

func (s *studentService) Import(ctx context.Context, p *Principal, schoolID *string, file io.Reader) (*dto.ImportStudentResponse, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}

	target, err := resolveTargetSchool(p, schoolID)
	if err != nil {
		return nil, err
	}
	school, err := s.repo.School.GetByID(ctx, target)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, err
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, ErrImportFileInvalid
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return nil, ErrImportFileInvalid
	}

	resp := &dto.ImportStudentResponse{Total: len(rows) - 1}

	// ── 第一阶段：解析与校验 ──
	classCache := make(map[string]*model.Class)
	valid := make([]importRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		rowNum := i + 2 // 1-based，含表头
		row, reason := s.parseImportRow(ctx, cells, rowNum, school.SchoolID, classCache)
		if reason != "" {
			resp.Errors = append(resp.Errors, dto.ImportStudentError{Row: rowNum, Reason: reason})
			continue
		}
		valid = append(valid, *row)
	}

	// ── 第二阶段：事务写入 ──
	if len(valid) > 0 {
		err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
			for _, row := range valid {
				admissionNumber, err := s.nextAdmissionNumberTx(ctx, txRepo, school)
				if err != nil {
					return err
				}
				tempPassword := generateTempPassword()
				hash, err := hashPassword(tempPassword)
				if err != nil {
					return err
				}

				student := &model.Student{
					AdmissionNumber: admissionNumber,
					FirstName:       row.firstName,
					LastName:        row.lastName,
					Gender:          row.gender,
					Email:           row.email,
					Phone:           row.phone,
					Birthday:        row.birthday,
					PasswordHash:    hash,
					SchoolID:        school.SchoolID,
					ClassID:         row.classID,
				}
				student.CreatedBy = &p.UserID
				student.UpdatedBy = &p.UserID

				if err := txRepo.Student.Create(ctx, student); err != nil {
					s.logger.Error("导入学生写入失败", zap.Int("row", row.rowNum), zap.Error(err))
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	resp.Success = len(valid)
	resp.Failed = len(resp.Errors)

	s.logger.Info("学生导入完成",
		zap.String("school_id", school.SchoolID),
		zap.Int("success", resp.Success),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

func (s *studentService) parseImportRow(ctx context.Context, cells []string, rowNum int, schoolID string, classCache map[string]*model.Class) (*importRow, string) {
	get := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	row := &importRow{
		rowNum:    rowNum,
		firstName: get(0),
		lastName:  get(1),
		gender:    strings.ToUpper(get(2)),
		email:     get(3),
		phone:     get(4),
	}

	if row.firstName == "" || row.lastName == "" {
		return nil, "姓名不能为空"
	}
	if row.gender != "MALE" && row.gender != "FEMALE" {
		return nil, "性别必须为 MALE 或 FEMALE"
	}
	if row.email == "" || !strings.Contains(row.email, "@") {
		return nil, "邮箱无效"
	}

	if existing, err := s.repo.Student.GetByEmail(ctx, row.email); err == nil && existing != nil {
		return nil, "邮箱已被占用"
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "校验邮箱失败"
	}

	if bd := get(5); bd != "" {
		parsed, err := time.Parse(dateLayout, bd)
		if err != nil {
			return nil, "出生日期格式必须为 YYYY-MM-DD"
		}
		row.birthday = &parsed
	}

	if className := get(6); className != "" {
		class, ok := classCache[className]
		if !ok {
			found, err := s.repo.Class.GetByName(ctx, schoolID, className)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Sprintf("班级 %q 不存在", className)
				}
				return nil, "校验班级失败"
			}
			classCache[className] = found
			class = found
		}
		row.classID = &class.ClassID
	}

	return row, ""
}

// nextAdmissionNumberTx 与 nextAdmissionNumber 相同，但使用事务内的 Repository
func (s *studentService) nextAdmissionNumberTx(ctx context.Context, txRepo *repository.Repository, school *model.School) (string, error) {
	prefix := fmt.Sprintf("%s/%s/%d/",
		s.cfg.Academy.AdmissionPrefix,
		schoolPrefix(school.Name),
		time.Now().Year(),
	)
	count, err := txRepo.Student.CountByAdmissionPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// ── 内部辅助方法 ──

func toStudentResponse(student *model.Student) *dto.StudentResponse {
	resp := &dto.StudentResponse{
		ID:              student.StudentID,
		AdmissionNumber: student.AdmissionNumber,
		FirstName:       student.FirstName,
		LastName:        student.LastName,
		OtherName:       student.OtherName,
		Gender:          student.Gender,
		Address:         student.Address,
		Email:           student.Email,
		Phone:           student.Phone,
		CreatedAt:       student.CreatedAt.Format(timeLayout),
	}
	if student.Birthday != nil {
		resp.Birthday = student.Birthday.Format(dateLayout)
	}
	if student.ParentID != nil {
		resp.ParentID = *student.ParentID
	}
	if student.School != nil {
		resp.School = &dto.SchoolBrief{ID: student.School.SchoolID, Name: student.School.Name}
	}
	if student.Class != nil {
		resp.Class = &dto.ClassBrief{ID: student.Class.ClassID, Name: student.Class.Name}
	}
	return resp
}
