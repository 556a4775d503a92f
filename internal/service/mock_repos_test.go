package service

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Mock Repositories
//
// 所有 mock 以内存 map 为后端，范围过滤语义与 GORM 实现保持一致：
// schoolIDs 为空切片/nil 表示不过滤（全局视角）
// ═══════════════════════════════════════════════════════════

// matchScope 学校范围匹配，与 scopeBySchool 语义一致
func matchScope(schoolIDs []string, schoolID string) bool {
	if len(schoolIDs) == 0 {
		return true
	}
	for _, id := range schoolIDs {
		if id == schoolID {
			return true
		}
	}
	return false
}

// matchScopeOrGlobal 同 matchScope，school_id 为空（全局记录）时放行
func matchScopeOrGlobal(schoolIDs []string, schoolID *string) bool {
	if schoolID == nil || *schoolID == "" {
		return true
	}
	return matchScope(schoolIDs, *schoolID)
}

// containsFold 大小写不敏感的包含匹配（模拟 ILIKE）
func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func paginate[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// ── Mock SchoolRepository ──

type mockSchoolRepo struct {
	schools map[string]*model.School
	cascade *repository.CascadeCounts
}

func newMockSchoolRepo() *mockSchoolRepo {
	return &mockSchoolRepo{schools: make(map[string]*model.School)}
}

func (m *mockSchoolRepo) Create(_ context.Context, school *model.School) error {
	if school.SchoolID == "" {
		school.SchoolID = "school-" + school.Name
	}
	m.schools[school.SchoolID] = school
	return nil
}

func (m *mockSchoolRepo) GetByID(_ context.Context, id string) (*model.School, error) {
	if s, ok := m.schools[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) GetByEmail(_ context.Context, email string) (*model.School, error) {
	for _, s := range m.schools {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) List(_ context.Context, schoolIDs []string, filters *repository.SchoolListFilters, offset, limit int) ([]model.School, int64, error) {
	var all []model.School
	for _, s := range m.schools {
		if !matchScope(schoolIDs, s.SchoolID) {
			continue
		}
		if filters != nil {
			if filters.SchoolType != "" && s.SchoolType != filters.SchoolType {
				continue
			}
			if !containsFold(s.Name, filters.Keyword) {
				continue
			}
		}
		all = append(all, *s)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockSchoolRepo) Update(_ context.Context, school *model.School) error {
	m.schools[school.SchoolID] = school
	return nil
}

func (m *mockSchoolRepo) CascadeDelete(_ context.Context, id string, _ string) (*repository.CascadeCounts, error) {
	if _, ok := m.schools[id]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	delete(m.schools, id)
	if m.cascade != nil {
		return m.cascade, nil
	}
	return &repository.CascadeCounts{}, nil
}

func (m *mockSchoolRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.schools)), nil
}

// ── Mock AdministrationRepository ──

type mockAdministrationRepo struct {
	admins map[string]*model.Administration
}

func newMockAdministrationRepo() *mockAdministrationRepo {
	return &mockAdministrationRepo{admins: make(map[string]*model.Administration)}
}

func (m *mockAdministrationRepo) Create(_ context.Context, admin *model.Administration) error {
	if admin.AdminID == "" {
		admin.AdminID = "admin-" + admin.Email
	}
	m.admins[admin.AdminID] = admin
	return nil
}

func (m *mockAdministrationRepo) GetByID(_ context.Context, id string) (*model.Administration, error) {
	if a, ok := m.admins[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdministrationRepo) GetByEmail(_ context.Context, email string) (*model.Administration, error) {
	for _, a := range m.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdministrationRepo) List(_ context.Context, schoolIDs []string, filters *repository.AdministrationListFilters, offset, limit int) ([]model.Administration, int64, error) {
	var all []model.Administration
	for _, a := range m.admins {
		if !matchScopeOrGlobal(schoolIDs, a.SchoolID) {
			continue
		}
		if filters != nil {
			if filters.Role != "" && a.Role != filters.Role {
				continue
			}
			if !containsFold(a.Username, filters.Keyword) && !containsFold(a.Email, filters.Keyword) {
				continue
			}
		}
		all = append(all, *a)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockAdministrationRepo) Update(_ context.Context, admin *model.Administration) error {
	m.admins[admin.AdminID] = admin
	return nil
}

func (m *mockAdministrationRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.admins, id)
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		teacher.TeacherID = "teacher-" + teacher.Email
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByEmail(_ context.Context, email string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.Email == email {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context, schoolIDs []string, filters *repository.TeacherListFilters, offset, limit int) ([]model.Teacher, int64, error) {
	var all []model.Teacher
	for _, t := range m.teachers {
		if !matchScope(schoolIDs, t.SchoolID) {
			continue
		}
		if filters != nil && !containsFold(t.FirstName+" "+t.LastName, filters.Keyword) && !containsFold(t.Email, filters.Keyword) {
			continue
		}
		all = append(all, *t)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.teachers, id)
	return nil
}

func (m *mockTeacherRepo) Count(_ context.Context, schoolIDs []string) (int64, error) {
	var n int64
	for _, t := range m.teachers {
		if matchScope(schoolIDs, t.SchoolID) {
			n++
		}
	}
	return n, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	// createConflicts 模拟前 N 次写入撞唯一键
	createConflicts int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if m.createConflicts > 0 {
		m.createConflicts--
		return gorm.ErrDuplicatedKey
	}
	if student.StudentID == "" {
		student.StudentID = "student-" + student.Email
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByAdmissionNumber(_ context.Context, number string) (*model.Student, error) {
	for _, s := range m.students {
		if s.AdmissionNumber == number {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, schoolIDs []string, filters *repository.StudentListFilters, offset, limit int) ([]model.Student, int64, error) {
	var all []model.Student
	for _, s := range m.students {
		if !matchScope(schoolIDs, s.SchoolID) {
			continue
		}
		if filters != nil {
			if filters.ClassID != "" && (s.ClassID == nil || *s.ClassID != filters.ClassID) {
				continue
			}
			if filters.ParentID != "" && (s.ParentID == nil || *s.ParentID != filters.ParentID) {
				continue
			}
			if filters.Gender != "" && s.Gender != filters.Gender {
				continue
			}
			if !containsFold(s.FirstName+" "+s.LastName, filters.Keyword) && !containsFold(s.AdmissionNumber, filters.Keyword) {
				continue
			}
		}
		all = append(all, *s)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockStudentRepo) ListByParent(_ context.Context, parentID string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if s.ParentID != nil && *s.ParentID == parentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.students, id)
	return nil
}

func (m *mockStudentRepo) Count(_ context.Context, schoolIDs []string) (int64, error) {
	var n int64
	for _, s := range m.students {
		if matchScope(schoolIDs, s.SchoolID) {
			n++
		}
	}
	return n, nil
}

func (m *mockStudentRepo) CountByGender(_ context.Context, schoolIDs []string, gender string) (int64, error) {
	var n int64
	for _, s := range m.students {
		if matchScope(schoolIDs, s.SchoolID) && s.Gender == gender {
			n++
		}
	}
	return n, nil
}

func (m *mockStudentRepo) CountByAdmissionPrefix(_ context.Context, prefix string) (int64, error) {
	var n int64
	for _, s := range m.students {
		if strings.HasPrefix(s.AdmissionNumber, prefix) {
			n++
		}
	}
	return n, nil
}

// ── Mock ParentRepository ──

type mockParentRepo struct {
	parents  map[string]*model.Parent
	students *mockStudentRepo // 子女所在学校用于范围过滤
}

func newMockParentRepo(students *mockStudentRepo) *mockParentRepo {
	return &mockParentRepo{parents: make(map[string]*model.Parent), students: students}
}

func (m *mockParentRepo) Create(_ context.Context, parent *model.Parent) error {
	if parent.ParentID == "" {
		parent.ParentID = "parent-" + parent.Email
	}
	m.parents[parent.ParentID] = parent
	return nil
}

func (m *mockParentRepo) GetByID(_ context.Context, id string) (*model.Parent, error) {
	if p, ok := m.parents[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParentRepo) GetByEmail(_ context.Context, email string) (*model.Parent, error) {
	for _, p := range m.parents {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParentRepo) List(_ context.Context, schoolIDs []string, filters *repository.ParentListFilters, offset, limit int) ([]model.Parent, int64, error) {
	var all []model.Parent
	for _, p := range m.parents {
		if len(schoolIDs) > 0 {
			children, _ := m.students.ListByParent(nil, p.ParentID)
			match := false
			for _, c := range children {
				if matchScope(schoolIDs, c.SchoolID) {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if filters != nil && !containsFold(p.FirstName+" "+p.LastName, filters.Keyword) && !containsFold(p.Email, filters.Keyword) {
			continue
		}
		all = append(all, *p)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockParentRepo) Update(_ context.Context, parent *model.Parent) error {
	m.parents[parent.ParentID] = parent
	return nil
}

func (m *mockParentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.parents, id)
	return nil
}

func (m *mockParentRepo) Count(_ context.Context, schoolIDs []string) (int64, error) {
	all, total, err := m.List(nil, schoolIDs, nil, 0, 0)
	_ = all
	return total, err
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes  map[string]*model.Class
	students *mockStudentRepo
}

func newMockClassRepo(students *mockStudentRepo) *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.Class), students: students}
}

func (m *mockClassRepo) Create(_ context.Context, class *model.Class) error {
	if class.ClassID == "" {
		class.ClassID = "class-" + class.Name
	}
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.Class, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) GetByName(_ context.Context, schoolID, name string) (*model.Class, error) {
	for _, c := range m.classes {
		if c.SchoolID == schoolID && c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) List(_ context.Context, schoolIDs []string, filters *repository.ClassListFilters, offset, limit int) ([]model.Class, int64, error) {
	var all []model.Class
	for _, c := range m.classes {
		if !matchScope(schoolIDs, c.SchoolID) {
			continue
		}
		if filters != nil && !containsFold(c.Name, filters.Keyword) {
			continue
		}
		all = append(all, *c)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockClassRepo) Update(_ context.Context, class *model.Class) error {
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.classes, id)
	return nil
}

func (m *mockClassRepo) Count(_ context.Context, schoolIDs []string) (int64, error) {
	var n int64
	for _, c := range m.classes {
		if matchScope(schoolIDs, c.SchoolID) {
			n++
		}
	}
	return n, nil
}

func (m *mockClassRepo) CountStudents(_ context.Context, classID string) (int64, error) {
	var n int64
	for _, s := range m.students.students {
		if s.ClassID != nil && *s.ClassID == classID {
			n++
		}
	}
	return n, nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		subject.SubjectID = "subject-" + subject.Name
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByName(_ context.Context, schoolID, name string) (*model.Subject, error) {
	for _, s := range m.subjects {
		if s.SchoolID == schoolID && s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context, schoolIDs []string, filters *repository.SubjectListFilters, offset, limit int) ([]model.Subject, int64, error) {
	var all []model.Subject
	for _, s := range m.subjects {
		if !matchScope(schoolIDs, s.SchoolID) {
			continue
		}
		if filters != nil {
			if filters.TeacherID != "" && (s.TeacherID == nil || *s.TeacherID != filters.TeacherID) {
				continue
			}
			if !containsFold(s.Name, filters.Keyword) {
				continue
			}
		}
		all = append(all, *s)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.subjects, id)
	return nil
}

func (m *mockSubjectRepo) Count(_ context.Context, schoolIDs []string) (int64, error) {
	var n int64
	for _, s := range m.subjects {
		if matchScope(schoolIDs, s.SchoolID) {
			n++
		}
	}
	return n, nil
}

// ── Mock LessonRepository ──

type mockLessonRepo struct {
	lessons map[string]*model.Lesson
}

func newMockLessonRepo() *mockLessonRepo {
	return &mockLessonRepo{lessons: make(map[string]*model.Lesson)}
}

func (m *mockLessonRepo) Create(_ context.Context, lesson *model.Lesson) error {
	if lesson.LessonID == "" {
		lesson.LessonID = "lesson-" + lesson.Name
	}
	m.lessons[lesson.LessonID] = lesson
	return nil
}

func (m *mockLessonRepo) GetByID(_ context.Context, id string) (*model.Lesson, error) {
	if l, ok := m.lessons[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLessonRepo) List(_ context.Context, schoolIDs []string, filters *repository.LessonListFilters, offset, limit int) ([]model.Lesson, int64, error) {
	var all []model.Lesson
	for _, l := range m.lessons {
		if !matchScope(schoolIDs, l.SchoolID) {
			continue
		}
		if filters != nil {
			if filters.ClassID != "" && l.ClassID != filters.ClassID {
				continue
			}
			if filters.TeacherID != "" && l.TeacherID != filters.TeacherID {
				continue
			}
			if filters.Day != "" && l.Day != filters.Day {
				continue
			}
		}
		all = append(all, *l)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockLessonRepo) Update(_ context.Context, lesson *model.Lesson) error {
	m.lessons[lesson.LessonID] = lesson
	return nil
}

func (m *mockLessonRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.lessons, id)
	return nil
}

func (m *mockLessonRepo) Count(_ context.Context, schoolIDs []string) (int64, error) {
	var n int64
	for _, l := range m.lessons {
		if matchScope(schoolIDs, l.SchoolID) {
			n++
		}
	}
	return n, nil
}

// ── Mock AttendanceRepository ──

type attendanceKey struct {
	studentID string
	lessonID  string
	date      string
}

type mockAttendanceRepo struct {
	records  map[attendanceKey]*model.Attendance
	students *mockStudentRepo
}

func newMockAttendanceRepo(students *mockStudentRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[attendanceKey]*model.Attendance), students: students}
}

func (m *mockAttendanceRepo) UpsertBatch(_ context.Context, records []model.Attendance) error {
	for i := range records {
		r := records[i]
		key := attendanceKey{r.StudentID, r.LessonID, r.Date.Format("2006-01-02")}
		m.records[key] = &r
	}
	return nil
}

func (m *mockAttendanceRepo) List(_ context.Context, schoolIDs []string, filters *repository.AttendanceListFilters, offset, limit int) ([]model.Attendance, int64, error) {
	var all []model.Attendance
	for _, r := range m.records {
		if !matchScope(schoolIDs, r.SchoolID) {
			continue
		}
		if filters != nil {
			if filters.StudentID != "" && r.StudentID != filters.StudentID {
				continue
			}
			if filters.LessonID != "" && r.LessonID != filters.LessonID {
				continue
			}
			if filters.DateFrom != nil && r.Date.Before(*filters.DateFrom) {
				continue
			}
			if filters.DateTo != nil && r.Date.After(*filters.DateTo) {
				continue
			}
		}
		all = append(all, *r)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockAttendanceRepo) CountByStudents(_ context.Context, schoolIDs []string, classID string, from, to *time.Time) ([]repository.StudentAttendanceCount, error) {
	counts := make(map[string]*repository.StudentAttendanceCount)
	for _, r := range m.records {
		if !matchScope(schoolIDs, r.SchoolID) {
			continue
		}
		if classID != "" {
			s, ok := m.students.students[r.StudentID]
			if !ok || s.ClassID == nil || *s.ClassID != classID {
				continue
			}
		}
		if from != nil && r.Date.Before(*from) {
			continue
		}
		if to != nil && r.Date.After(*to) {
			continue
		}
		c, ok := counts[r.StudentID]
		if !ok {
			c = &repository.StudentAttendanceCount{StudentID: r.StudentID}
			counts[r.StudentID] = c
		}
		c.Total++
		if r.Present {
			c.Present++
		}
	}
	var result []repository.StudentAttendanceCount
	for _, c := range counts {
		result = append(result, *c)
	}
	return result, nil
}

// ── Mock PaymentRepository ──

type mockPaymentRepo struct {
	payments map[string]*model.Payment
	students *mockStudentRepo
}

func newMockPaymentRepo(students *mockStudentRepo) *mockPaymentRepo {
	return &mockPaymentRepo{payments: make(map[string]*model.Payment), students: students}
}

func (m *mockPaymentRepo) Create(_ context.Context, payment *model.Payment) error {
	if payment.PaymentID == "" {
		payment.PaymentID = "payment-" + payment.StudentID + "-" + payment.Term
	}
	m.payments[payment.PaymentID] = payment
	return nil
}

func (m *mockPaymentRepo) GetByID(_ context.Context, id string) (*model.Payment, error) {
	if p, ok := m.payments[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentRepo) List(_ context.Context, schoolIDs []string, filters *repository.PaymentListFilters, offset, limit int) ([]model.Payment, int64, error) {
	var all []model.Payment
	for _, p := range m.payments {
		if !matchScope(schoolIDs, p.SchoolID) {
			continue
		}
		if filters != nil {
			if filters.StudentID != "" && p.StudentID != filters.StudentID {
				continue
			}
			if filters.ParentID != "" {
				st, ok := m.students.students[p.StudentID]
				if !ok || st.ParentID == nil || *st.ParentID != filters.ParentID {
					continue
				}
			}
			if filters.Session != "" && p.Session != filters.Session {
				continue
			}
			if filters.Term != "" && p.Term != filters.Term {
				continue
			}
		}
		all = append(all, *p)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockPaymentRepo) Update(_ context.Context, payment *model.Payment) error {
	m.payments[payment.PaymentID] = payment
	return nil
}

func (m *mockPaymentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.payments, id)
	return nil
}

func (m *mockPaymentRepo) SumSince(_ context.Context, schoolIDs []string, since time.Time) (int64, float64, error) {
	var count int64
	var sum float64
	for _, p := range m.payments {
		if matchScope(schoolIDs, p.SchoolID) && !p.PaidAt.Before(since) {
			count++
			sum += p.Amount
		}
	}
	return count, sum, nil
}

// ── Mock GradingRepository ──

type mockGradingRepo struct {
	gradings map[string]*model.Grading
	grades   map[string]*model.Grade // key: gradingID|studentID|subjectID
}

func newMockGradingRepo() *mockGradingRepo {
	return &mockGradingRepo{
		gradings: make(map[string]*model.Grading),
		grades:   make(map[string]*model.Grade),
	}
}

func gradeKey(gradingID, studentID, subjectID string) string {
	return gradingID + "|" + studentID + "|" + subjectID
}

func (m *mockGradingRepo) Create(_ context.Context, grading *model.Grading) error {
	if grading.GradingID == "" {
		grading.GradingID = "grading-" + grading.Session + "-" + grading.Term
	}
	m.gradings[grading.GradingID] = grading
	return nil
}

func (m *mockGradingRepo) GetByID(_ context.Context, id string) (*model.Grading, error) {
	if g, ok := m.gradings[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradingRepo) GetBySchoolSessionTerm(_ context.Context, schoolID, session, term string) (*model.Grading, error) {
	for _, g := range m.gradings {
		if g.SchoolID == schoolID && g.Session == session && g.Term == term {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGradingRepo) List(_ context.Context, schoolIDs []string, filters *repository.GradingListFilters, offset, limit int) ([]model.Grading, int64, error) {
	var all []model.Grading
	for _, g := range m.gradings {
		if !matchScope(schoolIDs, g.SchoolID) {
			continue
		}
		if filters != nil {
			if filters.Session != "" && g.Session != filters.Session {
				continue
			}
			if filters.Term != "" && g.Term != filters.Term {
				continue
			}
			if filters.PublishedOnly && !g.Published {
				continue
			}
		}
		all = append(all, *g)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockGradingRepo) Update(_ context.Context, grading *model.Grading) error {
	m.gradings[grading.GradingID] = grading
	return nil
}

func (m *mockGradingRepo) CascadeDelete(_ context.Context, id string) (int64, error) {
	if _, ok := m.gradings[id]; !ok {
		return 0, gorm.ErrRecordNotFound
	}
	var deleted int64
	for key, g := range m.grades {
		if g.GradingID == id {
			delete(m.grades, key)
			deleted++
		}
	}
	delete(m.gradings, id)
	return deleted, nil
}

func (m *mockGradingRepo) CountGrades(_ context.Context, gradingID string) (int64, error) {
	var n int64
	for _, g := range m.grades {
		if g.GradingID == gradingID {
			n++
		}
	}
	return n, nil
}

func (m *mockGradingRepo) UpsertGrades(_ context.Context, grades []model.Grade) error {
	for i := range grades {
		g := grades[i]
		m.grades[gradeKey(g.GradingID, g.StudentID, g.SubjectID)] = &g
	}
	return nil
}

func (m *mockGradingRepo) ListGrades(_ context.Context, gradingID string, studentIDs []string) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		if g.GradingID != gradingID {
			continue
		}
		if len(studentIDs) > 0 {
			match := false
			for _, id := range studentIDs {
				if g.StudentID == id {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, *g)
	}
	return result, nil
}

// ── Mock 内容类 Repositories ──

type mockAnnouncementRepo struct {
	items map[string]*model.Announcement
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{items: make(map[string]*model.Announcement)}
}

func (m *mockAnnouncementRepo) Create(_ context.Context, a *model.Announcement) error {
	if a.AnnouncementID == "" {
		a.AnnouncementID = "announcement-" + a.Title
	}
	m.items[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	if a, ok := m.items[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) List(_ context.Context, schoolIDs []string, keyword string, offset, limit int) ([]model.Announcement, int64, error) {
	var all []model.Announcement
	for _, a := range m.items {
		if !matchScopeOrGlobal(schoolIDs, a.SchoolID) {
			continue
		}
		if !containsFold(a.Title, keyword) {
			continue
		}
		all = append(all, *a)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockAnnouncementRepo) Update(_ context.Context, a *model.Announcement) error {
	m.items[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockAnnouncementRepo) Count(_ context.Context, schoolIDs []string) (int64, error) {
	var n int64
	for _, a := range m.items {
		if matchScopeOrGlobal(schoolIDs, a.SchoolID) {
			n++
		}
	}
	return n, nil
}

type mockEventRepo struct {
	items map[string]*model.Event
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{items: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, e *model.Event) error {
	if e.EventID == "" {
		e.EventID = "event-" + e.Title
	}
	m.items[e.EventID] = e
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.items[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context, schoolIDs []string, keyword string, offset, limit int) ([]model.Event, int64, error) {
	var all []model.Event
	for _, e := range m.items {
		if !matchScopeOrGlobal(schoolIDs, e.SchoolID) {
			continue
		}
		if !containsFold(e.Title, keyword) {
			continue
		}
		all = append(all, *e)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockEventRepo) Update(_ context.Context, e *model.Event) error {
	m.items[e.EventID] = e
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockEventRepo) Count(_ context.Context, schoolIDs []string) (int64, error) {
	var n int64
	for _, e := range m.items {
		if matchScopeOrGlobal(schoolIDs, e.SchoolID) {
			n++
		}
	}
	return n, nil
}

type mockNewsRepo struct {
	items map[string]*model.News
}

func newMockNewsRepo() *mockNewsRepo {
	return &mockNewsRepo{items: make(map[string]*model.News)}
}

func (m *mockNewsRepo) Create(_ context.Context, n *model.News) error {
	if n.NewsID == "" {
		n.NewsID = "news-" + n.Title
	}
	m.items[n.NewsID] = n
	return nil
}

func (m *mockNewsRepo) GetByID(_ context.Context, id string) (*model.News, error) {
	if n, ok := m.items[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNewsRepo) List(_ context.Context, schoolIDs []string, keyword string, publishedOnly bool, offset, limit int) ([]model.News, int64, error) {
	var all []model.News
	for _, n := range m.items {
		if !matchScopeOrGlobal(schoolIDs, n.SchoolID) {
			continue
		}
		if publishedOnly && !n.Published {
			continue
		}
		if !containsFold(n.Title, keyword) {
			continue
		}
		all = append(all, *n)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockNewsRepo) Update(_ context.Context, n *model.News) error {
	m.items[n.NewsID] = n
	return nil
}

func (m *mockNewsRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

type mockGalleryRepo struct {
	items map[string]*model.Gallery
}

func newMockGalleryRepo() *mockGalleryRepo {
	return &mockGalleryRepo{items: make(map[string]*model.Gallery)}
}

func (m *mockGalleryRepo) Create(_ context.Context, g *model.Gallery) error {
	if g.GalleryID == "" {
		g.GalleryID = "gallery-" + g.Title
	}
	m.items[g.GalleryID] = g
	return nil
}

func (m *mockGalleryRepo) GetByID(_ context.Context, id string) (*model.Gallery, error) {
	if g, ok := m.items[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGalleryRepo) List(_ context.Context, schoolIDs []string, keyword string, offset, limit int) ([]model.Gallery, int64, error) {
	var all []model.Gallery
	for _, g := range m.items {
		if !matchScope(schoolIDs, g.SchoolID) {
			continue
		}
		if !containsFold(g.Title, keyword) {
			continue
		}
		all = append(all, *g)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockGalleryRepo) Update(_ context.Context, g *model.Gallery) error {
	m.items[g.GalleryID] = g
	return nil
}

func (m *mockGalleryRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

// ── 聚合辅助 ──

// mockRepos 保留各 mock 的具体引用，便于测试中直接预置数据
type mockRepos struct {
	School         *mockSchoolRepo
	Administration *mockAdministrationRepo
	Teacher        *mockTeacherRepo
	Student        *mockStudentRepo
	Parent         *mockParentRepo
	Class          *mockClassRepo
	Subject        *mockSubjectRepo
	Lesson         *mockLessonRepo
	Attendance     *mockAttendanceRepo
	Payment        *mockPaymentRepo
	Grading        *mockGradingRepo
	Announcement   *mockAnnouncementRepo
	Event          *mockEventRepo
	News           *mockNewsRepo
	Gallery        *mockGalleryRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	students := newMockStudentRepo()
	mocks := &mockRepos{
		School:         newMockSchoolRepo(),
		Administration: newMockAdministrationRepo(),
		Teacher:        newMockTeacherRepo(),
		Student:        students,
		Parent:         newMockParentRepo(students),
		Class:          newMockClassRepo(students),
		Subject:        newMockSubjectRepo(),
		Lesson:         newMockLessonRepo(),
		Attendance:     newMockAttendanceRepo(students),
		Payment:        newMockPaymentRepo(students),
		Grading:        newMockGradingRepo(),
		Announcement:   newMockAnnouncementRepo(),
		Event:          newMockEventRepo(),
		News:           newMockNewsRepo(),
		Gallery:        newMockGalleryRepo(),
	}
	repo := &repository.Repository{
		School:         mocks.School,
		Administration: mocks.Administration,
		Teacher:        mocks.Teacher,
		Student:        mocks.Student,
		Parent:         mocks.Parent,
		Class:          mocks.Class,
		Subject:        mocks.Subject,
		Lesson:         mocks.Lesson,
		Attendance:     mocks.Attendance,
		Payment:        mocks.Payment,
		Grading:        mocks.Grading,
		Announcement:   mocks.Announcement,
		Event:          mocks.Event,
		News:           mocks.News,
		Gallery:        mocks.Gallery,
	}
	return repo, mocks
}
