//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=hallmark password=hallmark_password dbname=hallmark_test sslmode=disable TimeZone=Africa/Lagos"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.School{},
		&model.Administration{},
		&model.Teacher{},
		&model.Parent{},
		&model.Class{},
		&model.Student{},
		&model.Subject{},
		&model.Lesson{},
		&model.Attendance{},
		&model.Payment{},
		&model.Grading{},
		&model.Grade{},
		&model.Announcement{},
		&model.Event{},
		&model.News{},
		&model.Gallery{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (school *model.School, class *model.Class, student *model.Student, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	nano := time.Now().UnixNano()

	school = &model.School{
		Name:       fmt.Sprintf("测试学校-%d", nano),
		SchoolType: "SECONDARY",
		Email:      fmt.Sprintf("school%d@test.ng", nano),
	}
	if err := testDB.WithContext(ctx).Create(school).Error; err != nil {
		t.Fatalf("创建学校失败: %v", err)
	}

	class = &model.Class{
		Name:     fmt.Sprintf("JSS1-%d", nano),
		Capacity: 40,
		SchoolID: school.SchoolID,
	}
	if err := testDB.WithContext(ctx).Create(class).Error; err != nil {
		t.Fatalf("创建班级失败: %v", err)
	}

	student = &model.Student{
		AdmissionNumber: fmt.Sprintf("HA/TST/2026/%d", nano%100000),
		FirstName:       "Chidi",
		LastName:        "Okafor",
		Gender:          "MALE",
		Email:           fmt.Sprintf("student%d@test.ng", nano),
		PasswordHash:    "$2a$10$placeholder",
		SchoolID:        school.SchoolID,
		ClassID:         &class.ClassID,
	}
	if err := testDB.WithContext(ctx).Create(student).Error; err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("student_id = ?", student.StudentID).Delete(&model.Student{})
		testDB.Unscoped().Where("class_id = ?", class.ClassID).Delete(&model.Class{})
		testDB.Unscoped().Where("school_id = ?", school.SchoolID).Delete(&model.School{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: 学校范围过滤
// ═══════════════════════════════════════════════════════════

func TestStudentRepository_List_ScopeFilter(t *testing.T) {
	school, _, student, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 限定本校范围
	list, total, err := repo.Student.List(ctx, []string{school.SchoolID}, nil, 0, 20)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("期望本校 1 名学生，实际 total=%d len=%d", total, len(list))
	}
	if list[0].StudentID != student.StudentID {
		t.Errorf("ID 不匹配: expected %s, got %s", student.StudentID, list[0].StudentID)
	}

	// 其他学校范围查不到
	_, total, err = repo.Student.List(ctx, []string{"00000000-0000-0000-0000-000000000000"}, nil, 0, 20)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 0 {
		t.Errorf("期望他校范围 0 名学生，实际: %d", total)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 软删除
// ═══════════════════════════════════════════════════════════

func TestStudentRepository_SoftDelete(t *testing.T) {
	_, _, student, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if err := repo.Student.Delete(ctx, student.StudentID, "tester"); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}

	// 常规查询不可见
	if _, err := repo.Student.GetByID(ctx, student.StudentID); err == nil {
		t.Error("期望软删除后查不到学生")
	}

	// Unscoped 仍然存在且带删除标记
	var raw model.Student
	if err := testDB.Unscoped().Where("student_id = ?", student.StudentID).First(&raw).Error; err != nil {
		t.Fatalf("Unscoped 查询失败: %v", err)
	}
	if !raw.DeletedAt.Valid {
		t.Error("期望 deleted_at 已设置")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 考勤 Upsert
// ═══════════════════════════════════════════════════════════

func TestAttendanceRepository_UpsertBatch(t *testing.T) {
	school, class, student, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	teacher := &model.Teacher{
		FirstName:    "Amina",
		LastName:     "Bello",
		Email:        fmt.Sprintf("teacher%d@test.ng", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		SchoolID:     school.SchoolID,
	}
	if err := testDB.WithContext(ctx).Create(teacher).Error; err != nil {
		t.Fatalf("创建教师失败: %v", err)
	}
	subject := &model.Subject{
		Name:     fmt.Sprintf("Mathematics-%d", time.Now().UnixNano()),
		SchoolID: school.SchoolID,
	}
	if err := testDB.WithContext(ctx).Create(subject).Error; err != nil {
		t.Fatalf("创建科目失败: %v", err)
	}
	lesson := &model.Lesson{
		Name:      "Math Monday",
		Day:       "MONDAY",
		StartTime: "08:00",
		EndTime:   "09:00",
		SubjectID: subject.SubjectID,
		ClassID:   class.ClassID,
		TeacherID: teacher.TeacherID,
		SchoolID:  school.SchoolID,
	}
	if err := testDB.WithContext(ctx).Create(lesson).Error; err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}
	defer func() {
		testDB.Unscoped().Where("lesson_id = ?", lesson.LessonID).Delete(&model.Attendance{})
		testDB.Unscoped().Where("lesson_id = ?", lesson.LessonID).Delete(&model.Lesson{})
		testDB.Unscoped().Where("subject_id = ?", subject.SubjectID).Delete(&model.Subject{})
		testDB.Unscoped().Where("teacher_id = ?", teacher.TeacherID).Delete(&model.Teacher{})
	}()

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	mark := func(present bool) {
		t.Helper()
		err := repo.Attendance.UpsertBatch(ctx, []model.Attendance{{
			Date:      date,
			Present:   present,
			StudentID: student.StudentID,
			LessonID:  lesson.LessonID,
			SchoolID:  school.SchoolID,
		}})
		if err != nil {
			t.Fatalf("UpsertBatch 失败: %v", err)
		}
	}

	mark(false)
	mark(true) // 同一天重复点名走覆盖

	records, total, err := repo.Attendance.List(ctx, []string{school.SchoolID}, nil, 0, 20)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 1 || len(records) != 1 {
		t.Fatalf("期望 upsert 后仅 1 条考勤，实际 total=%d len=%d", total, len(records))
	}
	if !records[0].Present {
		t.Error("期望覆盖后 Present 为 true")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction Rollback
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	school, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx := repo.BeginTx()
	txRepo := repo.WithTx(tx)

	student := &model.Student{
		AdmissionNumber: fmt.Sprintf("HA/TST/2026/R%d", time.Now().UnixNano()%100000),
		FirstName:       "Ngozi",
		LastName:        "Eze",
		Gender:          "FEMALE",
		Email:           fmt.Sprintf("rollback%d@test.ng", time.Now().UnixNano()),
		PasswordHash:    "$2a$10$placeholder",
		SchoolID:        school.SchoolID,
	}
	if err := txRepo.Student.Create(ctx, student); err != nil {
		tx.Rollback()
		t.Fatalf("事务内创建学生失败: %v", err)
	}

	tx.Rollback()

	// 验证数据未持久化
	if _, err := repo.Student.GetByID(ctx, student.StudentID); err == nil {
		testDB.Unscoped().Where("student_id = ?", student.StudentID).Delete(&model.Student{})
		t.Fatal("期望回滚后查不到学生，但实际查到了")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 成绩册级联删除
// ═══════════════════════════════════════════════════════════

func TestGradingRepository_CascadeDelete(t *testing.T) {
	school, _, student, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	subject := &model.Subject{
		Name:     fmt.Sprintf("English-%d", time.Now().UnixNano()),
		SchoolID: school.SchoolID,
	}
	if err := testDB.WithContext(ctx).Create(subject).Error; err != nil {
		t.Fatalf("创建科目失败: %v", err)
	}
	defer testDB.Unscoped().Where("subject_id = ?", subject.SubjectID).Delete(&model.Subject{})

	grading := &model.Grading{
		Session:  "2025/2026",
		Term:     "FIRST",
		SchoolID: school.SchoolID,
	}
	if err := repo.Grading.Create(ctx, grading); err != nil {
		t.Fatalf("创建成绩册失败: %v", err)
	}

	err := repo.Grading.UpsertGrades(ctx, []model.Grade{{
		GradingID: grading.GradingID,
		StudentID: student.StudentID,
		SubjectID: subject.SubjectID,
		CA1:       15, CA2: 18, Exam: 40,
		Total:  73,
		Remark: "A",
	}})
	if err != nil {
		t.Fatalf("写入成绩失败: %v", err)
	}

	deleted, err := repo.Grading.CascadeDelete(ctx, grading.GradingID)
	if err != nil {
		t.Fatalf("CascadeDelete 失败: %v", err)
	}
	if deleted != 1 {
		t.Errorf("期望级联删除 1 条成绩，实际: %d", deleted)
	}
	if _, err := repo.Grading.GetByID(ctx, grading.GradingID); err == nil {
		t.Error("期望成绩册已删除")
	}
}
