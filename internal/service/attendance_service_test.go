package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
)

func setupTestAttendanceService(t *testing.T) (AttendanceService, *mockRepos) {
	t.Helper()
	repo, mocks := newMockRepository()
	svc := NewAttendanceService(repo, zap.NewNop())

	classID := "class-1"
	mocks.Class.classes[classID] = &model.Class{ClassID: classID, Name: "JSS1A", SchoolID: "school-1"}
	mocks.Lesson.lessons["lesson-1"] = &model.Lesson{
		LessonID: "lesson-1", Name: "Mathematics JSS1A", Day: "MONDAY",
		ClassID: classID, TeacherID: "teacher-1", SchoolID: "school-1",
	}
	mocks.Student.students["s1"] = &model.Student{StudentID: "s1", SchoolID: "school-1", ClassID: &classID}
	mocks.Student.students["s2"] = &model.Student{StudentID: "s2", SchoolID: "school-1", ClassID: &classID}
	return svc, mocks
}

// ═══════════════════════════════════════════════════════════
// Mark
// ═══════════════════════════════════════════════════════════

func TestAttendanceService_Mark_Success(t *testing.T) {
	svc, mocks := setupTestAttendanceService(t)

	teacher := &Principal{UserID: "teacher-1", Role: RoleTeacher, SchoolID: "school-1"}
	resp, err := svc.Mark(context.Background(), teacher, &dto.MarkAttendanceRequest{
		LessonID: "lesson-1",
		Date:     "2026-03-02",
		Records: []dto.AttendanceMarkEntry{
			{StudentID: "s1", Present: true},
			{StudentID: "s2", Present: false},
		},
	})
	if err != nil {
		t.Fatalf("点名失败: %v", err)
	}
	if resp.Marked != 2 {
		t.Errorf("期望写入 2 条考勤，实际: %d", resp.Marked)
	}
	if len(mocks.Attendance.records) != 2 {
		t.Errorf("期望持久化 2 条考勤，实际: %d", len(mocks.Attendance.records))
	}
}

// 同一天重复点名覆盖旧记录
func TestAttendanceService_Mark_UpsertOverwrites(t *testing.T) {
	svc, mocks := setupTestAttendanceService(t)
	teacher := &Principal{UserID: "teacher-1", Role: RoleTeacher, SchoolID: "school-1"}

	mark := func(present bool) {
		t.Helper()
		_, err := svc.Mark(context.Background(), teacher, &dto.MarkAttendanceRequest{
			LessonID: "lesson-1",
			Date:     "2026-03-02",
			Records:  []dto.AttendanceMarkEntry{{StudentID: "s1", Present: present}},
		})
		if err != nil {
			t.Fatalf("点名失败: %v", err)
		}
	}

	mark(false)
	mark(true)

	if len(mocks.Attendance.records) != 1 {
		t.Fatalf("期望 upsert 后仅 1 条记录，实际: %d", len(mocks.Attendance.records))
	}
	for _, rec := range mocks.Attendance.records {
		if !rec.Present {
			t.Error("期望覆盖后 Present 为 true")
		}
	}
}

func TestAttendanceService_Mark_NotOwnLesson(t *testing.T) {
	svc, _ := setupTestAttendanceService(t)

	other := &Principal{UserID: "teacher-2", Role: RoleTeacher, SchoolID: "school-1"}
	_, err := svc.Mark(context.Background(), other, &dto.MarkAttendanceRequest{
		LessonID: "lesson-1",
		Date:     "2026-03-02",
		Records:  []dto.AttendanceMarkEntry{{StudentID: "s1", Present: true}},
	})
	if err != ErrAttendanceNotOwnLesson {
		t.Errorf("期望 ErrAttendanceNotOwnLesson，实际: %v", err)
	}
}

func TestAttendanceService_Mark_StudentNotInLesson(t *testing.T) {
	svc, mocks := setupTestAttendanceService(t)
	otherClass := "class-2"
	mocks.Student.students["s3"] = &model.Student{StudentID: "s3", SchoolID: "school-1", ClassID: &otherClass}

	teacher := &Principal{UserID: "teacher-1", Role: RoleTeacher, SchoolID: "school-1"}
	_, err := svc.Mark(context.Background(), teacher, &dto.MarkAttendanceRequest{
		LessonID: "lesson-1",
		Date:     "2026-03-02",
		Records:  []dto.AttendanceMarkEntry{{StudentID: "s3", Present: true}},
	})
	if err != ErrStudentNotInLesson {
		t.Errorf("期望 ErrStudentNotInLesson，实际: %v", err)
	}
}

func TestAttendanceService_Mark_StudentForbidden(t *testing.T) {
	svc, _ := setupTestAttendanceService(t)

	student := &Principal{UserID: "s1", Role: RoleStudent, SchoolID: "school-1"}
	_, err := svc.Mark(context.Background(), student, &dto.MarkAttendanceRequest{
		LessonID: "lesson-1",
		Date:     "2026-03-02",
		Records:  []dto.AttendanceMarkEntry{{StudentID: "s1", Present: true}},
	})
	if err != ErrForbidden {
		t.Errorf("期望 ErrForbidden，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// List / Summary
// ═══════════════════════════════════════════════════════════

// 学生列表查询强制过滤为本人记录
func TestAttendanceService_List_StudentSeesOwnOnly(t *testing.T) {
	svc, _ := setupTestAttendanceService(t)
	teacher := &Principal{UserID: "teacher-1", Role: RoleTeacher, SchoolID: "school-1"}
	if _, err := svc.Mark(context.Background(), teacher, &dto.MarkAttendanceRequest{
		LessonID: "lesson-1",
		Date:     "2026-03-02",
		Records: []dto.AttendanceMarkEntry{
			{StudentID: "s1", Present: true},
			{StudentID: "s2", Present: true},
		},
	}); err != nil {
		t.Fatalf("点名失败: %v", err)
	}

	student := &Principal{UserID: "s1", Role: RoleStudent, SchoolID: "school-1"}
	list, total, err := svc.List(context.Background(), student, &dto.AttendanceListRequest{})
	if err != nil {
		t.Fatalf("查询考勤失败: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Errorf("期望学生只看到本人 1 条记录，实际 total=%d len=%d", total, len(list))
	}
}

func TestAttendanceService_Summary(t *testing.T) {
	svc, _ := setupTestAttendanceService(t)
	teacher := &Principal{UserID: "teacher-1", Role: RoleTeacher, SchoolID: "school-1"}

	for _, day := range []string{"2026-03-02", "2026-03-03"} {
		if _, err := svc.Mark(context.Background(), teacher, &dto.MarkAttendanceRequest{
			LessonID: "lesson-1",
			Date:     day,
			Records: []dto.AttendanceMarkEntry{
				{StudentID: "s1", Present: true},
				{StudentID: "s2", Present: day == "2026-03-02"},
			},
		}); err != nil {
			t.Fatalf("点名失败: %v", err)
		}
	}

	summary, err := svc.Summary(context.Background(), teacher, &dto.AttendanceSummaryRequest{ClassID: "class-1"})
	if err != nil {
		t.Fatalf("考勤统计失败: %v", err)
	}
	if summary.Total != 4 {
		t.Errorf("期望总记录 4，实际: %d", summary.Total)
	}
	if summary.Present != 3 {
		t.Errorf("期望出勤 3，实际: %d", summary.Present)
	}
	if summary.Absent != 1 {
		t.Errorf("期望缺勤 1，实际: %d", summary.Absent)
	}
	if summary.Rate != 0.75 {
		t.Errorf("期望出勤率 0.75，实际: %v", summary.Rate)
	}
	if len(summary.Students) != 2 {
		t.Errorf("期望 2 名学生的聚合行，实际: %d", len(summary.Students))
	}
}

func TestAttendanceService_Summary_StudentForbidden(t *testing.T) {
	svc, _ := setupTestAttendanceService(t)

	student := &Principal{UserID: "s1", Role: RoleStudent, SchoolID: "school-1"}
	if _, err := svc.Summary(context.Background(), student, &dto.AttendanceSummaryRequest{}); err != ErrForbidden {
		t.Errorf("期望 ErrForbidden，实际: %v", err)
	}
}
