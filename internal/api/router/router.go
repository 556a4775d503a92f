package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Filson-aj/hallmarkacademy-sub000/config"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/api/handler"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/api/middleware"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/jwt"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/redis"
)

// 写权限角色组：细粒度范围校验在 Service 层完成
var manageRoles = []string{"super", "management", "admin"}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(8 << 20)) // 8MB，兼顾 xlsx 导入

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 学校模块（create/delete 仅 super，Service 层校验）
			schools := authorized.Group("/schools")
			{
				schools.GET("", h.School.ListSchools)
				schools.GET("/:id", h.School.GetSchool)
				schools.POST("", middleware.RoleAuth("super"), h.School.CreateSchool)
				schools.PUT("/:id", middleware.RoleAuth(manageRoles...), h.School.UpdateSchool)
				schools.DELETE("/:id", middleware.RoleAuth("super"), h.School.DeleteSchool)
			}

			// 行政账号模块
			administrations := authorized.Group("/administrations")
			administrations.Use(middleware.RoleAuth(manageRoles...))
			{
				administrations.GET("", h.Administration.ListAdministrations)
				administrations.GET("/:id", h.Administration.GetAdministration)
				administrations.POST("", h.Administration.CreateAdministration)
				administrations.PUT("/:id", h.Administration.UpdateAdministration)
				administrations.DELETE("/:id", h.Administration.DeleteAdministration)
			}

			// 教师模块
			teachers := authorized.Group("/teachers")
			{
				teachers.GET("", h.Teacher.ListTeachers)
				teachers.GET("/:id", h.Teacher.GetTeacher)
				teachers.POST("", middleware.RoleAuth(manageRoles...), h.Teacher.CreateTeacher)
				teachers.PUT("/:id", middleware.RoleAuth(manageRoles...), h.Teacher.UpdateTeacher)
				teachers.DELETE("/:id", middleware.RoleAuth(manageRoles...), h.Teacher.DeleteTeacher)
			}

			// 学生模块
			students := authorized.Group("/students")
			{
				students.GET("", h.Student.ListStudents)
				students.GET("/:id", h.Student.GetStudent)
				students.POST("", middleware.RoleAuth(manageRoles...), h.Student.CreateStudent)
				students.POST("/import", middleware.RoleAuth(manageRoles...), h.Student.ImportStudents)
				students.PUT("/:id", middleware.RoleAuth(manageRoles...), h.Student.UpdateStudent)
				students.DELETE("/:id", middleware.RoleAuth(manageRoles...), h.Student.DeleteStudent)
			}

			// 家长模块
			parents := authorized.Group("/parents")
			{
				parents.GET("", h.Parent.ListParents)
				parents.GET("/:id", h.Parent.GetParent)
				parents.POST("", middleware.RoleAuth(manageRoles...), h.Parent.CreateParent)
				parents.PUT("/:id", h.Parent.UpdateParent) // 管理角色或家长本人（Service 层鉴权）
				parents.DELETE("/:id", middleware.RoleAuth(manageRoles...), h.Parent.DeleteParent)
			}

			// 班级模块
			classes := authorized.Group("/classes")
			{
				classes.GET("", h.Class.ListClasses)
				classes.GET("/:id", h.Class.GetClass)
				classes.POST("", middleware.RoleAuth(manageRoles...), h.Class.CreateClass)
				classes.PUT("/:id", middleware.RoleAuth(manageRoles...), h.Class.UpdateClass)
				classes.DELETE("/:id", middleware.RoleAuth(manageRoles...), h.Class.DeleteClass)
			}

			// 科目模块
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.ListSubjects)
				subjects.GET("/:id", h.Subject.GetSubject)
				subjects.POST("", middleware.RoleAuth(manageRoles...), h.Subject.CreateSubject)
				subjects.PUT("/:id", middleware.RoleAuth(manageRoles...), h.Subject.UpdateSubject)
				subjects.DELETE("/:id", middleware.RoleAuth(manageRoles...), h.Subject.DeleteSubject)
			}

			// 课程安排模块
			lessons := authorized.Group("/lessons")
			{
				lessons.GET("", h.Lesson.ListLessons)
				lessons.GET("/:id", h.Lesson.GetLesson)
				lessons.POST("", middleware.RoleAuth(manageRoles...), h.Lesson.CreateLesson)
				lessons.PUT("/:id", middleware.RoleAuth(manageRoles...), h.Lesson.UpdateLesson)
				lessons.DELETE("/:id", middleware.RoleAuth(manageRoles...), h.Lesson.DeleteLesson)
			}

			// 考勤模块
			attendance := authorized.Group("/attendance")
			{
				attendance.GET("", h.Attendance.ListAttendance)
				attendance.GET("/summary", h.Attendance.AttendanceSummary)
				attendance.POST("", middleware.RoleAuth("super", "management", "admin", "teacher"), h.Attendance.MarkAttendance)
			}

			// 缴费模块
			payments := authorized.Group("/payments")
			{
				payments.GET("", h.Payment.ListPayments)
				payments.GET("/:id", h.Payment.GetPayment)
				payments.POST("", middleware.RoleAuth(manageRoles...), h.Payment.CreatePayment)
				payments.PUT("/:id", middleware.RoleAuth(manageRoles...), h.Payment.UpdatePayment)
				payments.DELETE("/:id", middleware.RoleAuth(manageRoles...), h.Payment.DeletePayment)
			}

			// 成绩册模块
			gradings := authorized.Group("/gradings")
			{
				gradings.GET("", h.Grading.ListGradings)
				gradings.GET("/:id", h.Grading.GetGrading)
				gradings.POST("", middleware.RoleAuth(manageRoles...), h.Grading.CreateGrading)
				gradings.PUT("/:id", middleware.RoleAuth(manageRoles...), h.Grading.UpdateGrading)
				gradings.DELETE("/:id", middleware.RoleAuth(manageRoles...), h.Grading.DeleteGrading)
				gradings.POST("/:id/publish", middleware.RoleAuth(manageRoles...), h.Grading.PublishGrading)
				gradings.PUT("/:id/grades", middleware.RoleAuth("super", "management", "admin", "teacher"), h.Grading.UpsertGrades)
			}

			// 公告模块
			announcements := authorized.Group("/announcements")
			{
				announcements.GET("", h.Announcement.ListAnnouncements)
				announcements.GET("/:id", h.Announcement.GetAnnouncement)
				announcements.POST("", middleware.RoleAuth(manageRoles...), h.Announcement.CreateAnnouncement)
				announcements.PUT("/:id", middleware.RoleAuth(manageRoles...), h.Announcement.UpdateAnnouncement)
				announcements.DELETE("/:id", middleware.RoleAuth(manageRoles...), h.Announcement.DeleteAnnouncement)
			}

			// 活动模块
			events := authorized.Group("/events")
			{
				events.GET("", h.Event.ListEvents)
				events.GET("/:id", h.Event.GetEvent)
				events.POST("", middleware.RoleAuth(manageRoles...), h.Event.CreateEvent)
				events.PUT("/:id", middleware.RoleAuth(manageRoles...), h.Event.UpdateEvent)
				events.DELETE("/:id", middleware.RoleAuth(manageRoles...), h.Event.DeleteEvent)
			}

			// 新闻模块
			news := authorized.Group("/news")
			{
				news.GET("", h.News.ListNews)
				news.GET("/:id", h.News.GetNews)
				news.POST("", middleware.RoleAuth(manageRoles...), h.News.CreateNews)
				news.PUT("/:id", middleware.RoleAuth(manageRoles...), h.News.UpdateNews)
				news.DELETE("/:id", middleware.RoleAuth(manageRoles...), h.News.DeleteNews)
			}

			// 相册模块
			galleries := authorized.Group("/galleries")
			{
				galleries.GET("", h.Gallery.ListGalleries)
				galleries.GET("/:id", h.Gallery.GetGallery)
				galleries.POST("", middleware.RoleAuth(manageRoles...), h.Gallery.CreateGallery)
				galleries.PUT("/:id", middleware.RoleAuth(manageRoles...), h.Gallery.UpdateGallery)
				galleries.DELETE("/:id", middleware.RoleAuth(manageRoles...), h.Gallery.DeleteGallery)
			}

			// 统计模块
			authorized.GET("/stats", h.Stats.Dashboard)

			// 导出模块
			export := authorized.Group("/export")
			export.Use(middleware.RoleAuth("super", "management", "admin", "teacher"))
			{
				export.GET("/students", h.Export.ExportStudents)
				export.GET("/attendance", h.Export.ExportAttendance)
			}
		}
	}

	return r
}
