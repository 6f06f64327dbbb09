package app

import (
	"shikkha_backend/docs"
	"shikkha_backend/internal/config"
	"shikkha_backend/internal/middleware"
	"shikkha_backend/internal/model"
	"shikkha_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 课程目录对游客开放
		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// 选课
	rg.POST("/courses/:id/enroll", c.enrollment.Enroll)
	rg.GET("/my-courses", c.enrollment.MyCourses)
	rg.GET("/courses/:id/exams", c.exam.ListCourseExams)

	// 考试会话
	rg.POST("/exams/:id/start", c.exam.StartExam)
	rg.POST("/exam-sessions/:sid/answers", c.exam.SelectAnswer)
	rg.POST("/exam-sessions/:sid/submit", c.exam.SubmitExam)
	rg.DELETE("/exam-sessions/:sid", c.exam.AbandonSession)

	// 历史与回顾
	rg.GET("/attempts", c.exam.ListMyAttempts)
	rg.GET("/attempts/:id/review", c.exam.GetAttemptReview)

	// 题库练习
	rg.GET("/question-bank", c.questionBank.ListQuestions)
	rg.POST("/question-bank/:id/check", c.questionBank.CheckAnswer)
	rg.GET("/question-bank/universities", c.questionBank.ListUniversities)
	rg.GET("/question-bank/years", c.questionBank.ListYears)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/courses", c.course.ListCourses)
		admin.POST("/courses", c.course.CreateCourse)
		admin.PUT("/courses/:id", c.course.UpdateCourse)
		admin.DELETE("/courses/:id", c.course.DeleteCourse)
		admin.POST("/courses/thumbnail", c.course.UploadThumbnail)

		admin.POST("/exams", c.exam.CreateExam)
		admin.PUT("/exams/:id", c.exam.UpdateExam)
		admin.DELETE("/exams/:id", c.exam.DeleteExam)
		admin.GET("/exams/:id/questions", c.exam.ListQuestionsAdmin)
		admin.POST("/exams/:id/questions", c.exam.CreateQuestion)
		admin.PUT("/exam-questions/:qid", c.exam.UpdateQuestion)
		admin.DELETE("/exam-questions/:qid", c.exam.DeleteQuestion)
		admin.GET("/exams/:id/attempts", c.exam.ListExamAttempts)

		admin.POST("/question-bank", c.questionBank.CreateQuestion)
		admin.PUT("/question-bank/:id", c.questionBank.UpdateQuestion)
		admin.DELETE("/question-bank/:id", c.questionBank.DeleteQuestion)
		admin.POST("/universities", c.questionBank.CreateUniversity)
		admin.DELETE("/universities/:id", c.questionBank.DeleteUniversity)
		admin.POST("/years", c.questionBank.CreateYear)
		admin.DELETE("/years/:id", c.questionBank.DeleteYear)

		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)
	}
}
