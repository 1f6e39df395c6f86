// Package routes wires controllers to URL paths
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/meric/queryportal/internal/app/controllers"
	"github.com/meric/queryportal/internal/app/models"
	"github.com/meric/queryportal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	enrollmentController *controllers.EnrollmentController,
	queryController *controllers.QueryController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Shared directory routes available to both roles
		authenticated.GET("/subjects", enrollmentController.ListAllSubjects)
		authenticated.GET("/teachers", userController.ListTeachers)
		authenticated.POST("/auth/logout-all", authController.LogoutAll)

		// Student routes
		student := authenticated.Group("/student")
		student.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			student.GET("/dashboard", dashboardController.StudentDashboard)
			student.GET("/profile", userController.GetProfile)
			student.PUT("/profile", userController.UpdateProfile)

			student.GET("/subjects", enrollmentController.ListStudentSubjects)
			student.POST("/subjects", enrollmentController.EnrollSubject)
			student.DELETE("/subjects/:subjectId", enrollmentController.WithdrawSubject)

			student.GET("/queries", queryController.ListStudentQueries)
			student.POST("/queries", queryController.SubmitQuery)
		}

		// Teacher routes
		teacher := authenticated.Group("/teacher")
		teacher.Use(authMiddleware.RoleRequired(models.RoleTeacher))
		{
			teacher.GET("/dashboard", dashboardController.TeacherDashboard)
			teacher.GET("/profile", userController.GetProfile)
			teacher.PUT("/profile", userController.UpdateProfile)

			teacher.GET("/subjects", enrollmentController.ListTeacherSubjects)
			teacher.POST("/subjects", enrollmentController.AssignSubject)
			teacher.DELETE("/subjects/:subjectId", enrollmentController.UnassignSubject)

			teacher.GET("/queries", queryController.ListTeacherQueries)
			teacher.GET("/queries/:id", queryController.GetTeacherQuery)
			teacher.POST("/queries/:id/reply", queryController.RespondQuery)
		}
	}
}
