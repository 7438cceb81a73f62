package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/planner-api/internal/entitlement"
	"github.com/yukikurage/planner-api/internal/metrics"
	"github.com/yukikurage/planner-api/internal/middleware"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/services"
)

// Services bundles what the HTTP layer calls into.
type Services struct {
	Auth          *services.AuthService
	Profiles      *services.ProfileService
	Tasks         *services.TaskService
	Categories    *services.CategoryService
	Workspaces    *services.WorkspaceService
	Teams         *services.TeamService
	Invites       *services.InviteService
	Partners      *services.PartnerService
	Calendar      *services.CalendarService
	Notifications *services.NotificationService
	Exports       *services.ExportService
}

// RegisterRoutes mounts the API on api. rt may be nil, in which case the
// websocket endpoint is not served.
func RegisterRoutes(api *gin.RouterGroup, svc Services, m *metrics.Metrics, rt *realtime.Handler) {
	authHandler := NewAuthHandler(svc.Auth)
	profileHandler := NewProfileHandler(svc.Profiles)
	taskHandler := NewTaskHandler(svc.Tasks)
	categoryHandler := NewCategoryHandler(svc.Categories)
	workspaceHandler := NewWorkspaceHandler(svc.Workspaces)
	teamHandler := NewTeamHandler(svc.Teams)
	inviteHandler := NewInviteHandler(svc.Invites)
	partnerHandler := NewPartnerHandler(svc.Partners)
	calendarHandler := NewCalendarHandler(svc.Calendar)
	notificationHandler := NewNotificationHandler(svc.Notifications)
	rpcHandler := NewRPCHandler(svc.Profiles, svc.Teams)
	exportHandler := NewExportHandler(svc.Exports)

	requireFeature := func(f entitlement.Feature) gin.HandlerFunc {
		return middleware.RequireFeature(svc.Profiles, m, f)
	}

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/session", authHandler.Session)
		auth.PUT("/password", middleware.RequireAuth(), authHandler.ChangePassword)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireAuth())

	profile := authed.Group("/profile")
	{
		profile.GET("", profileHandler.GetProfile)
		profile.PATCH("", profileHandler.UpdateProfile)
		profile.GET("/entitlements", profileHandler.Entitlements)
		profile.PUT("/plan", profileHandler.SelectPlan)
	}
	authed.GET("/onboarding", profileHandler.Onboarding)

	tasks := authed.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/progress", taskHandler.Progress)
		tasks.POST("/suggest", requireFeature(entitlement.FeatureTaskSuggestions), taskHandler.SuggestTasks)
		tasks.PATCH("/:id/toggle", taskHandler.ToggleTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	categories := authed.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.POST("", categoryHandler.Create)
		categories.DELETE("/:id", categoryHandler.Delete)
	}

	workspaces := authed.Group("/workspaces")
	{
		workspaces.GET("", workspaceHandler.List)
		workspaces.POST("", workspaceHandler.Create)
		workspaces.DELETE("/:id", workspaceHandler.Delete)
	}

	teams := authed.Group("/teams", requireFeature(entitlement.FeatureTeams))
	{
		teams.POST("", teamHandler.CreateTeam)
		teams.GET("", teamHandler.ListTeams)

		team := teams.Group("/:id", middleware.RequireTeamAccess(svc.Teams))
		team.GET("", teamHandler.GetTeam)
		team.DELETE("", teamHandler.DeleteTeam)
		team.DELETE("/members/:user_id", teamHandler.RemoveMember)
		team.PATCH("/members/:user_id/role", teamHandler.ChangeRole)
		team.POST("/invites", middleware.RequireTeamAdmin(), inviteHandler.SendTeamInvite)
	}

	invites := authed.Group("/invites")
	{
		invites.GET("", inviteHandler.ListPending)
		invites.POST("/:id/accept", inviteHandler.Accept)
		invites.POST("/:id/decline", inviteHandler.Decline)
	}

	partners := authed.Group("/partners", requireFeature(entitlement.FeaturePartners))
	{
		partners.GET("", partnerHandler.List)
		partners.POST("/invite", inviteHandler.SendPartnerInvite)

		room := partners.Group("/:id", middleware.RequirePartnerAccess(svc.Partners))
		room.GET("/messages", partnerHandler.ListMessages)
		room.POST("/messages", partnerHandler.SendMessage)
		room.GET("/tasks", partnerHandler.ListTasks)
		room.POST("/tasks", partnerHandler.CreateTask)
		room.PATCH("/tasks/:task_id/toggle", partnerHandler.ToggleTask)
	}

	calendar := authed.Group("/calendar", requireFeature(entitlement.FeatureCalendar))
	{
		calendar.GET("", calendarHandler.List)
		calendar.POST("", calendarHandler.Create)
		calendar.DELETE("/:id", calendarHandler.Delete)
	}

	notifications := authed.Group("/notifications", requireFeature(entitlement.FeatureNotifications))
	{
		notifications.GET("", notificationHandler.Feed)
		notifications.POST("/read-all", notificationHandler.MarkAllRead)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
	}

	rpc := authed.Group("/rpc")
	{
		rpc.POST("/update_user_streak", rpcHandler.UpdateUserStreak)
		rpc.POST("/is_team_owner", rpcHandler.IsTeamOwner)
	}

	authed.GET("/export", requireFeature(entitlement.FeatureDataExport), exportHandler.Export)

	if rt != nil {
		authed.GET("/realtime", rt.Connect)
		authed.GET("/realtime/stats", rt.Stats)
	}
}
