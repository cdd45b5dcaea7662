package controllers

import (
	"net/http"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/metrics"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/middleware"

	"github.com/gin-gonic/gin"
)

// Router wires every route of the API onto a fresh engine. Tests build one
// per test case on top of the in-memory store.
func (a *API) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), metrics.Middleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "IEM Photography Club API",
			"routes":  []string{"/api/auth", "/api/events", "/api/announcements", "/api/users", "/api/socials"},
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	authed := middleware.Auth(a.Secret)
	lead := middleware.RequireLead()

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/send-otp", a.SendOtp)
			auth.POST("/register/photographer", a.RegisterPhotographer)
			auth.POST("/register/guest", a.RegisterGuest)
			auth.POST("/login", a.Login)
			auth.GET("/check-username", a.CheckUsername)
		}

		events := api.Group("/events", authed)
		{
			events.GET("", a.ListEvents)
			events.GET("/:id", a.GetEvent)
			events.POST("", lead, a.CreateEvent)
			events.PUT("/:id", lead, a.UpdateEvent)
			events.DELETE("/:id", lead, a.DeleteEvent)

			events.POST("/:id/register", a.RegisterSelf)
			events.DELETE("/:id/register", a.DeregisterSelf)
			events.POST("/:id/participants", lead, a.AddParticipant)
			events.DELETE("/:id/participants/:userId", lead, a.RemoveParticipant)

			events.POST("/:id/subevents", lead, a.AddSubEvent)
			events.POST("/:id/subevents/:subEventId/rooms", lead, a.AddRoom)
			events.POST("/:id/subevents/:subEventId/rooms/:roomId/assignments", lead, a.AssignToRoom)
			events.DELETE("/:id/subevents/:subEventId/rooms/:roomId/assignments/:userId", lead, a.RemoveAssignment)

			events.PUT("/:id/attendance", lead, a.UpdateAttendanceConfig)
			events.PUT("/:id/attendance/:userId", a.SetAttendanceStatus)
		}

		announcements := api.Group("/announcements", authed)
		{
			announcements.GET("", a.ListAnnouncements)
			announcements.POST("", lead, a.CreateAnnouncement)
		}

		users := api.Group("/users", authed, lead)
		{
			users.GET("", a.ListUsers)
			users.GET("/export", a.ExportUsers)
			users.PUT("/:id/ban", a.BanUser)
			users.DELETE("/:id", a.DeleteUser)
		}

		socials := api.Group("/socials")
		{
			socials.GET("", a.ListSocials)
			socials.PUT("", authed, lead, a.UpsertSocial)
			socials.DELETE("/:platform", authed, lead, a.DeleteSocial)
		}
	}

	return router
}
