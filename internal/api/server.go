// Package api serves the AtCampus JSON routes.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atcampus/internal/auth"
	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/events"
	"github.com/muhammadolammi/atcampus/internal/storage"
)

type Options struct {
	Store        database.Store
	Sessions     auth.Sessions
	// Events may be nil. Resumes are then stored but never queued for
	// screening.
	Events       events.Publisher
	// Bucket may be nil, in which case resume uploads are refused.
	Bucket       storage.Bucket
	Logger       *zap.Logger
	SessionTTL   time.Duration
	CookieSecure bool
	CORSOrigins  []string
}

type Server struct {
	store        database.Store
	sessions     auth.Sessions
	events       events.Publisher
	screening    bool
	bucket       storage.Bucket
	logger       *zap.Logger
	sessionTTL   time.Duration
	cookieSecure bool
	corsOrigins  []string
}

func NewServer(opts Options) *Server {
	s := &Server{
		store:        opts.Store,
		sessions:     opts.Sessions,
		events:       opts.Events,
		screening:    opts.Events != nil,
		bucket:       opts.Bucket,
		logger:       opts.Logger,
		sessionTTL:   opts.SessionTTL,
		cookieSecure: opts.CookieSecure,
		corsOrigins:  opts.CORSOrigins,
	}
	if s.events == nil {
		s.events = events.Nop{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	useJSONFieldNames()
	return s
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(s.logger), gin.CustomRecovery(s.recover))
	if len(s.corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", s.Register)
		authGroup.POST("/login", s.Login)
	}

	protected := api.Group("/")
	protected.Use(s.RequireAuth())
	{
		protected.POST("/auth/logout", s.Logout)
		protected.GET("/auth/me", s.Me)

		protected.GET("/users/:id", s.GetProfile)
		protected.GET("/users/:id/followers", s.ListFollowers)
		protected.GET("/users/:id/following", s.ListFollowing)
		protected.PUT("/users/me/skills", s.ReplaceSkills)
		protected.POST("/users/:id/follow", s.Follow)
		protected.DELETE("/users/:id/follow", s.Unfollow)
		protected.GET("/follow-requests", s.ListFollowRequests)
		protected.POST("/follow-requests/:id/accept", s.AcceptFollowRequest)
		protected.POST("/follow-requests/:id/reject", s.RejectFollowRequest)

		protected.GET("/posts", s.ListPosts)
		protected.POST("/posts", s.CreatePost)
		protected.GET("/posts/:id", s.GetPost)
		protected.DELETE("/posts/:id", s.DeletePost)
		protected.GET("/posts/:id/likes", s.GetPostLikes)
		protected.POST("/posts/:id/likes", s.LikePost)
		protected.DELETE("/posts/:id/likes", s.UnlikePost)
		protected.GET("/posts/:id/bookmark", s.GetBookmark)
		protected.POST("/posts/:id/bookmark", s.Bookmark)
		protected.DELETE("/posts/:id/bookmark", s.RemoveBookmark)
		protected.GET("/posts/:id/comments", s.ListComments)
		protected.POST("/posts/:id/comments", s.CreateComment)
		protected.GET("/bookmarks", s.ListBookmarks)

		protected.GET("/jobs", s.ListJobs)
		protected.POST("/jobs", RequireRole(auth.RoleOrganization, auth.RoleInstitution), s.CreateJob)
		protected.GET("/jobs/recommended", RequireRole(auth.RoleStudent), s.RecommendedJobs)
		protected.GET("/jobs/:id", s.GetJob)
		protected.DELETE("/jobs/:id", s.DeleteJob)
		protected.GET("/jobs/:id/likes", s.GetJobLikes)
		protected.POST("/jobs/:id/likes", s.LikeJob)
		protected.DELETE("/jobs/:id/likes", s.UnlikeJob)
		protected.GET("/jobs/:id/match", RequireRole(auth.RoleStudent), s.JobMatch)
		protected.POST("/jobs/:id/apply", RequireRole(auth.RoleStudent), s.Apply)
		protected.GET("/jobs/:id/applications", s.ListJobApplications)
		protected.GET("/applications", RequireRole(auth.RoleStudent), s.ListMyApplications)
		protected.PATCH("/applications/:id", s.UpdateApplicationStatus)

		protected.GET("/courses", s.ListCourses)
		protected.POST("/courses", RequireRole(auth.RoleProfessor, auth.RoleInstitution), s.CreateCourse)
		protected.GET("/courses/:id", s.GetCourse)
		protected.POST("/courses/:id/enroll", RequireRole(auth.RoleStudent), s.Enroll)
		protected.DELETE("/courses/:id/enroll", RequireRole(auth.RoleStudent), s.Unenroll)

		protected.GET("/researches", s.ListResearches)
		protected.POST("/researches", s.CreateResearch)

		protected.GET("/organizations", s.ListOrganizations)
		protected.POST("/organizations", s.CreateOrganization)
		protected.GET("/organizations/:id/members", s.ListMembers)
		protected.POST("/organizations/:id/members", s.JoinOrganization)
		protected.DELETE("/organizations/:id/members", s.LeaveOrganization)

		protected.GET("/schools", s.ListSchools)
		protected.POST("/schools", RequireRole(auth.RoleInstitution), s.CreateSchool)
		protected.GET("/schools/:id/faculties", s.ListFaculties)
		protected.POST("/schools/:id/faculties", s.CreateFaculty)

		protected.GET("/notifications", s.ListNotifications)
		protected.POST("/notifications/read-all", s.MarkAllNotificationsRead)
		protected.POST("/notifications/:id/read", s.MarkNotificationRead)
	}

	return r
}

func (s *Server) recover(c *gin.Context, recovered any) {
	s.logger.Error("panic serving request",
		zap.Any("panic", recovered),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(RequestIDKey)),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
