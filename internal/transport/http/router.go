package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
	"github.com/kengraphic/tujengane-sacco/internal/service"
)

type RouterDeps struct {
	JWTSecret     string
	TreasuryPhone string

	Auth          *service.AuthSvc
	Membership    *service.MembershipSvc
	Contributions *service.ContributionSvc
	Revoked       RevocationChecker
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ah := NewAuthHandler(d.Auth)
	mh := NewMemberHandler(d.Membership, d.Contributions, d.TreasuryPhone)
	adh := NewAdminHandler(d.Membership)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", ah.Register)
		v1.POST("/auth/login", ah.Login)
		v1.POST("/auth/refresh", ah.Refresh)
		v1.GET("/auth/verify", ah.Verify)

		secured := v1.Group("")
		secured.Use(JWTAuth(d.JWTSecret, d.Revoked))
		{
			secured.POST("/auth/logout", ah.Logout)

			me := secured.Group("/members/me")
			me.GET("", mh.Me)
			me.GET("/dashboard", mh.Dashboard)
			me.GET("/contributions", mh.ListContributions)
			me.POST("/contributions", mh.SubmitContribution)

			admin := secured.Group("/admin")
			admin.Use(RequireRole(string(domain.RoleAdmin)))
			admin.GET("/applications", adh.Applications)
			admin.GET("/members", adh.Members)
			admin.POST("/applications/:id/review", adh.Review)
			admin.POST("/reconcile", adh.Reconcile)
		}
	}

	return r
}
