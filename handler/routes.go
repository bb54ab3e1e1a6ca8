package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikios34/choonpaan/app"
	"github.com/mikios34/choonpaan/entity"
	mw "github.com/mikios34/choonpaan/middleware"
)

// RegisterRoutes mounts the health check and the /api/v1 surface on r.
func RegisterRoutes(r *gin.Engine, a *app.App) {
	cfg := a.Config
	timeout := cfg.RequestTimeout

	authHandler := NewAuthHandler(a.Accounts, a.Sessions, cfg.JWTSecret, cfg.AccessTokenTTL, timeout)
	profileHandler := NewProfileHandler(a.Profiles, timeout)
	customerHandler := NewCustomerHandler(a.Customers, timeout)
	driverHandler := NewDriverHandler(a.Drivers, timeout)
	adminHandler := NewAdminHandler(a.Admins, timeout)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", authHandler.Register())
		v1.POST("/auth/login", authHandler.Login())
		v1.POST("/auth/token", mw.RequireFirebaseAuth(a.TokenVerifier), authHandler.Token())
	}

	signedIn := v1.Group("", mw.RequireAuth(cfg.JWTSecret), mw.RequireSession(a.Sessions))
	{
		signedIn.POST("/auth/logout", authHandler.Logout())
		signedIn.GET("/session", authHandler.Session())
		signedIn.GET("/profile", profileHandler.Get())
		signedIn.PUT("/profile", profileHandler.Update())
		signedIn.POST("/profile/image", profileHandler.UploadImage())
	}

	admin := signedIn.Group("/admin", mw.RequireRoles(entity.RoleAdmin))
	{
		admin.GET("/users", customerHandler.ListCustomers())
		admin.GET("/users/report", customerHandler.Report())
		admin.DELETE("/users/:id", customerHandler.DeleteCustomer())
		admin.POST("/admins", adminHandler.RegisterAdmin())
		driverHandler.RegisterRoutes(admin.Group("/drivers"))
	}
}
