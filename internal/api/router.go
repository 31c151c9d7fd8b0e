package api

import (
	"net/http"
	"slices"
	"time"

	"donation_system/internal/domain"
	"donation_system/internal/middleware"
	"donation_system/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the services and settings the router is built from
type Deps struct {
	Auth        *service.AuthService
	Donors      *service.DonorService
	Donations   *service.DonationService
	JWTSecret   string
	BasePath    string   // e.g. /api/v1
	CORSOrigins []string // "*" allows any origin
}

// route is one protected endpoint and the roles allowed to call it
type route struct {
	method  string
	path    string
	roles   domain.Roles
	handler gin.HandlerFunc
}

func protectedRoutes(d Deps) []route {
	return []route{
		{http.MethodPost, "/auth/register", domain.AdminOnly, RegisterHandler(d.Auth)},

		{http.MethodGet, "/donors", domain.AnyRole, ListDonorsHandler(d.Donors)},
		{http.MethodPost, "/donors", domain.AnyRole, CreateDonorHandler(d.Donors)},
		{http.MethodGet, "/donors/count", domain.AnyRole, CountDonorsHandler(d.Donors)},
		{http.MethodGet, "/donors/existByPan", domain.AnyRole, ExistByPanHandler(d.Donors)},
		{http.MethodGet, "/donors/fetchDonationByPan", domain.AnyRole, FetchDonationByPanHandler(d.Donors)},
		{http.MethodGet, "/donors/trashed", domain.AdminOnly, ListTrashedDonorsHandler(d.Donors)},
		{http.MethodGet, "/donors/:id", domain.AnyRole, GetDonorHandler(d.Donors)},
		{http.MethodGet, "/donors/:id/donations", domain.AnyRole, DonorDonationsHandler(d.Donors)},
		{http.MethodPut, "/donors/:id", domain.AnyRole, UpdateDonorHandler(d.Donors)},
		{http.MethodDelete, "/donors/:id", domain.AdminOnly, DeleteDonorHandler(d.Donors)},
		{http.MethodPost, "/donors/:id/restore", domain.AdminOnly, RestoreDonorHandler(d.Donors)},

		{http.MethodGet, "/donations", domain.AnyRole, ListDonationsHandler(d.Donations)},
		{http.MethodPost, "/donations", domain.AnyRole, CreateDonationHandler(d.Donations)},
		{http.MethodGet, "/donations/search", domain.AnyRole, SearchDonationsHandler(d.Donations)},
		{http.MethodGet, "/donations/count", domain.AnyRole, CountDonationsHandler(d.Donations)},
		{http.MethodGet, "/donations/trashed", domain.AdminOnly, ListTrashedDonationsHandler(d.Donations)},
		{http.MethodGet, "/donations/export", domain.AnyRole, ExportDonationsHandler(d.Donations)},
		{http.MethodGet, "/donations/:id", domain.AnyRole, GetDonationHandler(d.Donations)},
		{http.MethodGet, "/donations/:id/receipt", domain.AnyRole, ReceiptHandler(d.Donations)},
		{http.MethodPut, "/donations/:id", domain.AnyRole, UpdateDonationHandler(d.Donations)},
		{http.MethodPut, "/donations/:id/markPrinted", domain.AnyRole, MarkPrintedHandler(d.Donations)},
		{http.MethodDelete, "/donations/:id", domain.AdminOnly, DeleteDonationHandler(d.Donations)},
		{http.MethodPost, "/donations/:id/restore", domain.AdminOnly, RestoreDonationHandler(d.Donations)},
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// NewRouter builds the gin engine with every route of the API
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), cors.New(corsConfig(d.CORSOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	base := r.Group(d.BasePath)
	base.POST("/auth/login", LoginHandler(d.Auth)) // Only public endpoint

	protected := base.Group("", middleware.JWTAuthMiddleware(d.JWTSecret))
	for _, rt := range protectedRoutes(d) {
		protected.Handle(rt.method, rt.path, middleware.RequireRoles(rt.roles), rt.handler)
	}
	return r
}
