package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/palpita/lottery-api/docs"
	v1 "github.com/palpita/lottery-api/internal/api/handler/v1"
	"github.com/palpita/lottery-api/internal/api/middleware"
	"github.com/palpita/lottery-api/internal/cache"
	"github.com/palpita/lottery-api/internal/config"
	"github.com/palpita/lottery-api/internal/payment"
	"github.com/palpita/lottery-api/internal/repository"
	"github.com/palpita/lottery-api/internal/repository/dao"
	"github.com/palpita/lottery-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, redisClient *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	catalog := cache.NewCatalog(redisClient, time.Duration(conf.Redis.CatalogTTLSeconds)*time.Second)

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	companyHandler := s.initCompanyHandler(db)
	areaHandler := s.initAreaHandler(db, catalog)
	gameHandler := s.initGameHandler(db, catalog)
	ticketHandler := s.initTicketHandler(db)
	auditHandler := s.initAuditHandler(db)
	s.MountHandlers(authHandler, userHandler, companyHandler, areaHandler, gameHandler, ticketHandler, auditHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initCompanyHandler(db *gorm.DB) *v1.CompanyHandler {
	repo := repository.NewCompanyRepository(dao.NewCompanyDAO(db))
	svc := service.NewCompanyService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewCompanyHandler(svc, uSvc)

	return handler
}

func (s *Server) initAreaHandler(db *gorm.DB, catalog *cache.Catalog) *v1.AreaHandler {
	repo := repository.NewAreaRepository(dao.NewAreaDAO(db))
	auditor := service.NewAuditService(repository.NewAuditLogRepository(dao.NewAuditLogDAO(db)))
	svc := service.NewAreaService(repo, auditor)
	gameSvc := service.NewGameService(repository.NewGameRepository(dao.NewGameDAO(db)), auditor, catalog)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewAreaHandler(svc, gameSvc, uSvc)

	return handler
}

func (s *Server) initGameHandler(db *gorm.DB, catalog *cache.Catalog) *v1.GameHandler {
	repo := repository.NewGameRepository(dao.NewGameDAO(db))
	auditor := service.NewAuditService(repository.NewAuditLogRepository(dao.NewAuditLogDAO(db)))
	svc := service.NewGameService(repo, auditor, catalog)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewGameHandler(svc, uSvc)

	return handler
}

func (s *Server) initTicketHandler(db *gorm.DB) *v1.TicketHandler {
	repo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	areaRepo := repository.NewAreaRepository(dao.NewAreaDAO(db))
	gameRepo := repository.NewGameRepository(dao.NewGameDAO(db))
	payments := payment.NewStripeProvider(s.Config.Stripe)
	svc := service.NewTicketService(repo, areaRepo, gameRepo, payments)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewTicketHandler(svc, uSvc)

	return handler
}

func (s *Server) initAuditHandler(db *gorm.DB) *v1.AuditHandler {
	svc := service.NewAuditService(repository.NewAuditLogRepository(dao.NewAuditLogDAO(db)))
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewAuditHandler(svc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	companyHandler *v1.CompanyHandler,
	areaHandler *v1.AreaHandler,
	gameHandler *v1.GameHandler,
	ticketHandler *v1.TicketHandler,
	auditHandler *v1.AuditHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.GET("/companies", companyHandler.HandleGetCompanies)
		authed.POST("/companies", companyHandler.HandleCreateCompany)

		authed.GET("/areas", areaHandler.HandleGetAreas)
		authed.POST("/areas", areaHandler.HandleCreateArea)
		authed.GET("/areas/:areaID", areaHandler.HandleGetArea)
		authed.PATCH("/areas/:areaID", areaHandler.HandleUpdateArea)
		authed.DELETE("/areas/:areaID", areaHandler.HandleDeleteArea)
		authed.POST("/areas/:areaID/cycle-series", areaHandler.HandleCycleSeries)
		authed.PUT("/areas/:areaID/games/:gameID/config", areaHandler.HandleUpsertAreaConfig)
		authed.DELETE("/areas/:areaID/games/:gameID/config", areaHandler.HandleDeleteAreaConfig)
		authed.GET("/areas/:areaID/tickets", ticketHandler.HandleGetAreaTickets)

		authed.GET("/games", gameHandler.HandleGetGames)
		authed.POST("/games", gameHandler.HandleCreateGame)
		authed.GET("/games/:gameID", gameHandler.HandleGetGame)
		authed.PATCH("/games/:gameID", gameHandler.HandleUpdateGame)
		authed.DELETE("/games/:gameID", gameHandler.HandleDeleteGame)
		authed.PUT("/games/:gameID/extraction-series", gameHandler.HandleUpsertExtractionSeries)

		authed.POST("/tickets", ticketHandler.HandleIssueTicket)

		authed.GET("/audit-logs", auditHandler.HandleGetAuditLogs)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Lottery API"
	docs.SwaggerInfo.Description = "Multi-tenant lottery ticketing API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
