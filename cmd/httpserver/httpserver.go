// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/internal/accountdelivery"
	"github.com/go-petr/pet-finance/internal/accountrepo"
	"github.com/go-petr/pet-finance/internal/accountservice"
	"github.com/go-petr/pet-finance/internal/categorydelivery"
	"github.com/go-petr/pet-finance/internal/categoryrepo"
	"github.com/go-petr/pet-finance/internal/categoryservice"
	"github.com/go-petr/pet-finance/internal/middleware"
	"github.com/go-petr/pet-finance/internal/transactiondelivery"
	"github.com/go-petr/pet-finance/internal/transactionrepo"
	"github.com/go-petr/pet-finance/internal/transactionservice"
	"github.com/go-petr/pet-finance/internal/userdelivery"
	"github.com/go-petr/pet-finance/internal/userrepo"
	"github.com/go-petr/pet-finance/internal/userservice"
	"github.com/go-petr/pet-finance/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	categoryRepo := categoryrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo)
	categoryService := categoryservice.New(categoryRepo)
	transactionService := transactionservice.New(transactionRepo)

	userHandler := userdelivery.NewHandler(userService)
	accountHandler := accountdelivery.NewHandler(accountService)
	categoryHandler := categorydelivery.NewHandler(categoryService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(config.AllowedOrigins()))

	engine.GET("/users", userHandler.List)
	engine.POST("/users", userHandler.Create)
	engine.GET("/users/:id", userHandler.Get)
	engine.PUT("/users/:id", userHandler.Update)
	engine.DELETE("/users/:id", userHandler.Delete)

	engine.GET("/accounts", accountHandler.List)
	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.PUT("/accounts/:id", accountHandler.Update)
	engine.DELETE("/accounts/:id", accountHandler.Delete)

	engine.GET("/categories", categoryHandler.List)
	engine.POST("/categories", categoryHandler.Create)
	engine.GET("/categories/:id", categoryHandler.Get)
	engine.PUT("/categories/:id", categoryHandler.Update)
	engine.DELETE("/categories/:id", categoryHandler.Delete)

	engine.GET("/transactions", transactionHandler.List)
	engine.POST("/transactions", transactionHandler.Create)
	engine.GET("/transactions/:id", transactionHandler.Get)
	engine.PUT("/transactions/:id", transactionHandler.Update)
	engine.DELETE("/transactions/:id", transactionHandler.Delete)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("category_type", categorydelivery.ValidCategoryType)
		if err != nil {
			return nil, errors.New("cannot register category type validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
