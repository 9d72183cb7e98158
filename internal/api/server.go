package api

import (
	"fmt"
	"net"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rxtech-lab/contract-harness/internal/logger"
	"github.com/rxtech-lab/contract-harness/internal/services"
)

type APIServer struct {
	app          *fiber.App
	chainService services.ChainService
	artifacts    services.ArtifactService
	validator    *validator.Validate
	logger       logger.Logger
	port         int
}

func NewAPIServer(chainService services.ChainService, artifacts services.ArtifactService, log logger.Logger) *APIServer {
	if log == nil {
		log = logger.Nop()
	}

	server := &APIServer{
		chainService: chainService,
		artifacts:    artifacts,
		validator:    newQueryValidator(),
		logger:       log,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          server.handleError,
	})

	// Add middleware
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	server.app = app
	server.setupRoutes()
	return server
}

func (s *APIServer) setupRoutes() {
	v1 := s.app.Group("/v1")

	// readiness check
	v1.Get("/healthz", s.handleHealth)

	// GLDToken
	v1.Get("/deployContract", s.handleDeployContract)
	v1.Get("/destroyContract", s.handleDestroyContract)

	// Test contract
	v1.Get("/deployTestContract", s.handleDeployTestContract)
	v1.Get("/putTestValue", s.handlePutTestValue)
	v1.Get("/getTestValue", s.handleGetTestValue)
	v1.Get("/destroyTestContract", s.handleDestroyTestContract)

	// Native currency
	v1.Get("/sendEth", s.handleSendEth)
	v1.Get("/balance", s.handleBalance)

	// Contract artifacts API
	v1.Get("/contracts/:name", s.handleContractArtifact)
}

// Start listens on address (host:port) and serves in the background. It
// returns the bound port, which differs from the requested one for ":0".
func (s *APIServer) Start(address string) (int, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return 0, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	go func() {
		if err := s.app.Listener(listener); err != nil {
			s.logger.Error("API server stopped", "error", err)
		}
	}()

	return s.port, nil
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

func (s *APIServer) GetPort() int {
	return s.port
}

// App exposes the fiber application, mostly for app.Test in tests.
func (s *APIServer) App() *fiber.App {
	return s.app
}

func newQueryValidator() *validator.Validate {
	v := validator.New()
	// Report query parameter names instead of Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}
