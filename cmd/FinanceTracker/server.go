package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/finance/interfaces"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Message string `json:"message"`
}

type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

type Server struct {
	router             http.Handler
	jwtManager         auth.JWTManagerInterface
	health             HealthChecker
	userHandler        *user.Handler
	transactionHandler *interfaces.PersonalTransactionHandler
	categoryHandler    *interfaces.CategoryHandler
	dashboardHandler   *interfaces.DashboardHandler
	log                logrus.FieldLogger
}

func NewServer(
	jwtManager auth.JWTManagerInterface,
	health HealthChecker,
	userHandler *user.Handler,
	transactionHandler *interfaces.PersonalTransactionHandler,
	categoryHandler *interfaces.CategoryHandler,
	dashboardHandler *interfaces.DashboardHandler,
	log logrus.FieldLogger,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		jwtManager:         jwtManager,
		health:             health,
		userHandler:        userHandler,
		transactionHandler: transactionHandler,
		categoryHandler:    categoryHandler,
		dashboardHandler:   dashboardHandler,
		log:                log,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	interfaces.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.health.Health(r.Context())
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	interfaces.RespondJSON(w, status, stats)
}

func (s *Server) RegisterRoutes() {
	protect := auth.JWTAccessTokenMiddleware(s.jwtManager, s.log)

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))
	publicRoutes.Handle("GET /api/health", http.HandlerFunc(s.handleHealth))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()

	// transactions
	protectedRoutes.Handle("GET /api/protected/transactions", protect(http.HandlerFunc(s.transactionHandler.GetUserTransactions)))
	protectedRoutes.Handle("POST /api/protected/transactions", protect(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	protectedRoutes.Handle("GET /api/protected/transactions/{transactionID}", protect(http.HandlerFunc(s.transactionHandler.GetTransaction)))
	protectedRoutes.Handle("PUT /api/protected/transactions/{transactionID}", protect(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/transactions/{transactionID}", protect(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/delete-transaction", protect(http.HandlerFunc(s.transactionHandler.DeleteTransactionByBody)))

	protectedRoutes.Handle("GET /api/protected/categories", protect(http.HandlerFunc(s.categoryHandler.GetCategories)))

	// dashboard
	protectedRoutes.Handle("GET /api/protected/dashboard", protect(http.HandlerFunc(s.dashboardHandler.GetDashboard)))
	protectedRoutes.Handle("GET /api/protected/dashboard/summary", protect(http.HandlerFunc(s.dashboardHandler.GetSummary)))
	protectedRoutes.Handle("GET /api/protected/dashboard/categories", protect(http.HandlerFunc(s.dashboardHandler.GetCategoryTotals)))
	protectedRoutes.Handle("GET /api/protected/dashboard/latest", protect(http.HandlerFunc(s.dashboardHandler.GetLatestTransactions)))
	protectedRoutes.Handle("GET /api/protected/monthly-totals", protect(http.HandlerFunc(s.dashboardHandler.GetMonthlyTotals)))

	// profile
	protectedRoutes.Handle("GET /api/protected/footer-info", protect(http.HandlerFunc(s.userHandler.HandleFooterInfo)))
	protectedRoutes.Handle("GET /api/protected/profile", protect(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))
	protectedRoutes.Handle("PUT /api/protected/profile", protect(http.HandlerFunc(s.userHandler.HandleUpdateProfile)))
	protectedRoutes.Handle("POST /api/protected/onboarding", protect(http.HandlerFunc(s.userHandler.HandleOnboarding)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

// Handler returns the router wrapped in the request middlewares, outermost
// last.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = loggingMiddleware(s.log)(h)
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(panicLogger{s.log}),
		handlers.PrintRecoveryStack(false),
	)(h)
	return h
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"duration_ms": time.Since(start).Milliseconds(),
			}).Info("Request completed")
		})
	}
}

// panicLogger adapts logrus to handlers.RecoveryHandlerLogger.
type panicLogger struct {
	log logrus.FieldLogger
}

func (p panicLogger) Println(v ...interface{}) {
	p.log.Error(v...)
}
