package server

import (
	"fmt"
	"net/http"
	"time"

	"sparkshift/internal/config"
	"sparkshift/internal/core/domain"
)

// StatusSource is read by the HTTP handlers from the server goroutines.
type StatusSource interface {
	Healthy(now time.Time) bool
	Last() (domain.CycleReport, bool)
}

type Server struct {
	port    uint
	httpLog bool
	status  StatusSource
	now     func() time.Time
}

func NewServer(cfg config.Config, status StatusSource) *http.Server {
	NewServer := &Server{
		port:    cfg.Port,
		httpLog: cfg.HttpLog,
		status:  status,
		now:     time.Now,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewServer.port),
		Handler:      NewServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
