package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Server interface {
	Run() error
}

// server encapsulates the lifecycle of the HTTP listener: start, signal
// handling and graceful shutdown.
type server struct {
	Config Config
	Logger logrus.FieldLogger

	HTTPServer *http.Server

	Shutdown func()

	// Exit chan for graceful shutdown
	Exit chan chan error
}

func New(cfg Config, logger logrus.FieldLogger) *server {
	return &server{
		Config: cfg,
		Logger: logger.WithField("component", "server"),
		Exit:   make(chan chan error),
	}
}

func (s *server) start() error {
	lis, err := net.Listen("tcp", s.HTTPServer.Addr)
	if err != nil {
		return errors.Wrap(err, "failed to listen to HTTP port")
	}

	go func() {
		err := s.HTTPServer.Serve(lis)
		if err != nil && err != http.ErrServerClosed {
			s.Logger.Errorf("HTTP server error - initiating shutdown: %v", err)
			s.stop()
		}
	}()
	s.Logger.Infof("Listening and serving HTTP on %s", s.HTTPServer.Addr)

	go func() {
		exit := <-s.Exit

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout)
		defer cancel()

		if s.Shutdown != nil {
			s.Shutdown()
		}

		exit <- s.HTTPServer.Shutdown(ctx)
	}()

	return nil
}

func (s *server) stop() error {
	ch := make(chan error)
	s.Exit <- ch
	return <-ch
}

// Run starts the server and blocks until it shuts down.
func (s *server) Run() error {
	if err := s.start(); err != nil {
		return err
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
	s.Logger.Info("Received signal ", <-ch)
	return s.stop()
}

func NewHTTPServer(cfg Config, handler http.Handler) *http.Server {
	return &http.Server{
		Handler:        handler,
		Addr:           fmt.Sprintf(":%d", cfg.HTTPPort),
		MaxHeaderBytes: cfg.MaxHeaderBytes,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
	}
}
