package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/paybridge/crypto-checkout/internal/commons"
	"github.com/paybridge/crypto-checkout/internal/service"
)

type Server struct {
	port   uint16
	router http.Handler
	config commons.Config
}

func NewServer(config commons.Config, checkoutService service.CheckoutServiceInterface) *Server {
	server := &Server{
		port:   config.ServerPort,
		config: config,
	}
	server.registerRoutes(checkoutService)
	return server
}

func (s *Server) Start(ctx context.Context) error {
	fmt.Printf("Starting server on port %d\n", s.port)
	ch := make(chan error, 1)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		IdleTimeout:  commons.ServerIdleTimeout,
		ReadTimeout:  commons.ServerReadTimeout,
		WriteTimeout: commons.ServerWriteTimeout,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil {
			ch <- fmt.Errorf("failed to start server: %w", err)
		}
		close(ch)
	}()

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	}
}
