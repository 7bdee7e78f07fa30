package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/mittwald/rootcheck/pkg/detect"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultWatchInterval = 10 * time.Second
	MinWatchInterval     = 100 * time.Millisecond

	// WatchWriteTimeout bounds each report write to a watching client.
	WatchWriteTimeout = 10 * time.Second

	MaxPathsBodySize = 1 << 20
)

type Server struct {
	detector     *detect.Detector
	router       *mux.Router
	upgrader     websocket.Upgrader
	listenAddr   string
	srv          *http.Server
	writeTimeout time.Duration
}

func New(listenAddr string, detector *detect.Detector) *Server {
	s := &Server{
		detector:     detector,
		router:       mux.NewRouter(),
		listenAddr:   listenAddr,
		writeTimeout: WatchWriteTimeout,
	}

	s.RegisterHandler("/status", []string{http.MethodGet}, s.handleStatus)
	s.RegisterHandler("/v1/paths", []string{http.MethodPost}, s.handleCheckPaths)
	s.RegisterHandler("/v1/debug", []string{http.MethodGet}, s.handleGetDebug)
	s.RegisterHandler("/v1/debug", []string{http.MethodPut}, s.handleSetDebug)
	s.RegisterHandler("/v1/watch", []string{http.MethodGet}, s.handleWatch)

	return s
}

func (s *Server) RegisterHandler(path string, methods []string, handler func(http.ResponseWriter, *http.Request)) {
	s.router.
		Path(path).
		HandlerFunc(handler).
		Methods(methods...)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:    s.listenAddr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down status server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	log.Infof("status server listens on %s", s.listenAddr)
	if err := s.listen(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) listen() error {
	socketParts := strings.Split(s.srv.Addr, "unix://")
	if len(socketParts) <= 1 {
		return s.srv.ListenAndServe()
	}

	return s.listenOnUnixSocket(socketParts[1])
}

func (s *Server) listenOnUnixSocket(socketFile string) error {
	if err := os.MkdirAll(path.Dir(socketFile), 0o755); err != nil {
		return errors.Wrap(err, "failed to prepare folder for socket-file")
	}

	if err := os.Remove(socketFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove stale socket-file %s", socketFile)
	}

	conn, err := net.Listen("unix", socketFile)
	if err != nil {
		return err
	}
	return s.srv.Serve(conn)
}
