// Package server publishes the rendered paper table over HTTP together
// with the folder of downloadable documents.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"paperview/internal/logging"
	"paperview/internal/render"
)

const defaultShutdownTimeout = 2 * time.Second

// Options configures a Server.
type Options struct {
	// DocumentsDir is both the URL prefix and the on-disk directory
	// (relative to Root) of the linked documents.
	DocumentsDir string
	// Root is the directory DocumentsDir is resolved against.
	Root string
	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout time.Duration
}

// Server serves a page rendered once at construction.
type Server struct {
	page    []byte
	opts    Options
	handler http.Handler
	log     *logging.Logger
}

// New renders p and builds the request mux.
func New(p render.Page, opts Options) (*Server, error) {
	var buf bytes.Buffer
	if err := render.WritePage(&buf, p); err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.Root == "" {
		opts.Root = "."
	}

	s := &Server{
		page: buf.Bytes(),
		opts: opts,
		log:  logging.Get(logging.CategoryServer),
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	if prefix := documentsPrefix(s.opts.DocumentsDir); prefix != "" {
		dir := documentsRoot(s.opts.Root, s.opts.DocumentsDir)
		mux.Handle(prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(dir))))
	}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(s.page)
	})

	return s.logRequests(mux)
}

// RequestIDHeader carries the id logged for each request. A client
// supplied id is kept; otherwise one is generated.
const RequestIDHeader = "X-Request-ID"

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
		s.log.With("request_id", id).Debug("%s %s (%s)", r.Method, r.URL.Path, time.Since(started))
	})
}

// documentsPrefix turns a documents directory into a mux pattern such as
// "/papers/". An empty or root directory is not served.
func documentsPrefix(dir string) string {
	dir = strings.Trim(path.Clean("/"+dir), "/")
	if dir == "" || dir == "." {
		return ""
	}
	return "/" + dir + "/"
}

// documentsRoot is the directory on disk behind the documents prefix.
// Absolute directories are used as they are; relative ones resolve
// against root.
func documentsRoot(root, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, filepath.FromSlash(strings.Trim(dir, "/")))
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("serving on http://%s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.log.Info("server stopped")
		return nil
	})

	return g.Wait()
}
