package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fishadm/internal/daemon"
	"fishadm/internal/launcher"
)

// Router provides embeddable HTTP handlers over a launcher.
// Endpoints:
//
//	GET  {basePath}/daemons      list configured daemon descriptors
//	GET  {basePath}/status       probe selected daemons
//	POST {basePath}/start        launch selected daemons not running
//	POST {basePath}/stop         stop selected running daemons
//
// Selection via query: kind=mds|osd, id=N; both optional.
// basePath may be empty or start with '/'; no trailing slash.
type Router struct {
	launcher *launcher.Launcher
	daemons  []daemon.Daemon
	basePath string
}

// NewRouter constructs a Router with a configurable basePath.
// Example basePath: "/api" results in /api/status, /api/start, /api/stop.
func NewRouter(l *launcher.Launcher, daemons []daemon.Daemon, basePath string) *Router {
	return &Router{launcher: l, daemons: daemons, basePath: sanitizeBase(basePath)}
}

// Handler returns an http.Handler powered by gin that can be mounted in
// any server/mux.
func (r *Router) Handler() http.Handler {
	g := gin.New()
	g.Use(gin.Recovery())
	group := g.Group(r.basePath)
	group.GET("/daemons", r.handleDaemons)
	group.GET("/status", r.handleStatus)
	group.POST("/start", r.handleStart)
	group.POST("/stop", r.handleStop)
	return g
}

// NewServer starts a standalone HTTP server on addr using this router.
func NewServer(addr, basePath string, l *launcher.Launcher, daemons []daemon.Daemon) (*http.Server, error) {
	r := NewRouter(l, daemons, basePath)
	server := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() { _ = server.ListenAndServe() }()
	return server, nil
}

// --- Handlers ---

type errorResp struct {
	Error string `json:"error"`
}

type resultsResp struct {
	Results []launcher.Result `json:"results"`
}

func (r *Router) handleDaemons(c *gin.Context) {
	sel, err := selectorFromQuery(c)
	if err != nil {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}
	out := make([]daemon.Daemon, 0, len(r.daemons))
	for _, d := range r.daemons {
		if sel.Matches(d) {
			out = append(out, d)
		}
	}
	writeJSON(c, http.StatusOK, gin.H{"daemons": out})
}

func (r *Router) handleStatus(c *gin.Context) {
	sel, err := selectorFromQuery(c)
	if err != nil {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}
	results, err := r.launcher.StatusAll(c.Request.Context(), daemon.NewIter(r.daemons, sel))
	if err != nil {
		writeJSON(c, http.StatusBadGateway, gin.H{"results": results, "error": err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, resultsResp{Results: results})
}

func (r *Router) handleStart(c *gin.Context) {
	sel, err := selectorFromQuery(c)
	if err != nil {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}
	results, err := r.launcher.StartAll(c.Request.Context(), daemon.NewIter(r.daemons, sel))
	if err != nil {
		writeJSON(c, http.StatusBadGateway, gin.H{"results": results, "error": err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, resultsResp{Results: results})
}

func (r *Router) handleStop(c *gin.Context) {
	sel, err := selectorFromQuery(c)
	if err != nil {
		writeJSON(c, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}
	results, err := r.launcher.StopAll(c.Request.Context(), daemon.NewIter(r.daemons, sel))
	if err != nil {
		writeJSON(c, http.StatusBadGateway, gin.H{"results": results, "error": err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, resultsResp{Results: results})
}
