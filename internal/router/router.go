package router

import (
	"io/fs"

	"github.com/AdonaIsium/workerboard/internal/request"
	"github.com/AdonaIsium/workerboard/internal/response"
	"github.com/AdonaIsium/workerboard/internal/store"
)

const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// Handler produces the response for one request. A nil response with a nil
// error means nothing is written back.
type Handler interface {
	Handle(req *request.Request) (*response.Response, error)
}

type HandlerFunc func(req *request.Request) (*response.Response, error)

func (f HandlerFunc) Handle(req *request.Request) (*response.Response, error) {
	return f(req)
}

type WorkerStore interface {
	Insert(w *store.Worker) error
	List() ([]store.Worker, error)
	Retrieve(id int) (store.Worker, error)
	Update(w *store.Worker) error
}

type TaskStore interface {
	Insert(t *store.Task) error
	List() ([]store.Task, error)
	Retrieve(id int) (store.Task, error)
}

type Config struct {
	Workers WorkerStore
	Tasks   TaskStore
	// Content is where unmatched GET paths are looked up.
	Content fs.FS
	// RedirectLocation is sent as Location after a worker gets a task.
	RedirectLocation string
}

// Router is built once by New and never changes afterwards, so one value
// can serve any number of connections without locking.
type Router struct {
	routes  map[string]Handler
	workers *workerHandlers
	content fs.FS
}

func New(cfg Config) *Router {
	tasks := &taskHandlers{tasks: cfg.Tasks}
	workers := &workerHandlers{
		workers:  cfg.Workers,
		tasks:    cfg.Tasks,
		location: cfg.RedirectLocation,
	}

	return &Router{
		routes: map[string]Handler{
			"/api/newTask":        HandlerFunc(tasks.create),
			"/api/tasks":          HandlerFunc(tasks.list),
			"/api/taskOptions":    HandlerFunc(tasks.options),
			"/api/workersOptions": HandlerFunc(workers.options),
			"/api/updateWorker":   HandlerFunc(workers.assignTask),
		},
		workers: workers,
		content: cfg.Content,
	}
}

// Dispatch picks the handler for req by exact path. POST and every other
// method each get their own special cases, then share the route table. Only
// non-POST requests fall back to the static content.
func (rt *Router) Dispatch(req *request.Request) (*response.Response, error) {
	path := req.Path()

	if req.RequestLine.Method == MethodPost {
		if path == "/api/newWorker" {
			return rt.workers.create(req)
		}
		if h, ok := rt.routes[path]; ok {
			return h.Handle(req)
		}
		return nil, nil
	}

	switch path {
	case "/echo":
		return echo(req)
	case "/api/workers":
		return rt.workers.list(req)
	}

	if h, ok := rt.routes[path]; ok {
		return h.Handle(req)
	}
	return serveFile(rt.content, path)
}
