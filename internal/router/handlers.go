package router

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AdonaIsium/workerboard/internal/form"
	"github.com/AdonaIsium/workerboard/internal/request"
	"github.com/AdonaIsium/workerboard/internal/response"
	"github.com/AdonaIsium/workerboard/internal/store"
)

var ErrorMissingParameter = fmt.Errorf("missing parameter")
var ErrorInvalidParameter = fmt.Errorf("invalid parameter")

const (
	acknowledgement = "Okay"
	defaultEchoBody = "Hello <strong>World</strong>!"
)

func echo(req *request.Request) (*response.Response, error) {
	status := "200"
	body := defaultEchoBody

	if raw, ok := req.Query(); ok {
		params, err := form.ParseQuery(raw)
		if err != nil {
			return nil, err
		}
		if v, ok := params.Get("status"); ok {
			if !isDigits(v) {
				return nil, fmt.Errorf("%w: status=%q", ErrorInvalidParameter, v)
			}
			status = v
		}
		if v, ok := params.Get("body"); ok {
			body = v
		}
	}
	return response.Echo(status, body), nil
}

// isDigits reports whether s is a non-empty run of ASCII digits, the only
// thing allowed into a status line.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

type workerHandlers struct {
	workers  WorkerStore
	tasks    TaskStore
	location string
}

func (h *workerHandlers) create(req *request.Request) (*response.Response, error) {
	params := form.ParseBody(req.Body)

	w := &store.Worker{}
	w.FirstName, _ = params.Get("first_name")
	w.LastName, _ = params.Get("last_name")
	w.Email, _ = params.Get("email_address")
	if err := h.workers.Insert(w); err != nil {
		return nil, fmt.Errorf("insert worker: %w", err)
	}
	return response.OK(acknowledgement), nil
}

func (h *workerHandlers) list(req *request.Request) (*response.Response, error) {
	workers, err := h.workers.List()
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, w := range workers {
		fmt.Fprintf(&b, "<li>Name: %s %s</li><li>Email: %s</li>", w.FirstName, w.LastName, w.Email)
	}
	b.WriteString("</ul>")
	return response.HTML(b.String()), nil
}

func (h *workerHandlers) options(req *request.Request) (*response.Response, error) {
	workers, err := h.workers.List()
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	var b strings.Builder
	for _, w := range workers {
		fmt.Fprintf(&b, "<option value=%d>%s</option>", w.ID, w.FirstName)
	}
	return response.OK(b.String()), nil
}

// assignTask reads workerId and taskId from the form body, stores the task on
// the worker and redirects back to the front page.
func (h *workerHandlers) assignTask(req *request.Request) (*response.Response, error) {
	params := form.ParseBody(req.Body)

	workerID, err := intParam(params, "workerId")
	if err != nil {
		return nil, err
	}
	taskID, err := intParam(params, "taskId")
	if err != nil {
		return nil, err
	}

	w, err := h.workers.Retrieve(workerID)
	if err != nil {
		return nil, fmt.Errorf("retrieve worker: %w", err)
	}
	if _, err := h.tasks.Retrieve(taskID); err != nil {
		return nil, fmt.Errorf("retrieve task: %w", err)
	}

	w.TaskID = &taskID
	if err := h.workers.Update(&w); err != nil {
		return nil, fmt.Errorf("update worker: %w", err)
	}
	return response.Redirect(h.location), nil
}

type taskHandlers struct {
	tasks TaskStore
}

func (h *taskHandlers) create(req *request.Request) (*response.Response, error) {
	params := form.ParseBody(req.Body)

	t := &store.Task{}
	t.Name, _ = params.Get("taskName")
	if err := h.tasks.Insert(t); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return response.OK(acknowledgement), nil
}

func (h *taskHandlers) list(req *request.Request) (*response.Response, error) {
	tasks, err := h.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, t := range tasks {
		fmt.Fprintf(&b, "<li>%s</li>", t.Name)
	}
	b.WriteString("</ul>")
	return response.HTML(b.String()), nil
}

func (h *taskHandlers) options(req *request.Request) (*response.Response, error) {
	tasks, err := h.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var b strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&b, "<option value=%d>%s</option>", t.ID, t.Name)
	}
	return response.OK(b.String()), nil
}

func intParam(params form.Params, name string) (int, error) {
	raw, ok := params.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrorMissingParameter, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrorInvalidParameter, name, raw)
	}
	return v, nil
}
