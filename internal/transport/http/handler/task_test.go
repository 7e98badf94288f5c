package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/ErlanBelekov/task-api/internal/repository"
	"github.com/ErlanBelekov/task-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/task-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

const (
	testUserID = "3f6f1a70-9a70-4a1f-9a4e-1a52f7a3f001"
	testTaskID = "b2f4f1d2-6f6e-4a8a-9a4e-2c52f7a3f002"
)

type fakeTasks struct {
	createTask func(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	listTasks  func(ctx context.Context, userID string) ([]*domain.Task, error)
	getTask    func(ctx context.Context, taskID, userID string) (*domain.Task, error)
	updateTask func(ctx context.Context, taskID, userID string, input repository.UpdateTaskInput) (*domain.Task, error)
	deleteTask func(ctx context.Context, taskID, userID string) error
}

func (f *fakeTasks) CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error) {
	return f.createTask(ctx, input)
}

func (f *fakeTasks) ListTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	return f.listTasks(ctx, userID)
}

func (f *fakeTasks) GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	return f.getTask(ctx, taskID, userID)
}

func (f *fakeTasks) UpdateTask(ctx context.Context, taskID, userID string, input repository.UpdateTaskInput) (*domain.Task, error) {
	return f.updateTask(ctx, taskID, userID, input)
}

func (f *fakeTasks) DeleteTask(ctx context.Context, taskID, userID string) error {
	return f.deleteTask(ctx, taskID, userID)
}

// newTaskEngine wires the task routes behind a stub identity, standing in
// for the auth middleware.
func newTaskEngine(uc *fakeTasks) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewTaskHandler(uc, logger)

	r := gin.New()
	authed := r.Group("/api/tasks", func(c *gin.Context) {
		c.Set("userID", testUserID)
		c.Next()
	})
	authed.POST("", h.Create)
	authed.GET("", h.List)
	authed.GET("/:id", h.GetByID)
	authed.PUT("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

// ---- Create ----

func TestCreateTask_EmptyTitle_Returns400AndSkipsStorage(t *testing.T) {
	called := false
	uc := &fakeTasks{
		createTask: func(_ context.Context, _ usecase.CreateTaskInput) (*domain.Task, error) {
			called = true
			return nil, nil
		},
	}
	w := do(t, newTaskEngine(uc), http.MethodPost, "/api/tasks", `{"title":""}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(strings.ToLower(w.Body.String()), "title") {
		t.Errorf("body = %q, should mention the title field", w.Body.String())
	}
	if called {
		t.Error("usecase must not be reached on validation failure")
	}
}

func TestCreateTask_BadDueDate_Returns400(t *testing.T) {
	uc := &fakeTasks{}
	w := do(t, newTaskEngine(uc), http.MethodPost, "/api/tasks",
		`{"title":"Buy milk","dueDate":"not-a-date"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateTask_Minimal_Returns201WithDefaults(t *testing.T) {
	uc := &fakeTasks{
		createTask: func(_ context.Context, input usecase.CreateTaskInput) (*domain.Task, error) {
			if input.UserID != testUserID {
				t.Errorf("owner = %q, want %q", input.UserID, testUserID)
			}
			return &domain.Task{
				ID:        testTaskID,
				UserID:    input.UserID,
				Title:     input.Title,
				Completed: false,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		},
	}
	w := do(t, newTaskEngine(uc), http.MethodPost, "/api/tasks", `{"title":"Buy milk"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %q", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"completed":false`) {
		t.Errorf("body = %q, want completed false", body)
	}
	if strings.Contains(body, `"description"`) {
		t.Errorf("body = %q, absent description must be omitted", body)
	}
}

// ---- List ----

func TestListTasks_Empty_ReturnsEmptyArray(t *testing.T) {
	uc := &fakeTasks{
		listTasks: func(_ context.Context, _ string) ([]*domain.Task, error) {
			return nil, nil
		},
	}
	w := do(t, newTaskEngine(uc), http.MethodGet, "/api/tasks", "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"tasks":[]`) {
		t.Errorf("body = %q, want empty tasks array, not null", w.Body.String())
	}
}

func TestListTasks_ScopedToCaller(t *testing.T) {
	var gotUserID string
	uc := &fakeTasks{
		listTasks: func(_ context.Context, userID string) ([]*domain.Task, error) {
			gotUserID = userID
			return []*domain.Task{{ID: testTaskID, UserID: userID, Title: "Buy milk"}}, nil
		},
	}
	w := do(t, newTaskEngine(uc), http.MethodGet, "/api/tasks", "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if gotUserID != testUserID {
		t.Errorf("listed for %q, want %q", gotUserID, testUserID)
	}
}

// ---- Get ----

func TestGetTask_MalformedID_Returns400(t *testing.T) {
	called := false
	uc := &fakeTasks{
		getTask: func(_ context.Context, _, _ string) (*domain.Task, error) {
			called = true
			return nil, nil
		},
	}
	w := do(t, newTaskEngine(uc), http.MethodGet, "/api/tasks/not-a-uuid", "")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid task ID") {
		t.Errorf("body = %q, want bad-id message", w.Body.String())
	}
	if called {
		t.Error("storage must not be touched for a malformed id")
	}
}

func TestGetTask_OtherOwner_Returns404WithoutContent(t *testing.T) {
	uc := &fakeTasks{
		getTask: func(_ context.Context, taskID, userID string) (*domain.Task, error) {
			// Owner-scoped lookup: a foreign task surfaces as not found.
			return nil, domain.ErrTaskNotFound
		},
	}
	w := do(t, newTaskEngine(uc), http.MethodGet, "/api/tasks/"+testTaskID, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Task not found") {
		t.Errorf("body = %q, want not-found message", w.Body.String())
	}
}

func TestGetTask_Found_Returns200(t *testing.T) {
	uc := &fakeTasks{
		getTask: func(_ context.Context, taskID, userID string) (*domain.Task, error) {
			return &domain.Task{ID: taskID, UserID: userID, Title: "Buy milk"}, nil
		},
	}
	w := do(t, newTaskEngine(uc), http.MethodGet, "/api/tasks/"+testTaskID, "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Buy milk") {
		t.Errorf("body = %q, want the task", w.Body.String())
	}
}

// ---- Update ----

func TestUpdateTask_CompletedOnly_LeavesOtherFieldsAlone(t *testing.T) {
	var captured repository.UpdateTaskInput
	uc := &fakeTasks{
		updateTask: func(_ context.Context, taskID, userID string, input repository.UpdateTaskInput) (*domain.Task, error) {
			captured = input
			return &domain.Task{ID: taskID, UserID: userID, Title: "Buy milk", Completed: true}, nil
		},
	}
	w := do(t, newTaskEngine(uc), http.MethodPut, "/api/tasks/"+testTaskID, `{"completed":true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %q", w.Code, w.Body.String())
	}
	if captured.Title != nil || captured.Description != nil || captured.DueDate != nil {
		t.Errorf("partial update touched unrelated fields: %+v", captured)
	}
	if captured.Completed == nil || !*captured.Completed {
		t.Error("completed flag not forwarded")
	}
	if !strings.Contains(w.Body.String(), `"title":"Buy milk"`) {
		t.Errorf("body = %q, title must be unchanged", w.Body.String())
	}
}

func TestUpdateTask_EmptyTitle_Returns400(t *testing.T) {
	uc := &fakeTasks{}
	w := do(t, newTaskEngine(uc), http.MethodPut, "/api/tasks/"+testTaskID, `{"title":""}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateTask_NotFound_Returns404(t *testing.T) {
	uc := &fakeTasks{
		updateTask: func(_ context.Context, _, _ string, _ repository.UpdateTaskInput) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	w := do(t, newTaskEngine(uc), http.MethodPut, "/api/tasks/"+testTaskID, `{"completed":true}`)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

// ---- Delete ----

func TestDeleteTask_Success_Returns200(t *testing.T) {
	uc := &fakeTasks{
		deleteTask: func(_ context.Context, taskID, userID string) error {
			if userID != testUserID {
				t.Errorf("delete scoped to %q, want %q", userID, testUserID)
			}
			return nil
		},
	}
	w := do(t, newTaskEngine(uc), http.MethodDelete, "/api/tasks/"+testTaskID, "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Task deleted successfully") {
		t.Errorf("body = %q, want delete message", w.Body.String())
	}
}

func TestDeleteTask_NotFound_Returns404(t *testing.T) {
	uc := &fakeTasks{
		deleteTask: func(_ context.Context, _, _ string) error {
			return domain.ErrTaskNotFound
		},
	}
	w := do(t, newTaskEngine(uc), http.MethodDelete, "/api/tasks/"+testTaskID, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
