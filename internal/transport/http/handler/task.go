package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/ErlanBelekov/task-api/internal/repository"
	"github.com/ErlanBelekov/task-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type taskUsecaser interface {
	CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, userID string) ([]*domain.Task, error)
	GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID, userID string, input repository.UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID, userID string) error
}

type TaskHandler struct {
	tasks  taskUsecaser
	logger *slog.Logger
}

func NewTaskHandler(tasks taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string     `json:"title"       binding:"required,max=256"`
	Description *string    `json:"description" binding:"omitempty,max=4096"`
	DueDate     *time.Time `json:"dueDate"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"       binding:"omitempty,min=1,max=256"`
	Description *string    `json:"description" binding:"omitempty,max=4096"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "errors": bindingErrors(err)})
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), usecase.CreateTaskInput{
		UserID:      c.GetString("userID"),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": "Task created successfully",
		"task":    toTaskResponse(task),
	})
}

// GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": errInternalServer})
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Tasks retrieved successfully",
		"tasks":   out,
	})
}

// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), taskID, c.GetString("userID"))
	if err != nil {
		h.respondTaskError(c, "get task", taskID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Task retrieved successfully",
		"task":    toTaskResponse(task),
	})
}

// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "errors": bindingErrors(err)})
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), taskID, c.GetString("userID"), repository.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	})
	if err != nil {
		h.respondTaskError(c, "update task", taskID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Task updated successfully",
		"task":    toTaskResponse(task),
	})
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), taskID, c.GetString("userID")); err != nil {
		h.respondTaskError(c, "delete task", taskID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Task deleted successfully"})
}

// taskIDParam validates the :id path segment before any storage call.
// On failure it writes the 400 response and returns ok=false.
func taskIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": false,
			"errors": []fieldError{{Field: "id", Message: errInvalidTaskID}},
		})
		return "", false
	}
	return id, true
}

func (h *TaskHandler) respondTaskError(c *gin.Context, op, taskID string, err error) {
	if errors.Is(err, domain.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": errTaskNotFound})
		return
	}
	h.logger.ErrorContext(c.Request.Context(), op, "task_id", taskID, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": errInternalServer})
}
