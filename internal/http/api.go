package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todolist/internal/auth"
	"todolist/internal/domain"
	"todolist/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth   service.AuthService
	tasks  service.TaskService
	tokens *auth.TokenService
	logger *logrus.Logger
}

func NewHandler(authSvc service.AuthService, tasks service.TaskService, tokens *auth.TokenService, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:   authSvc,
		tasks:  tasks,
		tokens: tokens,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}

	todos := router.Group("/todos", RequireAuth(h.tokens))
	{
		todos.GET("", h.listTodos)
		todos.POST("", h.createTodo)
		todos.PUT("/:id", h.updateTodo)
		todos.DELETE("/:id", h.deleteTodo)
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createTodoRequest struct {
	Task string `json:"task"`
}

type updateTodoRequest struct {
	Completed bool `json:"completed"`
}

type TodoResponse struct {
	ID        int64  `json:"id"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	token, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) listTodos(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]TodoResponse, len(tasks))
	for i := range tasks {
		resp[i] = todoToResponse(tasks[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createTodo(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), currentUserID(c), req.Task)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, todoToResponse(*task))
}

func (h *Handler) updateTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := h.tasks.SetDone(c.Request.Context(), currentUserID(c), id, req.Completed); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todo updated"})
}

func (h *Handler) deleteTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted"})
}

func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID parameter"})
		return 0, false
	}
	return id, true
}

// writeError translates the service error taxonomy to wire status codes.
// Anything unclassified is a storage-collaborator failure and maps to 503;
// the cause is logged server side only.
func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Error(), "errors": verr.Fields})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "Username already exists"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Todo not found"})
	default:
		h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Service temporarily unavailable"})
	}
}

func todoToResponse(task domain.Task) TodoResponse {
	return TodoResponse{
		ID:        task.ID,
		Task:      task.Text,
		Completed: task.Done,
	}
}
