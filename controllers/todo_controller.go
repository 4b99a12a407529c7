package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lockin-app/lockin/models"
	"github.com/lockin-app/lockin/utils"
)

// TodoController manages one-off tasks, separate from recurring goals.
type TodoController struct {
	db *gorm.DB
}

func NewTodoController(db *gorm.DB) *TodoController {
	return &TodoController{db: db}
}

// CreateTodo adds a task for the authenticated user.
func (t *TodoController) CreateTodo(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title string `json:"title" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid request payload")
		return
	}
	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40071, "title cannot be empty")
		return
	}

	todo := models.Todo{UserID: userID, Title: title}
	if err := t.db.Create(&todo).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to create todo")
		return
	}
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"todo": todo})
}

// ListTodos returns the user's tasks, newest first.
func (t *TodoController) ListTodos(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var todos []models.Todo
	if err := t.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&todos).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to list todos")
		return
	}
	utils.Success(ctx, gin.H{"todos": todos})
}

// UpdateTodo edits a task's title and/or completed flag.
func (t *TodoController) UpdateTodo(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title     *string `json:"title"`
		Completed *bool   `json:"completed"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40072, "invalid request payload")
		return
	}

	todo, ok := t.ownedTodo(ctx, userID)
	if !ok {
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := utils.Sanitize(strings.TrimSpace(*req.Title))
		if title == "" {
			utils.Error(ctx, http.StatusBadRequest, 40071, "title cannot be empty")
			return
		}
		updates["title"] = title
	}
	if req.Completed != nil {
		updates["completed"] = *req.Completed
	}
	if len(updates) == 0 {
		utils.Success(ctx, gin.H{"todo": todo})
		return
	}

	if err := t.db.Model(&todo).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to update todo")
		return
	}
	utils.Success(ctx, gin.H{"todo": todo})
}

// DeleteTodo removes a task.
func (t *TodoController) DeleteTodo(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	todo, ok := t.ownedTodo(ctx, userID)
	if !ok {
		return
	}

	if err := t.db.Delete(&todo).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to delete todo")
		return
	}
	utils.Success(ctx, gin.H{"deleted": true})
}

func (t *TodoController) ownedTodo(ctx *gin.Context, userID uint) (models.Todo, bool) {
	idStr := strings.TrimSpace(ctx.Param("id"))
	if idStr == "" {
		utils.Error(ctx, http.StatusBadRequest, 40073, "missing todo id")
		return models.Todo{}, false
	}
	var todo models.Todo
	if err := t.db.Where("id = ? AND user_id = ?", idStr, userID).First(&todo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40430, "todo not found")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50074, "failed to load todo")
		}
		return models.Todo{}, false
	}
	return todo, true
}
