package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkotelnikov/tasktree-api/internal/models"
	"github.com/mkotelnikov/tasktree-api/internal/repository"
	"github.com/mkotelnikov/tasktree-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type taskTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupTaskTestEnv(t *testing.T) taskTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignee{},
	)
	require.NoError(t, err)

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	taskService := services.NewTaskService(taskRepo, userRepo)
	handler := NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	tasks := r.Group("/api/tasks")
	{
		tasks.GET("", handler.ListTasks)
		tasks.POST("", handler.CreateTask)
		tasks.GET("/:id", handler.GetTask)
		tasks.PATCH("/:id", handler.UpdateTask)
		tasks.DELETE("/:id", handler.DeleteTask)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return taskTestEnv{db: db, router: r}
}

func (env taskTestEnv) request(t *testing.T, method, url string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env taskTestEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()

	user := &models.User{Name: "Test", Surname: "User", Email: email}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env taskTestEnv) createTask(t *testing.T, title string, authorID uint64, parentID *uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:       title,
		Description: "Description",
		EndDate:     time.Date(2025, 5, 20, 12, 30, 0, 0, time.UTC),
		Status:      models.TaskStatusPending,
		AuthorID:    authorID,
		ParentID:    parentID,
	}
	require.NoError(t, env.db.Create(task).Error)
	return task
}

func TestListTasks_ReturnsRootTreesOnly(t *testing.T) {
	env := setupTaskTestEnv(t)
	author := env.createUser(t, "author@example.com")
	root := env.createTask(t, "Root", author.ID, nil)
	child := env.createTask(t, "Child", author.ID, &root.ID)

	w := env.request(t, "GET", "/api/tasks", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)

	assert.Equal(t, "Root", response[0]["title"])
	assert.Nil(t, response[0]["parent_id"])
	assert.Equal(t, "2025-05-20 12:30", response[0]["end_date"])
	assert.Equal(t, "author@example.com", response[0]["author"].(map[string]any)["email"])

	children := response[0]["children"].([]any)
	require.Len(t, children, 1)
	assert.Equal(t, child.Title, children[0].(map[string]any)["title"])
}

func TestGetTask_DetailShape(t *testing.T) {
	env := setupTaskTestEnv(t)
	author := env.createUser(t, "author@example.com")
	assignee := env.createUser(t, "assignee@example.com")
	root := env.createTask(t, "Root", author.ID, nil)
	env.createTask(t, "Child", author.ID, &root.ID)
	require.NoError(t, env.db.Create(&models.TaskAssignee{
		TaskID:         root.ID,
		UserID:         assignee.ID,
		AssigneeStatus: models.AssigneeStatusPending,
	}).Error)

	w := env.request(t, "GET", "/api/tasks/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "Root", response["title"])
	assert.NotContains(t, response, "children")

	assignees := response["assignees"].([]any)
	require.Len(t, assignees, 1)
	entry := assignees[0].(map[string]any)
	assert.Equal(t, "pending", entry["assignee_status"])
	assert.Equal(t, "assignee@example.com", entry["user"].(map[string]any)["email"])
}

func TestGetTask_NotFound(t *testing.T) {
	env := setupTaskTestEnv(t)

	w := env.request(t, "GET", "/api/tasks/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTask_Success(t *testing.T) {
	env := setupTaskTestEnv(t)
	author := env.createUser(t, "author@example.com")
	assignee := env.createUser(t, "assignee@example.com")

	body, _ := json.Marshal(map[string]any{
		"title":             "New Task",
		"description":       "Description here",
		"end_date":          "2025-05-30 15:40",
		"author_id":         author.ID,
		"assignee_user_ids": []uint64{assignee.ID},
	})

	w := env.request(t, "POST", "/api/tasks", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "New Task", response["title"])
	assert.Equal(t, "2025-05-30 15:40", response["end_date"])
	assert.Equal(t, "pending", response["status"])
	assert.Len(t, response["assignees"].([]any), 1)
}

func TestCreateTask_AuthorNotFound(t *testing.T) {
	env := setupTaskTestEnv(t)

	body, _ := json.Marshal(map[string]any{
		"title":       "New Task",
		"description": "Description here",
		"end_date":    "2025-05-30 15:40",
		"author_id":   999,
	})

	w := env.request(t, "POST", "/api/tasks", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTask_RejectsMalformedDate(t *testing.T) {
	env := setupTaskTestEnv(t)
	author := env.createUser(t, "author@example.com")

	body, _ := json.Marshal(map[string]any{
		"title":       "New Task",
		"description": "Description here",
		"end_date":    "2025-05-30T15:40:00Z",
		"author_id":   author.ID,
	})

	w := env.request(t, "POST", "/api/tasks", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTask_MissingTitle(t *testing.T) {
	env := setupTaskTestEnv(t)
	author := env.createUser(t, "author@example.com")

	body, _ := json.Marshal(map[string]any{
		"description": "Description here",
		"end_date":    "2025-05-30 15:40",
		"author_id":   author.ID,
	})

	w := env.request(t, "POST", "/api/tasks", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask_StatusOnly(t *testing.T) {
	env := setupTaskTestEnv(t)
	author := env.createUser(t, "author@example.com")
	task := env.createTask(t, "Task", author.ID, nil)

	w := env.request(t, "PATCH", "/api/tasks/1", []byte(`{"status": "done"}`))
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "done", response["status"])
	assert.Equal(t, task.Title, response["title"])
	assert.Equal(t, "2025-05-20 12:30", response["end_date"])
}

func TestUpdateTask_NullParentDetaches(t *testing.T) {
	env := setupTaskTestEnv(t)
	author := env.createUser(t, "author@example.com")
	root := env.createTask(t, "Root", author.ID, nil)
	env.createTask(t, "Child", author.ID, &root.ID)

	w := env.request(t, "PATCH", "/api/tasks/2", []byte(`{"parent_id": null}`))
	assert.Equal(t, http.StatusOK, w.Code)

	var child models.Task
	require.NoError(t, env.db.First(&child, 2).Error)
	assert.Nil(t, child.ParentID)
}

func TestUpdateTask_SelfParentRejected(t *testing.T) {
	env := setupTaskTestEnv(t)
	author := env.createUser(t, "author@example.com")
	env.createTask(t, "Task", author.ID, nil)

	w := env.request(t, "PATCH", "/api/tasks/1", []byte(`{"parent_id": 1}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask_MalformedDate(t *testing.T) {
	env := setupTaskTestEnv(t)
	author := env.createUser(t, "author@example.com")
	env.createTask(t, "Task", author.ID, nil)

	w := env.request(t, "PATCH", "/api/tasks/1", []byte(`{"end_date": "next tuesday"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask_NotFound(t *testing.T) {
	env := setupTaskTestEnv(t)

	w := env.request(t, "PATCH", "/api/tasks/42", []byte(`{"status": "done"}`))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTask_RemovesSubtree(t *testing.T) {
	env := setupTaskTestEnv(t)
	author := env.createUser(t, "author@example.com")
	root := env.createTask(t, "Root", author.ID, nil)
	env.createTask(t, "Child", author.ID, &root.ID)

	w := env.request(t, "DELETE", "/api/tasks/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, "GET", "/api/tasks/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTask_NotFound(t *testing.T) {
	env := setupTaskTestEnv(t)

	w := env.request(t, "DELETE", "/api/tasks/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTask_InvalidID(t *testing.T) {
	env := setupTaskTestEnv(t)

	w := env.request(t, "DELETE", "/api/tasks/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
