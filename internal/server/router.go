/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/redhat-data-and-ai/usercache/internal/viewmodel"
	"github.com/redhat-data-and-ai/usercache/pkg/common/structs"
	"github.com/redhat-data-and-ai/usercache/pkg/logger"
)

const (
	requestIDHeader = "X-Request-ID"
)

type userResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type createUserRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toResponse(u structs.User) userResponse {
	return userResponse{ID: u.GetID(), Name: u.GetName()}
}

// UserHandler exposes a view model over HTTP.
type UserHandler struct {
	vm viewmodel.ViewModel
}

func NewUserHandler(vm viewmodel.ViewModel) *UserHandler {
	return &UserHandler{vm: vm}
}

// NewRouter builds the gin engine serving the user endpoints.
func NewRouter(vm viewmodel.ViewModel) *gin.Engine {
	h := NewUserHandler(vm)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/users", h.ListUsers)
	r.POST("/users", h.CreateUser)
	r.GET("/users/names", h.ListNames)

	return r
}

// requestLogger tags the request context with a request id and logs the
// outcome of every request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		ctx := logger.WithRequestId(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		log := logger.Logger(ctx).WithFields(logrus.Fields{
			"component": "http",
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    status,
			"latency":   time.Since(start).String(),
		})
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request completed")
		case status >= http.StatusBadRequest:
			log.Warn("request completed")
		default:
			log.Info("request completed")
		}
	}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.vm.FetchAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

// CreateUser handles POST /users. A missing id gets a generated one.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := structs.NewUser(req.Name)
	if req.ID != "" {
		user = structs.NewUserWithID(req.ID, req.Name)
	}

	if err := h.vm.Cache(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toResponse(user))
}

// ListNames handles GET /users/names
func (h *UserHandler) ListNames(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.vm.RenderNames(c.Request.Context(), &buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}
