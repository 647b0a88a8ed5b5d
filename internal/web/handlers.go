package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"questboard/internal/engine"
)

const maxBodySize = 64 << 10 // 64KB

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.svc.ListTasks(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	body, err := c.GetRawData()
	if err != nil {
		s.invalid(c, []engine.FieldIssue{{Message: "request body could not be read"}})
		return
	}

	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil || raw == nil {
		s.invalid(c, []engine.FieldIssue{{Message: "request body must be a JSON object"}})
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		s.invalid(c, []engine.FieldIssue{{Message: "request body must contain a single JSON object"}})
		return
	}

	in, err := engine.ParseTaskPayload(raw)
	if err != nil {
		s.fail(c, err, "Failed to create task")
		return
	}
	task, err := s.svc.CreateTask(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err, "Failed to create task")
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleCompleteTask(c *gin.Context) {
	res, err := s.svc.CompleteTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err, "Failed to complete task")
		return
	}

	resp := gin.H{"message": "Task completed successfully"}
	if res.Achievement != nil {
		resp["achievement"] = res.Achievement
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.svc.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err, "Failed to delete task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (s *Server) handleListAchievements(c *gin.Context) {
	achievements, err := s.svc.ListAchievements(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch achievements")
		return
	}
	c.JSON(http.StatusOK, achievements)
}

func (s *Server) handleDeleteAchievement(c *gin.Context) {
	if err := s.svc.DeleteAchievement(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err, "Failed to delete achievement")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Achievement deleted successfully"})
}

func (s *Server) handleStats(c *gin.Context) {
	st, err := s.svc.Stats(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch stats")
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) invalid(c *gin.Context, issues []engine.FieldIssue) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Invalid task data",
		"errors":  issues,
	})
}

// fail maps engine errors to status codes; anything unexpected is a 500 with
// a generic message.
func (s *Server) fail(c *gin.Context, err error, message string) {
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		s.invalid(c, verr.Issues)
		return
	}

	var nf engine.NotFoundError
	if errors.As(err, &nf) {
		msg := "Task not found"
		if nf.Entity == engine.EntityAchievement {
			msg = "Achievement not found"
		}
		c.JSON(http.StatusNotFound, gin.H{"message": msg})
		return
	}

	s.log.Error(message, "error", err, "path", c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}
