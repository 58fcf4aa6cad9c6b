package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/jobcolor/internal/contract"
	"github.com/alexanderramin/jobcolor/internal/domain"
	"github.com/alexanderramin/jobcolor/internal/repository"
	"github.com/alexanderramin/jobcolor/internal/service"
)

func (s *Server) getColorDetails(c *gin.Context) {
	details, err := s.svc.Colors.GetColorDetails(c.Request.Context(), c.Param("jobNumber"))
	if err != nil {
		s.fail(c, err, "Failed to fetch job color details")
		return
	}
	c.JSON(http.StatusOK, details)
}

func (s *Server) getItems(c *gin.Context) {
	items, err := s.svc.Catalog.ListItems(c.Request.Context())
	if err != nil {
		s.fail(c, err, "Failed to fetch items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) saveColorChanges(c *gin.Context) {
	var payload domain.JobColorDataset
	if err := c.ShouldBindJSON(&payload); err != nil {
		_ = c.Error(err)
		abortWithError(c, http.StatusBadRequest, "Malformed request body")
		return
	}
	if err := s.svc.Colors.SaveColorChanges(c.Request.Context(), &payload); err != nil {
		s.fail(c, err, "Failed to save changes")
		return
	}
	c.JSON(http.StatusOK, contract.SaveResponse{Success: true})
}

func (s *Server) searchJobNumbers(c *gin.Context) {
	numbers, err := s.svc.Jobs.SearchJobNumbers(c.Request.Context(), c.Param("fragment"))
	if err != nil {
		s.fail(c, err, "Failed to search job numbers")
		return
	}
	c.JSON(http.StatusOK, numbers)
}

func (s *Server) getJobDetails(c *gin.Context) {
	details, err := s.svc.Jobs.GetJobDetails(c.Request.Context(), c.Param("jobNumber"))
	if err != nil {
		s.fail(c, err, "Failed to fetch job details")
		return
	}
	c.JSON(http.StatusOK, details)
}

// fail maps a service error onto a status and the {error} envelope.
// Internal errors are logged and answered with fallback.
func (s *Server) fail(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "Job not found")
	case errors.Is(err, service.ErrInvalidPayload):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("job store request failed", "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, contract.ErrorResponse{Error: message})
}
