package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kika-project/kika-sampling/pkg/models"
	"github.com/kika-project/kika-sampling/pkg/sampling"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthStatus{Status: "healthy", Version: s.opts.Version})
}

// bindConfig decodes the request body as a Configuration. On failure it
// has already written a 400 response, or 422 for file entries without an id.
func (s *Server) bindConfig(c *gin.Context) (models.Configuration, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: "invalid request body"})
		return nil, false
	}

	cfg, err := models.UnmarshalConfiguration(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: err.Error()})
		return nil, false
	}
	if missing := models.MissingFileIDs(cfg); len(missing) > 0 {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Detail: strings.Join(missing, ": field required; ") + ": field required",
		})
		return nil, false
	}
	return cfg, true
}

func (s *Server) handleGenerateScript(c *gin.Context) {
	cfg, ok := s.bindConfig(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sampling.GenerateScript(cfg))
}

func (s *Server) handleValidate(c *gin.Context) {
	cfg, ok := s.bindConfig(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sampling.ValidateConfig(cfg))
}
