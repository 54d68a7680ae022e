package gin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fwojciec/postcard"
	"github.com/gin-gonic/gin"
)

type extractRequest struct {
	URL string `json:"url" binding:"required"`
}

type presetRequest struct {
	Name   string          `json:"name" binding:"required"`
	Labels postcard.Labels `json:"labels"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, envelope{OK: true})
}

func (s *Server) handleExtractQuery(c *gin.Context) {
	s.extract(c, strings.TrimSpace(c.Query("url")))
}

func (s *Server) handleExtractBody(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.Error(c, postcard.Errorf(postcard.EINVALID, "url required"))
		return
	}
	s.extract(c, strings.TrimSpace(req.URL))
}

func (s *Server) extract(c *gin.Context, rawURL string) {
	record, err := s.scraper.Scrape(c.Request.Context(), rawURL)
	if err != nil {
		s.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, success(record))
}

func (s *Server) handlePresetList(c *gin.Context) {
	var filter postcard.PresetFilter
	if name := c.Query("name"); name != "" {
		filter.Name = &name
	}
	var err error
	if filter.Limit, err = intQuery(c, "limit"); err != nil {
		s.Error(c, err)
		return
	}
	if filter.Offset, err = intQuery(c, "offset"); err != nil {
		s.Error(c, err)
		return
	}

	presets, err := s.presets.FindPresets(c.Request.Context(), filter)
	if err != nil {
		s.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, success(presets))
}

func (s *Server) handlePresetCreate(c *gin.Context) {
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.Error(c, postcard.Errorf(postcard.EINVALID, "preset name required"))
		return
	}

	preset := &postcard.Preset{Name: req.Name, Labels: req.Labels}
	if err := s.presets.CreatePreset(c.Request.Context(), preset); err != nil {
		s.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, success(preset))
}

func (s *Server) handlePresetGet(c *gin.Context) {
	preset, err := s.presets.FindPresetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, success(preset))
}

func (s *Server) handlePresetUpdate(c *gin.Context) {
	var upd postcard.PresetUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		s.Error(c, postcard.Errorf(postcard.EINVALID, "invalid preset update: %v", err))
		return
	}

	preset, err := s.presets.UpdatePreset(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		s.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, success(preset))
}

func (s *Server) handlePresetDelete(c *gin.Context) {
	if err := s.presets.DeletePreset(c.Request.Context(), c.Param("id")); err != nil {
		s.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope{OK: true})
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, postcard.Errorf(postcard.EINVALID, "%s must be a non-negative integer", key)
	}
	return n, nil
}
