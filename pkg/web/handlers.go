package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tableflip.dev/folio/pkg/contact"
	"tableflip.dev/folio/pkg/events"
	"tableflip.dev/folio/pkg/project"
	"tableflip.dev/folio/pkg/terminal"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "projects": s.catalog.Len()})
}

func (s *Server) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, s.profile)
}

func (s *Server) listProjects(c *gin.Context) {
	tag, q := c.Query("tag"), c.Query("q")
	all, _ := strconv.ParseBool(c.Query("all"))

	list := s.catalog.Filter(tag, q)
	if all {
		list = s.catalog.FilterAll(tag, q)
	}
	if list == nil {
		list = []project.Project{}
	}
	c.JSON(http.StatusOK, gin.H{"projects": list, "tags": s.catalog.Tags()})
}

func (s *Server) randomProject(c *gin.Context) {
	p, ok := project.Random(nil, s.catalog.RandomEligible())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No projects available for random selection."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": p, "path": p.Path()})
}

func (s *Server) lookup(c *gin.Context) (project.Project, bool) {
	p, err := s.catalog.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		} else {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return project.Project{}, false
	}
	return p, true
}

func (s *Server) getProject(c *gin.Context) {
	p, ok := s.lookup(c)
	if !ok {
		return
	}
	detail := project.ParseDetail(p.DetailedDescription)
	if detail == nil {
		detail = []project.Segment{}
	}
	c.JSON(http.StatusOK, gin.H{"project": p, "detail": detail})
}

func (s *Server) projectFiles(c *gin.Context) {
	p, ok := s.lookup(c)
	if !ok {
		return
	}
	infos, err := s.sizer.Describe(c.Request.Context(), p.Files)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": infos})
}

func (s *Server) postContact(c *gin.Context) {
	var f contact.Form
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := s.contact.Submit(c.Request.Context(), f)
	var verr *contact.ValidationError
	switch {
	case err == nil:
		s.metrics.ContactTotal.WithLabelValues("sent").Inc()
		c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully!", "simulated": s.contact.Simulated()})
	case errors.As(err, &verr):
		s.metrics.ContactTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	default:
		s.metrics.ContactTotal.WithLabelValues("failed").Inc()
		s.log.Warn("contact submission failed", zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send message. Please try again later."})
	}
}

type inputRequest struct {
	Line string `json:"line"`
}

type completeRequest struct {
	Input string `json:"input"`
}

type sessionResponse struct {
	ID       string         `json:"id,omitempty"`
	State    terminal.State `json:"state"`
	Navigate string         `json:"navigate,omitempty"`
}

func (s *Server) session(c *gin.Context) (*session, bool) {
	sess, err := s.sessions.get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return sess, true
}

func (s *Server) createSession(c *gin.Context) {
	id, sess, err := s.sessions.create()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	state, _ := sess.do(s.sessions.now(), func(*terminal.Controller) {})
	c.JSON(http.StatusCreated, sessionResponse{ID: id, State: state})
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	state, _ := sess.do(s.sessions.now(), func(*terminal.Controller) {})
	c.JSON(http.StatusOK, sessionResponse{ID: c.Param("id"), State: state})
}

func (s *Server) deleteSession(c *gin.Context) {
	if err := s.sessions.remove(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) submitLine(c *gin.Context) {
	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sess, ok := s.session(c)
	if !ok {
		return
	}
	state, nav := sess.do(s.sessions.now(), func(t *terminal.Controller) {
		s.metrics.TerminalLines.WithLabelValues(t.Mode().String()).Inc()
		t.Submit(req.Line)
	})
	if nav != "" {
		s.metrics.Navigations.Inc()
	}
	c.JSON(http.StatusOK, sessionResponse{State: state, Navigate: nav})
}

func (s *Server) complete(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sess, ok := s.session(c)
	if !ok {
		return
	}
	state, _ := sess.do(s.sessions.now(), func(t *terminal.Controller) { t.Complete(req.Input) })
	c.JSON(http.StatusOK, sessionResponse{State: state})
}

func (s *Server) sessionAction(fn func(*terminal.Controller)) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := s.session(c)
		if !ok {
			return
		}
		state, _ := sess.do(s.sessions.now(), fn)
		c.JSON(http.StatusOK, sessionResponse{State: state})
	}
}

// openAll is the header button: every attached session opens.
func (s *Server) openAll(c *gin.Context) {
	n := s.bus.Publish(events.TopicOpenTerminal)
	c.JSON(http.StatusOK, gin.H{"opened": n})
}
