package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *RateioService) HandleCreateSession(c *gin.Context) {
	sess := s.store.Create()
	c.JSON(http.StatusCreated, sess.Snapshot())
}

func (s *RateioService) HandleGetSession(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	s.snapshot(c, sess)
}

func (s *RateioService) HandleDeleteSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de sessão inválido"})
		return
	}
	s.store.Delete(id)
	c.Status(http.StatusNoContent)
}

// HandleResetSession wipes the record, deposits and simulation state but
// keeps the session id alive.
func (s *RateioService) HandleResetSession(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	sess.Reset()
	s.snapshot(c, sess)
}

// HandleClearRecord drops the extracted record so a new spreadsheet can be
// loaded. Deposits stay in place.
func (s *RateioService) HandleClearRecord(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	sess.ClearRecord()
	s.snapshot(c, sess)
}
