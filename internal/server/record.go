package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rateio-app/rateio/internal/session"
)

type grossRequest struct {
	Amount float64 `json:"valor"`
}

type lineItemRequest struct {
	Description string  `json:"descricao" binding:"required"`
	Amount      float64 `json:"valor"`
}

// writeSessionError maps session package errors onto HTTP status codes.
func writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNoRecord):
		c.JSON(http.StatusConflict, gin.H{"error": "nenhum registro extraído nesta sessão"})
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item não encontrado"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno"})
	}
}

func (s *RateioService) HandleSetGross(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	var req grossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}
	if err := sess.SetGross(req.Amount); err != nil {
		writeSessionError(c, err)
		return
	}
	s.snapshot(c, sess)
}

func (s *RateioService) HandleAddDiscount(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	var req lineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "descrição é obrigatória"})
		return
	}
	if _, err := sess.AddDiscount(req.Description, req.Amount); err != nil {
		writeSessionError(c, err)
		return
	}
	s.snapshot(c, sess)
}

func (s *RateioService) HandleUpdateDiscount(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	var req lineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "descrição é obrigatória"})
		return
	}
	if err := sess.UpdateDiscount(c.Param("itemID"), req.Description, req.Amount); err != nil {
		writeSessionError(c, err)
		return
	}
	s.snapshot(c, sess)
}

func (s *RateioService) HandleDeleteDiscount(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	if err := sess.DeleteDiscount(c.Param("itemID")); err != nil {
		writeSessionError(c, err)
		return
	}
	s.snapshot(c, sess)
}

func (s *RateioService) HandleAddDebit(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	var req lineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "descrição é obrigatória"})
		return
	}
	if _, err := sess.AddDebit(req.Description, req.Amount); err != nil {
		writeSessionError(c, err)
		return
	}
	s.snapshot(c, sess)
}

func (s *RateioService) HandleUpdateDebit(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	var req lineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "descrição é obrigatória"})
		return
	}
	if err := sess.UpdateDebit(c.Param("itemID"), req.Description, req.Amount); err != nil {
		writeSessionError(c, err)
		return
	}
	s.snapshot(c, sess)
}

func (s *RateioService) HandleDeleteDebit(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	if err := sess.DeleteDebit(c.Param("itemID")); err != nil {
		writeSessionError(c, err)
		return
	}
	s.snapshot(c, sess)
}
