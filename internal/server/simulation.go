package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rateio-app/rateio/internal/projection"
)

func (s *RateioService) HandleAddDeposit(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	sess.AddDeposit()
	s.snapshot(c, sess)
}

type depositRequest struct {
	Amount float64 `json:"valor"`
}

func (s *RateioService) HandleUpdateDeposit(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}
	if err := sess.UpdateDeposit(c.Param("depositID"), req.Amount); err != nil {
		writeSessionError(c, err)
		return
	}
	s.snapshot(c, sess)
}

func (s *RateioService) HandleDeleteDeposit(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	if err := sess.DeleteDeposit(c.Param("depositID")); err != nil {
		writeSessionError(c, err)
		return
	}
	s.snapshot(c, sess)
}

func (s *RateioService) HandleSetFeeConfig(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	var cfg projection.FeeConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}
	if cfg.Percent < 0 || cfg.Percent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "percentual deve estar entre 0 e 100"})
		return
	}
	sess.SetFeeConfig(cfg)
	s.snapshot(c, sess)
}

type selectionRequest struct {
	Selected bool `json:"selecionado"`
}

func (s *RateioService) HandleSetItemSelection(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}
	if err := sess.SetItemSelection(c.Param("itemID"), req.Selected); err != nil {
		writeSessionError(c, err)
		return
	}
	s.snapshot(c, sess)
}

type descriptionRequest struct {
	Description string `json:"descricao" binding:"required"`
}

func (s *RateioService) HandleSetItemDescription(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	var req descriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "descrição é obrigatória"})
		return
	}
	if err := sess.SetItemDescription(c.Param("itemID"), req.Description); err != nil {
		writeSessionError(c, err)
		return
	}
	s.snapshot(c, sess)
}

type paidRequest struct {
	Paid float64 `json:"pago"`
}

// HandleOverridePaid pins a manual paid amount on one item. The override
// lasts until the next recompute.
func (s *RateioService) HandleOverridePaid(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	var req paidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}
	if err := sess.OverridePaid(c.Param("itemID"), req.Paid); err != nil {
		writeSessionError(c, err)
		return
	}
	s.snapshot(c, sess)
}

type feeShareRequest struct {
	ItemIDs []string `json:"honorarios_selecionados"`
	Lawyers int      `json:"numero_advogados"`
}

func (s *RateioService) HandleSetFeeShare(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	var req feeShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}
	sess.SetFeeShare(req.ItemIDs, req.Lawyers)
	s.snapshot(c, sess)
}

type viewRequest struct {
	HideZeroPaid bool `json:"ocultar_nao_pagos"`
}

func (s *RateioService) HandleSetView(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}
	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}
	sess.SetHideZeroPaid(req.HideZeroPaid)
	s.snapshot(c, sess)
}
