package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleExport streams the simulation as an XLSX download.
func (s *RateioService) HandleExport(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}

	blob, err := s.exporter.BuildSimulationXLSX(sess.Snapshot())
	if err != nil {
		s.logger.Warn("export failed",
			zap.String("session_id", sess.ID().String()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao gerar a planilha"})
		return
	}

	filename := fmt.Sprintf("rateio-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", blob)
}
