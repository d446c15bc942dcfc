package server

import (
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rateio-app/rateio/constants"
)

// HandleExtract receives a spreadsheet image, runs the vision extraction
// and loads the classified record into the session.
func (s *RateioService) HandleExtract(c *gin.Context) {
	sess, ok := s.sessionFrom(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campo 'image' é obrigatório"})
		return
	}
	if header.Size > constants.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "imagem excede o tamanho máximo permitido"})
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if _, allowed := constants.AllowedImageTypes[mimeType]; !allowed {
		mimeType = constants.MimeTypeForExt(filepath.Ext(header.Filename))
	}
	if _, allowed := constants.AllowedImageTypes[mimeType]; !allowed {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "formato de imagem não suportado (use JPEG, PNG ou WebP)"})
		return
	}

	file, err := header.Open()
	if err != nil {
		s.logger.Warn("open upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao ler a imagem"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadBytes+1))
	if err != nil {
		s.logger.Warn("read upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao ler a imagem"})
		return
	}
	if int64(len(image)) > constants.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "imagem excede o tamanho máximo permitido"})
		return
	}

	start := time.Now()
	rec, _, err := s.extractor.ExtractSettlement(c.Request.Context(), image, mimeType)
	if err != nil {
		// a failed attempt leaves no record behind, the user resubmits
		sess.ClearRecord()
		s.logger.Warn("extraction failed",
			zap.String("session_id", sess.ID().String()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Falha ao se comunicar com a IA. Verifique a imagem ou tente novamente."})
		return
	}

	rec = s.classifier.Classify(rec)
	sess.SetRecord(rec)

	s.logger.Info("extraction ok",
		zap.String("session_id", sess.ID().String()),
		zap.Int("discounts", len(rec.Discounts)),
		zap.Int("debits", len(rec.Debits)),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)
	s.snapshot(c, sess)
}
