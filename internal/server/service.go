package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rateio-app/rateio/internal/auth"
	"github.com/rateio-app/rateio/internal/classify"
	"github.com/rateio-app/rateio/internal/export"
	"github.com/rateio-app/rateio/internal/llm"
	"github.com/rateio-app/rateio/internal/session"
)

// RateioService holds the collaborators behind the HTTP handlers.
type RateioService struct {
	store      *session.Store
	extractor  llm.SettlementExtractor
	classifier *classify.Classifier
	authSvc    auth.Service
	exporter   *export.Service
	logger     *zap.Logger
}

func NewRateioService(
	store *session.Store,
	extractor llm.SettlementExtractor,
	classifier *classify.Classifier,
	authSvc auth.Service,
	exporter *export.Service,
	logger *zap.Logger,
) *RateioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateioService{
		store:      store,
		extractor:  extractor,
		classifier: classifier,
		authSvc:    authSvc,
		exporter:   exporter,
		logger:     logger,
	}
}

// sessionFrom resolves the :id path parameter into a live session, writing
// the error response itself when the id is bad or expired.
func (s *RateioService) sessionFrom(c *gin.Context) (*session.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de sessão inválido"})
		return nil, false
	}
	sess, ok := s.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "sessão não encontrada"})
		return nil, false
	}
	return sess, true
}

func (s *RateioService) snapshot(c *gin.Context, sess *session.Session) {
	c.JSON(http.StatusOK, sess.Snapshot())
}
