package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/pkg/session"
	"github.com/frontandrew/taxi/internal/usecase/dashboard"
)

// DashboardService считает данные главной страницы
type DashboardService interface {
	Index(ctx context.Context, sess session.Session) (*dashboard.Summary, error)
}

// DashboardHandler обрабатывает главную страницу
type DashboardHandler struct {
	dashboardService DashboardService
	logger           logger.Logger
}

// NewDashboardHandler создает новый handler
func NewDashboardHandler(dashboardService DashboardService, logger logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Index возвращает счетчики сущностей и посещений сессии
// GET /api/v1/dashboard
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.dashboardService.Index(r.Context(), sess)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to load dashboard")
		return
	}

	respondData(w, http.StatusOK, summary)
}
