package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/department"
)

type DashboardHandler interface {
	// GetDashboard returns the workforce summary
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// ListDepartments returns the configured department catalog
	ListDepartments(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	departments      *department.Catalog
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, departments *department.Catalog) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService, departments: departments}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListDepartments handles GET /departments
func (h *dashboardHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.departments.Names())
}
