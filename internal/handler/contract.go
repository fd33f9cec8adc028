package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vilkasoft/carehome-backend/internal/model"
	"github.com/vilkasoft/carehome-backend/internal/repository"
	"github.com/vilkasoft/carehome-backend/internal/service"
)

// ContractHandler exposes the contract lifecycle and the activation
// workflow.
type ContractHandler struct {
	Contracts *repository.ContractRepo
	Lifecycle *service.LifecycleService
	Workflow  *service.ActivationWorkflow
	Registry  service.ResidentRegistry
}

// NewContractHandler constructs a ContractHandler.
func NewContractHandler(contracts *repository.ContractRepo, lifecycle *service.LifecycleService, workflow *service.ActivationWorkflow, registry service.ResidentRegistry) *ContractHandler {
	if contracts == nil || lifecycle == nil || workflow == nil || registry == nil {
		panic("nil dependency passed to NewContractHandler")
	}
	return &ContractHandler{Contracts: contracts, Lifecycle: lifecycle, Workflow: workflow, Registry: registry}
}

// CreateDraft handles POST /v1/contracts.
func (h *ContractHandler) CreateDraft(c echo.Context) error {
	var draft repository.ContractDraft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	contract, err := h.Contracts.CreateDraft(c.Request().Context(), draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, contract)
}

// List handles GET /v1/contracts.
func (h *ContractHandler) List(c echo.Context) error {
	contracts, err := h.Contracts.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, contracts)
}

// Get handles GET /v1/contracts/:id.
func (h *ContractHandler) Get(c echo.Context) error {
	contract, err := h.Contracts.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, contract)
}

// Activate handles POST /v1/contracts/:id/activate.  It runs the
// activation workflow; a partial success still returns 200 with
// partial=true and the list of pending follow-up steps.
func (h *ContractHandler) Activate(c echo.Context) error {
	var body struct {
		Lead model.Lead `json:"lead"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	result, err := h.Workflow.Activate(c.Request().Context(), c.Param("id"), body.Lead)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Cancel handles POST /v1/contracts/:id/cancel.
func (h *ContractHandler) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	contract, err := h.Contracts.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	if err := h.Lifecycle.Cancel(&contract, time.Now()); err != nil {
		return writeError(c, err)
	}
	if err := h.Contracts.Update(ctx, contract); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, contract)
}

// Terminate handles POST /v1/contracts/:id/terminate.
func (h *ContractHandler) Terminate(c echo.Context) error {
	var body struct {
		TerminationDate *time.Time `json:"termination_date"`
		Reason          string     `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	contract, err := h.Contracts.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	if err := h.Lifecycle.Terminate(&contract, body.TerminationDate, body.Reason, time.Now()); err != nil {
		return writeError(c, err)
	}
	if err := h.Contracts.Update(ctx, contract); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, contract)
}

// GetResident handles GET /v1/residents/:id.
func (h *ContractHandler) GetResident(c echo.Context) error {
	resident, err := h.Registry.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resident)
}
