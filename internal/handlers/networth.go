package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/finance-planner/backend/internal/models"
	"example.com/finance-planner/backend/internal/planner"
	"example.com/finance-planner/backend/internal/store"
)

type NetWorthHandler struct {
	Store *store.Store
}

// NewNetWorthHandler создает обработчик активов, обязательств и истории
// чистого капитала.
func NewNetWorthHandler(s *store.Store) *NetWorthHandler {
	return &NetWorthHandler{Store: s}
}

type AssetRequest struct {
	Name  string        `json:"name" validate:"required,max=200"`
	Type  string        `json:"type" validate:"max=100"`
	Value models.Amount `json:"value"`
}

type LiabilityRequest struct {
	Name    string        `json:"name" validate:"required,max=200"`
	Balance models.Amount `json:"balance"`
}

type NetWorthResponse struct {
	TotalAssets      float64                   `json:"total_assets"`
	TotalLiabilities float64                   `json:"total_liabilities"`
	NetWorth         float64                   `json:"net_worth"`
	Assets           []models.Asset            `json:"assets"`
	Liabilities      []models.Liability        `json:"liabilities"`
	History          []models.NetWorthSnapshot `json:"history"`
}

// Overview возвращает активы, обязательства и текущий чистый капитал.
func (h *NetWorthHandler) Overview(c echo.Context) error {
	state := h.Store.State()

	return c.JSON(http.StatusOK, NetWorthResponse{
		TotalAssets:      planner.TotalAssets(state.Assets),
		TotalLiabilities: planner.TotalLiabilities(state.Liabilities),
		NetWorth:         planner.NetWorth(state.Assets, state.Liabilities),
		Assets:           state.Assets,
		Liabilities:      state.Liabilities,
		History:          state.NetWorthHistory,
	})
}

// History возвращает временной ряд снимков чистого капитала.
func (h *NetWorthHandler) History(c echo.Context) error {
	state := h.Store.State()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"history": state.NetWorthHistory,
	})
}

// Snapshot — ручной триггер снимка чистого капитала.
func (h *NetWorthHandler) Snapshot(c echo.Context) error {
	snapshot, err := h.Store.RecordNetWorth(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, snapshot)
}

// CreateAsset добавляет актив.
func (h *NetWorthHandler) CreateAsset(c echo.Context) error {
	asset, ok, err := h.bindAsset(c)
	if !ok {
		return err
	}

	created, err := h.Store.AddAsset(c.Request().Context(), asset)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateAsset изменяет актив.
func (h *NetWorthHandler) UpdateAsset(c echo.Context) error {
	id, err := uuid.Parse(c.Param("assetId"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}

	asset, ok, bindErr := h.bindAsset(c)
	if !ok {
		return bindErr
	}

	updated, err := h.Store.UpdateAsset(c.Request().Context(), id, asset)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "asset not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteAsset удаляет актив.
func (h *NetWorthHandler) DeleteAsset(c echo.Context) error {
	id, err := uuid.Parse(c.Param("assetId"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}

	if err := h.Store.DeleteAsset(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "asset not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateLiability добавляет обязательство.
func (h *NetWorthHandler) CreateLiability(c echo.Context) error {
	liability, ok, err := h.bindLiability(c)
	if !ok {
		return err
	}

	created, err := h.Store.AddLiability(c.Request().Context(), liability)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateLiability изменяет обязательство.
func (h *NetWorthHandler) UpdateLiability(c echo.Context) error {
	id, err := uuid.Parse(c.Param("liabilityId"))
	if err != nil {
		return badRequest(c, "invalid liability id")
	}

	liability, ok, bindErr := h.bindLiability(c)
	if !ok {
		return bindErr
	}

	updated, err := h.Store.UpdateLiability(c.Request().Context(), id, liability)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "liability not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteLiability удаляет обязательство.
func (h *NetWorthHandler) DeleteLiability(c echo.Context) error {
	id, err := uuid.Parse(c.Param("liabilityId"))
	if err != nil {
		return badRequest(c, "invalid liability id")
	}

	if err := h.Store.DeleteLiability(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "liability not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *NetWorthHandler) bindAsset(c echo.Context) (models.Asset, bool, error) {
	var req AssetRequest
	if err := c.Bind(&req); err != nil {
		return models.Asset{}, false, badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.Asset{}, false, badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Asset{}, false, badRequest(c, "name is required")
	}

	assetType := models.AssetType(strings.TrimSpace(req.Type))
	if assetType == "" {
		assetType = models.AssetTypeOther
	}

	return models.Asset{
		Name:  name,
		Type:  assetType,
		Value: req.Value,
	}, true, nil
}

func (h *NetWorthHandler) bindLiability(c echo.Context) (models.Liability, bool, error) {
	var req LiabilityRequest
	if err := c.Bind(&req); err != nil {
		return models.Liability{}, false, badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.Liability{}, false, badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Liability{}, false, badRequest(c, "name is required")
	}

	return models.Liability{
		Name:    name,
		Balance: req.Balance,
	}, true, nil
}
