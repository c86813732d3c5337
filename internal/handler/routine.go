package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fittrack/fittrack/internal/model"
	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/internal/utils"
)

// RoutineHandler serves the morning/evening checklist endpoints and
// their per-day check-off records.
type RoutineHandler struct {
	Routines *repository.RoutineRepo
	Checks   *repository.RoutineCheckRepo
}

func NewRoutineHandler(r *repository.RoutineRepo, c *repository.RoutineCheckRepo) *RoutineHandler {
	return &RoutineHandler{Routines: r, Checks: c}
}

type routineReq struct {
	RoutineType  string   `json:"routineType"`
	RoutineItems []string `json:"routineItems"`
}

type routineResp struct {
	ID           uint64   `json:"id"`
	UserID       uint64   `json:"userId"`
	RoutineType  string   `json:"routineType"`
	RoutineItems []string `json:"routineItems"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

type checkReq struct {
	CheckDate    string   `json:"checkDate"`
	RoutineType  string   `json:"routineType"`
	CheckedItems []string `json:"checkedItems"`
}

type checkResp struct {
	ID           uint64   `json:"id"`
	UserID       uint64   `json:"userId"`
	CheckDate    string   `json:"checkDate"`
	RoutineType  string   `json:"routineType"`
	CheckedItems []string `json:"checkedItems"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

func toRoutineResp(rt *model.Routine) routineResp {
	items := rt.Items
	if items == nil {
		items = []string{}
	}
	return routineResp{
		ID:           rt.ID,
		UserID:       rt.UserID,
		RoutineType:  rt.RoutineType,
		RoutineItems: items,
		CreatedAt:    rt.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    rt.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toCheckResp(c *model.RoutineCheck) checkResp {
	items := c.CheckedItems
	if items == nil {
		items = []string{}
	}
	return checkResp{
		ID:           c.ID,
		UserID:       c.UserID,
		CheckDate:    utils.FormatDate(c.CheckDate),
		RoutineType:  c.RoutineType,
		CheckedItems: items,
		CreatedAt:    c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// List returns the caller's routines, at most one per slot.
func (h *RoutineHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	routines, err := h.Routines.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]routineResp, 0, len(routines))
	for _, rt := range routines {
		out = append(out, toRoutineResp(rt))
	}
	return c.JSON(http.StatusOK, out)
}

// GetByType returns one routine slot, 404 when the user has not set it up.
func (h *RoutineHandler) GetByType(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	rtype := strings.ToUpper(c.Param("routineType"))
	if !model.ValidRoutineType(rtype) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "routineType must be MORNING or EVENING"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rt, err := h.Routines.GetByUserAndType(ctx, uid, rtype)
	if err != nil {
		if errors.Is(err, repository.ErrRoutineNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "routine not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toRoutineResp(rt))
}

// Save replaces the checklist for one slot. Saving again overwrites
// the previous item list.
func (h *RoutineHandler) Save(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req routineReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rtype := strings.ToUpper(req.RoutineType)
	if !model.ValidRoutineType(rtype) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "routineType must be MORNING or EVENING"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	saved, err := h.Routines.Upsert(ctx, &model.Routine{
		UserID:      uid,
		RoutineType: rtype,
		Items:       req.RoutineItems,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save routine failed"})
	}
	return c.JSON(http.StatusOK, toRoutineResp(saved))
}

// ChecksByDate returns the check-offs of one day, zero to two entries.
func (h *RoutineHandler) ChecksByDate(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	date, err := utils.ParseDate(c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	checks, err := h.Checks.ListByUserAndDate(ctx, uid, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]checkResp, 0, len(checks))
	for _, chk := range checks {
		out = append(out, toCheckResp(chk))
	}
	return c.JSON(http.StatusOK, out)
}

// SaveCheck replaces the checked item set for (date, slot).
func (h *RoutineHandler) SaveCheck(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rtype := strings.ToUpper(req.RoutineType)
	if !model.ValidRoutineType(rtype) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "routineType must be MORNING or EVENING"})
	}
	date, err := utils.ParseDate(req.CheckDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid checkDate, want YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	saved, err := h.Checks.Upsert(ctx, &model.RoutineCheck{
		UserID:       uid,
		CheckDate:    date,
		RoutineType:  rtype,
		CheckedItems: req.CheckedItems,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save check failed"})
	}
	return c.JSON(http.StatusOK, toCheckResp(saved))
}
