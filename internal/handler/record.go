package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fittrack/fittrack/internal/model"
	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/internal/utils"
)

// RecordHandler serves the daily exercise record endpoints.
type RecordHandler struct {
	Records *repository.ExerciseRecordRepo
}

func NewRecordHandler(r *repository.ExerciseRecordRepo) *RecordHandler {
	return &RecordHandler{Records: r}
}

type recordReq struct {
	RecordDate        string   `json:"recordDate"`
	Weight            *float64 `json:"weight"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage"`
	MuscleMass        *float64 `json:"muscleMass"`
	MusclePercentage  *float64 `json:"musclePercentage"`
	ExerciseType      *string  `json:"exerciseType"`
	ExerciseDuration  *int     `json:"exerciseDuration"`
	ImageURL          *string  `json:"imageUrl"`
}

type recordResp struct {
	ID                uint64   `json:"id"`
	UserID            uint64   `json:"userId"`
	RecordDate        string   `json:"recordDate"`
	Weight            *float64 `json:"weight"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage"`
	MuscleMass        *float64 `json:"muscleMass"`
	MusclePercentage  *float64 `json:"musclePercentage"`
	ExerciseType      *string  `json:"exerciseType"`
	ExerciseDuration  *int     `json:"exerciseDuration"`
	ImageURL          *string  `json:"imageUrl"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

func toRecordResp(rec *model.ExerciseRecord) recordResp {
	return recordResp{
		ID:                rec.ID,
		UserID:            rec.UserID,
		RecordDate:        utils.FormatDate(rec.RecordDate),
		Weight:            rec.Weight,
		BodyFatPercentage: rec.BodyFatPercentage,
		MuscleMass:        rec.MuscleMass,
		MusclePercentage:  rec.MusclePercentage,
		ExerciseType:      rec.ExerciseType,
		ExerciseDuration:  rec.ExerciseDuration,
		ImageURL:          rec.ImageURL,
		CreatedAt:         rec.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Save upserts the record for the given date. One row per (user, day);
// saving again replaces every measured field, including clearing the
// ones omitted from the body.
func (h *RecordHandler) Save(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req recordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RecordDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "recordDate is required"})
	}
	date, err := utils.ParseDate(req.RecordDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recordDate, want YYYY-MM-DD"})
	}

	rec := &model.ExerciseRecord{
		UserID:            uid,
		RecordDate:        date,
		Weight:            req.Weight,
		BodyFatPercentage: req.BodyFatPercentage,
		MuscleMass:        req.MuscleMass,
		MusclePercentage:  req.MusclePercentage,
		ExerciseType:      req.ExerciseType,
		ExerciseDuration:  req.ExerciseDuration,
		ImageURL:          req.ImageURL,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	saved, err := h.Records.Upsert(ctx, rec)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save record failed"})
	}
	return c.JSON(http.StatusOK, toRecordResp(saved))
}

// GetByDate returns the record for one day, or 204 when none exists.
// Absence is a normal outcome for the calendar UI, not an error.
func (h *RecordHandler) GetByDate(c echo.Context) error {
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

	rec, err := h.Records.GetByUserAndDate(ctx, uid, date)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toRecordResp(rec))
}

// List returns all of the caller's records, newest first.
func (h *RecordHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	recs, err := h.Records.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]recordResp, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toRecordResp(rec))
	}
	return c.JSON(http.StatusOK, out)
}

// ListRange returns records between ?startDate and ?endDate inclusive,
// oldest first.
func (h *RecordHandler) ListRange(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	start, err := utils.ParseDate(c.QueryParam("startDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid startDate"})
	}
	end, err := utils.ParseDate(c.QueryParam("endDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid endDate"})
	}
	if end.Before(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endDate before startDate"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	recs, err := h.Records.ListByUserAndRange(ctx, uid, start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]recordResp, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toRecordResp(rec))
	}
	return c.JSON(http.StatusOK, out)
}
