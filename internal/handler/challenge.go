package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fittrack/fittrack/internal/model"
	"github.com/fittrack/fittrack/internal/progress"
	"github.com/fittrack/fittrack/internal/repository"
	"github.com/fittrack/fittrack/internal/utils"
)

// ChallengeHandler serves challenge CRUD and the owner progress view.
type ChallengeHandler struct {
	Challenges *repository.ChallengeRepo
	Records    *repository.ExerciseRecordRepo
}

func NewChallengeHandler(ch *repository.ChallengeRepo, rec *repository.ExerciseRecordRepo) *ChallengeHandler {
	return &ChallengeHandler{Challenges: ch, Records: rec}
}

type challengeReq struct {
	Name                    string   `json:"name"`
	StartDate               string   `json:"startDate"`
	EndDate                 string   `json:"endDate"`
	TargetWeight            *float64 `json:"targetWeight"`
	TargetBodyFatPercentage *float64 `json:"targetBodyFatPercentage"`
	TargetMuscleMass        *float64 `json:"targetMuscleMass"`
	TargetExerciseDuration  *int     `json:"targetExerciseDuration"`
}

type challengeResp struct {
	ID                      uint64   `json:"id"`
	UserID                  uint64   `json:"userId"`
	Name                    string   `json:"name"`
	StartDate               string   `json:"startDate"`
	EndDate                 string   `json:"endDate"`
	TargetWeight            *float64 `json:"targetWeight"`
	TargetBodyFatPercentage *float64 `json:"targetBodyFatPercentage"`
	TargetMuscleMass        *float64 `json:"targetMuscleMass"`
	TargetExerciseDuration  *int     `json:"targetExerciseDuration"`
	CreatedAt               string   `json:"createdAt"`
	UpdatedAt               string   `json:"updatedAt"`
	Active                  bool     `json:"active"`
}

type dailyTrendResp struct {
	Date              string   `json:"date"`
	Weight            *float64 `json:"weight"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage"`
	MuscleMass        *float64 `json:"muscleMass"`
	MusclePercentage  *float64 `json:"musclePercentage"`
	ExerciseDuration  *int     `json:"exerciseDuration"`

	WeightSuccess           bool `json:"weightSuccess"`
	BodyFatSuccess          bool `json:"bodyFatSuccess"`
	MuscleMassSuccess       bool `json:"muscleMassSuccess"`
	MusclePercentageSuccess bool `json:"musclePercentageSuccess"`
	ExerciseDurationSuccess bool `json:"exerciseDurationSuccess"`
}

type trendSummaryResp struct {
	TotalDays int `json:"totalDays"`

	WeightSuccessCount           int `json:"weightSuccessCount"`
	BodyFatSuccessCount          int `json:"bodyFatSuccessCount"`
	MuscleMassSuccessCount       int `json:"muscleMassSuccessCount"`
	ExerciseDurationSuccessCount int `json:"exerciseDurationSuccessCount"`

	WeightRecordedDays           int `json:"weightRecordedDays"`
	BodyFatRecordedDays          int `json:"bodyFatRecordedDays"`
	MuscleMassRecordedDays       int `json:"muscleMassRecordedDays"`
	ExerciseDurationRecordedDays int `json:"exerciseDurationRecordedDays"`

	WeightSuccessRate           float64 `json:"weightSuccessRate"`
	BodyFatSuccessRate          float64 `json:"bodyFatSuccessRate"`
	MuscleMassSuccessRate       float64 `json:"muscleMassSuccessRate"`
	ExerciseDurationSuccessRate float64 `json:"exerciseDurationSuccessRate"`
}

type challengeDetailResp struct {
	Challenge       challengeResp    `json:"challenge"`
	DailyProgress   []dailyTrendResp `json:"dailyProgress"`
	OverallProgress trendSummaryResp `json:"overallProgress"`
}

func toChallengeResp(c *model.Challenge, today time.Time) challengeResp {
	return challengeResp{
		ID:                      c.ID,
		UserID:                  c.UserID,
		Name:                    c.Name,
		StartDate:               utils.FormatDate(c.StartDate),
		EndDate:                 utils.FormatDate(c.EndDate),
		TargetWeight:            c.TargetWeight,
		TargetBodyFatPercentage: c.TargetBodyFatPercent,
		TargetMuscleMass:        c.TargetMuscleMass,
		TargetExerciseDuration:  c.TargetExerciseDuration,
		CreatedAt:               c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:               c.UpdatedAt.UTC().Format(time.RFC3339),
		Active:                  c.ActiveOn(today),
	}
}

func challengeTargets(c *model.Challenge) progress.Targets {
	return progress.Targets{
		Weight:           c.TargetWeight,
		BodyFatPercent:   c.TargetBodyFatPercent,
		MuscleMass:       c.TargetMuscleMass,
		ExerciseDuration: c.TargetExerciseDuration,
	}
}

// recordsByDate loads the challenge period's records into the sparse
// map shape the progress package consumes.
func recordsByDate(recs []*model.ExerciseRecord) map[time.Time]progress.DayRecord {
	out := make(map[time.Time]progress.DayRecord, len(recs))
	for _, r := range recs {
		out[utils.DateOnly(r.RecordDate)] = progress.DayRecord{
			Weight:            r.Weight,
			BodyFatPercentage: r.BodyFatPercentage,
			MuscleMass:        r.MuscleMass,
			MusclePercentage:  r.MusclePercentage,
			ExerciseDuration:  r.ExerciseDuration,
		}
	}
	return out
}

// Create registers a new challenge for the caller.
func (h *ChallengeHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req challengeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid startDate"})
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid endDate"})
	}
	if end.Before(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endDate before startDate"})
	}

	ch := &model.Challenge{
		UserID:                 uid,
		Name:                   req.Name,
		StartDate:              start,
		EndDate:                end,
		TargetWeight:           req.TargetWeight,
		TargetBodyFatPercent:   req.TargetBodyFatPercentage,
		TargetMuscleMass:       req.TargetMuscleMass,
		TargetExerciseDuration: req.TargetExerciseDuration,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	created, err := h.Challenges.Create(ctx, ch)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create challenge failed"})
	}
	return c.JSON(http.StatusCreated, toChallengeResp(created, utils.Today()))
}

// List returns the caller's challenges. ?filter=active keeps those
// whose end date has not passed, ?filter=completed the rest; any other
// non-empty filter is rejected.
func (h *ChallengeHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	filter := c.QueryParam("filter")
	switch filter {
	case "", "active", "completed":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "filter must be active or completed"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	today := utils.Today()
	list, err := h.Challenges.ListByUser(ctx, uid, filter, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]challengeResp, 0, len(list))
	for _, ch := range list {
		out = append(out, toChallengeResp(ch, today))
	}
	return c.JSON(http.StatusOK, out)
}

// Detail returns the owner's progress view: the challenge plus a daily
// trend over recorded days and the period summary. Only the owner may
// see absolute measurements.
func (h *ChallengeHandler) Detail(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid challenge id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ch, err := h.Challenges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrChallengeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "challenge not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if ch.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your challenge"})
	}

	recs, err := h.Records.ListByUserAndRange(ctx, uid, ch.StartDate, ch.EndDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	today := utils.Today()
	days, sum := progress.Trend(challengeTargets(ch), recordsByDate(recs), ch.StartDate, ch.EndDate, today)

	daily := make([]dailyTrendResp, 0, len(days))
	for _, d := range days {
		daily = append(daily, dailyTrendResp{
			Date:                    utils.FormatDate(d.Date),
			Weight:                  d.Weight,
			BodyFatPercentage:       d.BodyFatPercentage,
			MuscleMass:              d.MuscleMass,
			MusclePercentage:        d.MusclePercentage,
			ExerciseDuration:        d.ExerciseDuration,
			WeightSuccess:           d.WeightSuccess,
			BodyFatSuccess:          d.BodyFatSuccess,
			MuscleMassSuccess:       d.MuscleMassSuccess,
			MusclePercentageSuccess: d.MusclePercentageSuccess,
			ExerciseDurationSuccess: d.ExerciseDurationSuccess,
		})
	}

	return c.JSON(http.StatusOK, challengeDetailResp{
		Challenge:     toChallengeResp(ch, today),
		DailyProgress: daily,
		OverallProgress: trendSummaryResp{
			TotalDays:                    sum.TotalDays,
			WeightSuccessCount:           sum.WeightSuccessCount,
			BodyFatSuccessCount:          sum.BodyFatSuccessCount,
			MuscleMassSuccessCount:       sum.MuscleMassSuccessCount,
			ExerciseDurationSuccessCount: sum.ExerciseDurationSuccessCount,
			WeightRecordedDays:           sum.WeightRecordedDays,
			BodyFatRecordedDays:          sum.BodyFatRecordedDays,
			MuscleMassRecordedDays:       sum.MuscleMassRecordedDays,
			ExerciseDurationRecordedDays: sum.ExerciseDurationRecordedDays,
			WeightSuccessRate:            sum.WeightSuccessRate,
			BodyFatSuccessRate:           sum.BodyFatSuccessRate,
			MuscleMassSuccessRate:        sum.MuscleMassSuccessRate,
			ExerciseDurationSuccessRate:  sum.ExerciseDurationSuccessRate,
		},
	})
}

// UpdateTargets replaces the four target metrics on a challenge the
// caller owns. Omitted fields clear their targets.
func (h *ChallengeHandler) UpdateTargets(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid challenge id"})
	}

	var req challengeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	updated, err := h.Challenges.UpdateTargets(ctx, id, uid, &model.Challenge{
		TargetWeight:           req.TargetWeight,
		TargetBodyFatPercent:   req.TargetBodyFatPercentage,
		TargetMuscleMass:       req.TargetMuscleMass,
		TargetExerciseDuration: req.TargetExerciseDuration,
	})
	if err != nil {
		if errors.Is(err, repository.ErrChallengeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "challenge not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toChallengeResp(updated, utils.Today()))
}
