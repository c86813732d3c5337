package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fittrack/fittrack/internal/model"
	"github.com/fittrack/fittrack/internal/progress"
	"github.com/fittrack/fittrack/internal/queue"
	"github.com/fittrack/fittrack/internal/repository"
	queuepub "github.com/fittrack/fittrack/internal/service"
	"github.com/fittrack/fittrack/internal/utils"
)

// ShareHandler serves the challenge sharing endpoints: recipient
// search, the share lifecycle, and the accepted shared view.
type ShareHandler struct {
	Shares     *repository.ChallengeShareRepo
	Challenges *repository.ChallengeRepo
	Users      *repository.UserRepo
	Records    *repository.ExerciseRecordRepo
	Routines   *repository.RoutineRepo
	Checks     *repository.RoutineCheckRepo
}

func NewShareHandler(
	shares *repository.ChallengeShareRepo,
	challenges *repository.ChallengeRepo,
	users *repository.UserRepo,
	records *repository.ExerciseRecordRepo,
	routines *repository.RoutineRepo,
	checks *repository.RoutineCheckRepo,
) *ShareHandler {
	return &ShareHandler{
		Shares:     shares,
		Challenges: challenges,
		Users:      users,
		Records:    records,
		Routines:   routines,
		Checks:     checks,
	}
}

type createShareReq struct {
	ToUserID    uint64 `json:"toUserId"`
	ChallengeID uint64 `json:"challengeId"`
}

type shareResp struct {
	ID            uint64 `json:"id"`
	FromUserID    uint64 `json:"fromUserId"`
	ToUserID      uint64 `json:"toUserId"`
	ChallengeID   uint64 `json:"challengeId"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
	FromUserName  string `json:"fromUserName"`
	ChallengeName string `json:"challengeName"`
}

type searchUserResp struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type dailyComparisonResp struct {
	Date                 string   `json:"date"`
	WeightDiff           *float64 `json:"weightDiff"`
	BodyFatDiff          *float64 `json:"bodyFatDiff"`
	MuscleMassDiff       *float64 `json:"muscleMassDiff"`
	MusclePercentageDiff *float64 `json:"musclePercentageDiff"`
	ExerciseDurationDiff *int     `json:"exerciseDurationDiff"`

	WeightSuccess           bool `json:"weightSuccess"`
	BodyFatSuccess          bool `json:"bodyFatSuccess"`
	MuscleMassSuccess       bool `json:"muscleMassSuccess"`
	MusclePercentageSuccess bool `json:"musclePercentageSuccess"`
	ExerciseDurationSuccess bool `json:"exerciseDurationSuccess"`

	MorningRoutineTotal   int `json:"morningRoutineTotal"`
	MorningRoutineChecked int `json:"morningRoutineChecked"`
	EveningRoutineTotal   int `json:"eveningRoutineTotal"`
	EveningRoutineChecked int `json:"eveningRoutineChecked"`
}

type comparisonSummaryResp struct {
	TotalDays int `json:"totalDays"`

	WeightSuccessCount           int `json:"weightSuccessCount"`
	BodyFatSuccessCount          int `json:"bodyFatSuccessCount"`
	MuscleMassSuccessCount       int `json:"muscleMassSuccessCount"`
	MusclePercentageSuccessCount int `json:"musclePercentageSuccessCount"`
	ExerciseDurationSuccessCount int `json:"exerciseDurationSuccessCount"`

	WeightRecordedDays           int `json:"weightRecordedDays"`
	BodyFatRecordedDays          int `json:"bodyFatRecordedDays"`
	MuscleMassRecordedDays       int `json:"muscleMassRecordedDays"`
	MusclePercentageRecordedDays int `json:"musclePercentageRecordedDays"`
	ExerciseDurationRecordedDays int `json:"exerciseDurationRecordedDays"`

	WeightSuccessRate           float64 `json:"weightSuccessRate"`
	BodyFatSuccessRate          float64 `json:"bodyFatSuccessRate"`
	MuscleMassSuccessRate       float64 `json:"muscleMassSuccessRate"`
	MusclePercentageSuccessRate float64 `json:"musclePercentageSuccessRate"`
	ExerciseDurationSuccessRate float64 `json:"exerciseDurationSuccessRate"`

	MorningRoutineSuccessDays  int     `json:"morningRoutineSuccessDays"`
	EveningRoutineSuccessDays  int     `json:"eveningRoutineSuccessDays"`
	MorningRoutineRecordedDays int     `json:"morningRoutineRecordedDays"`
	EveningRoutineRecordedDays int     `json:"eveningRoutineRecordedDays"`
	MorningRoutineSuccessRate  float64 `json:"morningRoutineSuccessRate"`
	EveningRoutineSuccessRate  float64 `json:"eveningRoutineSuccessRate"`
}

type sharedDetailResp struct {
	Share           shareResp             `json:"share"`
	Challenge       challengeResp         `json:"challenge"`
	DailyProgress   []dailyComparisonResp `json:"dailyProgress"`
	OverallProgress comparisonSummaryResp `json:"overallProgress"`
}

// SearchUsers finds potential recipients by id or username fragment,
// never including the caller.
func (h *ShareHandler) SearchUsers(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.Search(ctx, c.QueryParam("query"), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]searchUserResp, 0, len(users))
	for _, u := range users {
		out = append(out, searchUserResp{ID: u.ID, Username: u.Username, Name: u.DisplayName()})
	}
	return c.JSON(http.StatusOK, out)
}

// Create sends a share request. Only the challenge owner may share,
// and at most one request per (challenge, recipient) can be PENDING.
func (h *ShareHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createShareReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ToUserID == 0 || req.ChallengeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "toUserId and challengeId are required"})
	}
	if req.ToUserID == uid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot share with yourself"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ch, err := h.Challenges.GetByID(ctx, req.ChallengeID)
	if err != nil {
		if errors.Is(err, repository.ErrChallengeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "challenge not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if ch.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the owner can share a challenge"})
	}
	if _, err := h.Users.GetByID(ctx, req.ToUserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipient not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	share, err := h.Shares.Create(ctx, uid, req.ToUserID, req.ChallengeID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a pending share already exists for this user"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create share failed"})
	}

	h.publishEvent(c.Request().Context(), queue.ShareRequested, share, ch)

	return c.JSON(http.StatusCreated, h.toShareResp(ctx, share))
}

// Received lists pending requests addressed to the caller.
func (h *ShareHandler) Received(c echo.Context) error {
	return h.listShares(c, func(ctx context.Context, uid uint64) ([]*model.ChallengeShare, error) {
		return h.Shares.ListReceived(ctx, uid)
	})
}

// Sent lists every request the caller has sent.
func (h *ShareHandler) Sent(c echo.Context) error {
	return h.listShares(c, func(ctx context.Context, uid uint64) ([]*model.ChallengeShare, error) {
		return h.Shares.ListSent(ctx, uid)
	})
}

// Accepted lists the shares the caller has accepted.
func (h *ShareHandler) Accepted(c echo.Context) error {
	return h.listShares(c, func(ctx context.Context, uid uint64) ([]*model.ChallengeShare, error) {
		return h.Shares.ListAccepted(ctx, uid)
	})
}

func (h *ShareHandler) listShares(c echo.Context, fetch func(context.Context, uint64) ([]*model.ChallengeShare, error)) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	shares, err := fetch(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]shareResp, 0, len(shares))
	for _, s := range shares {
		out = append(out, h.toShareResp(ctx, s))
	}
	return c.JSON(http.StatusOK, out)
}

// SetStatus resolves a pending request. Only the recipient may act,
// the only legal transitions are to ACCEPTED or REJECTED, and a share
// that already left PENDING is immutable.
func (h *ShareHandler) SetStatus(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid share id"})
	}
	status := c.QueryParam("status")
	if status != model.ShareStatusAccepted && status != model.ShareStatusRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be ACCEPTED or REJECTED"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	share, err := h.Shares.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShareNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "share not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if share.ToUserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the recipient can respond"})
	}
	if share.Status != model.ShareStatusPending {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "share is no longer pending"})
	}

	updated, err := h.Shares.SetStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Lost a race with another transition.
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "share is no longer pending"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	action := queue.ShareAccepted
	if status == model.ShareStatusRejected {
		action = queue.ShareRejected
	}
	ch, chErr := h.Challenges.GetByID(ctx, updated.ChallengeID)
	if chErr == nil {
		h.publishEvent(c.Request().Context(), action, updated, ch)
	}

	return c.JSON(http.StatusOK, h.toShareResp(ctx, updated))
}

// SharedDetail returns the comparison view of an accepted share. Only
// the recipient of an ACCEPTED share may look, and the view never
// exposes the owner's absolute measurements.
func (h *ShareHandler) SharedDetail(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "shareId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid share id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	share, err := h.Shares.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShareNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "share not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if share.ToUserID != uid || share.Status != model.ShareStatusAccepted {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "share is not accessible"})
	}

	ch, err := h.Challenges.GetByID(ctx, share.ChallengeID)
	if err != nil {
		if errors.Is(err, repository.ErrChallengeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "challenge not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	owner := share.FromUserID
	recs, err := h.Records.ListByUserAndRange(ctx, owner, ch.StartDate, ch.EndDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	coverage, err := h.routineCoverage(ctx, owner, ch.StartDate, ch.EndDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	days, sum := progress.Compare(challengeTargets(ch), recordsByDate(recs), ch.StartDate, ch.EndDate, coverage)

	daily := make([]dailyComparisonResp, 0, len(days))
	for _, d := range days {
		daily = append(daily, dailyComparisonResp{
			Date:                    utils.FormatDate(d.Date),
			WeightDiff:              d.WeightDiff,
			BodyFatDiff:             d.BodyFatDiff,
			MuscleMassDiff:          d.MuscleMassDiff,
			MusclePercentageDiff:    d.MusclePercentageDiff,
			ExerciseDurationDiff:    d.ExerciseDurationDiff,
			WeightSuccess:           d.WeightSuccess,
			BodyFatSuccess:          d.BodyFatSuccess,
			MuscleMassSuccess:       d.MuscleMassSuccess,
			MusclePercentageSuccess: d.MusclePercentageSuccess,
			ExerciseDurationSuccess: d.ExerciseDurationSuccess,
			MorningRoutineTotal:     d.MorningRoutineTotal,
			MorningRoutineChecked:   d.MorningRoutineChecked,
			EveningRoutineTotal:     d.EveningRoutineTotal,
			EveningRoutineChecked:   d.EveningRoutineChecked,
		})
	}

	return c.JSON(http.StatusOK, sharedDetailResp{
		Share:         h.toShareResp(ctx, share),
		Challenge:     toChallengeResp(ch, utils.Today()),
		DailyProgress: daily,
		OverallProgress: comparisonSummaryResp{
			TotalDays:                    sum.TotalDays,
			WeightSuccessCount:           sum.WeightSuccessCount,
			BodyFatSuccessCount:          sum.BodyFatSuccessCount,
			MuscleMassSuccessCount:       sum.MuscleMassSuccessCount,
			MusclePercentageSuccessCount: sum.MusclePercentageSuccessCount,
			ExerciseDurationSuccessCount: sum.ExerciseDurationSuccessCount,
			WeightRecordedDays:           sum.WeightRecordedDays,
			BodyFatRecordedDays:          sum.BodyFatRecordedDays,
			MuscleMassRecordedDays:       sum.MuscleMassRecordedDays,
			MusclePercentageRecordedDays: sum.MusclePercentageRecordedDays,
			ExerciseDurationRecordedDays: sum.ExerciseDurationRecordedDays,
			WeightSuccessRate:            sum.WeightSuccessRate,
			BodyFatSuccessRate:           sum.BodyFatSuccessRate,
			MuscleMassSuccessRate:        sum.MuscleMassSuccessRate,
			MusclePercentageSuccessRate:  sum.MusclePercentageSuccessRate,
			ExerciseDurationSuccessRate:  sum.ExerciseDurationSuccessRate,
			MorningRoutineSuccessDays:    sum.MorningRoutineSuccessDays,
			EveningRoutineSuccessDays:    sum.EveningRoutineSuccessDays,
			MorningRoutineRecordedDays:   sum.MorningRoutineRecordedDays,
			EveningRoutineRecordedDays:   sum.EveningRoutineRecordedDays,
			MorningRoutineSuccessRate:    sum.MorningRoutineSuccessRate,
			EveningRoutineSuccessRate:    sum.EveningRoutineSuccessRate,
		},
	})
}

// routineCoverage assembles the owner's routine totals and per-day
// check counts for the comparison view.
func (h *ShareHandler) routineCoverage(ctx context.Context, ownerID uint64, start, end time.Time) (*progress.RoutineCoverage, error) {
	routines, err := h.Routines.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	cov := &progress.RoutineCoverage{
		MorningChecked: map[time.Time]int{},
		EveningChecked: map[time.Time]int{},
	}
	for _, rt := range routines {
		switch rt.RoutineType {
		case model.RoutineMorning:
			cov.MorningTotal = len(rt.Items)
		case model.RoutineEvening:
			cov.EveningTotal = len(rt.Items)
		}
	}

	checks, err := h.Checks.ListByUserAndRange(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	for _, chk := range checks {
		date := utils.DateOnly(chk.CheckDate)
		switch chk.RoutineType {
		case model.RoutineMorning:
			cov.MorningChecked[date] = len(chk.CheckedItems)
		case model.RoutineEvening:
			cov.EveningChecked[date] = len(chk.CheckedItems)
		}
	}
	return cov, nil
}

// toShareResp resolves the display fields of a share row. Lookup
// failures degrade to empty names rather than failing the request.
func (h *ShareHandler) toShareResp(ctx context.Context, s *model.ChallengeShare) shareResp {
	resp := shareResp{
		ID:          s.ID,
		FromUserID:  s.FromUserID,
		ToUserID:    s.ToUserID,
		ChallengeID: s.ChallengeID,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if u, err := h.Users.GetByID(ctx, s.FromUserID); err == nil {
		resp.FromUserName = u.DisplayName()
	}
	if ch, err := h.Challenges.GetByID(ctx, s.ChallengeID); err == nil {
		resp.ChallengeName = ch.Name
	}
	return resp
}

// publishEvent pushes a share lifecycle event to the broker. Failures
// are logged inside the publisher and never fail the HTTP request.
func (h *ShareHandler) publishEvent(ctx context.Context, action string, s *model.ChallengeShare, ch *model.Challenge) {
	fromName := ""
	if u, err := h.Users.GetByID(ctx, s.FromUserID); err == nil {
		fromName = u.DisplayName()
	}
	_ = queuepub.PublishShareEvent(ctx, queue.ShareEvent{
		Action:        action,
		ShareID:       s.ID,
		ChallengeID:   s.ChallengeID,
		ChallengeName: ch.Name,
		FromUserID:    s.FromUserID,
		FromUserName:  fromName,
		ToUserID:      s.ToUserID,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}
