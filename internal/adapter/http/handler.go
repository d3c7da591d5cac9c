package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"bunnylords/internal/app/battle"
	"bunnylords/internal/app/command"
	"bunnylords/internal/app/ports"
	"bunnylords/internal/app/replay"
	"bunnylords/internal/app/session"
	"bunnylords/internal/app/status"
	"bunnylords/internal/app/tick"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	SessionUC session.UseCase
	StatusUC  status.UseCase
	TickUC    tick.UseCase
	CommandUC command.UseCase
	BattleUC  battle.UseCase
	ReplayUC  replay.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.POST("/session", h.createSession)
	api.GET("/session/:id", h.sessionStatus)
	api.POST("/session/:id/tick", h.tick)
	api.POST("/session/:id/command", h.command)
	api.POST("/session/:id/battle", h.battle)
	api.GET("/session/:id/history", h.history)
	api.GET("/replay/:report_id", h.report)

	s.GET("/ops/kpi", h.kpi)
}

type tickRequest struct {
	DT float64 `json:"dt"`
}

type commandRequest struct {
	Intent command.Intent `json:"intent"`
}

type battleRequest struct {
	StageID string `json:"stage_id"`
}

func (h Handler) createSession(c context.Context, ctx *app.RequestContext) {
	resp, err := h.SessionUC.Execute(c, session.Request{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) sessionStatus(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{SessionID: sessionID(ctx)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) tick(c context.Context, ctx *app.RequestContext) {
	var body tickRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TickUC.Execute(c, tick.Request{SessionID: sessionID(ctx), DT: body.DT})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) command(c context.Context, ctx *app.RequestContext) {
	var body commandRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CommandUC.Execute(c, command.Request{SessionID: sessionID(ctx), Intent: body.Intent})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) battle(c context.Context, ctx *app.RequestContext) {
	var body battleRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.BattleUC.Execute(c, battle.Request{SessionID: sessionID(ctx), StageID: body.StageID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.ReplayUC.Execute(c, replay.Request{SessionID: sessionID(ctx), Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) report(c context.Context, ctx *app.RequestContext) {
	reportID := strings.TrimSpace(ctx.Param("report_id"))
	resp, err := h.ReplayUC.Execute(c, replay.Request{ReportID: reportID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func sessionID(ctx *app.RequestContext) string {
	return strings.TrimSpace(ctx.Param("id"))
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, battle.ErrUnknownStage):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_stage", err.Error())
	case errors.Is(err, tick.ErrInvalidDT):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_dt", err.Error())
	case errors.Is(err, command.ErrUnknownIntent):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_intent", err.Error())
	case errors.Is(err, session.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, tick.ErrInvalidRequest),
		errors.Is(err, command.ErrInvalidRequest),
		errors.Is(err, battle.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
