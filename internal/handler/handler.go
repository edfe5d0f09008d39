// Package handler exposes the calculation engine over HTTP.
package handler

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"pension-engine/internal/engine"
	"pension-engine/internal/model"
)

const (
	calculationPath = "/calculation-requests"
	healthPath      = "/health"
	metricsPath     = "/metrics"

	contentTypeJSON = "application/json"
)

type Handler struct {
	engine  *engine.Engine
	logger  *zap.Logger
	metrics fasthttp.RequestHandler
}

func New(e *engine.Engine, logger *zap.Logger) *Handler {
	return &Handler{
		engine:  e,
		logger:  logger,
		metrics: fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
	}
}

// Handle is the fasthttp entry point.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while handling request",
				zap.ByteString("path", ctx.Path()),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			writeError(ctx, fasthttp.StatusInternalServerError, fmt.Sprintf("Internal server error: %v", r))
		}
	}()

	switch string(ctx.Path()) {
	case calculationPath:
		if !ctx.IsPost() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.calculate(ctx)
	case healthPath:
		ctx.SetContentType(contentTypeJSON)
		ctx.SetBodyString(`{"status":"UP"}`)
	case metricsPath:
		h.metrics(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) calculate(ctx *fasthttp.RequestCtx) {
	body := ctx.PostBody()
	if len(body) == 0 {
		h.reject(ctx, "Request body is required")
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.reject(ctx, "Invalid request body: "+err.Error())
		return
	}
	if req.CalculationInstructions == nil {
		h.reject(ctx, "Invalid request structure")
		return
	}
	if len(req.CalculationInstructions.Mutations) == 0 {
		h.reject(ctx, "Mutations list cannot be empty")
		return
	}

	resp, err := h.engine.Process(&req)
	if errors.Is(err, engine.ErrNoMutations) {
		h.reject(ctx, "Mutations list cannot be empty")
		return
	}
	if err != nil {
		h.logger.Error("calculation failed", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}

	out, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}
	ctx.SetContentType(contentTypeJSON)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(out)
}

func (h *Handler) reject(ctx *fasthttp.RequestCtx, message string) {
	h.logger.Warn("rejected calculation request",
		zap.String("reason", message),
		zap.String("remote_addr", ctx.RemoteAddr().String()),
	)
	writeError(ctx, fasthttp.StatusBadRequest, message)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType(contentTypeJSON)
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
