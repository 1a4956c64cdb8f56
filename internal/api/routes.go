package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ikunnect/agentdesk/domain/entities"
	"github.com/ikunnect/agentdesk/internal/auth"
	"github.com/ikunnect/agentdesk/internal/websocket"
	"github.com/ikunnect/agentdesk/usecase"
)

// Services bundles the usecases the API exposes.
type Services struct {
	Translator    *usecase.TranslationService
	Drafts        *usecase.DraftService
	Timers        *usecase.ResponseTimeTracker
	Status        *usecase.AgentStatusTracker
	Notifications *usecase.NotificationCenter
	Hub           *websocket.Hub
}

type handler struct {
	svc    Services
	logger *zap.Logger
}

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, svc Services, logger *zap.Logger) {
	h := &handler{svc: svc, logger: logger}

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "agentdesk-server",
		})
	})

	// API v1 routes
	v1 := e.Group("/api/v1")
	v1.POST("/agents/login", h.agentLogin)

	protected := v1.Group("", h.requireAgent)

	// Translation APIs
	protected.POST("/translate", h.translate)
	protected.POST("/translate/message", h.translateMessage)
	protected.POST("/detect", h.detect)
	protected.GET("/languages", h.languages)
	protected.GET("/providers", h.providers)
	protected.PUT("/providers/default", h.setDefaultProvider)
	protected.DELETE("/cache", h.clearCache)

	// Chat utility APIs
	protected.GET("/chats/:id/draft", h.getDraft)
	protected.PUT("/chats/:id/draft", h.saveDraft)
	protected.DELETE("/chats/:id/draft", h.clearDraft)
	protected.POST("/chats/:id/timer/start", h.startTimer)
	protected.POST("/chats/:id/timer/stop", h.stopTimer)
	protected.GET("/chats/:id/timer", h.getTimer)
	protected.POST("/chats/rank", h.rankChats)

	// Agent status APIs
	protected.GET("/agents/status", h.getStatus)
	protected.PUT("/agents/status", h.setStatus)

	// Notification APIs
	protected.GET("/notifications", h.listNotifications)
	protected.POST("/notifications", h.notify)
	protected.POST("/notifications/:id/read", h.markNotificationRead)
	protected.DELETE("/notifications", h.clearNotifications)

	// WebSocket endpoint with JWT validation
	e.GET("/ws", h.websocketWithAuth)
}

// requireAgent validates the bearer token and stores the agent ID on the
// request context.
func (h *handler) requireAgent(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := h.claimsFromRequest(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "invalid_token",
				Message: "Valid agent token is required",
			})
		}
		c.Set("agentID", claims.AgentID)
		return next(c)
	}
}

func (h *handler) claimsFromRequest(c echo.Context) (*auth.JWTClaims, error) {
	var token string
	authHeader := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token = strings.TrimPrefix(authHeader, "Bearer ")
	}
	if token == "" {
		token = c.QueryParam("token")
	}
	if token == "" {
		return nil, errors.New("missing token")
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Role != "agent" {
		return nil, errors.New("not an agent token")
	}
	return claims, nil
}

func (h *handler) agentLogin(c echo.Context) error {
	var req AgentLoginRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("Failed to bind login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if strings.TrimSpace(req.AgentID) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Agent ID is required",
		})
	}

	token, err := auth.GenerateAgentToken(req.AgentID)
	if err != nil {
		h.logger.Error("Failed to generate agent token",
			zap.String("agent_id", req.AgentID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "token_generation_failed",
			Message: "Failed to generate authentication token",
		})
	}

	h.logger.Info("Agent authenticated", zap.String("agent_id", req.AgentID))

	return c.JSON(http.StatusOK, AgentLoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		AgentID:   req.AgentID,
	})
}

func (h *handler) translate(c echo.Context) error {
	var req TranslateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request"})
	}

	result, err := h.svc.Translator.Translate(c.Request().Context(), req.Text, req.SourceLanguage, req.TargetLanguage, req.Provider)
	if err != nil {
		return h.translationError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *handler) translateMessage(c echo.Context) error {
	var req TranslateMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request"})
	}

	result, err := h.svc.Translator.TranslateMessage(c.Request().Context(), req.Text, req.SourceLanguage, req.TargetLanguages)
	if err != nil {
		return h.translationError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *handler) detect(c echo.Context) error {
	var req DetectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request"})
	}

	result, err := h.svc.Translator.DetectLanguage(c.Request().Context(), req.Text, req.Provider)
	if err != nil {
		return h.translationError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// translationError maps domain errors to HTTP responses: an unknown provider
// is the caller's mistake, a backend failure is an upstream problem.
func (h *handler) translationError(c echo.Context, err error) error {
	var confErr *entities.ConfigurationError
	if errors.As(err, &confErr) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "unknown_provider",
			Message: confErr.Error(),
		})
	}

	var backendErr *entities.BackendError
	if errors.As(err, &backendErr) {
		h.logger.Error("Translation backend failure",
			zap.String("provider", backendErr.Provider),
			zap.String("op", backendErr.Op),
			zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "backend_failure",
			Message: backendErr.Message,
		})
	}

	h.logger.Error("Translation failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error"})
}

func (h *handler) languages(c echo.Context) error {
	return c.JSON(http.StatusOK, entities.SupportedLanguages)
}

func (h *handler) providers(c echo.Context) error {
	return c.JSON(http.StatusOK, ProvidersResponse{
		Providers: h.svc.Translator.Providers(),
		Default:   h.svc.Translator.DefaultProvider(),
	})
}

func (h *handler) setDefaultProvider(c echo.Context) error {
	var req SetDefaultProviderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request"})
	}

	if err := h.svc.Translator.SetDefaultProvider(req.Provider); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "unknown_provider",
			Message: err.Error(),
		})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) clearCache(c echo.Context) error {
	h.svc.Translator.ClearCache()
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) getDraft(c echo.Context) error {
	chatID := c.Param("id")
	text := h.svc.Drafts.Get(c.Request().Context(), chatID)
	return c.JSON(http.StatusOK, DraftResponse{
		ChatID:   chatID,
		Text:     text,
		HasDraft: text != "",
	})
}

func (h *handler) saveDraft(c echo.Context) error {
	var req DraftRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request"})
	}
	h.svc.Drafts.Save(c.Request().Context(), c.Param("id"), req.Text)
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) clearDraft(c echo.Context) error {
	h.svc.Drafts.Clear(c.Request().Context(), c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) startTimer(c echo.Context) error {
	h.svc.Timers.Start(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) stopTimer(c echo.Context) error {
	h.svc.Timers.Stop(c.Param("id"))
	return h.getTimer(c)
}

func (h *handler) getTimer(c echo.Context) error {
	chatID := c.Param("id")
	average := h.svc.Timers.Average(chatID)
	return c.JSON(http.StatusOK, TimerResponse{
		ChatID:           chatID,
		Active:           h.svc.Timers.Active(chatID),
		LastMs:           h.svc.Timers.LastDuration(chatID).Milliseconds(),
		AverageMs:        average.Milliseconds(),
		AverageFormatted: usecase.FormatDuration(average),
	})
}

func (h *handler) rankChats(c echo.Context) error {
	var req RankRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request"})
	}

	ranked := usecase.RankConversations(req.Conversations)
	out := make([]RankedConversation, len(ranked))
	for i, conversation := range ranked {
		out[i] = RankedConversation{
			ConversationSummary: conversation,
			Style:               usecase.StyleFor(conversation.Priority),
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handler) getStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, AgentStatusResponse{
		Status:   h.svc.Status.Status(),
		Duration: h.svc.Status.StatusDuration(),
	})
}

func (h *handler) setStatus(c echo.Context) error {
	var req AgentStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request"})
	}
	if err := h.svc.Status.SetStatus(req.Status); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_status",
			Message: err.Error(),
		})
	}
	return h.getStatus(c)
}

func (h *handler) listNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, NotificationsResponse{
		Notifications: h.svc.Notifications.List(),
		UnreadCount:   h.svc.Notifications.UnreadCount(),
	})
}

func (h *handler) notify(c echo.Context) error {
	var req NotifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request"})
	}
	if req.ChatID == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Chat ID and message are required",
		})
	}

	notification := h.svc.Hub.BroadcastNotification(req.ChatID, req.CustomerName, req.Message)
	return c.JSON(http.StatusCreated, notification)
}

func (h *handler) markNotificationRead(c echo.Context) error {
	h.svc.Notifications.MarkRead(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) clearNotifications(c echo.Context) error {
	h.svc.Notifications.ClearAll()
	return c.NoContent(http.StatusNoContent)
}

// websocketWithAuth handles WebSocket connections with JWT authentication
func (h *handler) websocketWithAuth(c echo.Context) error {
	claims, err := h.claimsFromRequest(c)
	if err != nil {
		h.logger.Warn("WebSocket connection rejected", zap.Error(err))
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Valid agent token is required",
		})
	}

	h.logger.Info("WebSocket connection authenticated", zap.String("agent_id", claims.AgentID))
	return websocket.HandleWebSocket(h.svc.Hub, c, claims.AgentID, h.logger)
}
