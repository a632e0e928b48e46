package handler

import (
	"mdt-records-be/internal/pkg/logger"
	"mdt-records-be/internal/pkg/serverutils"
	"mdt-records-be/internal/service"
	internalWS "mdt-records-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type RealtimeHandler struct {
	hub     *internalWS.Hub
	refresh service.IRefreshService
	secret  string
	logger  logger.ILogger
}

func NewRealtimeHandler(hub *internalWS.Hub, refresh service.IRefreshService, secret string, log logger.ILogger) *RealtimeHandler {
	return &RealtimeHandler{
		hub:     hub,
		refresh: refresh,
		secret:  secret,
		logger:  log,
	}
}

// tokenFrom prefers the query parameter since browsers cannot set headers
// on a websocket handshake.
func tokenFrom(c *fiber.Ctx) string {
	if tok := c.Query("token"); tok != "" {
		return tok
	}
	authHeader := c.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}

// ServeWs authenticates the handshake and hands the connection to the hub.
func (h *RealtimeHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := tokenFrom(c)
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token (Query 'token' or Header 'Authorization')"))
	}

	claims, err := serverutils.ParseToken(h.secret, tokenStr)
	if err != nil {
		h.logger.Warn("RealtimeHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Token missing user_id"))
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("RealtimeHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("RealtimeHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// Stats reports live connections and bus topics.
func (h *RealtimeHandler) Stats(c *fiber.Ctx) error {
	topics := h.refresh.Bus().Topics()
	counts := make(map[string]int, len(topics))
	for _, t := range topics {
		counts[t] = h.refresh.Bus().SubscriberCount(t)
	}
	return c.JSON(serverutils.SuccessResponse("Realtime stats", fiber.Map{
		"clients": h.hub.ClientCount(),
		"topics":  counts,
		"relay":   h.refresh.RelayName(),
	}))
}

func (h *RealtimeHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/ws", h.ServeWs)
	router.Get("/realtime/stats", auth, h.Stats)
}
