package game

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/mrsonam/impostor/domain"
)

// Boundary error strings returned to clients.
var (
	ErrMissingFieldsStr        = "missing-fields"
	ErrInvalidRequestFormatStr = "invalid-request-format"
	ErrUnknownStr              = "unknown-error"
)

// Engine is the surface the handlers drive. *Service satisfies it; tests
// substitute a mock.
type Engine interface {
	CreateRoom(ctx context.Context, ownerName, avatar, avatarFull string) (domain.Room, domain.Player, error)
	JoinRoom(ctx context.Context, roomID, name, avatar, avatarFull string) (domain.Room, domain.Player, error)
	StartRound(ctx context.Context, roomID string, selector WordSelector) (domain.Round, error)
	NewRound(ctx context.Context, roomID string, selector WordSelector) (domain.Round, error)
	SubmitClue(ctx context.Context, roomID, playerID, text string) (domain.Clue, error)
	EndRound(ctx context.Context, roomID string) (domain.Round, error)
	GetPrivateView(ctx context.Context, roomID, playerID string) (PrivateView, error)
	LeaveRoom(ctx context.Context, roomID, playerID string) (domain.Room, domain.Player, bool, error)
	KickPlayer(ctx context.Context, roomID, kickerID, targetID string) (domain.Room, domain.Player, bool, error)
	ToggleHints(ctx context.Context, roomID, playerID string) (bool, error)
	GetRoom(ctx context.Context, roomID string) (domain.Room, error)
	TouchRoom(ctx context.Context, roomID string) (domain.Room, error)
	WordPoolStats(ctx context.Context, roomID string) (PoolStats, error)
}

// Subscriber attaches a websocket connection to a room topic.
type Subscriber interface {
	Subscribe(roomID string, conn *websocket.Conn)
}

type Handler struct {
	engine    Engine
	notifier  Notifier
	hub       Subscriber
	selector  WordSelector
	publicURL string
	upgrader  websocket.Upgrader
}

// NewHandler wires the request boundary. publicURL is the externally
// reachable base used for QR join links.
func NewHandler(engine Engine, notifier Notifier, hub Subscriber, selector WordSelector, publicURL string) *Handler {
	return &Handler{
		engine:    engine,
		notifier:  notifier,
		hub:       hub,
		selector:  selector,
		publicURL: publicURL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// statusFor maps engine failures to transport statuses. Unanticipated
// errors are reported generically without leaking internals.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrPlayerNotInRoom),
		errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInsufficientPlayers),
		errors.Is(err, domain.ErrRoundNotActive):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrCannotKickOwner):
		return http.StatusForbidden, err.Error()
	default:
		return http.StatusInternalServerError, ErrUnknownStr
	}
}

func abortWith(ctx *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("request failed")
	}
	ctx.AbortWithStatusJSON(status, gin.H{"error": msg})
}

type createRoomRequest struct {
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	AvatarFull string `json:"avatarFull"`
}

func (h *Handler) CreateRoomHandler(ctx *gin.Context) {
	var req createRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}
	if req.Name == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	room, player, err := h.engine.CreateRoom(ctx.Request.Context(), req.Name, req.Avatar, req.AvatarFull)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	h.notifier.Broadcast(room.ID, "player-joined", gin.H{"players": room.Players})
	ctx.JSON(http.StatusOK, gin.H{"roomId": room.ID, "playerId": player.ID})
}

type joinRoomRequest struct {
	RoomID     string `json:"roomId"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	AvatarFull string `json:"avatarFull"`
}

func (h *Handler) JoinRoomHandler(ctx *gin.Context) {
	var req joinRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}
	if req.RoomID == "" || req.Name == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	room, player, err := h.engine.JoinRoom(ctx.Request.Context(), req.RoomID, req.Name, req.Avatar, req.AvatarFull)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	h.notifier.Broadcast(room.ID, "player-joined", gin.H{"players": room.Players})
	ctx.JSON(http.StatusOK, gin.H{"playerId": player.ID})
}

type roomPlayerRequest struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

func (h *Handler) LeaveRoomHandler(ctx *gin.Context) {
	var req roomPlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}
	if req.RoomID == "" || req.PlayerID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	room, removed, deleted, err := h.engine.LeaveRoom(ctx.Request.Context(), req.RoomID, req.PlayerID)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	if deleted {
		h.notifier.Broadcast(req.RoomID, "room-deleted", gin.H{})
		ctx.JSON(http.StatusOK, gin.H{"ok": true, "roomDeleted": true})
		return
	}

	h.notifier.Broadcast(req.RoomID, "player-left", gin.H{
		"playerId":   removed.ID,
		"playerName": removed.Name,
		"players":    room.Players,
		"newOwnerId": room.OwnerID,
	})
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

type kickPlayerRequest struct {
	RoomID         string `json:"roomId"`
	KickerID       string `json:"kickerId"`
	TargetPlayerID string `json:"targetPlayerId"`
}

func (h *Handler) KickPlayerHandler(ctx *gin.Context) {
	var req kickPlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}
	if req.RoomID == "" || req.KickerID == "" || req.TargetPlayerID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	room, kicked, forcedEnd, err := h.engine.KickPlayer(ctx.Request.Context(), req.RoomID, req.KickerID, req.TargetPlayerID)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	h.notifier.Broadcast(req.RoomID, "player-left", gin.H{
		"playerId":   kicked.ID,
		"playerName": kicked.Name,
		"players":    room.Players,
		"newOwnerId": nil,
		"reason":     "kicked",
	})
	if forcedEnd {
		h.notifier.Broadcast(req.RoomID, "game-ended", gin.H{"reason": "impostor_kicked"})
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "room": publicRoomState(room)})
}

func (h *Handler) ToggleHintsHandler(ctx *gin.Context) {
	var req roomPlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}
	if req.RoomID == "" || req.PlayerID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	showHints, err := h.engine.ToggleHints(ctx.Request.Context(), req.RoomID, req.PlayerID)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	h.notifier.Broadcast(req.RoomID, "hints-toggled", gin.H{
		"showHints": showHints,
		"toggledBy": req.PlayerID,
	})
	ctx.JSON(http.StatusOK, gin.H{"ok": true, "showHints": showHints})
}

type roomIDRequest struct {
	RoomID string `json:"roomId"`
}

func (h *Handler) StartGameHandler(ctx *gin.Context) {
	var req roomIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}
	if req.RoomID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	round, err := h.engine.StartRound(ctx.Request.Context(), req.RoomID, h.selector)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	room, err := h.engine.GetRoom(ctx.Request.Context(), req.RoomID)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	h.notifier.Broadcast(req.RoomID, "game-started", gin.H{
		"roundId": round.ID,
		"players": room.Players,
	})
	ctx.JSON(http.StatusOK, gin.H{"roundId": round.ID})
}

func (h *Handler) NewGameHandler(ctx *gin.Context) {
	var req roomIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}
	if req.RoomID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	round, err := h.engine.NewRound(ctx.Request.Context(), req.RoomID, h.selector)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	room, err := h.engine.GetRoom(ctx.Request.Context(), req.RoomID)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	h.notifier.Broadcast(req.RoomID, "game-started", gin.H{
		"roundId": round.ID,
		"players": room.Players,
		"game": gin.H{
			"id":            round.ID,
			"startedAt":     round.StartedAt,
			"hasActiveGame": true,
		},
	})
	ctx.JSON(http.StatusOK, gin.H{"roundId": round.ID})
}

type submitClueRequest struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Text     string `json:"text"`
}

func (h *Handler) SubmitClueHandler(ctx *gin.Context) {
	var req submitClueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}
	if req.RoomID == "" || req.PlayerID == "" || req.Text == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	clue, err := h.engine.SubmitClue(ctx.Request.Context(), req.RoomID, req.PlayerID, req.Text)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	h.notifier.Broadcast(req.RoomID, "clue", clue)
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) EndGameHandler(ctx *gin.Context) {
	var req roomIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}
	if req.RoomID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	round, err := h.engine.EndRound(ctx.Request.Context(), req.RoomID)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	h.notifier.Broadcast(req.RoomID, "game-ended", gin.H{"roundId": round.ID})
	ctx.JSON(http.StatusOK, gin.H{"roundId": round.ID})
}

func (h *Handler) PrivateViewHandler(ctx *gin.Context) {
	roomID := ctx.Query("roomId")
	playerID := ctx.Query("playerId")
	if roomID == "" || playerID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	view, err := h.engine.GetPrivateView(ctx.Request.Context(), roomID, playerID)
	if err != nil {
		abortWith(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// publicRoomState is the public-safe projection of a room: never the word,
// the hint, or the impostor id.
func publicRoomState(room domain.Room) gin.H {
	state := gin.H{
		"phase":     room.Phase(),
		"players":   room.Players,
		"ownerId":   room.OwnerID,
		"showHints": room.ShowHints,
		"game":      nil,
	}
	if room.Round != nil {
		state["game"] = gin.H{
			"id":            room.Round.ID,
			"startedAt":     room.Round.StartedAt,
			"endedAt":       room.Round.EndedAt,
			"hasActiveGame": room.Round.Active(),
		}
	}
	return state
}

func (h *Handler) RoomStateHandler(ctx *gin.Context) {
	roomID := ctx.Query("roomId")
	if roomID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	room, err := h.engine.GetRoom(ctx.Request.Context(), roomID)
	if err != nil {
		abortWith(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, publicRoomState(room))
}

func (h *Handler) RoomLoadedHandler(ctx *gin.Context) {
	var req roomPlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRequestFormatStr})
		return
	}
	if req.RoomID == "" || req.PlayerID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	room, err := h.engine.TouchRoom(ctx.Request.Context(), req.RoomID)
	if err != nil {
		abortWith(ctx, err)
		return
	}

	h.notifier.Broadcast(req.RoomID, "room-loaded", gin.H{"players": room.Players})
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) WordStatsHandler(ctx *gin.Context) {
	roomID := ctx.Query("roomId")
	if roomID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	stats, err := h.engine.WordPoolStats(ctx.Request.Context(), roomID)
	if err != nil {
		abortWith(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ok": true, "stats": stats})
}

// QRHandler renders the room's join link as a PNG for phones to scan.
func (h *Handler) QRHandler(ctx *gin.Context) {
	roomID := ctx.Query("roomId")
	if roomID == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrMissingFieldsStr})
		return
	}

	if _, err := h.engine.GetRoom(ctx.Request.Context(), roomID); err != nil {
		abortWith(ctx, err)
		return
	}

	png, err := qrcode.Encode(h.publicURL+"/room/"+roomID, qrcode.Medium, 256)
	if err != nil {
		abortWith(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}

// SubscribeHandler upgrades the connection and attaches it to the room's
// event topic. It blocks until the peer disconnects.
func (h *Handler) SubscribeHandler(ctx *gin.Context) {
	roomID := ctx.Param("roomid")
	if _, err := h.engine.GetRoom(ctx.Request.Context(), roomID); err != nil {
		abortWith(ctx, err)
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("ws upgrade failed")
		return
	}
	h.hub.Subscribe(roomID, conn)
}
