package chat

import (
	"context"
	"net/http"
	"strings"

	"github.com/dkeye/Whisper/internal/app"
	"github.com/dkeye/Whisper/internal/config"
	"github.com/dkeye/Whisper/internal/core"
	"github.com/dkeye/Whisper/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type ChatWSController struct {
	Match *app.Matchmaker
	Obf   core.Obfuscator
	Cfg   *config.Config

	limiter *MessageRateLimiter
}

func NewChatWSController(match *app.Matchmaker, obf core.Obfuscator, cfg *config.Config) *ChatWSController {
	return &ChatWSController{
		Match:   match,
		Obf:     obf,
		Cfg:     cfg,
		limiter: NewMessageRateLimiter(cfg.MsgRateLimit, cfg.MsgRateWindow),
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientAddr mirrors what the site's edge sees: first X-Forwarded-For hop,
// falling back to the socket address.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return r.RemoteAddr
}

// HandleChat upgrades the request and hands the session to the matchmaker.
// The raw address crosses the obfuscator exactly once, here.
func (ctl *ChatWSController) HandleChat(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "chat").Msg("ws upgrade")
		return
	}

	// Address plus browser token, hashed together: stable per visitor,
	// useless to anyone reading the transcript store.
	origin := ctl.Obf.Obfuscate(clientAddr(c.Request) + "|" + c.GetString("client_token"))
	sess := domain.NewSession(origin)
	log.Info().Str("module", "chat").Str("sid", string(sess.ID)).Msg("new WS connection")

	conn := newWsChatConn(ws, ctl.Cfg.SendBuffer)
	ctx, cancel := context.WithCancel(ctx)

	go ctl.writePump(ctx, sess.ID, conn)
	if err := ctl.Match.Connect(ctx, sess, conn); err != nil {
		log.Error().Err(err).Str("module", "chat").Str("sid", string(sess.ID)).Msg("connect refused")
		cancel()
		conn.Close()
		return
	}
	go ctl.readPump(ctx, cancel, sess, conn)
}
