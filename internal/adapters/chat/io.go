package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/Whisper/internal/core"
	"github.com/dkeye/Whisper/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *ChatWSController) writePump(ctx context.Context, sid domain.SessionID, c *WsChatConn) {
	ticker := time.NewTicker(ctl.Cfg.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "chat").Str("sid", string(sid)).Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Warn().Err(err).Str("module", "chat").Str("sid", string(sid)).Msg("writePump ping failed")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "chat").Str("sid", string(sid)).Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "chat").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "chat").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *ChatWSController) readPump(ctx context.Context, cancel context.CancelFunc, sess *domain.Session, c *WsChatConn) {
	defer func() {
		log.Info().Str("module", "chat").Str("sid", string(sess.ID)).Msg("readPump closing")
		ctl.Match.Disconnect(ctx, sess.ID)
		ctl.limiter.Forget(sess.ID)
		cancel()
		c.Close()
	}()

	c.conn.SetReadLimit(ctl.Cfg.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.Cfg.IdleTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.Cfg.IdleTimeout))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "chat").Str("sid", string(sess.ID)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "chat").Str("sid", string(sess.ID)).Msg("readPump read error")
				return
			}
			_ = c.conn.SetReadDeadline(time.Now().Add(ctl.Cfg.IdleTimeout))
			ctl.handleFrame(ctx, sess, c, data)
		}
	}
}

func (ctl *ChatWSController) handleFrame(ctx context.Context, sess *domain.Session, c *WsChatConn, data []byte) {
	var env struct {
		Type string `json:"type"`
		Body string `json:"body"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "chat").Msg("bad json")
		return
	}

	switch env.Type {
	case "message":
		if !ctl.limiter.Allow(sess.ID) {
			log.Warn().Str("module", "chat").Str("sid", string(sess.ID)).Msg("message rate limited")
			return
		}
		body := env.Body
		if len(body) > ctl.Cfg.MaxMessageLen {
			body = body[:ctl.Cfg.MaxMessageLen]
		}
		if body == "" {
			return
		}
		ctl.Match.Message(ctx, sess.ID, body)
	case "ping":
		_ = c.TrySend(core.PongFrame())
	default:
		log.Warn().Str("module", "chat").Str("type", env.Type).Msg("unknown frame")
	}
}
