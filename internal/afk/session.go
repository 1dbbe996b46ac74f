package afk

import (
	"context"
	"sync"
	"time"

	"coin_panel/internal/logger"
	"coin_panel/internal/store"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second

	opTimeout = 5 * time.Second
)

var coinMsg = []byte(`{"type":"coin"}`)

// Session is one open AFK connection. It owns exactly one accrual ticker
// and the user's presence slot; both are torn down exactly once when either
// side closes the connection.
type Session struct {
	userID  string
	conn    *websocket.Conn
	send    chan []byte
	store   store.Store
	tracker Tracker

	every    time.Duration
	coins    int64
	maxCoins int64

	done      chan struct{}
	closeOnce sync.Once
}

func NewSession(userID string, conn *websocket.Conn, st store.Store, tracker Tracker, every time.Duration, coins, maxCoins int64) *Session {
	return &Session{
		userID:   userID,
		conn:     conn,
		send:     make(chan []byte, 16),
		store:    st,
		tracker:  tracker,
		every:    every,
		coins:    coins,
		maxCoins: maxCoins,
		done:     make(chan struct{}),
	}
}

// Run services the connection until it closes. The caller must already
// hold the user's presence slot; Run releases it on teardown.
func (s *Session) Run() {
	ActiveConnections.Inc()

	go s.writePump()
	go s.tickLoop()

	s.readPump()
}

func (s *Session) readPump() {
	defer s.Close()

	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// the client never needs to send anything; we read only to notice
	// disconnects and answer pings
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (s *Session) tickLoop() {
	ticker := time.NewTicker(s.every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.credit()
		case <-s.done:
			return
		}
	}
}

// credit performs one accrual tick. Store errors are logged and the tick
// skipped; the balance is left for the next tick to retry.
func (s *Session) credit() {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	key := store.CoinsKey(s.userID)

	balance, _, err := s.store.GetInt64(ctx, key)
	if err != nil {
		logger.Warn("afk: balance read failed, skipping tick", "user", s.userID, "error", err)
		return
	}

	next := balance + s.coins
	if next > s.maxCoins {
		logger.Info("afk: balance ceiling reached, closing connection", "user", s.userID, "balance", balance)
		s.Close()
		return
	}

	if err := s.store.SetInt64(ctx, key, next); err != nil {
		logger.Warn("afk: balance write failed, skipping tick", "user", s.userID, "error", err)
		return
	}

	CoinTicks.Inc()

	select {
	case s.send <- coinMsg:
	default:
		// slow client; dropping the notification is fine, the credit stands
	}

	if err := s.tracker.Heartbeat(ctx, s.userID); err != nil {
		logger.Warn("afk: presence heartbeat failed", "user", s.userID, "error", err)
	}
}

// Close tears the session down: stops the ticker, releases the presence
// slot and closes the connection. Safe to call multiple times and safe
// against a concurrently in-flight tick.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		if err := s.tracker.Release(ctx, s.userID); err != nil {
			logger.Warn("afk: presence release failed", "user", s.userID, "error", err)
		}

		s.conn.Close()
		ActiveConnections.Dec()
	})
}
