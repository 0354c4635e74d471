package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func NewClientConn(ws *websocket.Conn, queue int) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, queue),
	}
}

// Enqueue 将要发送的消息压入队列（非阻塞）；队列满或已关闭时返回 false
func (c *ClientConn) Enqueue(b []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- b:
		return true
	default:
		// 为了实时性，丢弃本帧（防止阻塞 Tick）
		return false
	}
}

// Close 关闭发送队列与底层连接；可重复调用
func (c *ClientConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()
	if c.ws != nil {
		_ = c.ws.Close()
	}
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定期发送 ping
func (c *ClientConn) writePump(nc NetConfig) {
	ticker := time.NewTicker(nc.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(nc.WriteWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(nc.WriteWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端输入，解析后写入玩家按键状态；退出时玩家离开房间（仅一次），再调用 onExit
func (c *ClientConn) readPump(room *Room, playerID PlayerID, nc NetConfig, onExit func()) {
	defer func() {
		room.Leave(playerID)
		if onExit != nil {
			onExit()
		}
	}()
	c.ws.SetReadLimit(nc.ReadLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(nc.PongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(nc.PongWait)) })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				Log.Warnw("unexpected close", "room", room.ID, "player", playerID, "err", err)
			} else {
				Log.Debugw("read loop ended", "room", room.ID, "player", playerID, "err", err)
			}
			return
		}
		ev, err := ParseInput(playerID, payload)
		if err != nil {
			if errors.Is(err, ErrIgnoredMessage) {
				room.metrics.IncIgnored()
				continue
			}
			room.metrics.IncMalformed()
			Log.Warnw("drop malformed input", "room", room.ID, "player", playerID, "err", err)
			continue
		}
		room.OnInput(ev)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// HandleWS WebSocket 接入：?room=arena（可省略）
func (m *RoomManager) HandleWS(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = DefaultRoom
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnw("upgrade error", "remote", r.RemoteAddr, "err", err)
		return
	}

	nc := m.cfg.Net
	client := NewClientConn(ws, nc.SendQueue)
	room, p := m.join(roomID, client)

	go client.writePump(nc)
	go client.readPump(room, p.ID, nc, func() { m.reap(room) })
}
