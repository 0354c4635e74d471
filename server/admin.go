package server

import (
	"encoding/json"
	"net/http"
)

func (m *RoomManager) roomFromQuery(w http.ResponseWriter, r *http.Request) (*Room, bool) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = DefaultRoom
	}
	room, ok := m.Room(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
	}
	return room, ok
}

// HandleAdminConfig 提供房间移动参数的读取与热更新
// GET /admin/config?room=arena  返回当前配置
// POST /admin/config?room=arena 以 JSON 载荷更新部分字段
func (m *RoomManager) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	room, ok := m.roomFromQuery(w, r)
	if !ok {
		return
	}

	type cfg struct {
		SpeedX   *float64 `json:"speedX,omitempty"`
		SpeedY   *float64 `json:"speedY,omitempty"`
		TickRate int      `json:"tickRate,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		mo := room.Motion()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(cfg{SpeedX: &mo.SpeedX, SpeedY: &mo.SpeedY, TickRate: m.cfg.Sim.TickRate})
	case http.MethodPost:
		var body cfg
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		mo := room.Motion()
		if body.SpeedX != nil {
			mo.SpeedX = *body.SpeedX
		}
		if body.SpeedY != nil {
			mo.SpeedY = *body.SpeedY
		}
		if mo.SpeedX < 0 || mo.SpeedY < 0 {
			http.Error(w, "speeds must not be negative", http.StatusBadRequest)
			return
		}
		room.SetSpeed(mo.SpeedX, mo.SpeedY)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		Log.Infow("config updated", "room", room.ID, "speedX", mo.SpeedX, "speedY", mo.SpeedY)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=arena
func (m *RoomManager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	room, ok := m.roomFromQuery(w, r)
	if !ok {
		return
	}
	payload := map[string]any{
		"room":    room.ID,
		"tick":    room.TickSeq(),
		"players": room.Len(),
		"metrics": room.metrics.Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// Routes 注册所有 HTTP 接口
func (m *RoomManager) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", m.HandleWS)
	mux.HandleFunc("/admin/config", m.HandleAdminConfig)
	mux.HandleFunc("/metrics", m.HandleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	// 前后端分离：可选地将 / 映射到静态资源目录
	if dir := m.cfg.Server.StaticDir; dir != "" {
		mux.Handle("/", http.FileServer(http.Dir(dir)))
	}
	return mux
}
