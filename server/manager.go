package server

import "sync"

// DefaultRoom 未指定 room 参数时加入的房间
const DefaultRoom = "arena"

// RoomManager 管理多个房间的生命周期
type RoomManager struct {
	cfg Config

	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRoomManager(cfg Config) *RoomManager {
	return &RoomManager{cfg: cfg, rooms: make(map[string]*Room)}
}

// GetOrCreateRoom 获取或创建房间，并确保开始 Tick
func (m *RoomManager) GetOrCreateRoom(id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roomLocked(id)
}

// roomLocked 调用方需持有 mu
func (m *RoomManager) roomLocked(id string) *Room {
	r, ok := m.rooms[id]
	if !ok {
		r = NewRoom(id, m.cfg)
		m.rooms[id] = r
		r.StartTicker()
		Log.Infow("room created", "room", id)
	}
	return r
}

// join 在管理器锁内取得房间并加入玩家，避免与 reap 交错（加入已停止的房间）
func (m *RoomManager) join(roomID string, conn *ClientConn) (*Room, *Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.roomLocked(roomID)
	return r, r.Join(conn)
}

// reap 非默认房间空闲后停止 Tick 并移除
func (m *RoomManager) reap(r *Room) {
	if r.ID == DefaultRoom {
		return
	}
	m.mu.Lock()
	if cur, ok := m.rooms[r.ID]; !ok || cur != r || r.Len() > 0 {
		m.mu.Unlock()
		return
	}
	delete(m.rooms, r.ID)
	m.mu.Unlock()

	r.Stop()
	Log.Infow("room removed", "room", r.ID)
}

// Room 查找已存在的房间
func (m *RoomManager) Room(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Shutdown 停止所有房间的 Tick 并断开玩家
func (m *RoomManager) Shutdown() {
	m.mu.Lock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.Unlock()
	for _, r := range rooms {
		r.Stop()
		for _, p := range r.Players() {
			r.Leave(p.ID)
		}
	}
}
