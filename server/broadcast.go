package server

import (
	"encoding/json"
	"fmt"
)

// 出站消息
type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type stateMessage struct {
	Type  string     `json:"type"`
	State WorldState `json:"state"`
}

// WorldState 全量快照（非增量）
type WorldState struct {
	Players []PlayerState `json:"players"`
}

func encodeWelcome(id PlayerID) []byte {
	b, _ := json.Marshal(textMessage{Type: "message", Text: fmt.Sprintf("Welcome player %s!", id)})
	return b
}

// EncodeState 序列化所有玩家的绘制状态
func EncodeState(players []*Player) []byte {
	snapshot := make([]PlayerState, 0, len(players))
	for _, p := range players {
		snapshot = append(snapshot, p.Snapshot())
	}
	b, _ := json.Marshal(stateMessage{Type: "sendState", State: WorldState{Players: snapshot}})
	return b
}

// Broadcast 将同一份快照发给所有连接；未就绪或已关闭的连接直接跳过
func (r *Room) Broadcast(players []*Player) {
	b := EncodeState(players)
	for _, p := range players {
		if p.Conn == nil {
			continue
		}
		if !p.Conn.Enqueue(b) {
			r.metrics.IncSendDropped()
			Log.Debugw("state frame dropped", "room", r.ID, "player", p.ID)
		}
	}
}
