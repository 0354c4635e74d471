package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount       int64 // 统计的 Tick 次数
	TotalTickNs     int64 // Tick 累计耗时（纳秒）
	TickPanics      int64 // Tick 内恢复的 panic 数
	Connects        int64
	Disconnects     int64
	InputsAccepted  int64 // 已写入玩家按键状态的输入数
	InputsMalformed int64 // 无法解析的输入数
	InputsIgnored   int64 // 未知类型/按键的输入数
	InputsStale     int64 // 玩家已离开后到达的输入数
	SendDropped     int64 // 因发送队列满或连接关闭而丢弃的帧数
}

func (m *RoomMetrics) IncConnect()     { atomic.AddInt64(&m.Connects, 1) }
func (m *RoomMetrics) IncDisconnect()  { atomic.AddInt64(&m.Disconnects, 1) }
func (m *RoomMetrics) IncAccepted()    { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *RoomMetrics) IncMalformed()   { atomic.AddInt64(&m.InputsMalformed, 1) }
func (m *RoomMetrics) IncIgnored()     { atomic.AddInt64(&m.InputsIgnored, 1) }
func (m *RoomMetrics) IncStale()       { atomic.AddInt64(&m.InputsStale, 1) }
func (m *RoomMetrics) IncSendDropped() { atomic.AddInt64(&m.SendDropped, 1) }
func (m *RoomMetrics) IncTickPanic()   { atomic.AddInt64(&m.TickPanics, 1) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":       tick,
		"tick_panics":      atomic.LoadInt64(&m.TickPanics),
		"connects":         atomic.LoadInt64(&m.Connects),
		"disconnects":      atomic.LoadInt64(&m.Disconnects),
		"inputs_accepted":  atomic.LoadInt64(&m.InputsAccepted),
		"inputs_malformed": atomic.LoadInt64(&m.InputsMalformed),
		"inputs_ignored":   atomic.LoadInt64(&m.InputsIgnored),
		"inputs_stale":     atomic.LoadInt64(&m.InputsStale),
		"send_dropped":     atomic.LoadInt64(&m.SendDropped),
		"avg_tick_ms":      avgMs,
	}
}
