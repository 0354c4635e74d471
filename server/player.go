package server

import "sync"

// PlayerID 表示玩家唯一标识
type PlayerID string

// Action 玩家当前动作（封闭状态集合）
type Action int

const (
	ActionIdle Action = iota
	ActionAttacking
)

func (a Action) String() string {
	switch a {
	case ActionIdle:
		return "idle"
	case ActionAttacking:
		return "attacking"
	default:
		return "unknown"
	}
}

// Vec2 二维坐标
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerState 为广播给客户端的绘制状态
type PlayerState struct {
	Position    Vec2   `json:"position"`
	FacingRight bool   `json:"facingRight"`
	SpriteKey   string `json:"spriteKey"`
	Index       int    `json:"index"`
}

// Motion 每 Tick 的移动参数（由房间在 Tick 开始时给出）
type Motion struct {
	SpeedX float64
	SpeedY float64

	Clamp  bool
	Width  float64
	Height float64
}

// Player 房间内的玩家实体（服务端权威状态）
//
// 位置、朝向、动作与动画只由 Tick 协程读写；按键状态由读协程写入，
// 两者之间通过 mu 保护。
type Player struct {
	ID          PlayerID
	Pos         Vec2
	FacingRight bool
	Action      Action

	clocks [numAnimKinds * 2]*AnimClock
	anim   *AnimClock

	mu    sync.Mutex
	input Buttons

	Conn *ClientConn // 网络连接的发送端（写协程）
}

// NewPlayer 创建处于 idle 状态、朝左站立的玩家
func NewPlayer(id PlayerID, pos Vec2) *Player {
	p := &Player{ID: id, Pos: pos, Action: ActionIdle}
	for i, d := range stickmanAnims {
		p.clocks[i] = NewAnimClock(d)
	}
	p.anim = p.clock(AnimStand)
	return p
}

func (p *Player) clock(kind AnimKind) *AnimClock {
	return p.clocks[animSlot(kind, p.FacingRight)]
}

// Anim 当前动画时钟
func (p *Player) Anim() *AnimClock { return p.anim }

// SetButton 覆盖一个按键状态，最后写入者生效
func (p *Player) SetButton(b Button, v bool) {
	p.mu.Lock()
	p.input[b] = v
	p.mu.Unlock()
}

// Input 返回按键状态的一致副本
func (p *Player) Input() Buttons {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input
}

// Update 推进一个 Tick：先移动，再推进动画，最后处理动作状态机
func (p *Player) Update(m Motion) {
	in := p.Input()
	dx, dy := in.Axis()

	p.Pos.X += float64(dx) * m.SpeedX
	p.Pos.Y += float64(dy) * m.SpeedY
	if m.Clamp {
		p.Pos.X = clamp(p.Pos.X, 0, m.Width)
		p.Pos.Y = clamp(p.Pos.Y, 0, m.Height)
	}
	// 无水平输入时保持原朝向
	if dx > 0 {
		p.FacingRight = true
	} else if dx < 0 {
		p.FacingRight = false
	}

	p.anim.Advance()

	switch p.Action {
	case ActionIdle:
		if dx == 0 && dy == 0 {
			p.anim = p.clock(AnimStand)
		} else {
			p.anim = p.clock(AnimRun)
		}
		if in[ButtonAttack] {
			p.Action = ActionAttacking
			p.anim = p.clock(AnimPunch)
			p.anim.Reset()
		}
	case ActionAttacking:
		// 攻击中转身：进度迁移到镜像动画
		if want := p.clock(AnimPunch); want != p.anim {
			p.anim.copyProgress(want)
			p.anim = want
		}
		if p.anim.Done() {
			p.Action = ActionIdle
		}
	}
}

// Snapshot 只读投影，用于广播
func (p *Player) Snapshot() PlayerState {
	return PlayerState{
		Position:    p.Pos,
		FacingRight: p.FacingRight,
		SpriteKey:   p.anim.SpriteKey(),
		Index:       p.anim.DrawIndex(),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
