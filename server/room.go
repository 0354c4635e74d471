package server

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// Room 房间世界：玩家登记表与权威状态，单协程 Tick 推进
//
// mu 只保护 players/motion/rng 的增删与拷贝；玩家自身的更新在锁外进行。
type Room struct {
	ID string

	mu      sync.Mutex
	players map[PlayerID]*Player
	motion  Motion
	rng     *rand.Rand

	world   WorldConfig
	tick    time.Duration
	metrics *RoomMetrics
	tickSeq atomic.Int64

	tickerStarted bool
	stop          chan struct{}
	stopOnce      sync.Once
	done          chan struct{}
}

// NewRoom 创建房间，初始化数据结构（不启动 Tick）
func NewRoom(id string, cfg Config) *Room {
	return &Room{
		ID:      id,
		players: make(map[PlayerID]*Player),
		motion: Motion{
			SpeedX: cfg.Sim.SpeedX,
			SpeedY: cfg.Sim.SpeedY,
			Clamp:  cfg.World.Clamp,
			Width:  cfg.World.Width,
			Height: cfg.World.Height,
		},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		world:   cfg.World,
		tick:    cfg.Sim.TickInterval(),
		metrics: &RoomMetrics{},
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Join 分配新标识、在随机位置创建玩家并登记；欢迎消息先于任何状态帧入队
func (r *Room) Join(conn *ClientConn) *Player {
	r.mu.Lock()
	id := newPlayerID(func(id PlayerID) bool {
		_, ok := r.players[id]
		return ok
	})
	p := NewPlayer(id, r.spawnPoint())
	p.Conn = conn
	if conn != nil {
		conn.Enqueue(encodeWelcome(id))
	}
	r.players[id] = p
	n := len(r.players)
	r.mu.Unlock()

	r.metrics.IncConnect()
	Log.Infow("player connected", "room", r.ID, "player", id, "players", n)
	return p
}

// spawnPoint 调用方需持有 mu
func (r *Room) spawnPoint() Vec2 {
	m := r.world.SpawnMargin
	return Vec2{
		X: m + r.rng.Float64()*(r.world.Width-2*m),
		Y: m + r.rng.Float64()*(r.world.Height-2*m),
	}
}

// Leave 将玩家移出房间并关闭其连接；重复调用无副作用
func (r *Room) Leave(id PlayerID) bool {
	r.mu.Lock()
	p, ok := r.players[id]
	if ok {
		delete(r.players, id)
	}
	n := len(r.players)
	r.mu.Unlock()
	if !ok {
		return false
	}
	if p.Conn != nil {
		p.Conn.Close()
	}
	r.metrics.IncDisconnect()
	Log.Infow("player disconnected", "room", r.ID, "player", id, "players", n)
	return true
}

// Player 按标识查找玩家
func (r *Room) Player(id PlayerID) (*Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	return p, ok
}

// Players 返回当前存活玩家的拷贝
func (r *Room) Players() []*Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	return out
}

func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// OnInput 将按键事件直接写入玩家状态；玩家已离开则忽略
func (r *Room) OnInput(ev ButtonEvent) {
	p, ok := r.Player(ev.PlayerID)
	if !ok {
		r.metrics.IncStale()
		return
	}
	p.SetButton(ev.Button, ev.Value)
	r.metrics.IncAccepted()
}

// Motion 当前移动参数
func (r *Room) Motion() Motion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.motion
}

// SetSpeed 热更新移动步长，下一次 Tick 生效
func (r *Room) SetSpeed(x, y float64) {
	r.mu.Lock()
	r.motion.SpeedX, r.motion.SpeedY = x, y
	r.mu.Unlock()
}

func (r *Room) Metrics() *RoomMetrics { return r.metrics }
