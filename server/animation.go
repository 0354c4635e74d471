package server

// AnimDescriptor 动画定义：启动时创建，之后只读，可被所有玩家共享
type AnimDescriptor struct {
	SpriteKey      string
	StartIndex     int
	NumIndices     int // 姿势数量
	FramesPerIndex int // 每个姿势持续的 Tick 数
	Loop           bool
}

// AnimClock 单个玩家持有的动画时钟（绑定一个描述符）
type AnimClock struct {
	desc  *AnimDescriptor
	frame int
	index int
	done  bool
}

func NewAnimClock(d *AnimDescriptor) *AnimClock {
	return &AnimClock{desc: d}
}

// Advance 推进一个 Tick；非循环动画到达最后一个姿势后冻结，直到 Reset
func (c *AnimClock) Advance() {
	if c.done {
		return
	}
	c.frame++
	if c.frame < c.desc.FramesPerIndex {
		return
	}
	c.frame = 0
	c.index++
	if c.index >= c.desc.NumIndices {
		if c.desc.Loop {
			c.index = 0
		} else {
			c.index = c.desc.NumIndices - 1
			c.done = true
		}
	}
}

// Reset 回到第一个姿势
func (c *AnimClock) Reset() {
	c.frame = 0
	c.index = 0
	c.done = false
}

// DrawIndex 精灵图中的绘制下标
func (c *AnimClock) DrawIndex() int { return c.desc.StartIndex + c.index }

func (c *AnimClock) SpriteKey() string { return c.desc.SpriteKey }

func (c *AnimClock) Done() bool { return c.done }

// copyProgress 将进度同步到另一时钟（用于攻击中转身，切换镜像动画）
func (c *AnimClock) copyProgress(dst *AnimClock) {
	dst.frame, dst.index, dst.done = c.frame, c.index, c.done
}

// AnimKind 动画种类，与朝向组合得到具体变体
type AnimKind int

const (
	AnimStand AnimKind = iota
	AnimRun
	AnimPunch
	numAnimKinds
)

// 火柴人动画表；下标为 kind*2 + (朝右 ? 1 : 0)
var stickmanAnims = [numAnimKinds * 2]*AnimDescriptor{
	{SpriteKey: "stickman", StartIndex: 0, NumIndices: 3, FramesPerIndex: 4, Loop: true},
	{SpriteKey: "stickmanR", StartIndex: 0, NumIndices: 3, FramesPerIndex: 4, Loop: true},
	{SpriteKey: "stickman", StartIndex: 3, NumIndices: 4, FramesPerIndex: 3, Loop: true},
	{SpriteKey: "stickmanR", StartIndex: 3, NumIndices: 4, FramesPerIndex: 3, Loop: true},
	{SpriteKey: "stickmanAttacks", StartIndex: 0, NumIndices: 6, FramesPerIndex: 3, Loop: false},
	{SpriteKey: "stickmanAttacksR", StartIndex: 0, NumIndices: 6, FramesPerIndex: 3, Loop: false},
}

func animSlot(kind AnimKind, facingRight bool) int {
	s := int(kind) * 2
	if facingRight {
		s++
	}
	return s
}

// StickmanAnim 返回某种动画在给定朝向下的描述符
func StickmanAnim(kind AnimKind, facingRight bool) *AnimDescriptor {
	return stickmanAnims[animSlot(kind, facingRight)]
}
