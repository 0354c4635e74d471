package server

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedMessage 无法解析或缺少必需字段
	ErrMalformedMessage = errors.New("malformed input message")
	// ErrIgnoredMessage 未知的消息类型或按键，静默丢弃
	ErrIgnoredMessage = errors.New("ignored input message")
)

// Button 客户端可控制的按键
type Button int

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonAttack
	numButtons
)

var buttonNames = [numButtons]string{"up", "down", "left", "right", "attack"}

func (b Button) String() string {
	if b < 0 || b >= numButtons {
		return "unknown"
	}
	return buttonNames[b]
}

// ParseButton 按名称查找按键
func ParseButton(name string) (Button, bool) {
	for i, n := range buttonNames {
		if n == name {
			return Button(i), true
		}
	}
	return 0, false
}

// Buttons 一个玩家的按键快照，默认全部松开
type Buttons [numButtons]bool

// Axis 将方向键折算为 -1/0/+1 的方向向量；相反按键互相抵消
func (b Buttons) Axis() (dx, dy int) {
	if b[ButtonLeft] {
		dx--
	}
	if b[ButtonRight] {
		dx++
	}
	if b[ButtonUp] {
		dy--
	}
	if b[ButtonDown] {
		dy++
	}
	return dx, dy
}

// ButtonEvent 解析后的输入事件，由读协程投递给玩家
type ButtonEvent struct {
	PlayerID PlayerID
	Button   Button
	Value    bool
}

const msgSetButton = "setButton"

// InputMessage 入站 JSON（WebSocket 文本消息）
// 示例：{"type":"setButton","button":"right","value":true}
type InputMessage struct {
	Type   string  `json:"type"`
	Button *string `json:"button,omitempty"`
	Value  *bool   `json:"value,omitempty"`
}

// ParseInput 解析一条入站消息；value 缺省为 false
func ParseInput(pid PlayerID, payload []byte) (ButtonEvent, error) {
	var im InputMessage
	if err := json.Unmarshal(payload, &im); err != nil {
		return ButtonEvent{}, errors.Wrapf(ErrMalformedMessage, "decode: %v", err)
	}
	if im.Type != msgSetButton {
		return ButtonEvent{}, errors.Wrapf(ErrIgnoredMessage, "type %q", im.Type)
	}
	if im.Button == nil {
		return ButtonEvent{}, errors.Wrap(ErrMalformedMessage, "setButton without button")
	}
	b, ok := ParseButton(*im.Button)
	if !ok {
		return ButtonEvent{}, errors.Wrapf(ErrIgnoredMessage, "button %q", *im.Button)
	}
	ev := ButtonEvent{PlayerID: pid, Button: b}
	if im.Value != nil {
		ev.Value = *im.Value
	}
	return ev, nil
}
