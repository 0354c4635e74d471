package server

import (
	"strings"

	"github.com/google/uuid"
)

const playerIDLen = 8

// newPlayerID 生成短随机标识（取随机 UUID 的前 8 个十六进制字符）。
// 只保证在存活集合内唯一：taken 返回 true 时重新生成。
func newPlayerID(taken func(PlayerID) bool) PlayerID {
	for {
		raw := strings.ReplaceAll(uuid.NewString(), "-", "")
		id := PlayerID(raw[:playerIDLen])
		if !taken(id) {
			return id
		}
	}
}
