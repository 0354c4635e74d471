package server

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed config.default.yaml
var defaultConfigYAML []byte

// Config 服务端全部可配置项
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Sim    SimConfig    `yaml:"sim"`
	World  WorldConfig  `yaml:"world"`
	Net    NetConfig    `yaml:"net"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"` // 为空则不提供静态资源
}

type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	Console    bool   `yaml:"console"` // 同时输出到 stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// SimConfig Tick 频率与每 Tick 移动步长
type SimConfig struct {
	TickRate int     `yaml:"tick_rate"`
	SpeedX   float64 `yaml:"speed_x"`
	SpeedY   float64 `yaml:"speed_y"`
}

// WorldConfig 世界尺寸；出生点在四周留出 SpawnMargin
type WorldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	SpawnMargin float64 `yaml:"spawn_margin"`
	Clamp       bool    `yaml:"clamp"`
}

type NetConfig struct {
	SendQueue  int           `yaml:"send_queue"`
	ReadLimit  int64         `yaml:"read_limit"`
	PongWait   time.Duration `yaml:"pong_wait"`
	PingPeriod time.Duration `yaml:"ping_period"`
	WriteWait  time.Duration `yaml:"write_wait"`
}

// TickInterval 每个 Tick 的时长（1s / tick_rate）
func (c SimConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// DefaultConfig 解析内嵌的默认配置
func DefaultConfig() Config {
	var cfg Config
	if err := decodeConfig(defaultConfigYAML, &cfg); err != nil {
		panic(errors.Wrap(err, "embedded default config"))
	}
	return cfg
}

// LoadConfig 在默认配置之上叠加 path 指定的文件；path 为空时只返回默认值
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := decodeConfig(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// 空文件视为不覆盖任何字段
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Validate 检查配置取值
func (c Config) Validate() error {
	switch {
	case c.Sim.TickRate <= 0 || c.Sim.TickRate > 1000:
		return errors.Errorf("sim.tick_rate must be in (0,1000], got %d", c.Sim.TickRate)
	case c.Sim.SpeedX < 0 || c.Sim.SpeedY < 0:
		return errors.New("sim speeds must not be negative")
	case c.World.Width-2*c.World.SpawnMargin <= 0 || c.World.Height-2*c.World.SpawnMargin <= 0:
		return errors.New("world spawn area is empty")
	case c.Net.SendQueue <= 0:
		return errors.New("net.send_queue must be positive")
	case c.Net.PingPeriod <= 0 || c.Net.PongWait <= 0 || c.Net.WriteWait <= 0:
		return errors.New("net.ping_period, net.pong_wait and net.write_wait must be positive")
	case c.Net.PingPeriod >= c.Net.PongWait:
		return errors.New("net.ping_period must be shorter than net.pong_wait")
	}
	return nil
}
