// Package viper 封装 spf13/viper，对外提供精简的配置加载接口。
//
// 支持 YAML/JSON 配置文件，并允许通过环境变量覆盖文件中的配置项：
// 配置项 key 中的点号替换为下划线并加上前缀后即为对应的环境变量名，
// 例如前缀为 RECORDGARDEN 时，log.level 对应 RECORDGARDEN_LOG_LEVEL。
package viper

import (
	"path/filepath"
	"strings"

	spfviper "github.com/spf13/viper"
)

// Config 封装 spf13/viper 实例。
type Config struct {
	v *spfviper.Viper
}

// New 创建一个空的 Config。
// 在调用 Unmarshal/UnmarshalKey 之前需要先调用 LoadFile 加载配置文件。
func New() *Config {
	return &Config{
		v: spfviper.New(),
	}
}

// BindEnv 启用环境变量覆盖，prefix 为环境变量前缀（不含下划线）。
func (c *Config) BindEnv(prefix string) *Config {
	c.v.SetEnvPrefix(prefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()
	return c
}

// SetDefault 设置某个配置项的默认值。
func (c *Config) SetDefault(key string, value interface{}) {
	c.v.SetDefault(key, value)
}

// LoadFile 将 YAML 或 JSON 配置文件加载到 Config 中。
// 文件类型通过扩展名（.yaml/.yml/.json）推断。
func (c *Config) LoadFile(path string) error {
	c.v.SetConfigFile(path)

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		c.v.SetConfigType("yaml")
	case ".json":
		c.v.SetConfigType("json")
	default:
		// 让 viper 自行推断类型，或在读取时返回清晰的错误信息。
	}

	return c.v.ReadInConfig()
}

// GetString 返回指定 key 的字符串值，未设置时返回空串。
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetBool 返回指定 key 的布尔值，未设置时返回 false。
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// Unmarshal 将完整配置反序列化到 dst。
// dst 应为结构体或 map 的指针。
func (c *Config) Unmarshal(dst interface{}) error {
	return c.v.Unmarshal(dst)
}

// UnmarshalKey 将指定 key 对应的子配置反序列化到 dst。
// dst 应为结构体或 map 的指针。
func (c *Config) UnmarshalKey(key string, dst interface{}) error {
	return c.v.UnmarshalKey(key, dst)
}
