package md2tgmd

import (
	"sync"

	"github.com/riverfjs/md2tgmd-go/internal/types"
)

// 导出类型别名
type Symbol = types.Symbol
type RenderConfig = types.RenderConfig
type UnsupportedPolicy = types.UnsupportedPolicy

// 不支持的结构的处理策略
const (
	// UnsupportedDrop 静默丢弃不支持的块（默认）
	UnsupportedDrop = types.UnsupportedDrop
	// UnsupportedLiteral 将原始文本转义后保留为普通段落
	UnsupportedLiteral = types.UnsupportedLiteral
)

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}

// DefaultSymbol returns a fresh copy of the default marker symbols.
func DefaultSymbol() *Symbol {
	return types.DefaultSymbol()
}
