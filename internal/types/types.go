package types

// UnsupportedPolicy 决定无法渲染的构造（表格、HTML 块等）如何处理
type UnsupportedPolicy int

const (
	// UnsupportedDrop 直接丢弃不支持的块（默认）
	UnsupportedDrop UnsupportedPolicy = iota
	// UnsupportedLiteral 将原始源文本按 prose 规则转义后输出
	UnsupportedLiteral
)

// Symbol 定义 Markdown 元素的显示符号
type Symbol struct {
	HeadingLevel1   string
	HeadingLevel2   string
	HeadingLevel3   string
	HeadingLevel4   string
	HeadingLevel5   string
	HeadingLevel6   string
	Bullet          string
	HorizontalRule  string
	ImageLabel      string
	TaskCompleted   string
	TaskUncompleted string
}

// DefaultSymbol 返回默认符号配置
func DefaultSymbol() *Symbol {
	return &Symbol{
		HeadingLevel1:   "🌟",
		HeadingLevel2:   "⭐",
		HeadingLevel3:   "✨",
		HeadingLevel4:   "🔸",
		HeadingLevel5:   "🔹",
		HeadingLevel6:   "✴️",
		Bullet:          "⦁",
		HorizontalRule:  "————————",
		ImageLabel:      "Image",
		TaskCompleted:   "☑️",
		TaskUncompleted: "☐",
	}
}

// HeadingSymbol 返回指定级别标题的前缀符号
func (s *Symbol) HeadingSymbol(level int) string {
	switch level {
	case 1:
		return s.HeadingLevel1
	case 2:
		return s.HeadingLevel2
	case 3:
		return s.HeadingLevel3
	case 4:
		return s.HeadingLevel4
	case 5:
		return s.HeadingLevel5
	default:
		return s.HeadingLevel6
	}
}

// RenderConfig 渲染配置
type RenderConfig struct {
	MarkdownSymbol *Symbol
	Unsupported    UnsupportedPolicy
}

// DefaultRenderConfig 返回默认渲染配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		MarkdownSymbol: DefaultSymbol(),
		Unsupported:    UnsupportedDrop,
	}
}
