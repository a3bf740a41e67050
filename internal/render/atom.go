package render

import "github.com/riverfjs/md2tgmd-go/internal/textlen"

// AtomKind 区分渲染器输出的原子类型
type AtomKind uint8

const (
	// AtomText 已转义的文本段，可在空白处再切分
	AtomText AtomKind = iota
	// AtomSpanOpen 格式区间的开标记
	AtomSpanOpen
	// AtomSpanClose 格式区间的闭标记
	AtomSpanClose
	// AtomAtomic 不可拆分的完整 token（链接、行内代码）
	AtomAtomic
	// AtomFenceOpen 代码围栏开标记，含语言标签和换行
	AtomFenceOpen
	// AtomFenceClose 代码围栏闭标记
	AtomFenceClose
	// AtomLineBreak 换行，切分时的次优边界
	AtomLineBreak
)

// SpanKind 标识格式区间的种类
type SpanKind uint8

const (
	SpanBold SpanKind = iota
	SpanItalic
	SpanStrikethrough
	SpanLink
	SpanHeading
)

// Atom 是渲染器输出、拆分器消费的最小单元
//
// Text 是该原子实际输出的字符串（对 SpanOpen/FenceOpen 是开标记）。
// Close 仅在 SpanOpen/FenceOpen 上设置：跨块边界时拆分器用它闭合、
// 用 Text 重开，从不自行推导标记内容。
type Atom struct {
	Kind  AtomKind
	Span  SpanKind
	Text  string
	Close string
	Len   int // Text 的 UTF-16 code unit 长度
}

func textAtom(kind AtomKind, text string) Atom {
	return Atom{Kind: kind, Text: text, Len: textlen.UTF16(text)}
}
