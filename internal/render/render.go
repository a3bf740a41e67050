// Package render 将 mdast 文档树渲染为 MarkdownV2 原子序列
//
// 渲染器深度优先遍历文档树，输出一条按文档顺序排列的原子流：
// 已转义的文本段、区间开/闭标记、不可拆分 token、围栏标记和换行。
// 拆分器只消费这条原子流，不再接触文档树。
package render

import (
	"strconv"
	"strings"

	"github.com/riverfjs/md2tgmd-go/internal/mdast"
	"github.com/riverfjs/md2tgmd-go/internal/textlen"
	"github.com/riverfjs/md2tgmd-go/internal/types"
)

// Renderer 把文档树转换为原子序列
type Renderer struct {
	cfg *types.RenderConfig
}

// New 创建渲染器，cfg 为 nil 时使用默认配置
func New(cfg *types.RenderConfig) *Renderer {
	if cfg == nil {
		cfg = types.DefaultRenderConfig()
	}
	if cfg.MarkdownSymbol == nil {
		clone := *cfg
		clone.MarkdownSymbol = types.DefaultSymbol()
		cfg = &clone
	}
	return &Renderer{cfg: cfg}
}

// Render 按文档顺序输出原子序列
func (r *Renderer) Render(doc *mdast.Document) []Atom {
	s := &state{cfg: r.cfg}
	s.renderBlocks(doc.Blocks, blankLineSep)
	return s.atoms
}

// Flatten 将原子序列拼接为完整的 MarkdownV2 字符串（不拆分）
func Flatten(atoms []Atom) string {
	var sb strings.Builder
	for _, a := range atoms {
		sb.WriteString(a.Text)
	}
	return strings.TrimRight(sb.String(), " \t\n")
}

// 块之间的分隔方式：顶层和引用内是空行，列表项内部是单个换行
type separator uint8

const (
	blankLineSep separator = iota
	lineSep
)

type state struct {
	cfg        *types.RenderConfig
	atoms      []Atom
	quoteLevel int
	listDepth  int
}

func (s *state) emit(a Atom) {
	s.atoms = append(s.atoms, a)
}

// text 输出一段已转义好的文本
func (s *state) text(txt string) {
	if txt == "" {
		return
	}
	s.emit(textAtom(AtomText, txt))
}

// lineBreak 输出换行，并在引用内补上本行的 ">" 前缀
func (s *state) lineBreak() {
	s.emit(Atom{Kind: AtomLineBreak, Text: "\n", Len: 1})
	if s.quoteLevel > 0 {
		s.text(strings.Repeat(">", s.quoteLevel))
	}
}

// rawLineBreak 输出不带引用前缀的换行，用于围栏代码内容
func (s *state) rawLineBreak() {
	s.emit(Atom{Kind: AtomLineBreak, Text: "\n", Len: 1})
}

func (s *state) blankLine() {
	s.lineBreak()
	s.lineBreak()
}

func (s *state) renderBlocks(blocks []mdast.Block, sep separator) {
	first := true
	for _, b := range blocks {
		if u, ok := b.(*mdast.Unsupported); ok {
			if s.cfg.Unsupported == types.UnsupportedDrop || u.Raw == "" {
				continue
			}
		}
		if !first {
			if sep == blankLineSep {
				s.blankLine()
			} else {
				s.lineBreak()
			}
		}
		s.renderBlock(b)
		first = false
	}
}

func (s *state) renderBlock(b mdast.Block) {
	switch node := b.(type) {
	case *mdast.Paragraph:
		s.renderInlines(node.Inlines)

	case *mdast.Heading:
		s.renderHeading(node)

	case *mdast.List:
		s.renderList(node)

	case *mdast.BlockQuote:
		s.quoteLevel++
		s.text(">")
		s.renderBlocks(node.Blocks, blankLineSep)
		s.quoteLevel--

	case *mdast.CodeBlock:
		s.renderCodeBlock(node)

	case *mdast.ThematicBreak:
		s.text(s.cfg.MarkdownSymbol.HorizontalRule)

	case *mdast.Unsupported:
		s.renderLiteral(node.Raw)
	}
}

// renderHeading 标题降级为粗体（1–4 级）或斜体（5–6 级）区间加符号前缀
func (s *state) renderHeading(h *mdast.Heading) {
	marker := "*"
	if h.Level >= 5 {
		marker = "_"
	}
	s.emit(Atom{
		Kind:  AtomSpanOpen,
		Span:  SpanHeading,
		Text:  marker,
		Close: marker,
		Len:   1,
	})
	if symbol := s.cfg.MarkdownSymbol.HeadingSymbol(h.Level); symbol != "" {
		s.text(symbol + " ")
	}
	s.renderInlines(h.Inlines)
	s.emit(Atom{Kind: AtomSpanClose, Span: SpanHeading, Text: marker, Len: 1})
}

func (s *state) renderList(l *mdast.List) {
	s.listDepth++
	indent := strings.Repeat("  ", s.listDepth-1)
	num := l.Start

	for i, item := range l.Items {
		if i > 0 {
			s.lineBreak()
		}

		prefix := indent
		switch {
		case item.Checked != nil && *item.Checked:
			prefix += s.cfg.MarkdownSymbol.TaskCompleted + " "
		case item.Checked != nil:
			prefix += s.cfg.MarkdownSymbol.TaskUncompleted + " "
		case l.Ordered:
			prefix += strconv.Itoa(num) + "\\. "
			num++
		default:
			prefix += s.cfg.MarkdownSymbol.Bullet + " "
		}
		s.text(prefix)

		s.renderBlocks(item.Blocks, lineSep)
	}
	s.listDepth--
}

// renderCodeBlock 围栏代码：开栏、逐行 code 转义内容、闭栏
//
// 行之间是裸换行，引用前缀不会插进代码内容。
func (s *state) renderCodeBlock(cb *mdast.CodeBlock) {
	open := "```" + cb.Language + "\n"
	s.emit(Atom{
		Kind:  AtomFenceOpen,
		Text:  open,
		Close: "\n```",
		Len:   textlen.UTF16(open),
	})
	for i, line := range cb.Lines {
		if i > 0 {
			s.rawLineBreak()
		}
		s.text(EscapeCode(line))
	}
	s.emit(Atom{Kind: AtomFenceClose, Text: "\n```", Len: 4})
}

// renderLiteral 按 pass-through 策略输出不支持块的原文
func (s *state) renderLiteral(raw string) {
	for i, line := range strings.Split(raw, "\n") {
		if i > 0 {
			s.lineBreak()
		}
		s.text(EscapeProse(line))
	}
}

func (s *state) renderInlines(inlines []mdast.Inline) {
	for _, in := range inlines {
		s.renderInline(in)
	}
}

func (s *state) renderInline(in mdast.Inline) {
	switch node := in.(type) {
	case *mdast.Text:
		s.text(EscapeProse(node.Value))

	case *mdast.LineBreak:
		s.lineBreak()

	case *mdast.Bold:
		s.renderSpan(SpanBold, "*", node.Children)

	case *mdast.Italic:
		s.renderSpan(SpanItalic, "_", node.Children)

	case *mdast.Strikethrough:
		s.renderSpan(SpanStrikethrough, "~", node.Children)

	case *mdast.InlineCode:
		s.atomicToken("`" + EscapeCode(node.Code) + "`")

	case *mdast.Link:
		s.renderLink(node)

	case *mdast.Image:
		// 图片归一化为占位链接
		label := node.Alt
		if label == "" {
			label = s.cfg.MarkdownSymbol.ImageLabel
		}
		s.renderLink(&mdast.Link{
			Label: []mdast.Inline{&mdast.Text{Value: label}},
			URL:   node.URL,
		})
	}
}

func (s *state) renderSpan(kind SpanKind, marker string, children []mdast.Inline) {
	s.emit(Atom{Kind: AtomSpanOpen, Span: kind, Text: marker, Close: marker, Len: 1})
	s.renderInlines(children)
	s.emit(Atom{Kind: AtomSpanClose, Span: kind, Text: marker, Len: 1})
}

// renderLink 链接输出
//
// 标签是纯文本时整个链接是一个不可拆分 token。标签含嵌套区间时退化为
// 区间形式："[" 开、"](url)" 闭，标签内容仍可在边界处安全切分。
func (s *state) renderLink(l *mdast.Link) {
	if l.URL == "" {
		// 空 URL 按字面标签输出
		s.renderInlines(l.Label)
		return
	}
	if label, ok := l.PlainLabel(); ok {
		s.atomicToken("[" + EscapeProse(label) + "](" + EscapeURL(l.URL) + ")")
		return
	}
	closeMarker := "](" + EscapeURL(l.URL) + ")"
	s.emit(Atom{
		Kind:  AtomSpanOpen,
		Span:  SpanLink,
		Text:  "[",
		Close: closeMarker,
		Len:   1,
	})
	s.renderInlines(l.Label)
	s.emit(Atom{
		Kind: AtomSpanClose,
		Span: SpanLink,
		Text: closeMarker,
		Len:  textlen.UTF16(closeMarker),
	})
}

func (s *state) atomicToken(token string) {
	s.emit(textAtom(AtomAtomic, token))
}
