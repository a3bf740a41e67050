// Package parser 将原始 Markdown 解析为 mdast 文档树
//
// 解析由 goldmark 完成，这里只负责把 goldmark 的 AST 映射为本库自有的
// 块/行内节点。goldmark 对任何输入都不会报错：未闭合的强调标记退化为
// 字面文本，未终止的围栏代码块视为在输入末尾闭合，因此 Parse 永不失败。
package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/md2tgmd-go/internal/mdast"
)

// StandardOptions goldmark 扩展配置
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.GFM, // tables, strikethrough, tasklists, autolinks
	),
}

// Parse 将 Markdown 文本解析为文档树，任何输入都不会失败
func Parse(markdown string) *mdast.Document {
	source := []byte(markdown)
	md := goldmark.New(StandardOptions...)
	root := md.Parser().Parse(text.NewReader(source))

	b := &builder{source: source}
	doc := &mdast.Document{}
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		if blk := b.block(c); blk != nil {
			doc.Blocks = append(doc.Blocks, blk)
		}
	}
	return doc
}

// builder 持有源文本，把 goldmark 节点逐个映射为 mdast 节点
type builder struct {
	source []byte
}

func (b *builder) block(n gast.Node) mdast.Block {
	switch node := n.(type) {
	case *gast.Paragraph:
		return &mdast.Paragraph{Inlines: b.inlines(node)}

	case *gast.TextBlock:
		// tight list 的列表项内容
		return &mdast.Paragraph{Inlines: b.inlines(node)}

	case *gast.Heading:
		level := node.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return &mdast.Heading{Level: level, Inlines: b.inlines(node)}

	case *gast.List:
		return b.list(node)

	case *gast.Blockquote:
		q := &mdast.BlockQuote{}
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			if blk := b.block(c); blk != nil {
				q.Blocks = append(q.Blocks, blk)
			}
		}
		return q

	case *gast.FencedCodeBlock:
		return &mdast.CodeBlock{
			Language: string(node.Language(b.source)),
			Lines:    b.codeLines(node),
		}

	case *gast.CodeBlock:
		return &mdast.CodeBlock{Lines: b.codeLines(node)}

	case *gast.ThematicBreak:
		return &mdast.ThematicBreak{}

	case *east.Table:
		return &mdast.Unsupported{Raw: b.tableRaw(node)}

	case *gast.HTMLBlock:
		return &mdast.Unsupported{Raw: b.rawSource(node)}

	default:
		// 无法识别的块只降级，不报错
		return &mdast.Unsupported{Raw: b.rawSource(node)}
	}
}

func (b *builder) list(node *gast.List) *mdast.List {
	l := &mdast.List{
		Ordered: node.IsOrdered(),
		Start:   node.Start,
	}
	if l.Ordered && l.Start == 0 {
		l.Start = 1
	}
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		li, ok := c.(*gast.ListItem)
		if !ok {
			continue
		}
		item := &mdast.ListItem{Checked: taskState(li)}
		for cc := li.FirstChild(); cc != nil; cc = cc.NextSibling() {
			if blk := b.block(cc); blk != nil {
				item.Blocks = append(item.Blocks, blk)
			}
		}
		if item.Checked != nil {
			trimTaskLeadingSpace(item)
		}
		l.Items = append(l.Items, item)
	}
	return l
}

// trimTaskLeadingSpace 去掉 checkbox 之后残留的一个前导空格
func trimTaskLeadingSpace(item *mdast.ListItem) {
	if len(item.Blocks) == 0 {
		return
	}
	p, ok := item.Blocks[0].(*mdast.Paragraph)
	if !ok || len(p.Inlines) == 0 {
		return
	}
	if t, ok := p.Inlines[0].(*mdast.Text); ok {
		t.Value = strings.TrimPrefix(t.Value, " ")
	}
}

// taskState 检查列表项是否为 GFM 任务项（首行以 checkbox 开头）
func taskState(li *gast.ListItem) *bool {
	first := li.FirstChild()
	if first == nil {
		return nil
	}
	if cb, ok := first.FirstChild().(*east.TaskCheckBox); ok {
		checked := cb.IsChecked
		return &checked
	}
	return nil
}

func (b *builder) inlines(n gast.Node) []mdast.Inline {
	var out []mdast.Inline
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = b.appendInline(out, c)
	}
	return out
}

func (b *builder) appendInline(out []mdast.Inline, n gast.Node) []mdast.Inline {
	switch node := n.(type) {
	case *gast.Text:
		value := string(node.Segment.Value(b.source))
		if value != "" {
			out = append(out, &mdast.Text{Value: value})
		}
		if node.HardLineBreak() {
			out = append(out, &mdast.LineBreak{Hard: true})
		} else if node.SoftLineBreak() {
			out = append(out, &mdast.LineBreak{})
		}

	case *gast.String:
		out = append(out, &mdast.Text{Value: string(node.Value)})

	case *gast.CodeSpan:
		out = append(out, &mdast.InlineCode{Code: b.codeSpanText(node)})

	case *gast.Emphasis:
		children := b.inlines(node)
		if node.Level == 2 {
			out = append(out, &mdast.Bold{Children: children})
		} else {
			out = append(out, &mdast.Italic{Children: children})
		}

	case *east.Strikethrough:
		out = append(out, &mdast.Strikethrough{Children: b.inlines(node)})

	case *gast.Link:
		out = append(out, &mdast.Link{
			Label: b.inlines(node),
			URL:   string(node.Destination),
		})

	case *gast.Image:
		out = append(out, &mdast.Image{
			Alt: b.flattenText(node),
			URL: string(node.Destination),
		})

	case *gast.AutoLink:
		url := string(node.URL(b.source))
		label := string(node.Label(b.source))
		out = append(out, &mdast.Link{
			Label: []mdast.Inline{&mdast.Text{Value: label}},
			URL:   url,
		})

	case *east.TaskCheckBox:
		// 已在列表项层面处理

	case *gast.RawHTML:
		// 行内 HTML 降级为字面文本
		html := string(node.Segments.Value(b.source))
		if html != "" {
			out = append(out, &mdast.Text{Value: html})
		}

	default:
		// 未知行内节点：丢掉结构，保住内容
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			out = b.appendInline(out, c)
		}
	}
	return out
}

// codeLines 提取代码块内容行，去掉每行行尾的换行符
func (b *builder) codeLines(n gast.Node) []string {
	lines := n.Lines()
	out := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := string(seg.Value(b.source))
		out = append(out, strings.TrimSuffix(line, "\n"))
	}
	return out
}

func (b *builder) codeSpanText(n *gast.CodeSpan) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gast.Text); ok {
			sb.Write(t.Segment.Value(b.source))
		}
	}
	return sb.String()
}

// flattenText 拼接子树里所有字面文本，用于图片 alt 和表格单元格
func (b *builder) flattenText(n gast.Node) string {
	var sb strings.Builder
	var walk func(gast.Node)
	walk = func(n gast.Node) {
		switch t := n.(type) {
		case *gast.Text:
			sb.Write(t.Segment.Value(b.source))
		case *gast.String:
			sb.Write(t.Value)
		default:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		walk(c)
	}
	return sb.String()
}

// rawSource 收集块节点覆盖的原始源文本，供 pass-through 策略使用
func (b *builder) rawSource(n gast.Node) string {
	var sb strings.Builder
	var walk func(gast.Node)
	walk = func(n gast.Node) {
		switch t := n.(type) {
		case *gast.Text:
			sb.Write(t.Segment.Value(b.source))
		case *gast.String:
			sb.Write(t.Value)
		default:
			if n.Type() == gast.TypeBlock {
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					sb.Write(seg.Value(b.source))
				}
			}
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimRight(sb.String(), "\n")
}

// tableRaw 把表格还原成 "a | b" 形式的文本行
func (b *builder) tableRaw(node *east.Table) string {
	var rows []string
	for r := node.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, b.flattenText(c))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}
