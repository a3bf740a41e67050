// Package mdast 定义解析阶段产出的 Markdown 文档树
//
// 树是一次性构建的：解析器创建后不再修改，渲染完成即丢弃。
// 所有容器节点的子节点都完全包含在父节点内，不存在交叉的区间。
package mdast

// Document 是文档树的根：有序的块级节点序列
type Document struct {
	Blocks []Block
}

// Block 是块级节点的标记接口
type Block interface {
	blockNode()
}

// Paragraph 普通段落
type Paragraph struct {
	Inlines []Inline
}

// Heading 标题，Level 取 1–6
type Heading struct {
	Level   int
	Inlines []Inline
}

// List 列表；Items 中每一项本身是块序列，允许嵌套列表
type List struct {
	Ordered bool
	Start   int // 有序列表的起始编号
	Items   []*ListItem
}

// ListItem 列表项
//
// Checked 非 nil 时该项是 GFM 任务项（- [x] / - [ ]），
// 渲染时用任务符号替换普通 bullet。
type ListItem struct {
	Checked *bool
	Blocks  []Block
}

// BlockQuote 引用块，内容是任意块序列，允许嵌套
type BlockQuote struct {
	Blocks []Block
}

// CodeBlock 围栏或缩进代码块
//
// Lines 保存去掉行尾换行符的原始文本行，内容永远不会按 prose 规则转义。
type CodeBlock struct {
	Language string
	Lines    []string
}

// ThematicBreak 水平分割线
type ThematicBreak struct{}

// Unsupported 无法渲染的块（表格、HTML 块等）
//
// Raw 保留原始源文本，按配置决定丢弃还是作为字面文本输出。
type Unsupported struct {
	Raw string
}

func (*Paragraph) blockNode()     {}
func (*Heading) blockNode()       {}
func (*List) blockNode()          {}
func (*BlockQuote) blockNode()    {}
func (*CodeBlock) blockNode()     {}
func (*ThematicBreak) blockNode() {}
func (*Unsupported) blockNode()   {}

// Inline 是行内节点的标记接口
type Inline interface {
	inlineNode()
}

// Text 字面文本
type Text struct {
	Value string
}

// Bold 粗体区间
type Bold struct {
	Children []Inline
}

// Italic 斜体区间
type Italic struct {
	Children []Inline
}

// Strikethrough 删除线区间
type Strikethrough struct {
	Children []Inline
}

// InlineCode 行内代码；Code 是原始字面内容
type InlineCode struct {
	Code string
}

// Link 链接；Label 是行内节点序列（常见情况下只有一个 Text）
type Link struct {
	Label []Inline
	URL   string
}

// Image 图片；渲染前会被归一化为占位链接
type Image struct {
	Alt string
	URL string
}

// LineBreak 行内换行（soft break 或 hard break）
type LineBreak struct {
	Hard bool
}

func (*Text) inlineNode()          {}
func (*Bold) inlineNode()          {}
func (*Italic) inlineNode()        {}
func (*Strikethrough) inlineNode() {}
func (*InlineCode) inlineNode()    {}
func (*Link) inlineNode()          {}
func (*Image) inlineNode()         {}
func (*LineBreak) inlineNode()     {}

// PlainLabel 在 Label 仅由 Text 与 LineBreak 组成时返回拼接后的文本。
// 返回 false 表示 Label 含嵌套格式区间，链接不能作为单个原子输出。
func (l *Link) PlainLabel() (string, bool) {
	var sb []byte
	for _, in := range l.Label {
		switch n := in.(type) {
		case *Text:
			sb = append(sb, n.Value...)
		case *LineBreak:
			sb = append(sb, ' ')
		default:
			return "", false
		}
	}
	return string(sb), true
}
