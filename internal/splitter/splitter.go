// Package splitter 把渲染器输出的原子序列打包为长度受限的消息块
//
// 单趟从左到右贪心打包，随走随维护一个"当前打开的区间/围栏"栈。
// 跨块边界时用栈里记录的标记闭合当前块、在新块开头重开，保证每个块
// 独立合法：区间配对、围栏闭合、原子 token 永不截断。
//
// 溢出时的切点优先级（高到低）：
//  1. 块内最晚的空栈位置（无需重开任何标记）
//  2. 最晚的换行原子
//  3. 溢出文本段内部的空白边界
//  4. 强制在当前位置闭栈切块
//
// 单个原子 token 超出预算时整体作为一个超长块输出并打上标记，
// 绝不拆碎语法。
package splitter

import (
	"strings"
	"unicode"

	"github.com/riverfjs/md2tgmd-go/internal/render"
	"github.com/riverfjs/md2tgmd-go/internal/textlen"
)

// Chunk 一个最终输出块
//
// Oversized 仅在块内是单个无法缩小的原子 token（超长链接或行内代码）
// 时为 true，此时 Length 超过配置上限，由调用方决定接受还是拒绝。
type Chunk struct {
	Text      string
	Length    int
	Oversized bool
}

// Split 将原子序列打包为不超过 limit 的块序列
//
// limit 的合法性由调用方保证（见根包的配置校验）。
func Split(atoms []render.Atom, limit int) []Chunk {
	p := &packer{limit: limit}
	for _, a := range atoms {
		p.push(a)
	}
	p.finalize()
	return p.chunks
}

// stackEntry 记录一个当前打开的区间或围栏
type stackEntry struct {
	open     string
	close    string
	closeLen int
}

// piece 是已接受进当前块的原子，连同接受后的栈快照
type piece struct {
	atom       render.Atom
	stackAfter []stackEntry
}

type packer struct {
	limit  int
	chunks []Chunk

	// 当前块状态
	prefix    string // 块首重开的标记
	prefixLen int
	pieces    []piece
	curLen    int
	stack     []stackEntry
}

func (p *packer) chunkLen() int {
	return p.prefixLen + p.curLen
}

func (p *packer) closeReserve() int {
	total := 0
	for _, e := range p.stack {
		total += e.closeLen
	}
	return total
}

func (p *packer) push(a render.Atom) {
	// 块首不接受换行和纯空白文本，新块不以空行开头
	if len(p.pieces) == 0 {
		if a.Kind == render.AtomLineBreak {
			return
		}
		if a.Kind == render.AtomText && strings.TrimSpace(a.Text) == "" {
			return
		}
	}

	switch a.Kind {
	case render.AtomSpanClose, render.AtomFenceClose:
		// 闭标记的长度已包含在预留里，总能放下
		p.accept(a)
		return
	}

	reserve := p.closeReserve()
	if a.Kind == render.AtomSpanOpen || a.Kind == render.AtomFenceOpen {
		reserve += textlen.UTF16(a.Close)
	}
	if p.chunkLen()+a.Len+reserve <= p.limit {
		p.accept(a)
		return
	}
	p.overflow(a)
}

// accept 将原子并入当前块并更新栈
func (p *packer) accept(a render.Atom) {
	switch a.Kind {
	case render.AtomSpanOpen, render.AtomFenceOpen:
		p.stack = append(p.stack, stackEntry{
			open:     a.Text,
			close:    a.Close,
			closeLen: textlen.UTF16(a.Close),
		})
	case render.AtomSpanClose, render.AtomFenceClose:
		if len(p.stack) > 0 {
			p.stack = p.stack[:len(p.stack)-1]
		}
	}
	p.pieces = append(p.pieces, piece{atom: a, stackAfter: cloneStack(p.stack)})
	p.curLen += a.Len
}

// overflow 处理放不进当前块的原子
//
// 块里只有标记和空白时不走切块路径：切出去只会是空围栏、空区间
// 一类的垃圾块，直接就地细分来的原子。
func (p *packer) overflow(a render.Atom) {
	if p.hasVisibleContent(len(p.pieces)) {
		// 栈已空且来的是文本段：先用空白前缀填满，切点仍是空栈位置
		if len(p.stack) == 0 && a.Kind == render.AtomText {
			if fit, rest, ok := p.fitAtWhitespace(a.Text); ok {
				p.accept(runAtom(fit))
				p.cutAt(len(p.pieces)-1, false)
				p.pushRun(rest)
				return
			}
		}
		if idx, ok := p.lastEmptyStackBoundary(); ok {
			p.cutAt(idx, false)
			p.push(a)
			return
		}
		if idx, ok := p.lastLineBreak(); ok {
			p.cutAt(idx, true)
			p.push(a)
			return
		}
		if a.Kind == render.AtomText {
			if fit, rest, ok := p.fitAtWhitespace(a.Text); ok {
				p.accept(runAtom(fit))
				p.cutAt(len(p.pieces)-1, false)
				p.pushRun(rest)
				return
			}
		}
		// 没有任何安全边界：在当前位置闭栈切块
		p.cutAt(len(p.pieces)-1, false)
		p.push(a)
		return
	}

	// 没有可见内容兜底的块：细分或整体超长输出
	switch a.Kind {
	case render.AtomText:
		p.subdivideRun(a.Text)
	case render.AtomAtomic:
		p.emitOversized(a)
	default:
		// 标记原子本身不会超过合法的 limit，保底直接接受
		p.accept(a)
	}
}

// lastEmptyStackBoundary 返回块内最晚的空栈切点
func (p *packer) lastEmptyStackBoundary() (int, bool) {
	for i := len(p.pieces) - 1; i >= 0; i-- {
		if len(p.pieces[i].stackAfter) == 0 && p.hasVisibleContent(i+1) {
			return i, true
		}
	}
	return 0, false
}

// lastLineBreak 返回块内最晚的换行原子下标
func (p *packer) lastLineBreak() (int, bool) {
	for i := len(p.pieces) - 1; i >= 0; i-- {
		if p.pieces[i].atom.Kind == render.AtomLineBreak && p.hasVisibleContent(i) {
			return i, true
		}
	}
	return 0, false
}

// hasVisibleContent 报告 pieces[:end] 是否含非空白的实际内容，
// 防止切出只有标记和空白的无效块
func (p *packer) hasVisibleContent(end int) bool {
	for i := 0; i < end && i < len(p.pieces); i++ {
		a := p.pieces[i].atom
		switch a.Kind {
		case render.AtomText, render.AtomAtomic:
			// 纯引用前缀不算内容
			if strings.Trim(strings.TrimSpace(a.Text), ">") != "" {
				return true
			}
		}
	}
	return false
}

// fitAtWhitespace 在剩余预算内找 text 的最后一个空白边界
//
// 返回可放入当前块的前缀和去掉该空白字符后的剩余文本。
func (p *packer) fitAtWhitespace(text string) (fit, rest string, ok bool) {
	avail := p.limit - p.chunkLen() - p.closeReserve()
	if avail < 1 {
		return "", "", false
	}
	used := 0
	lastWS := -1
	wsWidth := 0
	for i, ch := range text {
		w := 1
		if ch > 0xFFFF {
			w = 2
		}
		// 边界空白被切分消耗，本身可以越过预算
		if unicode.IsSpace(ch) && i > 0 {
			lastWS = i
			wsWidth = len(string(ch))
		}
		if used+w > avail {
			break
		}
		used += w
	}
	if lastWS <= 0 {
		return "", "", false
	}
	return text[:lastWS], text[lastWS+wsWidth:], true
}

// pushRun 把切剩的文本段重新进入打包流程
func (p *packer) pushRun(rest string) {
	rest = strings.TrimLeft(rest, " \t")
	if rest == "" {
		return
	}
	p.push(runAtom(rest))
}

// subdivideRun 空块里超长文本段的细分：优先空白边界，否则硬切
func (p *packer) subdivideRun(text string) {
	for text != "" {
		if len(p.pieces) == 0 && p.prefix == "" {
			text = strings.TrimLeft(text, " \t\n")
			if text == "" {
				return
			}
		}
		avail := p.limit - p.chunkLen() - p.closeReserve()
		if avail < 1 {
			avail = 1
		}
		if textlen.UTF16(text) <= avail {
			p.accept(runAtom(text))
			return
		}

		if fit, rest, ok := p.fitAtWhitespace(text); ok {
			p.accept(runAtom(fit))
			p.cutAt(len(p.pieces)-1, false)
			text = strings.TrimLeft(rest, " \t")
			continue
		}

		// 无空白可用，在 rune 边界硬切
		used := 0
		cut := 0
		for i, ch := range text {
			w := 1
			if ch > 0xFFFF {
				w = 2
			}
			if used+w > avail {
				break
			}
			used += w
			cut = i + len(string(ch))
		}
		if cut == 0 {
			// 预算连一个字符都放不下，强制推进
			_, size := firstRune(text)
			cut = size
		}
		p.accept(runAtom(text[:cut]))
		p.cutAt(len(p.pieces)-1, false)
		text = text[cut:]
	}
}

// emitOversized 把单个放不下的原子 token 作为独立超长块输出
//
// 块里可能已有未切出的开标记原子，一并带上。
func (p *packer) emitOversized(a render.Atom) {
	var sb strings.Builder
	sb.WriteString(p.prefix)
	for _, pc := range p.pieces {
		sb.WriteString(pc.atom.Text)
	}
	sb.WriteString(a.Text)
	for i := len(p.stack) - 1; i >= 0; i-- {
		sb.WriteString(p.stack[i].close)
	}
	text := sb.String()
	p.chunks = append(p.chunks, Chunk{
		Text:      text,
		Length:    textlen.UTF16(text),
		Oversized: true,
	})
	p.beginChunk(p.stack)
}

// cutAt 在 pieces[cutIdx] 之后收束当前块并开启新块
//
// dropCut 为 true 时切点原子（触发切分的换行）本身被边界消耗，
// 不进入任何一侧。切点之后已接受的原子转移到新块重新打包。
func (p *packer) cutAt(cutIdx int, dropCut bool) {
	headEnd := cutIdx + 1
	if dropCut {
		headEnd = cutIdx
	}
	snapshot := p.pieces[cutIdx].stackAfter
	tail := p.pieces[cutIdx+1:]

	var sb strings.Builder
	sb.WriteString(p.prefix)
	for _, pc := range p.pieces[:headEnd] {
		sb.WriteString(pc.atom.Text)
	}
	content := strings.TrimRight(sb.String(), " \t\n")
	if len(snapshot) == 0 {
		content = trimDanglingQuote(content)
	}
	for i := len(snapshot) - 1; i >= 0; i-- {
		content += snapshot[i].close
	}

	// 纯标记、纯空白的头部不成块
	if p.hasVisibleContent(headEnd) {
		length := textlen.UTF16(content)
		p.chunks = append(p.chunks, Chunk{
			Text:      content,
			Length:    length,
			Oversized: length > p.limit,
		})
	}

	p.beginChunk(snapshot)
	for _, pc := range tail {
		p.push(pc.atom)
	}
}

// beginChunk 以给定栈快照开启新块，重开所有未闭合标记
func (p *packer) beginChunk(snapshot []stackEntry) {
	var sb strings.Builder
	for _, e := range snapshot {
		sb.WriteString(e.open)
	}
	p.prefix = sb.String()
	p.prefixLen = textlen.UTF16(p.prefix)
	p.stack = cloneStack(snapshot)
	p.pieces = nil
	p.curLen = 0
}

// finalize 输入结束：闭合剩余栈并收束最后一个块
func (p *packer) finalize() {
	if !p.hasVisibleContent(len(p.pieces)) {
		return
	}
	var sb strings.Builder
	sb.WriteString(p.prefix)
	for _, pc := range p.pieces {
		sb.WriteString(pc.atom.Text)
	}
	content := strings.TrimRight(sb.String(), " \t\n")
	if len(p.stack) == 0 {
		content = trimDanglingQuote(content)
	}
	for i := len(p.stack) - 1; i >= 0; i-- {
		content += p.stack[i].close
	}
	length := textlen.UTF16(content)
	p.chunks = append(p.chunks, Chunk{
		Text:      content,
		Length:    length,
		Oversized: length > p.limit,
	})
}

// trimDanglingQuote 去掉块尾只剩 ">" 引用前缀的行
//
// 切点落在引用前缀和行内容之间时，前缀会孤悬在上一块末尾。
func trimDanglingQuote(content string) string {
	for {
		content = strings.TrimRight(content, " \t\n")
		idx := strings.LastIndexByte(content, '\n')
		line := content[idx+1:]
		if line == "" || strings.Trim(line, ">") != "" {
			return content
		}
		if idx < 0 {
			return ""
		}
		content = content[:idx]
	}
}

func runAtom(text string) render.Atom {
	return render.Atom{
		Kind: render.AtomText,
		Text: text,
		Len:  textlen.UTF16(text),
	}
}

func cloneStack(s []stackEntry) []stackEntry {
	out := make([]stackEntry, len(s))
	copy(out, s)
	return out
}

func firstRune(s string) (rune, int) {
	for i, r := range s {
		_ = i
		return r, len(string(r))
	}
	return 0, 0
}
