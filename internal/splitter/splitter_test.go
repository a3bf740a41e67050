package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/md2tgmd-go/internal/render"
	"github.com/riverfjs/md2tgmd-go/internal/textlen"
)

func text(s string) render.Atom {
	return render.Atom{Kind: render.AtomText, Text: s, Len: textlen.UTF16(s)}
}

func lineBreak() render.Atom {
	return render.Atom{Kind: render.AtomLineBreak, Text: "\n", Len: 1}
}

func spanOpen(marker string) render.Atom {
	return render.Atom{Kind: render.AtomSpanOpen, Text: marker, Close: marker, Len: textlen.UTF16(marker)}
}

func spanClose(marker string) render.Atom {
	return render.Atom{Kind: render.AtomSpanClose, Text: marker, Len: textlen.UTF16(marker)}
}

func fenceOpen(lang string) render.Atom {
	open := "```" + lang + "\n"
	return render.Atom{Kind: render.AtomFenceOpen, Text: open, Close: "\n```", Len: textlen.UTF16(open)}
}

func fenceClose() render.Atom {
	return render.Atom{Kind: render.AtomFenceClose, Text: "\n```", Len: 4}
}

func atomic(s string) render.Atom {
	return render.Atom{Kind: render.AtomAtomic, Text: s, Len: textlen.UTF16(s)}
}

func texts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

// TestSplit_NoSplitNeeded 全部放得下时输出单块
func TestSplit_NoSplitNeeded(t *testing.T) {
	chunks := Split([]render.Atom{text("hello"), lineBreak(), text("world")}, 100)
	assert.Equal(t, []string{"hello\nworld"}, texts(chunks))
}

// TestSplit_EmptyAtoms 空序列不产出块
func TestSplit_EmptyAtoms(t *testing.T) {
	assert.Empty(t, Split(nil, 100))
	assert.Empty(t, Split([]render.Atom{lineBreak(), lineBreak()}, 100))
}

// TestSplit_CutConsumesLineBreak 触发切分的换行被边界消耗
func TestSplit_CutConsumesLineBreak(t *testing.T) {
	chunks := Split([]render.Atom{text("12345"), lineBreak(), text("67890")}, 5)
	assert.Equal(t, []string{"12345", "67890"}, texts(chunks))
}

// TestSplit_ReserveKeepsRoomForClosers 预算始终为未闭合标记预留闭合空间
func TestSplit_ReserveKeepsRoomForClosers(t *testing.T) {
	// "*" + "abcd" + 预留 "*" 正好 6，再来一个字符就得切
	atoms := []render.Atom{spanOpen("*"), text("abcd efgh"), spanClose("*")}
	chunks := Split(atoms, 6)

	require.Len(t, chunks, 2)
	assert.Equal(t, "*abcd*", chunks[0].Text)
	assert.Equal(t, "*efgh*", chunks[1].Text)
	for i, c := range chunks {
		assert.LessOrEqual(t, c.Length, 6, "chunk %d", i)
	}
}

// TestSplit_ReopenedMarkerCountsTowardBudget 重开前缀占新块预算
func TestSplit_ReopenedMarkerCountsTowardBudget(t *testing.T) {
	atoms := []render.Atom{spanOpen("*"), text("aaaa bbbb cccc"), spanClose("*")}
	chunks := Split(atoms, 9)

	assert.Equal(t, []string{"*aaaa*", "*bbbb*", "*cccc*"}, texts(chunks))
}

// TestSplit_NestedSpansCloseInOrder 嵌套区间按栈序闭合、按原序重开
func TestSplit_NestedSpansCloseInOrder(t *testing.T) {
	atoms := []render.Atom{
		spanOpen("*"),
		text("aa "),
		spanOpen("_"),
		text("bbbb cccc"),
		spanClose("_"),
		spanClose("*"),
	}
	chunks := Split(atoms, 11)

	require.Len(t, chunks, 2)
	assert.Equal(t, "*aa _bbbb_*", chunks[0].Text)
	assert.Equal(t, "*_cccc_*", chunks[1].Text)
}

// TestSplit_AtomicTokenNeverCut 原子 token 放不下时整体成超长块
func TestSplit_AtomicTokenNeverCut(t *testing.T) {
	link := "[docs](https://example.com/very/long/path)"
	chunks := Split([]render.Atom{text("intro"), lineBreak(), atomic(link)}, 10)

	require.Len(t, chunks, 2)
	assert.Equal(t, "intro", chunks[0].Text)
	assert.False(t, chunks[0].Oversized)
	assert.Equal(t, link, chunks[1].Text)
	assert.True(t, chunks[1].Oversized)
	assert.Equal(t, textlen.UTF16(link), chunks[1].Length)
}

// TestSplit_PrefersEmptyStackBoundary 空栈切点优先于换行切点
func TestSplit_PrefersEmptyStackBoundary(t *testing.T) {
	atoms := []render.Atom{
		spanOpen("*"), text("aa"), spanClose("*"), // 空栈位置
		text(" tail that overflows the budget"),
	}
	chunks := Split(atoms, 10)

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, "*aa* tail", chunks[0].Text)
}

// TestSplit_NoBlankChunks 切剩的空白不单独成块
func TestSplit_NoBlankChunks(t *testing.T) {
	atoms := []render.Atom{
		text("1234567890"),
		lineBreak(), lineBreak(), lineBreak(),
	}
	chunks := Split(atoms, 10)
	require.Len(t, chunks, 1)
	assert.Equal(t, "1234567890", chunks[0].Text)
}

// TestSplit_DanglingQuotePrefixTrimmed 块尾孤悬的引用前缀被去掉，
// 新块重新带上前缀
func TestSplit_DanglingQuotePrefixTrimmed(t *testing.T) {
	atoms := []render.Atom{
		text(">"), text("abcdefgh"),
		lineBreak(), text(">"),
		text("0123456789012345"),
	}
	chunks := Split(atoms, 10)

	for i, c := range chunks {
		trimmed := strings.TrimRight(c.Text, "\n")
		assert.False(t, strings.HasSuffix(trimmed, "\n>"), "chunk %d ends with bare quote prefix", i)
		assert.NotEqual(t, ">", trimmed, "chunk %d is prefix only", i)
	}
	assert.Equal(t, ">abcdefgh", chunks[0].Text)
}

// TestSplit_LongUnbrokenCodeLine 围栏首行无空白且超出预算时就地硬切，
// 不会先切出只含围栏标记的空块
func TestSplit_LongUnbrokenCodeLine(t *testing.T) {
	line := strings.Repeat("y", 250)
	atoms := []render.Atom{fenceOpen(""), text(line), fenceClose()}
	chunks := Split(atoms, 100)

	require.Len(t, chunks, 3)
	assert.Equal(t, "```\n"+strings.Repeat("y", 92)+"\n```", chunks[0].Text)
	assert.Equal(t, "```\n"+strings.Repeat("y", 92)+"\n```", chunks[1].Text)
	assert.Equal(t, "```\n"+strings.Repeat("y", 66)+"\n```", chunks[2].Text)
	for i, c := range chunks {
		assert.LessOrEqual(t, c.Length, 100, "chunk %d", i)
		assert.NotEqual(t, "```\n```", c.Text, "chunk %d is an empty fence", i)
	}
}

// TestSplit_TrailingBlankCodeLine 围栏尾部空行触发切分后，
// 剩下的闭栏标记不单独成块
func TestSplit_TrailingBlankCodeLine(t *testing.T) {
	atoms := []render.Atom{fenceOpen(""), text("content"), lineBreak(), fenceClose()}
	chunks := Split(atoms, 15)

	require.Len(t, chunks, 1)
	assert.Equal(t, "```\ncontent\n```", chunks[0].Text)
}

// TestSplit_OversizedAtomicInsideSpan 区间刚开就遇到超长 token 时，
// 超长块带上开标记并闭合，下一块重开区间
func TestSplit_OversizedAtomicInsideSpan(t *testing.T) {
	link := "[docs](https://example.com/very/long/path/elsewhere)"
	atoms := []render.Atom{spanOpen("*"), atomic(link), text(" tail"), spanClose("*")}
	chunks := Split(atoms, 20)

	require.Len(t, chunks, 2)
	assert.Equal(t, "*"+link+"*", chunks[0].Text)
	assert.True(t, chunks[0].Oversized)
	assert.Equal(t, "* tail*", chunks[1].Text)
}

// TestSplit_UTF16Budget 预算按 UTF-16 code unit 计，emoji 占两格
func TestSplit_UTF16Budget(t *testing.T) {
	chunks := Split([]render.Atom{text("🌟🌟🌟 🌟🌟🌟")}, 6)

	require.Len(t, chunks, 2)
	assert.Equal(t, "🌟🌟🌟", chunks[0].Text)
	assert.Equal(t, "🌟🌟🌟", chunks[1].Text)
	assert.Equal(t, 6, chunks[0].Length)
}

// TestSplit_HardCutAtRuneBoundary 无空白可用时在 rune 边界硬切
func TestSplit_HardCutAtRuneBoundary(t *testing.T) {
	chunks := Split([]render.Atom{text("🌟🌟🌟")}, 5)

	require.Len(t, chunks, 2)
	// 5 格放不下第三个 emoji 的两格，只能装两个
	assert.Equal(t, "🌟🌟", chunks[0].Text)
	assert.Equal(t, "🌟", chunks[1].Text)
}
