package md2tgmd

import (
	"strings"

	"github.com/riverfjs/md2tgmd-go/internal/parser"
	"github.com/riverfjs/md2tgmd-go/internal/render"
	"github.com/riverfjs/md2tgmd-go/internal/splitter"
)

// Convert 将 Markdown 转换为单个 MarkdownV2 字符串（不拆分）
//
// 任意输入都会产出合法的 MarkdownV2：无法识别的结构按原样文本
// 转义后保留，永远不会因为输入而报错。只有配置非法时返回 error。
func Convert(markdown string, opts ...Option) (string, error) {
	options, err := applyOptions(opts...)
	if err != nil {
		return "", err
	}
	atoms := renderAtoms(markdown, options)
	return render.Flatten(atoms), nil
}

// ConvertChunks 将 Markdown 转换为 MarkdownV2 并拆分为长度受限的消息块
//
// 每个块都是语法完整的 MarkdownV2：跨块的格式区间在边界处闭合、
// 在下一块开头重开，代码围栏同理。空输入返回 nil。
func ConvertChunks(markdown string, opts ...Option) ([]Chunk, error) {
	options, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	atoms := renderAtoms(markdown, options)
	chunks := splitter.Split(atoms, options.MaxLength)
	for _, c := range chunks {
		if c.Oversized {
			Logger.Warn("chunk exceeds length limit, unsplittable token",
				"length", c.Length, "limit", options.MaxLength)
		}
	}
	return chunks, nil
}

// renderAtoms 执行管道的前两段：解析 + 渲染
//
// 输入不做预裁剪：首尾空行由解析器自然忽略，缩进的代码块不受影响。
func renderAtoms(markdown string, options *ConvertOptions) []render.Atom {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}
	cfg := options.Config
	if options.unsupportedSet && options.Unsupported != cfg.Unsupported {
		// WithUnsupported 覆盖 Config 里的策略
		clone := *cfg
		clone.Unsupported = options.Unsupported
		cfg = &clone
	}
	doc := parser.Parse(markdown)
	return render.New(cfg).Render(doc)
}
