package md2tgmd

import "github.com/riverfjs/md2tgmd-go/internal/splitter"

// Chunk 是一条可直接发送的消息块
//
// Text 是语法完整的 MarkdownV2 文本，Length 是它的 UTF-16 长度。
// Oversized 为 true 表示块内包含一个无法拆分的 token（长链接、
// 超长行内代码），其长度超过了上限，调用方需要自行决定取舍。
type Chunk = splitter.Chunk
