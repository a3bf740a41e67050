// Package md2tgmd 将任意 Markdown 转换为 Telegram MarkdownV2 并拆分为消息块
//
// 这个包提供了将原始 Markdown（包括 LLM 输出、GitHub README 等）转换为
// Telegram Bot API 的 MarkdownV2 方言的功能，并把结果拆分为不超过长度
// 上限（默认 4096 UTF-16 code units）的消息块，切分点永远不会破坏
// Markdown 语法。
//
// 核心是三段式管道：
//   - 结构解析：Markdown 文本 → 文档树（goldmark）
//   - 方言渲染：文档树 → 转义后的原子序列
//   - 消息拆分：原子序列 → 长度受限、各自语法完整的块列表
//
// 主要 API：
//   - Convert(): 完整转换为单个 MarkdownV2 字符串（不限长）
//   - ConvertChunks(): 转换并拆分为可直接发送的块列表
//
// 示例：
//
//	chunks, err := md2tgmd.ConvertChunks(markdown)
//	if err != nil {
//	    // 只有配置非法才会出错
//	}
//	for _, chunk := range chunks {
//	    if chunk.Oversized {
//	        // 单个不可拆分 token 超出上限，自行决定接受或拒绝
//	    }
//	    // 发送 chunk.Text
//	}
//
// 整个管道是纯函数式的同步计算：无 I/O、无共享可变状态，
// 多个 goroutine 可以并发调用而无需任何同步。
package md2tgmd

// TelegramMaxMessageLength 是 Telegram 单条消息的硬上限（UTF-16 code units）
const TelegramMaxMessageLength = 4096

// MinMaxLength 是允许配置的最小块长度
//
// 小于围栏代码的最小开销（"```\n" + "\n```" + 一个内容字符）的上限
// 无法产出任何合法的块。
const MinMaxLength = 9
