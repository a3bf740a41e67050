package md2tgmd

import "github.com/riverfjs/md2tgmd-go/internal/textlen"

// UTF16Len 返回字符串的 UTF-16 code unit 长度
//
// Telegram 以 UTF-16 code unit 计量消息长度和 entity 偏移，
// 这和 Go 的 len()（字节数）以及 rune 数都不同：
// BMP 外的字符（emoji 等）算 2 个单位。
func UTF16Len(s string) int {
	return textlen.UTF16(s)
}
