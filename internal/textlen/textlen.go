// Package textlen 提供 UTF-16 code unit 长度计算
//
// Telegram 以 UTF-16 code unit 计量消息长度限制，而不是 Go 的字节或 rune。
package textlen

// UTF16 returns the length of text measured in UTF-16 code units.
// Characters outside the BMP (codepoint > 0xFFFF) take 2 code units
// (a surrogate pair); all others take 1.
func UTF16(text string) int {
	count := 0
	for _, r := range text {
		if r > 0xFFFF {
			count += 2
		} else {
			count++
		}
	}
	return count
}
