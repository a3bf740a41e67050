package render

import "strings"

// proseReserved 是 MarkdownV2 在普通文本里要求转义的保留字符集
const proseReserved = "\\_*[]()~`>#+-=|{}.!"

// EscapeProse 对普通文本做 MarkdownV2 转义
//
// 单趟扫描，保留集里的每个字符前插入一个反斜杠。
func EscapeProse(text string) string {
	if !strings.ContainsAny(text, proseReserved) {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text) * 2)
	for _, ch := range text {
		if ch < 0x80 && strings.ContainsRune(proseReserved, ch) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

// EscapeCode 对行内代码和代码块内容做转义
//
// 代码内容必须原样呈现，只有反斜杠和反引号需要转义。
func EscapeCode(text string) string {
	if !strings.ContainsAny(text, "\\`") {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text) * 2)
	for _, ch := range text {
		if ch == '\\' || ch == '`' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

// EscapeURL 对链接 URL 做转义
//
// URL 原样输出，只转义会提前闭合链接语法的右括号（和反斜杠本身）。
func EscapeURL(url string) string {
	if !strings.ContainsAny(url, "\\)") {
		return url
	}
	var sb strings.Builder
	sb.Grow(len(url) * 2)
	for _, ch := range url {
		if ch == '\\' || ch == ')' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}
