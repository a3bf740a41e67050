package md2tgmd

import "errors"

// ErrMaxLengthTooSmall 表示配置的块长度上限小于 MinMaxLength。
// 过小的上限连一个最小的围栏代码块都装不下，无法保证输出合法。
var ErrMaxLengthTooSmall = errors.New("md2tgmd: max length too small")
