package md2tgmd

import "fmt"

// ConvertOptions holds options for markdown conversion.
type ConvertOptions struct {
	MaxLength   int
	Unsupported UnsupportedPolicy
	Config      *RenderConfig

	// unsupportedSet 记录 WithUnsupported 是否被显式调用过，
	// 用于区分默认值和调用方刻意覆盖 Config 的情况
	unsupportedSet bool
}

// Option is a function that configures ConvertOptions.
type Option func(*ConvertOptions)

// WithMaxLength sets the per-chunk length limit in UTF-16 code units.
// 只影响 ConvertChunks，Convert 不拆分。
func WithMaxLength(limit int) Option {
	return func(opts *ConvertOptions) {
		opts.MaxLength = limit
	}
}

// WithUnsupported sets how unsupported constructs (tables, raw HTML) are handled.
func WithUnsupported(policy UnsupportedPolicy) Option {
	return func(opts *ConvertOptions) {
		opts.Unsupported = policy
		opts.unsupportedSet = true
	}
}

// WithConfig sets a custom RenderConfig.
func WithConfig(config *RenderConfig) Option {
	return func(opts *ConvertOptions) {
		opts.Config = config
	}
}

// defaultConvertOptions returns the default conversion options.
func defaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		MaxLength:   TelegramMaxMessageLength,
		Unsupported: UnsupportedDrop,
		Config:      DefaultConfig(),
	}
}

// applyOptions applies the given options and validates the result.
func applyOptions(opts ...Option) (*ConvertOptions, error) {
	options := defaultConvertOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.MaxLength < MinMaxLength {
		return nil, fmt.Errorf("%w: got %d, minimum is %d", ErrMaxLengthTooSmall, options.MaxLength, MinMaxLength)
	}
	if options.Config == nil {
		options.Config = DefaultConfig()
	}
	return options, nil
}
