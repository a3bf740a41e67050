// md2tgmd 命令行工具：读取 Markdown，输出 Telegram MarkdownV2 消息块
//
// 输入来自指定文件或标准输入，输出写到标准输出。默认各块之间
// 用分隔行隔开；--verbose 时为每块打印带样式的长度信息。
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	md2tgmd "github.com/riverfjs/md2tgmd-go"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		md2tgmd.Logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	oversizedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func newRootCommand() *cobra.Command {
	var (
		maxLength       int
		keepUnsupported bool
		separatorLine   string
		verbose         bool
		debug           bool
	)

	rootCmd := &cobra.Command{
		Use:   "md2tgmd [file]",
		Short: "Convert Markdown to Telegram MarkdownV2 message chunks",
		Long: `md2tgmd converts arbitrary Markdown into Telegram's MarkdownV2 dialect
and splits the result into message-sized chunks that never break
Markdown syntax at the cut points.

Input is read from the given file, or from stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				md2tgmd.Logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readInput(args)
			if err != nil {
				return err
			}

			opts := []md2tgmd.Option{md2tgmd.WithMaxLength(maxLength)}
			if keepUnsupported {
				opts = append(opts, md2tgmd.WithUnsupported(md2tgmd.UnsupportedLiteral))
			}

			chunks, err := md2tgmd.ConvertChunks(string(source), opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, chunk := range chunks {
				if i > 0 {
					fmt.Fprintln(out, separatorLine)
				}
				if verbose {
					header := fmt.Sprintf("chunk %d/%d, %d units", i+1, len(chunks), chunk.Length)
					if chunk.Oversized {
						header = oversizedStyle.Render(header + ", OVERSIZED")
					} else {
						header = headerStyle.Render(header)
					}
					fmt.Fprintln(out, header)
				}
				fmt.Fprintln(out, chunk.Text)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().IntVar(&maxLength, "max-length", md2tgmd.TelegramMaxMessageLength,
		"per-chunk length limit in UTF-16 code units")
	rootCmd.Flags().BoolVar(&keepUnsupported, "keep-unsupported", false,
		"keep unsupported constructs (tables, raw HTML) as escaped literal text")
	rootCmd.Flags().StringVar(&separatorLine, "separator", "----------------",
		"line printed between chunks")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"print a header with length info before each chunk")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	return rootCmd
}

// readInput 从文件或标准输入读取 Markdown 源文本
func readInput(args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", args[0], err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
