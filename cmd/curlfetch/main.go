//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Command curlfetch downloads the file referenced by a "copy as cURL"
// command, replaying its headers.
//
//	curlfetch < command.txt
//	curlfetch -f command.txt -dir ~/Downloads
//	curlfetch -- curl 'https://example.com/book.pdf' -H 'cookie: a=b'
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.bug.st/curlfetch"
)

var (
	osArgs = os.Args
	osExit = os.Exit

	stdin  io.Reader = os.Stdin
	stderr io.Writer = os.Stderr
)

var errEmptyCommand = errors.New("please paste a curl command")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, osArgs[1:])
	stop()
	if err != nil {
		osExit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("curlfetch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", os.Getenv("CURLFETCH_CONFIG"), "Path to config file (yaml)")
	commandFile := fs.String("f", "", "Read the curl command from `file` (default: arguments, then stdin)")
	dir := fs.String("dir", "", "Directory where the file is saved (default: current directory)")
	timeout := fs.Duration("timeout", 0, "Overall request timeout (0 = none)")
	inactivity := fs.Duration("inactivity-timeout", 0, "Abort if no data is received for this long (0 = none)")
	exclude := fs.String("exclude", "", "Comma separated headers to drop (default: range,if-none-match,if-modified-since)")
	noReveal := fs.Bool("no-reveal", false, "Do not open the file manager after the download")
	decode := fs.Bool("decode", false, "Decompress gzip, deflate and zstd encoded responses")
	allowNon2xx := fs.Bool("allow-non-2xx", false, "Save the body even if the server answers with an error status")
	progress := fs.Bool("progress", false, "Show a progress bar")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			cfg.Dir = *dir
		case "timeout":
			cfg.Timeout = *timeout
		case "inactivity-timeout":
			cfg.InactivityTimeout = *inactivity
		case "exclude":
			cfg.Exclusions = splitList(*exclude)
		case "no-reveal":
			reveal := !*noReveal
			cfg.Reveal = &reveal
		case "decode":
			cfg.DecodeContentEncoding = *decode
		case "allow-non-2xx":
			cfg.AllowNon2xx = *allowNon2xx
		case "progress":
			cfg.Progress = *progress
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	log, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	defer func() { _ = log.Sync() }()

	command, err := readCommand(*commandFile, fs.Args())
	if err != nil {
		log.Errorw("failed to read curl command", "err", err)
		return err
	}
	if command == "" {
		log.Warn("Please paste a curl command.")
		return errEmptyCommand
	}

	fetchCfg := cfg.fetchConfig()
	var bar *progressbar.ProgressBar
	if cfg.Progress {
		fetchCfg.PollInterval = 100 * time.Millisecond
		fetchCfg.PollFunction = func(current, size int64) {
			if bar == nil {
				bar = newProgressBar(size)
			}
			_ = bar.Set64(current)
		}
	}

	log.Debugw("starting download", "dir", fetchCfg.Dir, "exclusions", cfg.Exclusions)
	res, err := curlfetch.DownloadFromCurlWithConfig(ctx, command, log.sink, fetchCfg)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		log.Debugw("download failed", "kind", errorKind(err))
		return err
	}
	log.Infow("download completed", "path", res.Path, "bytes", res.Size, "status", res.StatusCode)
	return nil
}

// readCommand returns the command from file, from args, or from stdin, in
// this order of preference.
func readCommand(file string, args []string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	if len(args) > 0 {
		quoted := make([]string, len(args))
		for i, arg := range args {
			quoted[i] = quoteArg(arg)
		}
		return strings.Join(quoted, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// quoteArg quotes an argument already split by the shell, so it survives
// a second tokenization as a single word. Runs of single quotes go inside
// double quotes and everything else inside single quotes; adjacent quoted
// sections are joined back into one word.
func quoteArg(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\r\n'\"") {
		return arg
	}
	if arg == "" {
		return "''"
	}
	var sb strings.Builder
	for arg != "" {
		if arg[0] == '\'' {
			n := len(arg) - len(strings.TrimLeft(arg, "'"))
			sb.WriteString(`"` + arg[:n] + `"`)
			arg = arg[n:]
			continue
		}
		n := strings.IndexByte(arg, '\'')
		if n < 0 {
			n = len(arg)
		}
		sb.WriteString("'" + arg[:n] + "'")
		arg = arg[n:]
	}
	return sb.String()
}

func splitList(s string) []string {
	res := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res
}

func newProgressBar(size int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(stderr),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(stderr) }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func errorKind(err error) string {
	var (
		netErr     *curlfetch.NetworkError
		fsErr      *curlfetch.FileSystemError
		invalidErr *curlfetch.InvalidFormatError
	)
	switch {
	case errors.Is(err, curlfetch.ErrNoURL):
		return "no-url"
	case errors.Is(err, curlfetch.ErrNoFilename):
		return "no-filename"
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &fsErr):
		return "filesystem"
	case errors.As(err, &invalidErr):
		return "invalid-format"
	default:
		return "unknown"
	}
}
