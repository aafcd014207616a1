// Package logging builds the structured loggers used by the command line tools.
package logging

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"
)

type Options struct {
	Level slog.Level

	// Destination of human readable logs, stderr if nil
	Console io.Writer

	// Colors level names on the console. Independent of color.NoColor, which only
	// governs the command output
	Color bool

	// Optional file receiving a JSON copy of all logs
	JSONFile string
}

// Parses a level name (debug, info, warn, error)
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(name)))
	return level, err
}

// Returns true if the file is a terminal
func IsTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Disables colored command output unless the file is a terminal
func ConfigureColor(file *os.File) {
	color.NoColor = !IsTerminal(file)
}

func levelColor(attributes ...color.Attribute) *color.Color {
	c := color.New(attributes...)
	c.EnableColor()
	return c
}

var levelColors = map[string]*color.Color{
	slog.LevelDebug.String(): levelColor(color.FgHiBlack),
	slog.LevelInfo.String():  levelColor(color.FgCyan),
	slog.LevelWarn.String():  levelColor(color.FgYellow),
	slog.LevelError.String(): levelColor(color.FgRed, color.Bold),
}

var levelToken = []byte("level=")

// Colors the level of each text record. The text handler quotes escape sequences
// found in attribute values, so the line is colored after formatting.
type coloredConsole struct {
	out io.Writer
}

func (c coloredConsole) Write(line []byte) (int, error) {
	start := bytes.Index(line, levelToken)
	if start < 0 {
		return c.out.Write(line)
	}

	start += len(levelToken)
	end := bytes.IndexAny(line[start:], " \n")
	if end < 0 {
		end = len(line)
	} else {
		end += start
	}

	levelColor, known := levelColors[string(line[start:end])]
	if !known {
		return c.out.Write(line)
	}

	colored := make([]byte, 0, len(line)+16)
	colored = append(colored, line[:start]...)
	colored = append(colored, levelColor.Sprint(string(line[start:end]))...)
	colored = append(colored, line[end:]...)

	if _, err := c.out.Write(colored); err != nil {
		return 0, err
	}

	return len(line), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Creates a logger writing text to the console and, if requested, JSON to a file. The
// returned closer releases the JSON file.
func New(options Options) (*slog.Logger, io.Closer, error) {
	console := options.Console
	if console == nil {
		console = os.Stderr
	}

	if options.Color {
		console = coloredConsole{out: console}
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: options.Level}),
	}

	var closer io.Closer = nopCloser{}

	if options.JSONFile != "" {
		file, err := os.OpenFile(options.JSONFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}

		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: options.Level}))
		closer = file
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}
