// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

const (
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40
)

var termLevels = map[slog.Level]struct {
	tag   string
	color int
}{
	LevelTrace: {"TRCE", 34},
	LevelDebug: {"DBUG", 36},
	LevelInfo:  {"INFO", 32},
	LevelWarn:  {"WARN", 33},
	LevelError: {"EROR", 31},
	LevelCrit:  {"CRIT", 35},
}

// TerminalHandler formats records for a human reading a terminal.
//
//	INFO [01-02|15:04:05.000] transfer applied       pkg=balances from=0x.. amount=100
type TerminalHandler struct {
	mu       *sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	prefix   string
	attrs    []slog.Attr
}

// NewTerminalHandler returns a terminal handler printing every level.
func NewTerminalHandler(wr io.Writer, useColor bool) *TerminalHandler {
	var level slog.LevelVar
	level.Set(levelMaxVerbosity)
	return NewTerminalHandlerWithLevel(wr, &level, useColor)
}

// NewTerminalHandlerWithLevel returns a terminal handler printing records at or above lvl.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		mu:       &sync.Mutex{},
		wr:       wr,
		lvl:      lvl,
		useColor: useColor,
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	tag, color := "????", 0
	if t, ok := termLevels[r.Level]; ok {
		tag, color = t.tag, t.color
	}
	h.paint(&b, color, tag)
	fmt.Fprintf(&b, "[%s] %s", r.Time.Format(termTimeFormat), r.Message)

	if r.NumAttrs() > 0 || len(h.attrs) > 0 {
		if pad := termMsgJust - len(r.Message); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}

	write := func(key string, attr slog.Attr) {
		attr = formatValue(attr)
		b.WriteByte(' ')
		h.paint(&b, color, key+attr.Key)
		b.WriteByte('=')
		b.WriteString(quoteIfNeeded(attr.Value.String()))
	}
	for _, attr := range h.attrs {
		write("", attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		write(h.prefix, attr)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.wr, b.String())
	return err
}

func (h *TerminalHandler) paint(b *strings.Builder, color int, s string) {
	if h.useColor && color != 0 {
		fmt.Fprintf(b, "\x1b[%dm%s\x1b[0m", color, s)
		return
	}
	b.WriteString(s)
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

// WithGroup qualifies the keys of later attributes with name.
func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)
	for _, attr := range attrs {
		attr.Key = h.prefix + attr.Key
		c.attrs = append(c.attrs, attr)
	}
	return &c
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}
