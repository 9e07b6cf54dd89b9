// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	termMsgJust       = 40
	termCtxMaxPadding = 40
)

func levelColor(l slog.Level) int {
	switch {
	case l >= LevelCrit:
		return 35
	case l >= slog.LevelError:
		return 31
	case l >= slog.LevelWarn:
		return 33
	case l >= slog.LevelInfo:
		return 32
	case l >= slog.LevelDebug:
		return 36
	default:
		return 34
	}
}

// format renders a record as
//
//	LEVEL[TIME] MESSAGE                            key=value key=value
func (h *TerminalHandler) format(buf []byte, r slog.Record, usecolor bool) []byte {
	b := bytes.NewBuffer(buf)
	lvl := LevelAlignedString(r.Level)
	if usecolor {
		fmt.Fprintf(b, "\x1b[%dm%s\x1b[0m", levelColor(r.Level), lvl)
	} else {
		b.WriteString(lvl)
	}
	b.WriteString("[")
	b.WriteString(r.Time.Format(termTimeFormat))
	b.WriteString("] ")
	b.WriteString(r.Message)

	length := utf8.RuneCountInString(r.Message)
	if (r.NumAttrs()+len(h.attrs)) > 0 && length < termMsgJust {
		b.Write(bytes.Repeat([]byte{' '}, termMsgJust-length))
	}

	h.formatAttrs(b, r, usecolor)
	b.WriteByte('\n')
	return b.Bytes()
}

func (h *TerminalHandler) formatAttrs(b *bytes.Buffer, r slog.Record, color bool) {
	writeAttr := func(attr slog.Attr, last bool) {
		attr = builtinReplaceTerminal(nil, attr)
		b.WriteByte(' ')
		if color {
			fmt.Fprintf(b, "\x1b[%dm%s\x1b[0m=", levelColor(r.Level), attr.Key)
		} else {
			b.WriteString(attr.Key)
			b.WriteByte('=')
		}
		val := formatValue(attr.Value)
		b.WriteString(val)

		// pad values of repeated keys to line up columns
		length := utf8.RuneCountInString(val)
		padding := h.fieldPadding[attr.Key]
		if padding < length && length <= termCtxMaxPadding {
			padding = length
			h.fieldPadding[attr.Key] = padding
		}
		if !last && length < padding {
			b.Write(bytes.Repeat([]byte{' '}, padding-length))
		}
	}
	n := 0
	total := len(h.attrs) + r.NumAttrs()
	for _, attr := range h.attrs {
		n++
		writeAttr(attr, n == total)
	}
	r.Attrs(func(attr slog.Attr) bool {
		n++
		writeAttr(attr, n == total)
		return true
	})
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindTime:
		return v.Time().Format(timeFormat)
	default:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprintf("%+v", v.Any())
		}
	}
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}
