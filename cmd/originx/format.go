package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

const timestampLayout = "Jan 2, 2006, 3:04:05 PM"

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "unknown"
	}
	return ts.Local().Format(timestampLayout)
}

func formatAge(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return humanize.Time(ts)
}

// shortFingerprint keeps the first and last 12 hex characters.
func shortFingerprint(fp string) string {
	if len(fp) <= 27 {
		return fp
	}
	return fp[:12] + "..." + fp[len(fp)-12:]
}

func formatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

func assetsSecured(n int) string {
	if n == 1 {
		return "1 asset secured"
	}
	return fmt.Sprintf("%s assets secured", humanize.Comma(int64(n)))
}

type field struct {
	label string
	value string
}

func writeFields(out io.Writer, fields []field) {
	width := 0
	for _, f := range fields {
		if len(f.label) > width {
			width = len(f.label)
		}
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(out, "%s%-*s %s\n", statusIndent, width+1, f.label+":", f.value)
	}
}
