package render

import (
	"github.com/deframe/deframe/fragment"
	"github.com/deframe/deframe/frame"
	"github.com/deframe/deframe/internal/pool"
)

// DisplayFrame renders f per spec §4.11: an optional timestamp rendering
// followed by a space, the level label, a space, and the formatted message.
// colored selects terminal SGR styling for the level label; uncolored output
// is byte-stable.
func DisplayFrame(parser fragment.Parser, f frame.Frame, colored bool) string {
	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	if f.HasTimestamp {
		writeFormat(buf, parser, f.TimestampFormat, f.TimestampArgs, fragment.NoHint)
		buf.MustWrite([]byte(" "))
	}

	buf.MustWrite([]byte(f.Level.Colorize(colored)))
	buf.MustWrite([]byte(" "))

	writeFormat(buf, parser, f.Format, f.Args, fragment.NoHint)

	return string(buf.Bytes())
}
