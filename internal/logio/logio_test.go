package logio_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/gon/internal/logio"
)

func TestLogger(t *testing.T) {
	var out strings.Builder
	log := logio.NewLogger(&out)

	log.Printf("INFO", "hello %v", "world")
	log.Printf("", "bare")
	trace := log.Leveledf("TRACE")
	trace("@%v", 3)
	assert.Equal(t, 0, log.ExitCode())

	log.Failf(2, "cannot open %q", "x.n")
	log.Failf(3, "later failures keep the first code")
	log.Errorf("plain")
	assert.Equal(t, 2, log.ExitCode())

	assert.Equal(t, strings.Join([]string{
		"INFO: hello world",
		"bare",
		"TRACE: @3",
		`ERROR: cannot open "x.n"`,
		"ERROR: later failures keep the first code",
		"ERROR: plain",
	}, "\n")+"\n", out.String())
}

func TestLogger_errorf(t *testing.T) {
	log := logio.NewLogger(io.Discard)
	log.Errorf("oops")
	assert.Equal(t, 1, log.ExitCode())

	log = logio.NewLogger(nil)
	log.Printf("INFO", "dropped")
	assert.Equal(t, 0, log.ExitCode())
}

func TestWriter(t *testing.T) {
	var lines []string
	lw := logio.Writer{Logf: func(mess string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(mess, args...))
	}}
	io.WriteString(&lw, "one\ntw")
	io.WriteString(&lw, "o\nthree")
	assert.Equal(t, []string{"one", "two"}, lines)
	assert.NoError(t, lw.Close())
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}
