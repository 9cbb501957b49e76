//go:build ignore

package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed to open %v: %v", name, err)
		}
		args = args[1:]
		in = f
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		out = f
	}
}

// builderMethod is one vmTestCase builder, as matched in its source file.
type builderMethod struct {
	base, what, params []byte
}

var builderPattern = regexp.MustCompile(`^func \(vmt vmTestCase\) (expect|with)(.+?)\((.*?)\) vmTestCase`)

func main() {
	ctx := context.Background()
	parseFlags()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	methods := make(chan builderMethod)

	eg.Go(func() error {
		defer close(methods)
		defer in.Close()
		return scan(ctx, methods)
	})

	eg.Go(func() (rerr error) {
		defer func() {
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()
		return render(ctx, methods)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func scan(ctx context.Context, methods chan<- builderMethod) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		match := builderPattern.FindSubmatch(sc.Bytes())
		if len(match) == 0 {
			continue
		}
		m := builderMethod{
			base:   append([]byte(nil), match[1]...),
			what:   append([]byte(nil), match[2]...),
			params: append([]byte(nil), match[3]...),
		}
		select {
		case methods <- m:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return sc.Err()
}

func render(ctx context.Context, methods <-chan builderMethod) error {
	var buf bytes.Buffer
	buf.Grow(4096)
	buf.WriteString("package main\n\n")

	fmt.Fprintf(&buf, "// @generated from %v\n\n", in.Name())

	if args := flag.Args(); len(args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_vm_expects.go --")
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	for m := range methods {
		fmt.Fprintf(&buf, "func %sVM%s(%s) func(vmTestCase) vmTestCase {\n", m.base, m.what, m.params)
		fmt.Fprintf(&buf, "return func(vmt vmTestCase) vmTestCase {\n")
		fmt.Fprintf(&buf, "return vmt.%s%s(%s)\n", m.base, m.what, callArgs(m.params))
		fmt.Fprintf(&buf, "}\n}\n\n")
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	// goimports both formats, and adds the imports that parameter types need
	fix := exec.CommandContext(ctx, "goimports")
	fix.Stdin = &buf
	fix.Stdout = out
	fix.Stderr = os.Stderr
	if err := fix.Run(); err != nil {
		return fmt.Errorf("goimports run failed: %w", err)
	}
	return nil
}

// callArgs turns a parameter list like "a, b int, rest ...uint64" into the
// matching argument list "a, b, rest...".
func callArgs(params []byte) []byte {
	var args []byte
	for i, part := range bytes.Split(params, []byte(",")) {
		fields := bytes.Fields(part)
		if len(fields) == 0 {
			continue
		}
		if i > 0 {
			args = append(args, ", "...)
		}
		args = append(args, fields[0]...)
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			args = append(args, "..."...)
		}
	}
	return args
}
