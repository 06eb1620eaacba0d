package iocli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio терминальная реализация IO
type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	stdin  *os.File
	isTerm func(fd int) bool
}

func NewStdio() IO {
	return NewStdioFrom(os.Stdin, os.Stdout)
}

// NewStdioFrom создаёт IO поверх произвольных потоков.
// Скрытый ввод пароля работает, только когда in является терминалом.
func NewStdioFrom(in io.Reader, out io.Writer) *Stdio {
	s := &Stdio{
		in:     bufio.NewReader(in),
		out:    out,
		isTerm: term.IsTerminal,
	}
	if f, ok := in.(*os.File); ok {
		s.stdin = f
	}
	return s
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	if s.stdin == nil || !s.isTerm(int(s.stdin.Fd())) {
		// Ввод из пайпа: читаем строку как есть
		return s.ReadInput(prompt)
	}

	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(int(s.stdin.Fd()))
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
