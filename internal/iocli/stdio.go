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

// Stdio ввод-вывод CLI. Данные пишутся в out, подсказки ввода в prompt,
// чтобы JSON в stdout можно было перенаправить без вопросов подтверждения.
type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	prompt io.Writer
}

func NewStdio() IO {
	return NewStdioWith(os.Stdin, os.Stdout, os.Stderr)
}

// NewStdioWith создает Stdio поверх произвольных потоков
func NewStdioWith(in io.Reader, out, prompt io.Writer) *Stdio {
	return &Stdio{
		in:     bufio.NewReader(in),
		out:    out,
		prompt: prompt,
	}
}

func (s *Stdio) Println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// ReadInput читает одну строку ответа. Reader общий для всех вызовов,
// поэтому несколько ответов из одного pipe не теряются.
// Закрытый ввод без перевода строки считается последним ответом.
func (s *Stdio) ReadInput(prompt string) (string, error) {
	fmt.Fprint(s.prompt, prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// IsTerminal сообщает, подключен ли out к терминалу
func (s *Stdio) IsTerminal() bool {
	f, ok := s.out.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
