package iocli

import (
	"strings"
)

//go:generate moq -out io_mock.go . IO

// IO абстрагирует терминал: вывод, ввод строки и скрытый ввод пароля
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}

// Confirm задаёт вопрос да/нет. Пустой ответ означает "нет".
func Confirm(io IO, prompt string) (bool, error) {
	answer, err := io.ReadInput(prompt + " [s/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "sim", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
