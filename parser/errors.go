// Package parser reads the Minsk-2 octal load format and fills the
// machine's memory.
package parser

import "fmt"

// ErrorKind categorizes a parse failure.
type ErrorKind int

const (
	ErrorLineTooLong ErrorKind = iota
	ErrorInvalidDigit
	ErrorAddressTooLong
	ErrorInvalidSign
	ErrorNumberTooLong
	ErrorRead
)

// Error is a parse error with the 1-based input line it occurred on. The
// message exists in both console languages; Error() reports the English
// form, Localized picks one.
type Error struct {
	Line    int
	Kind    ErrorKind
	Russian string
	English string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Parse error (line %d): %s", e.Line, e.English)
}

// Localized renders the error in the selected console language.
func (e *Error) Localized(english bool) string {
	if english {
		return fmt.Sprintf("Parse error (line %d): %s", e.Line, e.English)
	}
	return fmt.Sprintf("Ошибка входа (стр. %d): %s", e.Line, e.Russian)
}

func newError(line int, kind ErrorKind) *Error {
	e := &Error{Line: line, Kind: kind}
	switch kind {
	case ErrorLineTooLong:
		e.Russian, e.English = "Строка слишком долгая", "Line too long"
	case ErrorInvalidDigit:
		e.Russian, e.English = "Плохая цифра", "Invalid number"
	case ErrorAddressTooLong:
		e.Russian, e.English = "Адрес слишком долгий", "Address too long"
	case ErrorInvalidSign:
		e.Russian, e.English = "Плохой знак", "Invalid sign"
	case ErrorNumberTooLong:
		e.Russian, e.English = "Номер слишком долгий", "Number too long"
	case ErrorRead:
		e.Russian, e.English = "Ошибка чтения", "Read error"
	}
	return e
}
