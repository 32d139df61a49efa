package lexer

import (
	"csclean/internal/diag"
	"csclean/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

// maxTokenLength — порог, после которого токен помечается диагностикой.
// Сам токен не обрезается: полнота текста важнее.
const maxTokenLength = 1 << 20

func (lx *Lexer) warn(code diag.Code, sp source.Span, msg string) {
	diag.ReportWarning(lx.opts.Reporter, code, sp, msg)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.opts.Reporter, code, sp, msg)
}
