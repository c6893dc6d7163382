// Package fuzztests houses Go fuzz harnesses that exercise the diagram
// pipeline (text -> lexer -> parser -> completion). Its goal is to smoke test
// robustness and guard against panics or hangs on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через лексер, парсер и
// автодополнение и проверять структурные инварианты (internal/testkit).
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.

package fuzztests
