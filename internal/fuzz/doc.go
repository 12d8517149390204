// Package fuzztests houses Go fuzz harnesses for the generator: the nested
// literal builder, the whole program pipeline and the literal parser used
// by the invariant checks. Each harness must never panic or hang.
//
// Назначение: прогонять случайные seed'ы и параметры через vector и gen.
//
// Не делает: запись файлов, выполнение CLI.
package fuzztests
