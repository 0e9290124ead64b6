package testutils

import "strings"

// OverByteLimit возвращает строку, которая длиннее limit в байтах, но не длиннее limit в рунах.
// Нужна для проверки тега max_bytes.
func OverByteLimit(limit int) string {
	symbol := "😁" // 4 байта, 1 руна
	return strings.Repeat(symbol, limit/len(symbol)+1)
}
