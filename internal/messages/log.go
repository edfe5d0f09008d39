// Package messages holds the append-only calculation message log.
package messages

import (
	"fmt"

	"pension-engine/internal/model"
)

// Log collects the messages of one calculation. Every message gets the next
// sequential index; nothing is ever removed or reordered. Once a CRITICAL
// message has been added the log reports that the run must halt.
//
// A Log is confined to a single run and is not safe for concurrent use.
type Log struct {
	messages []model.CalculationMessage
	critical bool
}

func NewLog() *Log {
	return &Log{messages: []model.CalculationMessage{}}
}

// AddCritical appends a CRITICAL message with the code's default text and
// returns its index.
func (l *Log) AddCritical(code Code) int {
	return l.add(model.LevelCritical, code, code.Text())
}

// AddCriticalf appends a CRITICAL message with a formatted text.
func (l *Log) AddCriticalf(code Code, format string, args ...any) int {
	return l.add(model.LevelCritical, code, fmt.Sprintf(format, args...))
}

func (l *Log) AddWarning(code Code) int {
	return l.add(model.LevelWarning, code, code.Text())
}

func (l *Log) AddWarningf(code Code, format string, args ...any) int {
	return l.add(model.LevelWarning, code, fmt.Sprintf(format, args...))
}

func (l *Log) add(level model.MessageLevel, code Code, text string) int {
	id := len(l.messages)
	l.messages = append(l.messages, model.CalculationMessage{
		ID:      id,
		Level:   level,
		Code:    string(code),
		Message: text,
	})
	if level == model.LevelCritical {
		l.critical = true
	}
	return id
}

// Count is the number of messages logged so far; it is also the index the
// next message will receive.
func (l *Log) Count() int {
	return len(l.messages)
}

func (l *Log) HasCriticalError() bool {
	return l.critical
}

// ShouldHalt reports whether no further mutation may be applied.
func (l *Log) ShouldHalt() bool {
	return l.critical
}

// Messages returns a copy of the logged messages in index order.
func (l *Log) Messages() []model.CalculationMessage {
	out := make([]model.CalculationMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// Range returns the indexes [from, Count()).
func (l *Log) Range(from int) []int {
	idx := make([]int, 0, len(l.messages)-from)
	for i := from; i < len(l.messages); i++ {
		idx = append(idx, i)
	}
	return idx
}
