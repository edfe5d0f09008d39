package model

type MessageLevel string

const (
	LevelCritical MessageLevel = "CRITICAL"
	LevelWarning  MessageLevel = "WARNING"
)

type CalculationMessage struct {
	ID      int          `json:"id"`
	Level   MessageLevel `json:"level"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
}
