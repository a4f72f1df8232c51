package notifier

import (
	"fmt"
	"log"
)

// Notifier abstracts the delivery channel (Email/SMS later).
type Notifier interface {
	Notify(subject, message string) error
}

// ConsoleNotifier (MVP) logs to the console.
type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s\n", subject, message)
	return nil
}

// FormatKES renders an amount the way members see it on their statement.
func FormatKES(amount float64) string {
	return fmt.Sprintf("KES %.2f", amount)
}
