package logger

import (
	"go.uber.org/zap"
)

// New builds the process-wide logger. Development gets the human console
// encoder, everything else JSON.
func New(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
