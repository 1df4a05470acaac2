// Package log builds the zap loggers used by the oceanheat binaries.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a development logger when debug is set and a production logger otherwise.
func New(debug bool) (*zap.SugaredLogger, error) {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("can't initialize zap logger: %w", err)
	}
	return zapLogger.Sugar(), nil
}
