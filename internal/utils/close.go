package utils

import (
	"io"

	"github.com/MrSnakeDoc/qrhist/internal/logger"
)

// CloseLogged closes c and logs a failure as a warning naming what was closed.
func CloseLogged(c io.Closer, log logger.Logger, what string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", what), logger.Error(err))
	}
}
