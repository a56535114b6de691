package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogFileName(t *testing.T) {
	at := time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC)
	assert.Equal(t, "processing_20240309_070501.log", LogFileName(at))
}
