package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskingHandler_MasksSensitiveAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewMaskingHandler(slog.NewTextHandler(&buf, nil)))

	log.Info("login",
		slog.String("password", "hunter2"),
		slog.String("client_email", "sarah@example.com"),
		slog.String("session_id", "abc"),
	)

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "sarah@example.com")
	assert.Contains(t, out, `password=***`)
	assert.Contains(t, out, `client_email=***`)
	assert.Contains(t, out, "session_id=abc")
}

func TestMaskingHandler_CaseInsensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewMaskingHandler(slog.NewTextHandler(&buf, nil)))

	log.Info("auth", slog.String("Authorization", "Bearer xyz"))

	assert.NotContains(t, buf.String(), "Bearer xyz")
}

func TestMaskingHandler_PreservesMessage(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewMaskingHandler(slog.NewTextHandler(&buf, nil)))

	log.Warn("slow query", slog.String("table", "appointments"))

	out := buf.String()
	assert.Contains(t, out, "slow query")
	assert.Contains(t, out, "table=appointments")
}
