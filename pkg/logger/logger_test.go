package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/phonestock-api/pkg/logger"
)

func TestNew_ProduccionEmiteJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "phonestock", Out: &buf})

	l.Named("sales").Info().Str("sale_id", "s-1").Msg("venta registrada")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "phonestock", line["service"])
	assert.Equal(t, "sales", line["component"])
	assert.Equal(t, "s-1", line["sale_id"])
	assert.Equal(t, "venta registrada", line["message"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("oculto")
	assert.Zero(t, buf.Len(), "info no debe emitirse con nivel warn")

	l.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
