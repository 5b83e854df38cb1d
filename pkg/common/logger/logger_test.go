package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"fundsplit/pkg/common/iface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripColors(s string) string {
	for _, code := range []string{ColorReset, ColorBlue, ColorGreen, ColorCyan, ColorYellow, ColorPurple, ColorRed, ColorOrange, ColorGray, ColorBold} {
		s = strings.ReplaceAll(s, code, "")
	}
	return s
}

func TestBasicLogger_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerWithWriters(&out, &errOut, false)

	l.Title("📦 Final Balances:")
	l.Info("line one\nline two")
	l.Error("   ❌ Transaction error: %s", "nonce too low")
	l.Warn("skipped %d lines", 2)
	l.Debug("hidden")

	assert.Equal(t, "\n📦 Final Balances:\nline one\nline two\n", out.String())
	assert.Equal(t, "   ❌ Transaction error: nonce too low\nskipped 2 lines\n", errOut.String())
}

func TestBasicLogger_VerboseDebug(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerWithWriters(&out, &errOut, true)

	l.DebugWithActor(iface.ActorChain, "nonce=%d", 4)

	assert.Empty(t, out.String())
	assert.Equal(t, "Debug: nonce=4\n", errOut.String())
}

func TestColoredLogger_LabelsActor(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewColoredLogger(NewLoggerWithWriters(&out, &errOut, false))

	l.InfoWithActor(iface.ActorSender, "→ Sending to %s", "0xabc")
	l.ErrorWithActor(iface.ActorChain, "boom")
	l.Info("plain")

	assert.Equal(t, "[SENDER] → Sending to 0xabc\nplain\n", stripColors(out.String()))
	assert.Contains(t, out.String(), ColorGreen)
	assert.Equal(t, "[CHAIN] boom\n", stripColors(errOut.String()))
}

func TestZapLogger_JSONRecords(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger(&buf, false)

	l.InfoWithActor(iface.ActorSender, "✅ Tx Hash: %s", "0x01")
	l.Debug("not at info level")
	l.Info("\n")
	require.NoError(t, l.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "✅ Tx Hash: 0x01", rec["msg"])
	assert.Equal(t, "SENDER", rec["actor"])
}

func TestZapLogger_VerboseIncludesDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger(&buf, true)

	l.Debug("metric %s=%v", "sent", 3)
	require.NoError(t, l.Sync())

	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), "metric sent=3")
}
