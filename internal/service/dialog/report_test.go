package dialog

import (
	"testing"

	"github.com/stretchr/testify/require"

	modelverify "github.com/yosoybienestar/chat-bienestar/backend/internal/model/verify"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"rfc3339 utc", "2024-01-15T10:30:00Z", "15/01/2024 10:30:00"},
		{"rfc3339 offset", "2024-01-15T10:30:00+00:00", "15/01/2024 10:30:00"},
		{"bare datetime with T", "2024-01-15T10:30:00", "15/01/2024 10:30:00"},
		{"date space time", "2024-01-15 10:30:00", "15/01/2024 10:30:00"},
		{"empty", "", "N/A"},
		{"garbage", "yesterday", "N/A"},
		{"impossible date", "2024-13-45T99:99:99Z", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, formatDate(tt.input))
		})
	}
}

func TestTranslateStatus(t *testing.T) {
	require.Equal(t, "Completado", translateStatus("completed"))
	require.Equal(t, "Pendiente", translateStatus("pending"))
	require.Equal(t, "Fallido", translateStatus("failed"))
	require.Equal(t, "Cancelado", translateStatus("cancelled"))
	require.Equal(t, "En Progreso", translateStatus("in_progress"))

	// Unknown statuses pass through verbatim.
	require.Equal(t, "exploded", translateStatus("exploded"))
}

func TestStatusEmoji(t *testing.T) {
	require.Equal(t, "✅", statusEmoji("completed"))
	require.Equal(t, "⏳", statusEmoji("pending"))
	require.Equal(t, "❌", statusEmoji("failed"))
	require.Equal(t, "❌", statusEmoji("N/A"))
}

func TestFormatRechargeReportFallsBackToCallerReference(t *testing.T) {
	code := 0
	tx := modelverify.Transaction{
		Code: &code,
		Data: modelverify.TransactionData{Status: "pending"},
	}

	report := formatRechargeReport(tx, "ref-from-caller")

	require.Contains(t, report, "ref-from-caller")
	require.Contains(t, report, "Pendiente")
	require.Contains(t, report, "N/A")
	require.Contains(t, report, defaultRechargeDescription)
}
