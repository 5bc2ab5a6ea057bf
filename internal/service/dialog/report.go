package dialog

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	modelverify "github.com/yosoybienestar/chat-bienestar/backend/internal/model/verify"
)

const defaultRechargeDescription = "Recarga Telefonia Celular - Yo Soy Bienestar"

const rechargeReportTemplate = `✅ **Información de Recarga Encontrada**

📊 **Referencia:** %s
👤 **Cliente:** %s
📱 **Teléfono:** %s
💰 **Monto:** $%s MXN
%s **Estado:** %s
🔢 **Autorización:** %s

📅 **Fechas:**
   • Creación: %s
   • Operación: %s
   • Vencimiento: %s

📋 **Descripción:** %s

¡Gracias por ser parte de Yo Soy Bienestar! 👋`

// formatRechargeReport renders the transaction details for the caller.
// Missing or unparseable fields degrade to "N/A" per field, never failing
// the whole report.
func formatRechargeReport(tx modelverify.Transaction, reference string) string {
	data := tx.Data

	ref := data.PaymentMethod.Reference
	if ref == "" {
		ref = reference
	}

	name := orNA(data.Customer.Name)
	fullName := strings.TrimSpace(name + " " + data.Customer.LastName)

	status := orNA(data.Status)
	description := tx.Message
	if description == "" {
		description = defaultRechargeDescription
	}

	return fmt.Sprintf(rechargeReportTemplate,
		ref,
		fullName,
		orNA(data.Customer.PhoneNumber),
		orNA(data.Amount.String()),
		statusEmoji(status),
		translateStatus(status),
		orNA(data.Authorization),
		formatDate(data.CreationDate),
		formatDate(data.OperationDate),
		formatDate(data.DueDate),
		description,
	)
}

var statusLabels = map[string]string{
	"completed":   "Completado",
	"pending":     "Pendiente",
	"failed":      "Fallido",
	"cancelled":   "Cancelado",
	"in_progress": "En Progreso",
}

// translateStatus maps the upstream status vocabulary to Spanish; unknown
// statuses pass through verbatim.
func translateStatus(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

func statusEmoji(status string) string {
	switch status {
	case "completed":
		return "✅"
	case "pending":
		return "⏳"
	default:
		return "❌"
	}
}

// formatDate renders an upstream date as dd/mm/yyyy HH:MM:SS. It accepts
// RFC3339 and the plain "date space time" form; failures are per-field and
// silent to the caller.
func formatDate(raw string) string {
	if raw == "" {
		return notAvailable
	}

	var (
		t   time.Time
		err error
	)
	if strings.Contains(raw, "T") {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.Parse("2006-01-02T15:04:05", raw)
		}
	} else {
		t, err = time.Parse("2006-01-02 15:04:05", raw)
	}
	if err != nil {
		log.Debug().Str("component", "dialog").Str("value", raw).Msg("unparseable date in recharge payload")
		return notAvailable
	}
	return t.Format("02/01/2006 15:04:05")
}
