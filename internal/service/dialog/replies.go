package dialog

import (
	"fmt"

	modelverify "github.com/yosoybienestar/chat-bienestar/backend/internal/model/verify"
)

// greetingToken is matched as a substring of the normalized message, so any
// text containing it starts the conversation.
const greetingToken = "hola"

const notAvailable = "N/A"

const (
	optionRecharge    = "1"
	optionOtherReport = "2"
	optionExit        = "3"
)

const (
	msgGreetFirst = "Por favor inicia la conversación con 'Hola'"

	msgWelcome = "¡Hola! 👋 Bienvenido a Yo Soy Bienestar.\n\n" +
		"Por favor comparte tu número telefónico para verificar que eres cliente Yo Soy Bienestar."

	msgInvalidPhone = "⚠️ Por favor ingresa un número telefónico válido de 10 dígitos."

	msgVerifyTimeout = "❌ ⏱️ La verificación está tomando más tiempo de lo esperado. " +
		"Por favor intenta nuevamente más tarde."

	msgNotCustomer = "❌ No eres cliente, no podemos hacer más. Gracias por contactarnos. 👋"

	msgAskReference = "📋 Reportar Problema con Recarga\n\n" +
		"Por favor ingresa el número de referencia de tu recarga:"

	msgOtherReport = "ℹ️ Realizar otro tipo de reporte\n\n" +
		"Esta funcionalidad actualmente no está desarrollada ni implementada.\n\n" +
		"Gracias por contactarnos. 👋"

	msgFarewell = "👋 ¡Gracias por usar nuestro servicio! Que tengas un excelente día."

	msgInvalidOption = "⚠️ Opción no válida. Por favor selecciona:\n\n" +
		"1️⃣ Reportar problema con recarga\n" +
		"2️⃣ Realizar otro tipo de reporte\n" +
		"3️⃣ Salir del chat\n\n" +
		"Escribe 1, 2 o 3:"

	msgInvalidReference = "⚠️ Por favor ingresa un número de referencia válido."

	msgRechargeTimeout = "❌ ⏱️ La verificación de la recarga está tomando más tiempo de lo esperado. " +
		"Por favor intenta nuevamente más tarde o contacta a soporte."

	msgConversationEnded = "La conversación ha finalizado. Si necesitas ayuda, por favor inicia una nueva conversación."

	msgUnexpectedError = "❌ Ocurrió un error inesperado. Por favor intenta nuevamente."
)

const verifiedTemplate = `✅ ¡Verificación exitosa!

Hola bienvenido Cliente Yo Soy Bienestar.

📱 Número: %s
⚡ Servicio: %s
🟢 Estado: %s

¿Qué operación deseas realizar?

1️⃣ Reportar problema con recarga
2️⃣ Realizar otro tipo de reporte
3️⃣ Salir del chat

Por favor selecciona una opción (1, 2 o 3):`

func formatVerified(c modelverify.Customer) string {
	return fmt.Sprintf(verifiedTemplate, orNA(c.MSISDN), orNA(c.Service), orNA(c.Status))
}

const referenceNotFoundTemplate = `❌ **Referencia No Encontrada**

La referencia **'%s'** no fue encontrada en nuestro sistema.

**Posibles causas:**
• La referencia puede ser incorrecta
• La transacción está aún en proceso
• Puede haber un error en el sistema

Te recomendamos:
1. Verificar el número de referencia
2. Esperar unos minutos si acabas de realizar la recarga
3. Contactar a nuestro equipo de soporte si el problema persiste

¡Gracias por contactarnos! 👋`

func formatReferenceNotFound(reference string) string {
	return fmt.Sprintf(referenceNotFoundTemplate, reference)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
