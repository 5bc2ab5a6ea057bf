// Package dialog implements the scripted conversation that verifies a caller
// and reports recharge status. One Engine holds one caller's state.
package dialog

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	modelverify "github.com/yosoybienestar/chat-bienestar/backend/internal/model/verify"
	"github.com/yosoybienestar/chat-bienestar/backend/internal/service/verify"
)

// State identifies a step of the scripted conversation. Transitions only move
// forward; StateTerminated is terminal.
type State string

const (
	StateStart          State = "inicio"
	StateAwaitPhone     State = "solicitar_numero"
	StateMainMenu       State = "menu_principal"
	StateAwaitReference State = "solicitar_referencia"
	StateTerminated     State = "finalizado"
)

// Verifier is the slice of the verification client the engine consumes.
type Verifier interface {
	CustomerByPhone(ctx context.Context, msisdn string) (modelverify.Customer, verify.Outcome)
	PaymentByReference(ctx context.Context, reference string) (modelverify.Transaction, verify.Outcome)
}

// Engine holds one caller's conversation state. It is not safe for concurrent
// use; the session registry serializes access to it.
type Engine struct {
	state         State
	verifier      Verifier
	verifiedPhone string
	customer      *modelverify.Customer
}

// New returns an engine at the start of the script.
func New(v Verifier) *Engine {
	return &Engine{state: StateStart, verifier: v}
}

// State reports the current conversation step.
func (e *Engine) State() State {
	return e.state
}

// VerifiedPhone returns the MSISDN confirmed by customer verification, empty
// until the caller has passed that step.
func (e *Engine) VerifiedPhone() string {
	return e.verifiedPhone
}

// Start skips the greeting exchange and returns the welcome text, as if the
// caller had already said hello. Used when a session is created explicitly.
func (e *Engine) Start() string {
	if e.state == StateStart {
		e.state = StateAwaitPhone
	}
	return msgWelcome
}

// Process advances the conversation with one user message and returns the
// reply. It never panics past this boundary: unexpected failures become a
// generic apology and leave the state untouched.
func (e *Engine) Process(ctx context.Context, raw string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("component", "dialog").Msg("recovered while processing message")
			reply = msgUnexpectedError
		}
	}()

	text := strings.ToLower(strings.TrimSpace(raw))

	switch e.state {
	case StateStart:
		return e.processStart(text)
	case StateAwaitPhone:
		return e.processAwaitPhone(ctx, text)
	case StateMainMenu:
		return e.processMainMenu(text)
	case StateAwaitReference:
		return e.processAwaitReference(ctx, text)
	default:
		return msgConversationEnded
	}
}

func (e *Engine) processStart(text string) string {
	if !strings.Contains(text, greetingToken) {
		return msgGreetFirst
	}
	e.state = StateAwaitPhone
	return msgWelcome
}

func (e *Engine) processAwaitPhone(ctx context.Context, text string) string {
	msisdn, ok := NormalizePhone(text)
	if !ok {
		return msgInvalidPhone
	}

	customer, outcome := e.verifier.CustomerByPhone(ctx, msisdn)
	switch outcome {
	case verify.OutcomeTimeout:
		e.state = StateTerminated
		return msgVerifyTimeout
	case verify.OutcomeFound:
		e.customer = &customer
		e.verifiedPhone = msisdn
		e.state = StateMainMenu
		return formatVerified(customer)
	default:
		e.state = StateTerminated
		return msgNotCustomer
	}
}

func (e *Engine) processMainMenu(text string) string {
	switch text {
	case optionRecharge:
		e.state = StateAwaitReference
		return msgAskReference
	case optionOtherReport:
		e.state = StateTerminated
		return msgOtherReport
	case optionExit:
		e.state = StateTerminated
		return msgFarewell
	default:
		return msgInvalidOption
	}
}

func (e *Engine) processAwaitReference(ctx context.Context, text string) string {
	reference := strings.TrimSpace(text)
	if reference == "" {
		return msgInvalidReference
	}

	tx, outcome := e.verifier.PaymentByReference(ctx, reference)
	if outcome == verify.OutcomeTimeout {
		e.state = StateTerminated
		return msgRechargeTimeout
	}

	e.state = StateTerminated
	if outcome == verify.OutcomeFound && tx.Code != nil && *tx.Code == 0 {
		return formatRechargeReport(tx, reference)
	}
	return formatReferenceNotFound(reference)
}

// NormalizePhone strips every non-digit rune from raw. The result is valid
// only when exactly ten digits remain; no further format checks apply.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() != 10 {
		return "", false
	}
	return b.String(), true
}
