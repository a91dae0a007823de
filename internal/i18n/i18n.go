// Package i18n translates user-facing messages for API responses.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is used when no supported locale is requested.
	DefaultLocale = "en"
	// AcceptLanguageHeader carries the client's language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator resolves message keys against a per-locale catalog.
type Translator struct {
	catalog map[string]map[string]string
}

// NewTranslator builds a translator with the built-in catalog.
func NewTranslator() *Translator {
	return &Translator{catalog: messageCatalog()}
}

// GetTranslator returns the shared translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate resolves key in the given locale. Unknown locales fall back
// to DefaultLocale; unknown keys fall back to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}
	if msg, ok := t.catalog[locale][key]; ok {
		return msg
	}
	if msg, ok := t.catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale picks a supported locale from the Accept-Language header.
// Only the first listed language is considered; quality values and
// region subtags are stripped, so "pt-BR,pt;q=0.9" resolves to "pt".
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}

	first, _, _ := strings.Cut(header, ",")
	lang, _, _ := strings.Cut(strings.TrimSpace(first), ";")
	lang, _, _ = strings.Cut(lang, "-")
	lang = strings.ToLower(lang)
	if _, ok := messageCatalog()[lang]; ok {
		return lang
	}
	return DefaultLocale
}

func messageCatalog() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			ErrKeyInvalidRequest:     "Invalid request",
			ErrKeyInvalidRequestBody: "Invalid request body",
			ErrKeyInternalError:      "An unexpected error occurred",
			ErrKeyNotFound:           "Not found",
			ErrKeyTargetNotFound:     "Target order item not found",
			ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
			ErrKeyConflict:           "Conflict",
			ErrKeyValidationQuantity: "quantity: must be a positive integer",
			ErrKeyTimeout:            "Request timed out",

			SuccessKeyReservationFull:    "Reservation fully satisfied",
			SuccessKeyReservationPartial: "Reservation partially satisfied",
			SuccessKeyStockCredited:      "Surplus stock credited",
		},
		"pt": {
			ErrKeyInvalidRequest:     "Requisição inválida",
			ErrKeyInvalidRequestBody: "Corpo da requisição inválido",
			ErrKeyInternalError:      "Ocorreu um erro inesperado",
			ErrKeyNotFound:           "Não encontrado",
			ErrKeyTargetNotFound:     "Item do pedido de destino não encontrado",
			ErrKeyRateLimitExceeded:  "Muitas requisições, tente novamente mais tarde",
			ErrKeyConflict:           "Conflito",
			ErrKeyValidationQuantity: "quantity: deve ser um inteiro positivo",
			ErrKeyTimeout:            "Tempo da requisição esgotado",

			SuccessKeyReservationFull:    "Reserva totalmente atendida",
			SuccessKeyReservationPartial: "Reserva parcialmente atendida",
			SuccessKeyStockCredited:      "Excedente de estoque creditado",
		},
		"nl": {
			ErrKeyInvalidRequest:     "Ongeldig verzoek",
			ErrKeyInvalidRequestBody: "Ongeldige aanvraag body",
			ErrKeyInternalError:      "Er is een onverwachte fout opgetreden",
			ErrKeyNotFound:           "Niet gevonden",
			ErrKeyTargetNotFound:     "Doelorderregel niet gevonden",
			ErrKeyRateLimitExceeded:  "Te veel verzoeken, probeer het later opnieuw",
			ErrKeyConflict:           "Conflict",
			ErrKeyValidationQuantity: "quantity: moet een positief geheel getal zijn",
			ErrKeyTimeout:            "Verzoek verlopen",

			SuccessKeyReservationFull:    "Reservering volledig voldaan",
			SuccessKeyReservationPartial: "Reservering gedeeltelijk voldaan",
			SuccessKeyStockCredited:      "Overschot aan voorraad gecrediteerd",
		},
	}
}