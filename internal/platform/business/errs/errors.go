package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind -- классификация отказа пайплайна. Один вид на всю цепочку вызовов:
// обертки добавляют контекст, вид не теряется.
type Kind int

const (
	KindUnknown Kind = iota
	KindNoToken
	KindUnauthorized
	KindForbidden
	KindNotFound // нет такого эндпоинта у платформы
	KindTimeout
	KindNetwork
	KindAPI // прочий не-2xx ответ
	KindProductNotFound
	KindReturnDateNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNoToken:
		return "NO_TOKEN"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindTimeout:
		return "TIMEOUT"
	case KindNetwork:
		return "NETWORK_ERROR"
	case KindAPI:
		return "API_ERROR"
	case KindProductNotFound:
		return "PRODUCT_NOT_FOUND"
	case KindReturnDateNotFound:
		return "SUPPLIER_RETURN_DATE_NOT_FOUND"
	}
	return "UNKNOWN_ERROR"
}

type Error struct {
	Kind   Kind
	Status int    // HTTP-статус платформы, если ответ был получен
	Body   string // сырое тело ответа для диагностики
	msg    string
	cause  error
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, msg: msg, cause: cause}
}

func NewAPI(status int, body string, msg string) *Error {
	kind := KindAPI
	switch status {
	case http.StatusUnauthorized:
		kind = KindUnauthorized
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusNotFound:
		kind = KindNotFound
	}
	return &Error{Kind: kind, Status: status, Body: body, msg: msg}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.cause)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.msg, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf достает вид из любой ошибки; неклассифицированное -- KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus -- статус для наших обслуживающих эндпоинтов по виду ошибки.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNoToken, KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound, KindProductNotFound, KindReturnDateNotFound:
		return http.StatusNotFound
	case KindTimeout:
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}
