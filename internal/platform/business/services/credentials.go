package services

import "context"

// Panel -- одна из двух панелей платформы, у каждой свой токен и свои эндпоинты.
type Panel string

const (
	PanelRetail    Panel = "retail"
	PanelWarehouse Panel = "warehouse"
)

func (p Panel) Valid() bool {
	return p == PanelRetail || p == PanelWarehouse
}

// CredentialSource отдает текущий bearer-токен панели. Пустая строка -- токена
// нет (расширение-перехватчик его еще не принес); это терминальная ситуация,
// ретраев по ней не бывает.
type CredentialSource interface {
	Token(ctx context.Context, panel Panel) (string, error)
}
