package responses

// ProductsResponse -- ответ warehouse-панели на POST /warehouse/{id}/products.
// Панель заворачивает полезную нагрузку в data.data.products.
type ProductsResponse struct {
	Data struct {
		Data struct {
			Products []ProductRecord `json:"products"`
		} `json:"data"`
	} `json:"data"`
}

type ProductRecord struct {
	ID      FlexString `json:"id"`
	Name    string     `json:"name"`
	ExpDays *ExpDays   `json:"expDays"`
}

// ExpDays.Dead -- за сколько дней до истечения срока товар снимается с полки
// (срок возврата поставщику). Панель отдает его то числом, то строкой.
type ExpDays struct {
	Dead FlexInt `json:"dead"`
}

func (p ProductRecord) ProductID() string {
	return string(p.ID)
}

// ReturnDays возвращает срок возврата в днях; false когда поля нет.
func (p ProductRecord) ReturnDays() (int, bool) {
	if p.ExpDays == nil || !p.ExpDays.Dead.OK {
		return 0, false
	}
	days := p.ExpDays.Dead.Value
	if days < 0 {
		days = 0
	}
	return days, true
}
