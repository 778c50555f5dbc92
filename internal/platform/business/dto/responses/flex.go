package responses

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Формы ответов платформы нам не принадлежат и плывут между релизами панелей,
// поэтому числовые поля декодируем терпимо: число, строка с числом, мусор.
// Незнакомая форма деградирует в "значения нет", а не в отказ декодирования.

// FlexString принимает строку или число.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = FlexString(strings.TrimSpace(str))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		*s = FlexString(num.String())
		return nil
	}
	*s = ""
	return nil
}

// FlexInt принимает число или числовую строку; OK=false когда значения нет.
type FlexInt struct {
	Value int
	OK    bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	f.Value, f.OK = 0, false

	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		if n, err := num.Int64(); err == nil {
			f.Value, f.OK = int(n), true
			return nil
		}
		if fl, err := num.Float64(); err == nil {
			f.Value, f.OK = int(fl), true
			return nil
		}
		return nil
	}

	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		str = strings.TrimSpace(str)
		if n, err := strconv.Atoi(str); err == nil {
			f.Value, f.OK = n, true
			return nil
		}
		if fl, err := strconv.ParseFloat(str, 64); err == nil {
			f.Value, f.OK = int(fl), true
			return nil
		}
	}
	return nil
}
