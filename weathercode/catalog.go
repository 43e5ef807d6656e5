package weathercode

import (
	"fmt"
	"sort"
)

// таблица кодов WMO, которые мы умеем называть
var labels = map[int]string{
	0:  "Clear",
	1:  "Mostly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	51: "Light drizzle",
	53: "Drizzle",
	61: "Rain",
	63: "Rain",
	65: "Heavy rain",
	71: "Snow",
	73: "Snow",
	80: "Showers",
	95: "Thunderstorm",
}

// Describe возвращает описание погоды по коду.
// Для неизвестного кода возвращает "Code {n}", ошибок не бывает.
func Describe(code int) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return fmt.Sprintf("Code %d", code)
}

// Known сообщает, есть ли код в таблице
func Known(code int) bool {
	_, ok := labels[code]
	return ok
}

// Codes возвращает известные коды по возрастанию
func Codes() []int {
	codes := make([]int, 0, len(labels))
	for code := range labels {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
