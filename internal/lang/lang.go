package lang

// DefaultCode — код озвучки для всего, чего нет в таблице.
const DefaultCode = "en"

type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// порядок = порядок в выпадающем списке
var table = []Language{
	{Name: "French", Code: "fr"},
	{Name: "Spanish", Code: "es"},
	{Name: "Hindi", Code: "hi"},
	{Name: "German", Code: "de"},
	{Name: "Chinese", Code: "zh-CN"},
	{Name: "Nepali", Code: "ne"},
}

// All returns a copy of the supported target languages in display order.
func All() []Language {
	out := make([]Language, len(table))
	copy(out, table)
	return out
}

func Names() []string {
	names := make([]string, 0, len(table))
	for _, l := range table {
		names = append(names, l.Name)
	}
	return names
}

// Code maps a target language name to the speech code, falling back to DefaultCode.
func Code(name string) string {
	for _, l := range table {
		if l.Name == name {
			return l.Code
		}
	}
	return DefaultCode
}

func Supported(name string) bool {
	for _, l := range table {
		if l.Name == name {
			return true
		}
	}
	return false
}
