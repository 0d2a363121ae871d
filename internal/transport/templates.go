package transport

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"percent": func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
	"ratio":   func(v float64) string { return fmt.Sprintf("%.3f", v) },
	"inc":     func(i int) int { return i + 1 },
}
