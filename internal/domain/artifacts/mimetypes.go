package artifacts

import "strings"

// extByContentType es una tabla de configuración, no lógica: content-type
// conocido => extensión; cualquier otro => "bin".
var extByContentType = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/webp":      "webp",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   "docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         "xlsx",
}

// ExtensionFor deduce la extensión de un archivo: primero del nombre, después
// del content-type, y "bin" como fallback explícito.
func ExtensionFor(nombre, contentType string) string {
	if i := strings.LastIndex(nombre, "."); i >= 0 && i < len(nombre)-1 {
		return strings.ToLower(nombre[i+1:])
	}
	if ext, ok := extByContentType[strings.ToLower(strings.TrimSpace(contentType))]; ok {
		return ext
	}
	return "bin"
}
