// Package logger configura el logging estructurado del servicio.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New crea el logger del servicio con el campo service fijo en cada línea.
// En development la salida es consola legible; en cualquier otro entorno,
// JSON por stdout. Un nivel vacío o desconocido cae a info.
func New(env, level, service string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	// Las librerías que escriben al logger global de zerolog comparten la salida
	log.Logger = zl

	return zl
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
