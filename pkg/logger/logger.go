package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controla la salida del logger.
type Config struct {
	// Env: "development" imprime consola legible; cualquier otro valor, JSON.
	Env string
	// Level: trace..error según zerolog; inválido o vacío cae en info.
	Level string
}

// Logger es el logger estructurado del servicio, un envoltorio fino sobre
// zerolog que se inyecta donde haga falta (motor de posteo, main).
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según la configuración y lo instala también como
// logger global de zerolog para las librerías que escriban por ahí.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(level).With().
		Timestamp().
		Str("service", "erp-stock").
		Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}
