// internal/platform/logx/logx.go
package logx

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger es la interfaz mínima de logging estructurado (pares clave=valor).
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

type kvLogger struct {
	mu    sync.Mutex
	lvl   Level
	scope []string // pares key=value fijos
	lg    *log.Logger
}

// New crea un logger que escribe a stderr con nivel desde ACCOUNTX_LOG_LEVEL.
func New() Logger {
	return &kvLogger{
		lvl: parseLevel(os.Getenv("ACCOUNTX_LOG_LEVEL")),
		lg:  log.New(os.Stderr, "", 0),
	}
}

// NewWithLevel crea un logger con un nivel explícito.
func NewWithLevel(lvl Level) Logger {
	return &kvLogger{
		lvl: lvl,
		lg:  log.New(os.Stderr, "", 0),
	}
}

// NewSilent crea un logger que solo emite errores (modo quiet / UI).
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

func (l *kvLogger) With(kv ...any) Logger {
	clone := &kvLogger{lvl: l.lvl, lg: l.lg}
	clone.scope = append(append([]string{}, l.scope...), kvPairs(kv...)...)
	return clone
}

func (l *kvLogger) SetLevel(lvl Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lvl = lvl
}

func (l *kvLogger) Debug(msg string, kv ...any) { l.log(LevelDebug, "DBG", msg, kv...) }
func (l *kvLogger) Info(msg string, kv ...any)  { l.log(LevelInfo, "INF", msg, kv...) }
func (l *kvLogger) Warn(msg string, kv ...any)  { l.log(LevelWarn, "WRN", msg, kv...) }

func (l *kvLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	kv = append([]any{"error", err.Error()}, kv...)
	l.log(LevelError, "ERR", "", kv...)
}

func (l *kvLogger) log(lvl Level, tag, msg string, kv ...any) {
	if lvl < l.lvl {
		return
	}
	ts := time.Now().Format("15:04:05")
	fields := append([]string{}, l.scope...)
	fields = append(fields, kvPairs(kv...)...)

	line := fmt.Sprintf("%s %s %s", ts, tag, msg)
	if strings.TrimSpace(msg) == "" {
		// sin msg (e.g. Err): evita doble espacio
		line = fmt.Sprintf("%s %s", ts, tag)
	}
	if len(fields) > 0 {
		line = fmt.Sprintf("%s %s", line, strings.Join(fields, " "))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.lg.Println(line)
}

func kvPairs(kv ...any) []string {
	out := make([]string, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k := kv[i]
		var v any = "(missing)"
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		out = append(out, fmt.Sprintf("%v=%v", k, v))
	}
	return out
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error", "err":
		return LevelError
	default:
		return LevelInfo
	}
}
