package logger

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelEnv selects the global log level (debug, info, warn, error).
const LevelEnv = "LOG_LEVEL"

func Init(file string) {
	log.Logger = New(file)

	if level, err := zerolog.ParseLevel(os.Getenv(LevelEnv)); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}
}

// New returns a logger writing to the console and to logs/<file>.
func New(file string) zerolog.Logger {
	return zerolog.New(NewWriter(file)).With().Timestamp().Caller().Logger()
}

func NewWriter(file string) io.Writer {
	writers := io.MultiWriter(
		NewConsoleWriter(),
		NewLumberjack(file),
	)

	return writers
}

func NewConsoleWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
}

func NewLumberjack(file string) io.Writer {
	abs, err := filepath.Abs(".")
	if err != nil {
		panic(err)
	}

	path := path.Join(abs, "logs", file)
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}
}
