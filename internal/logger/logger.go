// Package logger hands out named logrus loggers ("app", "audit") that write
// to stdout, a rotated file, or both.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config is filled from the environment by the config package.
type Config struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"text"`
	Output     string `env:"LOG_OUTPUT" envDefault:"stdout"`
	Path       string `env:"LOG_PATH" envDefault:"./logs"`
	MaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAge     int    `env:"LOG_MAX_AGE" envDefault:"7"`
	Compress   bool   `env:"LOG_COMPRESS" envDefault:"true"`
}

func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "text",
		Output:     "stdout",
		Path:       "./logs",
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   true,
	}
}

var (
	mu      sync.Mutex
	config  = DefaultConfig()
	loggers = make(map[string]*logrus.Logger)
)

// Init replaces the configuration. Loggers created earlier are rebuilt on
// their next Get.
func Init(cfg Config) error {
	cfg.Output = strings.ToLower(cfg.Output)
	if cfg.Output == "file" || cfg.Output == "both" {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	config = cfg
	loggers = make(map[string]*logrus.Logger)
	return nil
}

// Get returns the logger called name, creating it on first use.
func Get(name string) *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[name]; ok {
		return l
	}
	l := newLogger(name, config)
	loggers[name] = l
	return l
}

func newLogger(name string, cfg Config) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	var writers []io.Writer
	if cfg.Output == "stdout" || cfg.Output == "both" || cfg.Output == "" {
		writers = append(writers, os.Stdout)
	}
	if cfg.Output == "file" || cfg.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Path, name+".log"),
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}
	l.SetOutput(io.MultiWriter(writers...))

	return l
}
