/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package log

import (
	"errors"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	LogPrefix  = "[go-muse]"
	HelpLevels = "Must be one of: error, warning, info, debug."
)

const (
	ErrorLevel LogLevel = iota
	WarningLevel
	InfoLevel
	DebugLevel
)

var levelMapping = map[string]LogLevel{
	"error":   ErrorLevel,
	"warning": WarningLevel,
	"info":    InfoLevel,
	"debug":   DebugLevel,
}

var zapLevels = map[LogLevel]zapcore.Level{
	ErrorLevel:   zapcore.ErrorLevel,
	WarningLevel: zapcore.WarnLevel,
	InfoLevel:    zapcore.InfoLevel,
	DebugLevel:   zapcore.DebugLevel,
}

type Logger struct {
	mu    sync.RWMutex
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
}

var logger = newLogger(os.Stderr, zap.NewAtomicLevelAt(zapcore.InfoLevel))

func newLogger(out io.Writer, level zap.AtomicLevel) *Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "message",
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(out),
		level,
	)
	return &Logger{
		level: level,
		sugar: zap.New(core).Named(LogPrefix).Sugar(),
	}
}

// ParseLevel converts a level name into LogLevel
func ParseLevel(strLevel string) (LogLevel, error) {
	level, ok := levelMapping[strLevel]
	if !ok {
		return ErrorLevel, errors.New("Wrong log level. " + HelpLevels)
	}
	return level, nil
}

func SetLevel(strLevel string) error {
	level, err := ParseLevel(strLevel)
	if err != nil {
		return err
	}
	logger.mu.RLock()
	defer logger.mu.RUnlock()
	logger.level.SetLevel(zapLevels[level])
	return nil
}

func Init(out io.Writer, strLevel string) {
	level, err := ParseLevel(strLevel)
	if err != nil {
		panic(err)
	}
	l := newLogger(out, zap.NewAtomicLevelAt(zapLevels[level]))
	logger.mu.Lock()
	logger.level = l.level
	logger.sugar = l.sugar
	logger.mu.Unlock()
}

func sugar() *zap.SugaredLogger {
	logger.mu.RLock()
	defer logger.mu.RUnlock()
	return logger.sugar
}

func Error(format string, v ...interface{}) {
	sugar().Errorf(format, v...)
}

func Warning(format string, v ...interface{}) {
	sugar().Warnf(format, v...)
}

func Info(format string, v ...interface{}) {
	sugar().Infof(format, v...)
}

func Debug(format string, v ...interface{}) {
	sugar().Debugf(format, v...)
}
