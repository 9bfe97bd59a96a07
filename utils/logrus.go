package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	gormutils "gorm.io/gorm/utils"
)

// SimpleFormatter 简洁的单行日志格式
type SimpleFormatter struct{}

func (f *SimpleFormatter) Format(entry *log.Entry) ([]byte, error) {
	level := fmt.Sprintf("[%s]", entry.Level.String())
	str := fmt.Sprintf("%s %-7s %s", entry.Time.Format("2006-01-02 15:04:05"), level, entry.Message)
	for k, v := range entry.Data {
		str += fmt.Sprintf(" %s=%v", k, v)
	}
	return []byte(str + "\n"), nil
}

// loggerGorm 将gorm日志桥接至logrus
type loggerGorm struct {
	SlowThreshold         time.Duration
	SourceField           string
	SkipErrRecordNotFound bool
}

func NewGormLogger() *loggerGorm {
	return &loggerGorm{
		SkipErrRecordNotFound: true,
	}
}

func (l *loggerGorm) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *loggerGorm) Info(ctx context.Context, s string, args ...interface{}) {
	log.WithContext(ctx).Infof(s, args...)
}

func (l *loggerGorm) Warn(ctx context.Context, s string, args ...interface{}) {
	log.WithContext(ctx).Warnf(s, args...)
}

func (l *loggerGorm) Error(ctx context.Context, s string, args ...interface{}) {
	log.WithContext(ctx).Errorf(s, args...)
}

func (l *loggerGorm) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, _ := fc()
	fields := log.Fields{}
	if l.SourceField != "" {
		fields[l.SourceField] = gormutils.FileWithLineNum()
	}
	if err != nil && !(errors.Is(err, gorm.ErrRecordNotFound) && l.SkipErrRecordNotFound) {
		fields[log.ErrorKey] = err
		log.WithContext(ctx).WithFields(fields).Errorf("%s [%s]", sql, elapsed)
		return
	}

	if l.SlowThreshold != 0 && elapsed > l.SlowThreshold {
		log.WithContext(ctx).WithFields(fields).Warnf("%s [%s]", sql, elapsed)
		return
	}

	log.WithContext(ctx).WithFields(fields).Debugf("%s [%s]", sql, elapsed)
}

// LoggerCron 将cron日志桥接至logrus，过滤高频的wake/run消息
type LoggerCron struct{}

func NewCronLogger() *LoggerCron {
	return new(LoggerCron)
}

func (l *LoggerCron) Info(msg string, keysAndValues ...interface{}) {
	if msg == "wake" || msg == "run" {
		return
	}
	log.Info("定时任务：", msg)
}

func (l *LoggerCron) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error("定时任务出错：", msg, "，err：", err)
}
