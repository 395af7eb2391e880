package server

import (
	"net/http"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

var (
	// The counters for error codes
	counters = make(map[counterKey]int64)
	// For this case, mutex is simpler than channels
	mutex = &sync.Mutex{}
)

// AppError is the error type handlers return to the dispatcher: an HTTP
// status code, the underlying error when there is one, and the message sent
// to the client.
type AppError struct {
	Code   int
	Error  error
	Msg    string
	File   string
	Line   int
	Fields []zap.Field
}

// NewAppError constructs an application error
func NewAppError(code int, err error, msg string, fields ...zap.Field) *AppError {
	_, file, line, _ := runtime.Caller(1)
	return &AppError{
		Code:   code,
		Error:  err,
		Msg:    msg,
		File:   file,
		Line:   line,
		Fields: fields,
	}
}

// Some codes have already had to have been set because an http body follows.
func alreadySent(code int) bool {
	switch code {
	case http.StatusPartialContent, http.StatusOK:
		return true
	default:
		return false
	}
}

// sendAppErrorResponse closes out a transaction: it logs the outcome, counts
// it, and writes the error status when a body has not been sent yet. A nil
// error is an implicit 200.
func sendAppErrorResponse(logger *zap.Logger, w http.ResponseWriter, herr *AppError) {
	if herr == nil {
		logger.Info("transaction end", zap.Int("status", 200))
		mutex.Lock()
		counters[counterKey{200, "", 0}]++
		mutex.Unlock()
		return
	}
	var herrString string
	if herr.Error != nil {
		herrString = herr.Error.Error()
	}
	fields := []zap.Field{
		zap.Int("status", herr.Code),
		zap.String("message", herr.Msg),
		zap.String("err", herrString),
		zap.String("file", herr.File),
		zap.Int("line", herr.Line),
	}
	fields = append(fields, herr.Fields...)
	switch {
	case herr.Code < 400:
		logger.Info("transaction end", fields...)
	case herr.Code < 500:
		logger.Warn("transaction end", fields...)
	default:
		logger.Error("transaction end", fields...)
	}
	mutex.Lock()
	counters[counterKey{herr.Code, herr.File, herr.Line}]++
	mutex.Unlock()
	if !alreadySent(herr.Code) {
		http.Error(w, herr.Msg, herr.Code)
	}
}

// We key counters by code and the code location that produced it.
type counterKey struct {
	Code int
	File string
	Line int
}
