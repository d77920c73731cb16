package batch

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Sink receives the result of every processed file as soon as it is known.
type Sink interface {
	Report(Result)
}

type SinkFunc func(Result)

func (f SinkFunc) Report(result Result) {
	f(result)
}

type textSink struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewTextSink writes the plain console lines:
//
//	Processed: <input> -> <output>
//	Error processing <input>: <description>
func NewTextSink(writer io.Writer) Sink {
	return &textSink{writer: writer}
}

func (s *textSink) Report(result Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result.OK() {
		fmt.Fprintf(s.writer, "Processed: %s -> %s\n", result.Input, result.Output)
	} else {
		fmt.Fprintf(s.writer, "Error processing %s: %v\n", result.Input, result.Err)
	}
}

type logSink struct {
	logger *slog.Logger
}

// NewLogSink emits one structured record per result.
func NewLogSink(logger *slog.Logger) Sink {
	return &logSink{logger: logger}
}

func (s *logSink) Report(result Result) {
	attrs := []any{
		slog.String("input", result.Input),
		slog.String("output", result.Output),
		slog.Int("exit_code", result.ExitCode),
		slog.Duration("duration", result.Duration),
	}
	if result.OK() {
		s.logger.Info("processed", attrs...)
		return
	}
	s.logger.Error("error processing", append(attrs, slog.Any("error", result.Err))...)
}

// NewChannelSink forwards results to ch. Sends block, so the consumer must keep up with the batch.
func NewChannelSink(ch chan<- Result) Sink {
	return SinkFunc(func(result Result) { ch <- result })
}

type multiSink []Sink

func MultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Report(result Result) {
	for _, sink := range m {
		sink.Report(result)
	}
}
