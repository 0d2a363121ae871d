package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Event is published at each stage of an upload or translation request.
type Event struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	RequestID      string                 `json:"request_id,omitempty"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of pipeline event
type EventType string

const (
	// UploadReceived when an upload passed validation and was stored
	UploadReceived EventType = "upload_received"
	// UploadRejected when an upload failed validation
	UploadRejected EventType = "upload_rejected"
	// OCRCompleted when text extraction and charts finished
	OCRCompleted EventType = "ocr_completed"
	// OCRFailed when the OCR pipeline failed after the upload was accepted
	OCRFailed EventType = "ocr_failed"
	// TranslationCompleted when at least one direction succeeded
	TranslationCompleted EventType = "translation_completed"
	// TranslationFailed when every direction failed
	TranslationFailed EventType = "translation_failed"
)

// NewEvent stamps an event with the current time.
func NewEvent(t EventType, requestID string) Event {
	return Event{EventType: t, Timestamp: time.Now(), RequestID: requestID, Success: true}
}

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event Event)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event Event)
}

// LoggingObserver logs pipeline events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event Event) {
	fields := logrus.Fields{
		"event_type":         event.EventType,
		"request_id":         event.RequestID,
		"processing_time_ms": event.ProcessingTime.Milliseconds(),
		"success":            event.Success,
	}

	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	for k, v := range event.Metadata {
		fields[k] = v
	}

	entry := o.logger.WithFields(fields)
	switch event.EventType {
	case UploadReceived:
		entry.Debug("Upload stored")
	case UploadRejected:
		entry.Warn("Upload rejected")
	case OCRCompleted:
		entry.Info("OCR completed")
	case OCRFailed:
		entry.Error("OCR failed")
	case TranslationCompleted:
		entry.Info("Translation completed")
	case TranslationFailed:
		entry.Error("Translation failed")
	default:
		entry.Info("Pipeline event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects counters served on /metrics
type MetricsObserver struct {
	mu                     sync.RWMutex
	uploads                int64
	rejectedUploads        int64
	successfulOCR          int64
	failedOCR              int64
	translations           int64
	failedTranslations     int64
	totalOCRProcessingTime time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case UploadReceived:
		o.uploads++
	case UploadRejected:
		o.rejectedUploads++
	case OCRCompleted:
		o.successfulOCR++
		o.totalOCRProcessingTime += event.ProcessingTime
	case OCRFailed:
		o.failedOCR++
	case TranslationCompleted:
		o.translations++
	case TranslationFailed:
		o.translations++
		o.failedTranslations++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulOCR > 0 {
		avgProcessingTime = o.totalOCRProcessingTime / time.Duration(o.successfulOCR)
	}

	return map[string]interface{}{
		"uploads":                o.uploads,
		"rejected_uploads":       o.rejectedUploads,
		"successful_ocr":         o.successfulOCR,
		"failed_ocr":             o.failedOCR,
		"translations":           o.translations,
		"failed_translations":    o.failedTranslations,
		"avg_processing_time_ms": avgProcessingTime.Milliseconds(),
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event. Observers run on their
// own goroutines and must not rely on ctx outliving the request.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event Event) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	ctx = context.WithoutCancel(ctx)
	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
