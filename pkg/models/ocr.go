package models

import (
	"go-ocr-lens/internal/analyzer"
	"go-ocr-lens/internal/chart"
)

// UploadInfo describes the stored upload. OriginalName is display-only.
type UploadInfo struct {
	ID           string `json:"id"`
	Key          string `json:"key"`
	OriginalName string `json:"original_name"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
}

// OCRResponse is the outcome of one upload: the recognized text, its
// statistics and the chart URLs
type OCRResponse struct {
	RequestID         string               `json:"request_id"`
	Timestamp         string               `json:"timestamp"`
	ProcessingTimeSec float64              `json:"processing_time_sec"`
	Upload            UploadInfo           `json:"upload"`
	Engine            string               `json:"engine"`
	Confidence        float64              `json:"confidence"`
	Text              string               `json:"text"`
	LineCount         int                  `json:"lines_count"`
	Words             []string             `json:"words"`
	TopWords          []analyzer.WordCount `json:"top_words"`
	Accuracy          *analyzer.Accuracy   `json:"accuracy,omitempty"`
	Charts            chart.ChartSet       `json:"charts"`
}
