package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors recorded while training and classifying
type Metrics struct {
	Registry *prometheus.Registry

	predictions      *prometheus.CounterVec
	learnDuration    *prometheus.HistogramVec
	classifyDuration *prometheus.HistogramVec
	accuracy         *prometheus.GaugeVec
	vocabularyTerms  *prometheus.GaugeVec
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentiment_predictions_total",
				Help: "Total number of classified documents",
			},
			[]string{"model", "label"},
		),
		learnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sentiment_learn_duration_seconds",
				Help:    "Model training latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model"},
		),
		classifyDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sentiment_classify_duration_seconds",
				Help:    "Corpus classification latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model"},
		),
		accuracy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sentiment_accuracy",
				Help: "Accuracy on the last evaluation set",
			},
			[]string{"model"},
		),
		vocabularyTerms: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sentiment_vocabulary_terms",
				Help: "Vocabulary size of the trained model",
			},
			[]string{"model"},
		),
	}
	m.Registry.MustRegister(m.predictions, m.learnDuration, m.classifyDuration, m.accuracy, m.vocabularyTerms)
	return m
}

func (m *Metrics) ObserveLearn(model string, d time.Duration, vocabularySize int) {
	m.learnDuration.WithLabelValues(model).Observe(d.Seconds())
	m.vocabularyTerms.WithLabelValues(model).Set(float64(vocabularySize))
}

// ObserveClassify records the duration of one Classify call and its predictions
func (m *Metrics) ObserveClassify(model string, d time.Duration, predictions []bool) {
	m.classifyDuration.WithLabelValues(model).Observe(d.Seconds())
	var positive int
	for _, p := range predictions {
		if p {
			positive++
		}
	}
	m.predictions.WithLabelValues(model, "positive").Add(float64(positive))
	m.predictions.WithLabelValues(model, "negative").Add(float64(len(predictions) - positive))
}

func (m *Metrics) SetAccuracy(model string, accuracy float64) {
	m.accuracy.WithLabelValues(model).Set(accuracy)
}
