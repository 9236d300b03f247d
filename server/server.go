package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/geekalexis/sentiment/config"
	"github.com/geekalexis/sentiment/corpus"
	"github.com/geekalexis/sentiment/eval"
	"github.com/geekalexis/sentiment/lexer"
	"github.com/geekalexis/sentiment/metrics"
	"github.com/geekalexis/sentiment/util"
)

type Prediction struct {
	Model    string `json:"model"`
	Positive []bool `json:"positive"`
}

type Response struct {
	Message string       `json:"Message"`
	Data    []Prediction `json:"Data"`
}

type ModelInfo struct {
	Name           string  `json:"name"`
	Accuracy       float64 `json:"accuracy"`
	VocabularySize int     `json:"vocabulary_size"`
}

type ModelsResponse struct {
	Message string      `json:"Message"`
	Data    []ModelInfo `json:"Data"`
}

type ProgressResponse struct {
	Message    string `json:"message"`
	IsTraining bool   `json:"is_training"`
	Dataset    string `json:"dataset"`
	ModelCount int    `json:"model_count"`
}

// Server holds the trained models behind the HTTP API. Retraining builds a
// new set of models and swaps it in whole.
type Server struct {
	Config   config.Config
	DataRoot string
	Metrics  *metrics.Metrics

	mu       sync.RWMutex
	results  []*eval.Result
	dataset  string
	training bool
}

func New(cfg config.Config, dataRoot string, m *metrics.Metrics) *Server {
	return &Server{
		Config:   cfg,
		DataRoot: dataRoot,
		Metrics:  m,
	}
}

// Train evaluates the standard suite on the dataset directory and swaps in
// every model that trained successfully
func (s *Server) Train(dataset string) error {
	s.mu.Lock()
	s.training = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.training = false
		s.mu.Unlock()
	}()

	train, test, err := eval.LoadDir(filepath.Join(s.DataRoot, dataset), s.Config)
	if err != nil {
		return err
	}

	results := []*eval.Result{}
	for _, run := range eval.Suite(s.Config) {
		result, err := eval.Evaluate(run, train, test, s.Metrics)
		if err != nil {
			log.Println(util.TerminalYellow+"Skipping model:", err, util.TerminalReset)
			continue
		}
		results = append(results, result)
	}
	if len(results) == 0 {
		return fmt.Errorf("no model could be trained on %s", dataset)
	}

	s.mu.Lock()
	s.results = results
	s.dataset = dataset
	s.mu.Unlock()
	return nil
}

func (s *Server) snapshot() []*eval.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		log.Println("Unable to marshal json: ", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(jsonBytes); err != nil {
		log.Println(err)
	}
}

// Server route to classify the reviews in the request body with every trained model
func (s *Server) handleApiClassify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestBodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Println(err)
		writeJSON(w, http.StatusBadRequest, &Response{Message: "Unable to read request body"})
		return
	}

	results := s.snapshot()
	if len(results) == 0 {
		writeJSON(w, http.StatusServiceUnavailable, &Response{Message: "No trained models, train a dataset first"})
		return
	}

	c := lexer.Parse(string(requestBodyBytes), s.Config.LexerOptions()...)
	data := []Prediction{}
	for _, result := range results {
		predictions, err := s.classify(result, c)
		if err != nil {
			log.Println(err)
			continue
		}
		data = append(data, Prediction{Model: result.Name, Positive: predictions})
	}

	elapsed := time.Since(start)
	writeJSON(w, http.StatusOK, &Response{
		Message: fmt.Sprintf("Classified %d reviews in %d Ms", len(c), elapsed.Milliseconds()),
		Data:    data,
	})
}

func (s *Server) classify(result *eval.Result, c corpus.Corpus) ([]bool, error) {
	start := time.Now()
	predictions, err := result.Model.Classify(c)
	if err != nil {
		return nil, err
	}
	if s.Metrics != nil {
		s.Metrics.ObserveClassify(result.Name, time.Since(start), predictions)
	}
	return predictions, nil
}

// Server route to list the trained models
func (s *Server) handleApiModels(w http.ResponseWriter, r *http.Request) {
	data := []ModelInfo{}
	for _, result := range s.snapshot() {
		data = append(data, ModelInfo{
			Name:           result.Name,
			Accuracy:       result.Accuracy,
			VocabularySize: result.Model.Vocabulary().Len(),
		})
	}
	writeJSON(w, http.StatusOK, &ModelsResponse{Message: "Trained models", Data: data})
}

// Server route to list the datasets available for training
func (s *Server) handleApiDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &struct {
		Message string
		Data    []string
	}{Message: "Available datasets", Data: util.GetAvailableDatasets(s.DataRoot)})
}

// Server route to start training on a dataset on a go routine
func (s *Server) handleApiTrain(w http.ResponseWriter, r *http.Request) {
	requestBodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Println(err)
		return
	}
	dataset := string(requestBodyBytes)
	if filepath.Base(dataset) != dataset || !util.IsDatasetDir(filepath.Join(s.DataRoot, dataset)) {
		writeJSON(w, http.StatusBadRequest, &struct{ Message string }{Message: "Dataset is not valid or does not exist"})
		return
	}

	s.mu.Lock()
	if s.training {
		s.mu.Unlock()
		writeJSON(w, http.StatusConflict, &struct{ Message string }{Message: "Training already in progress"})
		return
	}
	s.training = true
	s.mu.Unlock()

	go func() {
		log.Println("Training on dataset: ", dataset)
		if err := s.Train(dataset); err != nil {
			log.Println(util.TerminalRed, err, util.TerminalReset)
		}
	}()

	writeJSON(w, http.StatusAccepted, &struct{ Message string }{Message: "Training started"})
}

// Server route to get the status of training
func (s *Server) handleApiProgress(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	response := ProgressResponse{
		IsTraining: s.training,
		Dataset:    s.dataset,
		ModelCount: len(s.results),
	}
	s.mu.RUnlock()

	switch {
	case response.IsTraining:
		response.Message = "In Progress"
	case response.ModelCount == 0:
		response.Message = "Not Started"
	default:
		response.Message = "Complete"
	}
	writeJSON(w, http.StatusOK, response)
}

// Route handler
func (s *Server) Handler() http.HandlerFunc {
	metricsHandler := http.NotFoundHandler()
	if s.Metrics != nil {
		metricsHandler = promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		log.Println(r.Method, r.URL.Path)
		switch {
		case r.Method == "GET" && r.URL.Path == "/api/models":
			s.handleApiModels(w, r)
		case r.Method == "GET" && r.URL.Path == "/api/datasets":
			s.handleApiDatasets(w, r)
		case r.Method == "GET" && r.URL.Path == "/api/progress":
			s.handleApiProgress(w, r)
		case r.Method == "GET" && r.URL.Path == "/metrics":
			metricsHandler.ServeHTTP(w, r)
		case r.Method == "POST" && r.URL.Path == "/api/classify":
			s.handleApiClassify(w, r)
		case r.Method == "POST" && r.URL.Path == "/api/train":
			s.handleApiTrain(w, r)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, "404 Not Found")

		}
	}
}

func (s *Server) Serve() error {
	http.HandleFunc("/", s.Handler())
	log.Println("Listening on", s.Config.Addr)
	return http.ListenAndServe(s.Config.Addr, nil)
}
