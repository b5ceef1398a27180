package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/smartcoach/backend/internal/corpus"
	"github.com/smartcoach/backend/internal/engine"
	"github.com/smartcoach/backend/internal/search"
)

type Server struct {
	Engine *engine.Engine
	Logger *logrus.Entry
	Router *http.ServeMux
}

func NewServer(eng *engine.Engine, logger *logrus.Entry) *Server {
	s := &Server{
		Engine: eng,
		Logger: logger,
		Router: http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/", s.handleRoot)
	s.Router.HandleFunc("/health", s.handleHealth)
	s.Router.HandleFunc("/rag/query", s.handleQuery)
	s.Router.HandleFunc("/rag/plan", s.handleFitnessPlan)
	s.Router.HandleFunc("/rag/workout-plan", s.handleWorkoutPlan)
	s.Router.HandleFunc("/rag/meal-plan", s.handleMealPlan)
	s.Router.HandleFunc("/rag/search", s.handleSearch)
}

func (s *Server) Start(addr string) error {
	s.Logger.Infof("Starting API Server on %s", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router,
		ReadTimeout:  s.Engine.Config.Server.ReadTimeout,
		WriteTimeout: s.Engine.Config.Server.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Requests

type QueryRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

type FitnessPlanRequest struct {
	UserID        string                 `json:"user_id"`
	Goal          string                 `json:"goal"`
	FitnessLevel  string                 `json:"fitness_level"`
	Preferences   map[string]interface{} `json:"preferences"`
	DurationWeeks int                    `json:"duration_weeks"`
}

type WorkoutPlanRequest struct {
	UserID             string   `json:"user_id"`
	FitnessLevel       string   `json:"fitness_level"`
	Goal               string   `json:"goal"`
	AvailableEquipment []string `json:"available_equipment"`
	DurationMinutes    int      `json:"duration_minutes"`
	DaysPerWeek        int      `json:"days_per_week"`
}

type MealPlanRequest struct {
	UserID              string   `json:"user_id"`
	Goal                string   `json:"goal"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CaloriesTarget      int      `json:"calories_target"`
	MealsPerDay         int      `json:"meals_per_day"`
}

// Responses

type ErrorResponse struct {
	Error string `json:"error"`
}

type QueryResponse struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}

type PlanResponse struct {
	Plan   map[string]interface{} `json:"plan"`
	UserID string                 `json:"user_id"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Documents int    `json:"documents"`
}

type SearchResponse struct {
	Query   string    `json:"query"`
	Results []HitView `json:"results"`
}

type HitView struct {
	ID       string      `json:"id"`
	Category string      `json:"category"`
	Score    float64     `json:"score"`
	Payload  interface{} `json:"payload"`
}

// Handlers

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "service": "SmartCoach AI"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "SmartCoach AI",
		Documents: s.Engine.Index.Size(),
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if req.Query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query is required"})
		return
	}

	answer, sources, err := s.Engine.Answer(r.Context(), req.Query)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if sources == nil {
		sources = []string{}
	}

	jsonResponse(w, http.StatusOK, QueryResponse{Response: answer, Sources: sources})
}

func (s *Server) handleFitnessPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req FitnessPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if req.Goal == "" || req.FitnessLevel == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "goal and fitness_level are required"})
		return
	}

	plan, err := s.Engine.FitnessPlan(r.Context(), engine.FitnessPlanRequest{
		Goal:          req.Goal,
		FitnessLevel:  req.FitnessLevel,
		DurationWeeks: req.DurationWeeks,
		Preferences:   req.Preferences,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, PlanResponse{Plan: plan, UserID: req.UserID})
}

func (s *Server) handleWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req WorkoutPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if req.Goal == "" || req.FitnessLevel == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "goal and fitness_level are required"})
		return
	}

	plan, err := s.Engine.WorkoutPlan(r.Context(), engine.WorkoutPlanRequest{
		FitnessLevel:    req.FitnessLevel,
		Goal:            req.Goal,
		Equipment:       req.AvailableEquipment,
		DurationMinutes: req.DurationMinutes,
		DaysPerWeek:     req.DaysPerWeek,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, PlanResponse{Plan: plan, UserID: req.UserID})
}

func (s *Server) handleMealPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req MealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if req.Goal == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "goal is required"})
		return
	}

	plan, err := s.Engine.MealPlan(r.Context(), engine.MealPlanRequest{
		Goal:         req.Goal,
		Restrictions: req.DietaryRestrictions,
		Calories:     req.CaloriesTarget,
		MealsPerDay:  req.MealsPerDay,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, PlanResponse{Plan: plan, UserID: req.UserID})
}

// handleSearch exposes raw ranked retrieval, bypassing the LLM
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}

	k := s.Engine.Config.Retrieval.TopK
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid 'k' parameter"})
			return
		}
		k = parsed
	}

	category := corpus.Category(r.URL.Query().Get("category"))
	hits, err := s.Engine.Index.Retrieve(query, category, k)
	if err != nil {
		s.respondError(w, err)
		return
	}

	response := SearchResponse{Query: query, Results: make([]HitView, len(hits))}
	for i, hit := range hits {
		response.Results[i] = HitView{
			ID:       hit.Document.ID,
			Category: string(hit.Document.Category),
			Score:    hit.Score,
			Payload:  hit.Document.Payload,
		}
	}

	jsonResponse(w, http.StatusOK, response)
}

// respondError maps per-request validation failures to 400 and everything
// else (provider failures included) to 500.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, search.ErrInvalidQuery) {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	s.Logger.WithError(err).Error("Request failed")
	jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
