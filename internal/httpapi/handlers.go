package httpapi

import (
	"context"
	"net/http"

	"learning-tracker/internal/domain"
	"learning-tracker/internal/services"
)

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/tasks/{userId}", s.handleListTasks)
	mux.HandleFunc("GET /api/tasks/{userId}/timeline", s.handleTimeline)
	mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	mux.HandleFunc("GET /api/tasks/{id}/detail", s.handleGetTask)
	mux.HandleFunc("POST /api/tasks/{id}/start", s.handleStartTask)
	mux.HandleFunc("POST /api/tasks/{id}/complete", s.handleCompleteTask)
	mux.HandleFunc("PUT /api/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)

	mux.HandleFunc("GET /api/tasks/{id}/subtopics", s.handleListSubtopics)
	mux.HandleFunc("POST /api/tasks/{id}/subtopics", s.handleAddSubtopic)
	mux.HandleFunc("GET /api/subtopics/{id}", s.handleGetSubtopic)
	mux.HandleFunc("PUT /api/tasks/subtopics/{id}", s.handleUpdateSubtopic)
	mux.HandleFunc("DELETE /api/tasks/subtopics/{id}", s.handleDeleteSubtopic)

	mux.HandleFunc("POST /api/tasks/{id}/sessions", s.handleStartSession)
	mux.HandleFunc("GET /api/tasks/{id}/sessions", s.handleListSessions)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("PUT /api/tasks/sessions/{id}/end", s.handleEndSession)
	mux.HandleFunc("DELETE /api/tasks/sessions/{id}", s.handleDeleteSession)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ========== Auth ==========

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.api.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Message: "Registered successfully", UserID: id})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.api.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Message: "Login successful", UserID: id})
}

// ========== Tasks ==========

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tasks, err := s.api.ListTasks(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTOs(tasks))
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	entries, err := s.api.GetTimeline(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTimelineDTOs(entries))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	task, err := s.api.CreateTask(r.Context(), services.CreateTaskInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	s.taskAction(w, r, s.api.GetTask)
}

func (s *Server) handleStartTask(w http.ResponseWriter, r *http.Request) {
	s.taskAction(w, r, s.api.StartTask)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	s.taskAction(w, r, s.api.CompleteTask)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	task, err := s.api.UpdateTask(r.Context(), id, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	s.deleteAction(w, r, s.api.DeleteTask)
}

// ========== Subtopics ==========

func (s *Server) handleListSubtopics(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	subtopics, err := s.api.ListSubtopics(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubtopicDTOs(subtopics))
}

func (s *Server) handleAddSubtopic(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req subtopicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	subtopic, err := s.api.AddSubtopic(r.Context(), taskID, services.SubtopicInput{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubtopicDTO(*subtopic))
}

func (s *Server) handleGetSubtopic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	subtopic, err := s.api.GetSubtopic(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubtopicDTO(*subtopic))
}

func (s *Server) handleUpdateSubtopic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req subtopicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	subtopic, err := s.api.UpdateSubtopic(r.Context(), id, services.SubtopicInput{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		Order:       req.Order,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubtopicDTO(*subtopic))
}

func (s *Server) handleDeleteSubtopic(w http.ResponseWriter, r *http.Request) {
	s.deleteAction(w, r, s.api.DeleteSubtopic)
}

// ========== Sessions ==========

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	session, err := s.api.StartSession(r.Context(), taskID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(*session))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sessions, err := s.api.ListSessions(r.Context(), taskID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTOs(sessions))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	session, err := s.api.GetSession(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(*session))
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req endSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	session, err := s.api.EndSession(r.Context(), id, req.Notes, req.SubTopicsStudied)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(*session))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.deleteAction(w, r, s.api.DeleteSession)
}

// ========== Shared shapes ==========

func (s *Server) taskAction(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64) (*domain.Task, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	task, err := fn(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

// deleteAction answers a successful delete with 200 and an empty body
func (s *Server) deleteAction(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64) error) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := fn(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
