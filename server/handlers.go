package server

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/liralabs/lira-core/analytics"
	"github.com/liralabs/lira-core/core/events"
	"github.com/liralabs/lira-core/core/llms"
	"github.com/liralabs/lira-core/core/llms/openai"
	"github.com/liralabs/lira-core/core/prompts"
	"github.com/liralabs/lira-core/sessions"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"sessions": s.registry.Len(),
	})
}

type createSessionRequest struct {
	Mode     string `json:"mode"`
	Level    string `json:"level"`
	Scenario string `json:"scenario"`
	UserID   string `json:"user_id"`
}

func (s *Server) handleCreateSession(c *fiber.Ctx) error {
	req := createSessionRequest{}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	mode := prompts.DefaultMode
	if req.Mode != "" {
		parsed, ok := prompts.ParseMode(req.Mode)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("unknown mode %q", req.Mode)})
		}
		mode = parsed
	}

	level := prompts.DefaultLevel
	if req.Level != "" {
		parsed, ok := prompts.ParseLevel(req.Level)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("unknown level %q", req.Level)})
		}
		level = parsed
	}

	session, err := s.registry.Create(c.UserContext(), mode, level, req.Scenario)
	if err != nil {
		logger.ErrorContext(c.UserContext(), "Failed to create session", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create session"})
	}

	s.trackSession(session, req.UserID)

	return c.Status(fiber.StatusCreated).JSON(sessionResponse(session))
}

func (s *Server) handleGetSession(c *fiber.Ctx) error {
	session, ok := s.registry.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	return c.JSON(sessionResponse(session))
}

type setModeRequest struct {
	Mode     string `json:"mode"`
	Scenario string `json:"scenario"`
}

func (s *Server) handleSetMode(c *fiber.Ctx) error {
	req := setModeRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	mode, ok := prompts.ParseMode(req.Mode)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("unknown mode %q", req.Mode)})
	}

	id := c.Params("id")
	if err := s.registry.SetMode(id, mode); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	if req.Scenario != "" {
		_ = s.registry.SetScenario(id, req.Scenario)
	}

	session, _ := s.registry.Get(id)
	return c.JSON(sessionResponse(session))
}

func (s *Server) handleEndSession(c *fiber.Ctx) error {
	session, err := s.registry.End(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	report := s.finishTracking(c.UserContext(), session)
	return c.JSON(report)
}

func (s *Server) handleGetSessionAnalytics(c *fiber.Ctx) error {
	session, err := s.store.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session analytics not found"})
	}
	return c.JSON(session)
}

func (s *Server) handleCreateProfile(c *fiber.Ctx) error {
	userID := c.Params("id")
	if profile, err := s.store.GetProfile(c.UserContext(), userID); err == nil {
		return c.JSON(profile)
	}

	profile := analytics.NewUserProfile(userID)
	if err := s.store.SaveProfile(c.UserContext(), *profile); err != nil {
		logger.ErrorContext(c.UserContext(), "Failed to save user profile", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save profile"})
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (s *Server) handleGetProfile(c *fiber.Ctx) error {
	profile, err := s.store.GetProfile(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
	}
	return c.JSON(profile)
}

func (s *Server) handleGetUserStats(c *fiber.Ctx) error {
	profile, err := s.store.GetProfile(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
	}

	stats, err := analytics.ComputeStats(*profile)
	if err != nil {
		logger.ErrorContext(c.UserContext(), "Failed to compute user stats", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute stats"})
	}
	return c.JSON(stats)
}

type updatePreferencesRequest struct {
	Mode  string `json:"mode"`
	Level string `json:"level"`
	Voice string `json:"voice"`
}

func (s *Server) handleUpdatePreferences(c *fiber.Ctx) error {
	profile, err := s.store.GetProfile(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
	}

	req := updatePreferencesRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if req.Mode != "" {
		if _, ok := prompts.ParseMode(req.Mode); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("unknown mode %q", req.Mode)})
		}
		profile.Preferences.Mode = req.Mode
	}
	if req.Level != "" {
		if _, ok := prompts.ParseLevel(req.Level); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("unknown level %q", req.Level)})
		}
		profile.Preferences.Level = req.Level
	}
	if req.Voice != "" {
		profile.Preferences.Voice = req.Voice
	}

	if err := s.store.SaveProfile(c.UserContext(), *profile); err != nil {
		logger.ErrorContext(c.UserContext(), "Failed to save user profile", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save profile"})
	}
	return c.JSON(profile)
}

func sessionResponse(session *sessions.Session) fiber.Map {
	return fiber.Map{
		"session_id": session.ID,
		"mode":       session.Mode,
		"level":      session.Level,
		"scenario":   session.Scenario,
		"started_at": session.StartedAt,
	}
}

// trackSession starts collecting analytics for the session by listening to
// its agent's turn events.
func (s *Server) trackSession(session *sessions.Session, userID string) {
	record := analytics.NewSessionAnalytics(session.ID, userID, string(session.Mode), string(session.Level))

	unsubscribe := session.Agent.Subscribe(func(event events.Event) {
		completed, ok := event.(events.TurnCompleted)
		if !ok {
			return
		}
		record.RecordUserMessage(completed.Utterance)
		record.RecordAgentMessage(completed.Response)
		if err := s.store.SaveSession(context.Background(), record.Snapshot()); err != nil {
			logger.Error("Failed to save session analytics", "error", err)
		}
	})

	s.mu.Lock()
	s.tracking[session.ID] = record
	s.detach[session.ID] = unsubscribe
	s.mu.Unlock()
}

// SessionSummary is the structured wrap-up generated when a session ends.
type SessionSummary struct {
	Overview       string   `json:"overview"`
	Strengths      []string `json:"strengths"`
	AreasToImprove []string `json:"areas_to_improve"`
}

type sessionReport struct {
	SessionID string                      `json:"session_id"`
	Analytics *analytics.SessionAnalytics `json:"analytics,omitempty"`
	Summary   *SessionSummary             `json:"summary,omitempty"`
}

// finishTracking finalizes and archives the session's analytics, folds them
// into the user's profile, and generates the structured summary when an LLM
// is configured.
func (s *Server) finishTracking(ctx context.Context, session *sessions.Session) sessionReport {
	ctx, span := tracer.Start(ctx, "finish session tracking")
	defer span.End()

	report := sessionReport{SessionID: session.ID}

	s.mu.Lock()
	record := s.tracking[session.ID]
	unsubscribe := s.detach[session.ID]
	delete(s.tracking, session.ID)
	delete(s.detach, session.ID)
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if record == nil {
		return report
	}

	record.Finalize()
	snapshot := record.Snapshot()
	report.Analytics = &snapshot

	if err := s.store.ArchiveSession(ctx, snapshot); err != nil {
		span.RecordError(err)
		logger.ErrorContext(ctx, "Failed to archive session analytics", "error", err)
	}

	if snapshot.UserID != "" {
		profile, err := s.store.GetProfile(ctx, snapshot.UserID)
		if err != nil {
			profile = analytics.NewUserProfile(snapshot.UserID)
		}
		profile.RecordSession(snapshot)
		if err := s.store.SaveProfile(ctx, *profile); err != nil {
			span.RecordError(err)
			logger.ErrorContext(ctx, "Failed to update user profile", "error", err)
		}
	}

	if summary := s.summarizeSession(ctx, session); summary != nil {
		report.Summary = summary
	}

	return report
}

func (s *Server) summarizeSession(ctx context.Context, session *sessions.Session) *SessionSummary {
	if s.summaryLLM == nil {
		return nil
	}

	history := session.Agent.History()
	if len(history) == 0 {
		return nil
	}

	summary, err := openai.PromptJSONSchema(ctx, s.summaryLLM,
		"Summarize this English practice session for the learner.",
		SessionSummary{},
		llms.WithSystemPrompt("You review English learning conversations. Be brief and encouraging."),
		llms.WithMessages(history...),
	)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate session summary", "error", err)
		return nil
	}
	return summary
}
