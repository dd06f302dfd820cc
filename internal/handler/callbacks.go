package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gitachi143/speechReader/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, it was already edited by another callback
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch callback.Unique {
	case "new_reading":
		return h.handleNewReading(c)
	case "my_sessions":
		return h.handleMySessions(c)
	case "skip_word":
		return h.handleSkipWord(c)
	case "reset_session":
		return h.handleResetSession(c)
	case "stop_reading":
		return h.handleStopReading(c)
	case "main_menu":
		return h.handleStart(c)
	}

	// If Unique is empty, try to handle by Data (for buttons with Unique that didn't come through)
	if callback.Unique == "" {
		switch data {
		case "new_reading":
			return h.handleNewReading(c)
		case "my_sessions":
			return h.handleMySessions(c)
		case "skip_word":
			return h.handleSkipWord(c)
		case "reset_session":
			return h.handleResetSession(c)
		case "stop_reading":
			return h.handleStopReading(c)
		case "main_menu":
			return h.handleStart(c)
		}
	}

	// Dynamic buttons carry the session id in the data
	if strings.HasPrefix(data, "open_") {
		return h.handleOpenSession(c, data)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleNewReading asks the user to paste a text
func (h *Handler) handleNewReading(c tele.Context) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingText})

	text := "📖 Paste the text you want to practice:"
	if err := c.Edit(text); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text)
	}
	return c.Respond()
}

// handleMySessions lists recent sessions as buttons
func (h *Handler) handleMySessions(c tele.Context) error {
	userID := c.Sender().ID

	sessions, err := h.readingService.Recent()
	if err != nil {
		h.logger.Error("Failed to list sessions", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Couldn't load your sessions"})
	}

	if len(sessions) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "You have no sessions yet",
			ShowAlert: true,
		})
	}

	text := "📚 Your recent sessions:\n\n"
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for i := range sessions {
		s := &sessions[i]
		label := fmt.Sprintf("%s — %d/%d", s.Name, s.CurrentWordIndex, s.TotalWords())
		if s.Completed() {
			label = fmt.Sprintf("%s ✅", s.Name)
		}
		btn := markup.Data(label, "open_"+s.ID)
		rows = append(rows, markup.Row(btn))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleOpenSession resumes a session picked from the list
func (h *Handler) handleOpenSession(c tele.Context, data string) error {
	userID := c.Sender().ID
	sessionID := strings.TrimPrefix(strings.TrimSpace(data), "open_")

	session, err := h.readingService.Get(sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "That session is gone", ShowAlert: true})
		}
		h.logger.Error("Failed to load session", zap.Error(err), zap.String("session_id", sessionID))
		return c.Respond(&tele.CallbackResponse{Text: "Couldn't load the session"})
	}

	if session.Completed() {
		stats, err := h.statsService.SessionStats(sessionID)
		if err != nil {
			h.logger.Error("Failed to compute stats", zap.Error(err))
			return c.Respond(&tele.CallbackResponse{Text: "Couldn't load the session"})
		}
		text := fmt.Sprintf("✅ %s is finished.\n\n%s", session.Name, formatStats(stats))
		if err := c.Edit(text, mainMenuMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(text, mainMenuMarkup())
		}
		return c.Respond()
	}

	h.SetState(userID, &domain.StateData{
		State:     domain.StateReading,
		SessionID: session.ID,
	})

	text := fmt.Sprintf("📖 %s\n\n%s", session.Name, wordPrompt(session))
	if err := c.Edit(text, readingMarkup()); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, readingMarkup())
	}
	return c.Respond()
}

// handleSkipWord skips the current word
func (h *Handler) handleSkipWord(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.State != domain.StateReading {
		return c.Respond(&tele.CallbackResponse{Text: "Nothing to skip"})
	}

	result, err := h.readingService.Skip(state.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionComplete) || errors.Is(err, domain.ErrSessionNotFound) {
			h.ResetState(userID)
			return c.Respond(&tele.CallbackResponse{Text: "That session is over", ShowAlert: true})
		}
		h.logger.Error("Failed to skip word", zap.Error(err), zap.String("session_id", state.SessionID))
		return c.Respond(&tele.CallbackResponse{Text: "Couldn't skip"})
	}

	if result.Completed {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
		return h.sendCompletion(c, userID, state.SessionID)
	}

	session, err := h.readingService.Get(state.SessionID)
	if err != nil {
		h.logger.Error("Failed to reload session", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Couldn't skip"})
	}

	text := "⏭ Skipped.\n\n" + wordPrompt(session)
	if err := c.Edit(text, readingMarkup()); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, readingMarkup())
	}
	return c.Respond()
}

// handleResetSession rewinds the current session to the first word
func (h *Handler) handleResetSession(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.State != domain.StateReading {
		return c.Respond(&tele.CallbackResponse{Text: "Nothing to reset"})
	}

	if err := h.readingService.Reset(state.SessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			h.ResetState(userID)
			return c.Respond(&tele.CallbackResponse{Text: "That session is gone", ShowAlert: true})
		}
		h.logger.Error("Failed to reset session", zap.Error(err), zap.String("session_id", state.SessionID))
		return c.Respond(&tele.CallbackResponse{Text: "Couldn't reset"})
	}

	session, err := h.readingService.Get(state.SessionID)
	if err != nil {
		h.logger.Error("Failed to reload session", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Couldn't reset"})
	}

	text := "🔄 Starting over.\n\n" + wordPrompt(session)
	if err := c.Edit(text, readingMarkup()); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, readingMarkup())
	}
	return c.Respond()
}

// handleStopReading leaves the session and returns to the menu. The
// session keeps its cursor and can be resumed from "My sessions".
func (h *Handler) handleStopReading(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)

	text := "⏹ Stopped. Your progress is saved.\n\n🏠 Main menu\n\nPick an action:"
	if err := c.Edit(text, mainMenuMarkup()); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, mainMenuMarkup())
	}
	return c.Respond()
}
