package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gitachi143/speechReader/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// typedConfidence is the confidence attached to typed hypotheses.
// Unlike speech recognition there is no acoustic uncertainty, so a
// near miss is a real typo, never an "uncertain" verdict.
const typedConfidence = 1.0

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Ensure user exists
	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send("Something went wrong. Please try again later.")
	}

	// If not authorized, treat the message as a password attempt
	if !authorized {
		if h.authService.CheckPassword(text) {
			if err := h.authService.AuthorizeUser(userID); err != nil {
				h.logger.Error("Failed to authorize user", zap.Error(err))
				return c.Send("Something went wrong. Please try again later.")
			}

			h.logger.Info("User authorized", zap.Int64("user_id", userID))
			h.ResetState(userID)
			return c.Send(
				"✅ You're in!\n\n🏠 Main menu\n\nPick an action:",
				mainMenuMarkup(),
			)
		}

		// Wrong password
		return c.Send("Wrong password, try again.")
	}

	// User is authorized, handle based on state
	state := h.GetState(userID)

	switch state.State {
	case domain.StateReading:
		return h.handleTypedWord(c, userID, state.SessionID, text)
	default:
		// Idle or waiting for text: any message starts a new reading.
		return h.startReading(c, userID, text)
	}
}

// startReading creates a session from the pasted text and prompts for
// the first word
func (h *Handler) startReading(c tele.Context, userID int64, text string) error {
	session, err := h.readingService.Create(text, "Telegram Text")
	if err != nil {
		if errors.Is(err, domain.ErrEmptyText) {
			return c.Send("I need some actual words to read. Send me a text.")
		}
		h.logger.Error("Failed to create session",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Send("Couldn't save the text. Please try again.")
	}

	h.SetState(userID, &domain.StateData{
		State:     domain.StateReading,
		SessionID: session.ID,
	})

	h.logger.Info("Reading started via bot",
		zap.Int64("user_id", userID),
		zap.String("session_id", session.ID),
	)

	return c.Send(
		fmt.Sprintf("📖 Let's read! %d words ahead.\n\n%s", session.TotalWords(), wordPrompt(session)),
		readingMarkup(),
	)
}

// handleTypedWord submits the typed word as a hypothesis and reports
// the verdict
func (h *Handler) handleTypedWord(c tele.Context, userID int64, sessionID, word string) error {
	result, err := h.readingService.SubmitHypothesis(sessionID, word, typedConfidence)
	if err != nil {
		if errors.Is(err, domain.ErrSessionComplete) {
			h.ResetState(userID)
			return c.Send("That session is already finished. 🏠 Main menu:", mainMenuMarkup())
		}
		if errors.Is(err, domain.ErrSessionNotFound) {
			h.ResetState(userID)
			return c.Send("That session is gone. 🏠 Main menu:", mainMenuMarkup())
		}
		h.logger.Error("Failed to submit hypothesis",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("session_id", sessionID),
		)
		return c.Send("Something went wrong. Please try again.")
	}

	if result.Completed {
		return h.sendCompletion(c, userID, sessionID)
	}

	session, err := h.readingService.Get(sessionID)
	if err != nil {
		h.logger.Error("Failed to reload session", zap.Error(err))
		return c.Send("Something went wrong. Please try again.")
	}

	switch result.Verdict {
	case domain.VerdictCorrect:
		return c.Send("✅ "+wordPrompt(session), readingMarkup())
	default:
		return c.Send(
			fmt.Sprintf("❌ Not quite.\n\n%s", wordPrompt(session)),
			readingMarkup(),
		)
	}
}

// sendCompletion shows the final statistics and returns to the menu
func (h *Handler) sendCompletion(c tele.Context, userID int64, sessionID string) error {
	h.ResetState(userID)

	stats, err := h.statsService.SessionStats(sessionID)
	if err != nil {
		h.logger.Error("Failed to compute stats", zap.Error(err))
		return c.Send("🎉 You finished the text!", mainMenuMarkup())
	}

	return c.Send("🎉 You finished the text!\n\n"+formatStats(stats), mainMenuMarkup())
}

// wordPrompt renders the next expected word with its position
func wordPrompt(session *domain.ReadingSession) string {
	return fmt.Sprintf(
		"Word %d of %d:\n\n👉 %s",
		session.CurrentWordIndex+1,
		session.TotalWords(),
		session.ExpectedToken().Display,
	)
}

// formatStats renders session statistics for chat
func formatStats(stats *domain.SessionStats) string {
	return fmt.Sprintf(
		"📊 Results:\n• Words: %d\n• Correct: %d of %d attempted\n• Accuracy: %.0f%%\n• Time: %s",
		stats.TotalWords,
		stats.CorrectWords,
		stats.AttemptedWords,
		stats.Accuracy*100,
		stats.Elapsed.Round(time.Second),
	)
}
