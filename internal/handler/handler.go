package handler

import (
	"sync"

	"github.com/gitachi143/speechReader/internal/domain"
	"github.com/gitachi143/speechReader/internal/middleware"
	"github.com/gitachi143/speechReader/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions. The bot is a typing-based
// front-end to the reading core: users paste a text and type each
// word instead of speaking it, so every typed word is submitted as a
// hypothesis with full confidence.
type Handler struct {
	bot            *tele.Bot
	authService    *service.AuthService
	readingService *service.SessionService
	statsService   *service.StatsService
	logger         *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	readingService *service.SessionService,
	statsService *service.StatsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:            bot,
		authService:    authService,
		readingService: readingService,
		statsService:   statsService,
		logger:         logger,
		states:         make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers. Buttons only make
// sense for authorized users, so they sit behind the auth middleware;
// text stays open because the password arrives as a text message.
func (h *Handler) RegisterHandlers() {
	guard := middleware.Auth(h.authService, h.logger)

	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnNewReading, h.handleNewReading, guard)
	h.bot.Handle(&btnMySessions, h.handleMySessions, guard)
	h.bot.Handle(&btnSkip, h.handleSkipWord, guard)
	h.bot.Handle(&btnReset, h.handleResetSession, guard)
	h.bot.Handle(&btnStop, h.handleStopReading, guard)
	h.bot.Handle(&btnMainMenu, h.handleStart, guard)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback, guard)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnNewReading = tele.Btn{
		Unique: "new_reading",
		Text:   "📖 New reading",
	}
	btnMySessions = tele.Btn{
		Unique: "my_sessions",
		Text:   "📚 My sessions",
	}
	btnSkip = tele.Btn{
		Unique: "skip_word",
		Text:   "⏭ Skip word",
	}
	btnReset = tele.Btn{
		Unique: "reset_session",
		Text:   "🔄 Start over",
	}
	btnStop = tele.Btn{
		Unique: "stop_reading",
		Text:   "⏹ Stop",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnNewReading),
		menu.Row(btnMySessions),
	)
	return menu
}

// readingMarkup returns the keyboard shown while reading
func readingMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnSkip, btnReset),
		menu.Row(btnStop),
	)
	return menu
}
