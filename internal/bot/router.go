package bot

import (
	"context"
	"strings"

	"github.com/gratefultolord/survey_bot/internal/chat"
)

const CommandStart = "/start"

type SurveyHandler interface {
	Handle(ctx context.Context, ev chat.Event) (chat.Response, error)
	Restart(ctx context.Context, senderID int64) (chat.Response, error)
}

type AdminHandler interface {
	IsAdmin(senderID int64) bool
	Menu(senderID int64) (chat.Response, error)
	ListSubmitters(ctx context.Context, senderID int64) (chat.Response, error)
	HandleCallback(ctx context.Context, senderID int64, data string) (chat.Response, error)
}

// Router sends commands and admin buttons to their handlers and everything else to
// the survey.
type Router struct {
	survey      SurveyHandler
	admin       AdminHandler
	adminButton string
}

func NewRouter(survey SurveyHandler, admin AdminHandler, adminButton string) *Router {
	return &Router{survey: survey, admin: admin, adminButton: adminButton}
}

func (r *Router) Route(ctx context.Context, ev chat.Event) (chat.Response, error) {
	switch e := ev.(type) {
	case chat.CallbackEvent:
		return r.admin.HandleCallback(ctx, e.SenderID, e.Data)
	case chat.TextEvent:
		switch strings.TrimSpace(e.Text) {
		case CommandStart:
			if r.admin.IsAdmin(e.SenderID) {
				return r.admin.Menu(e.SenderID)
			}
			return r.survey.Restart(ctx, e.SenderID)
		case r.adminButton:
			return r.admin.ListSubmitters(ctx, e.SenderID)
		}
	}

	return r.survey.Handle(ctx, ev)
}
