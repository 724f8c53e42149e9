// Package admin is the read-only view over stored records, available to the single
// configured administrator.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gratefultolord/survey_bot/internal/chat"
	"github.com/gratefultolord/survey_bot/internal/db"
	"github.com/gratefultolord/survey_bot/internal/metrics"
	"github.com/gratefultolord/survey_bot/internal/survey"
)

// ErrUnauthorized is returned to any caller other than the administrator.
var ErrUnauthorized = fmt.Errorf("admin: %w", survey.ErrUnauthorized)

const (
	ButtonResponses = "Javoblar / Ответы"

	ActionShowResponses = "show_responses"
	ActionUserPrefix    = "user_"
)

const (
	msgMenu          = "Javoblarni ko‘rish uchun tugmani bosing / Нажмите кнопку для просмотра ответов:"
	msgNoRights      = "Sizda admin huquqlari yo‘q / У вас нет прав администратора."
	msgChooseUser    = "Foydalanuvchilarni tanlang / Выберите пользователя:"
	msgNoResponses   = "Hech qanday javob topilmadi / Ответы не найдены"
	msgUserNotFound  = "Bu foydalanuvchi uchun javoblar topilmadi / Ответы для этого пользователя не найдены"
	msgQueryFailed   = "Javoblarni olishda xatolik yuz berdi / Ошибка при получении ответов."
	msgUnknownAction = "Noma'lum amal / Неизвестное действие"
	labelBack        = "Orqaga / Назад"
)

type RecordStore interface {
	ListDistinctSubmitters(ctx context.Context) ([]db.Submitter, error)
	FindByPhone(ctx context.Context, phone string) ([]db.Employee, []db.Student, error)
}

type Service struct {
	records RecordStore
	adminID int64
	metrics *metrics.Collector
	logger  *slog.Logger
}

func New(records RecordStore, adminID int64, collector *metrics.Collector, logger *slog.Logger) *Service {
	return &Service{
		records: records,
		adminID: adminID,
		metrics: collector,
		logger:  logger,
	}
}

func (s *Service) IsAdmin(senderID int64) bool {
	return senderID == s.adminID
}

// Menu is the admin's entry keyboard with the single responses button.
func (s *Service) Menu(senderID int64) (chat.Response, error) {
	if !s.IsAdmin(senderID) {
		return s.reject(senderID, "menu")
	}

	return chat.ChoiceMessage{Text: msgMenu, Choices: []string{ButtonResponses}}, nil
}

func (s *Service) ListSubmitters(ctx context.Context, senderID int64) (chat.Response, error) {
	if !s.IsAdmin(senderID) {
		return s.reject(senderID, "list_submitters")
	}

	submitters, err := s.records.ListDistinctSubmitters(ctx)
	s.metrics.AdminQuery("list_submitters", err)
	if err != nil {
		s.logger.Error("failed to list submitters", "err", err)
		return chat.PlainMessage{Text: msgQueryFailed}, fmt.Errorf("Service.ListSubmitters: %w", err)
	}

	if len(submitters) == 0 {
		s.logger.Info("no responses found", "sender", senderID)
		return chat.PlainMessage{Text: msgNoResponses}, nil
	}

	items := make([]chat.MenuItem, 0, len(submitters))
	for _, sub := range submitters {
		items = append(items, chat.MenuItem{
			Label:  fmt.Sprintf("%s (%s)", sub.DisplayName, sub.Phone),
			Action: ActionUserPrefix + sub.Phone,
		})
	}

	return chat.MenuMessage{Text: msgChooseUser, Items: items}, nil
}

func (s *Service) ShowSubmitter(ctx context.Context, senderID int64, phone string) (chat.Response, error) {
	if !s.IsAdmin(senderID) {
		return s.reject(senderID, "show_submitter")
	}

	s.logger.Info("admin selected submitter", "sender", senderID, "user_phone", phone)

	employees, students, err := s.records.FindByPhone(ctx, phone)
	s.metrics.AdminQuery("show_submitter", err)
	if err != nil {
		s.logger.Error("failed to load submitter records", "user_phone", phone, "err", err)
		return chat.PlainMessage{Text: msgQueryFailed}, fmt.Errorf("Service.ShowSubmitter: %w", err)
	}

	if len(employees) == 0 && len(students) == 0 {
		return chat.PlainMessage{Text: msgUserNotFound}, nil
	}

	return chat.MenuMessage{
		Text:  Render(phone, employees, students),
		Items: []chat.MenuItem{{Label: labelBack, Action: ActionShowResponses}},
	}, nil
}

// HandleCallback dispatches an inline button press. Unauthorized presses are answered
// with an alert.
func (s *Service) HandleCallback(ctx context.Context, senderID int64, data string) (chat.Response, error) {
	if !s.IsAdmin(senderID) {
		s.logger.Warn("unauthorized callback", "sender", senderID, "data", data)
		return chat.AlertMessage{Text: msgNoRights}, ErrUnauthorized
	}

	s.logger.Info("admin callback", "sender", senderID, "data", data)

	switch {
	case data == ActionShowResponses:
		return s.ListSubmitters(ctx, senderID)
	case strings.HasPrefix(data, ActionUserPrefix):
		return s.ShowSubmitter(ctx, senderID, strings.TrimPrefix(data, ActionUserPrefix))
	default:
		return chat.AlertMessage{Text: msgUnknownAction}, fmt.Errorf("%w: callback %q", survey.ErrProtocol, data)
	}
}

func (s *Service) reject(senderID int64, op string) (chat.Response, error) {
	s.logger.Warn("unauthorized admin access", "sender", senderID, "op", op)
	return chat.PlainMessage{Text: msgNoRights}, ErrUnauthorized
}
