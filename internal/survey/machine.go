package survey

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/gratefultolord/survey_bot/internal/chat"
	"github.com/gratefultolord/survey_bot/internal/db"
	"github.com/gratefultolord/survey_bot/internal/metrics"
)

const msgSessionFailed = "Xatolik yuz berdi. Iltimos, keyinroq qayta urining. / Произошла ошибка. Пожалуйста, попробуйте позже."

// Machine walks each sender through the survey one event at a time. Handle is not
// safe for concurrent calls for the same sender.
type Machine struct {
	sessions SessionStore
	records  RecordStore
	adminID  int64
	metrics  *metrics.Collector
	logger   *slog.Logger

	newSubmissionID func() string
}

func New(
	sessions SessionStore,
	records RecordStore,
	adminID int64,
	collector *metrics.Collector,
	logger *slog.Logger,
) *Machine {
	return &Machine{
		sessions:        sessions,
		records:         records,
		adminID:         adminID,
		metrics:         collector,
		logger:          logger,
		newSubmissionID: func() string { return uuid.New().String() },
	}
}

// Restart drops the sender's session and asks for the language again.
func (m *Machine) Restart(ctx context.Context, senderID int64) (chat.Response, error) {
	if senderID == m.adminID {
		m.logger.Warn("admin attempted to start survey", "sender", senderID)
		return chat.PlainMessage{Text: MsgAdminOnly}, ErrUnauthorized
	}

	if err := m.sessions.Delete(ctx, senderID); err != nil {
		m.logger.Error("failed to reset session", "sender", senderID, "err", err)
		return chat.PlainMessage{Text: msgSessionFailed}, fmt.Errorf("Machine.Restart: %w", err)
	}

	m.logger.Info("survey restarted", "sender", senderID)

	return m.start(ctx, senderID)
}

// Handle validates ev against the sender's current state and returns the message to
// send back. The error classifies a rejected or failed event; the response is set
// either way.
func (m *Machine) Handle(ctx context.Context, ev chat.Event) (resp chat.Response, err error) {
	senderID := ev.Sender()

	defer func() {
		m.metrics.SurveyEvent(Outcome(err))
	}()

	if senderID == m.adminID {
		m.logger.Warn("admin attempted to submit survey input", "sender", senderID)
		return chat.PlainMessage{Text: MsgAdminOnly}, ErrUnauthorized
	}

	sess, err := m.sessions.Get(ctx, senderID)
	if err != nil {
		m.logger.Error("failed to load session", "sender", senderID, "err", err)
		return chat.PlainMessage{Text: msgSessionFailed}, fmt.Errorf("Machine.Handle: %w", err)
	}

	if sess == nil {
		return m.start(ctx, senderID)
	}

	m.logger.Info("survey event", "sender", senderID, "state", sess.State)

	switch sess.State {
	case StateChooseLanguage:
		return m.handleLanguage(ctx, senderID, sess, ev)
	case StateAwaitPhone:
		return m.handlePhone(ctx, senderID, sess, ev)
	case StateChooseInstitution:
		return m.handleInstitution(ctx, senderID, sess, ev)
	case StateChooseSurveyType:
		return m.handleSurveyType(ctx, senderID, sess, ev)
	}

	form, idx, ok := fieldFor(sess.State)
	if !ok {
		m.logger.Error("unknown survey state, restarting", "sender", senderID, "state", sess.State)
		if err := m.sessions.Delete(ctx, senderID); err != nil {
			return chat.PlainMessage{Text: msgSessionFailed}, fmt.Errorf("Machine.Handle: %w", err)
		}
		return m.start(ctx, senderID)
	}

	return m.handleField(ctx, senderID, sess, form, idx, ev)
}

func (m *Machine) start(ctx context.Context, senderID int64) (chat.Response, error) {
	return m.advance(ctx, senderID, NewSession(), evStart)
}

// advance applies event, persists the session and asks the next question.
func (m *Machine) advance(ctx context.Context, senderID int64, sess *Session, event string) (chat.Response, error) {
	from := sess.State

	next, err := transition(ctx, from, event)
	if err != nil {
		m.logger.Error("invalid survey transition", "sender", senderID, "err", err)
		return chat.PlainMessage{Text: msgSessionFailed}, err
	}

	sess.State = next
	if err := m.sessions.Save(ctx, senderID, sess); err != nil {
		m.logger.Error("failed to save session", "sender", senderID, "err", err)
		return chat.PlainMessage{Text: txtSessionFailed.In(sess.Language())}, fmt.Errorf("Machine.advance: %w", err)
	}

	m.logger.Debug("survey state changed", "sender", senderID, "from", from, "to", next)

	return m.prompt(sess), nil
}

// prompt is the question asked in the session's current state.
func (m *Machine) prompt(sess *Session) chat.Response {
	lang := sess.Language()

	switch sess.State {
	case StateChooseLanguage:
		return languageChoice(msgChooseLanguage)
	case StateAwaitPhone:
		return contactRequest(txtSharePhone, lang)
	case StateChooseInstitution:
		return institutionChoice(txtChooseInstitution.In(lang))
	case StateChooseSurveyType:
		return surveyTypeChoice(txtChooseSurveyType.In(lang))
	}

	form, idx, _ := fieldFor(sess.State)

	return chat.PlainMessage{Text: form.Fields[idx].Prompt.In(lang)}
}

func languageChoice(text string) chat.Response {
	return chat.ChoiceMessage{Text: text, Choices: []string{LabelUzbek, LabelRussian}}
}

func institutionChoice(text string) chat.Response {
	return chat.ChoiceMessage{Text: text, Choices: []string{LabelSchoolKindergarten, LabelCenter}}
}

func surveyTypeChoice(text string) chat.Response {
	return chat.ChoiceMessage{Text: text, Choices: []string{LabelEmployee, LabelStudent}}
}

func contactRequest(text Text, lang db.Language) chat.Response {
	return chat.ContactRequestMessage{Text: text.In(lang), ButtonLabel: txtContactButton.In(lang)}
}

func textOf(ev chat.Event) (string, bool) {
	te, ok := ev.(chat.TextEvent)
	if !ok {
		return "", false
	}

	return strings.TrimSpace(te.Text), true
}

func (m *Machine) handleLanguage(ctx context.Context, senderID int64, sess *Session, ev chat.Event) (chat.Response, error) {
	text, ok := textOf(ev)
	if !ok {
		return languageChoice(msgInvalidLanguage), fmt.Errorf("%w: %T in %s", ErrProtocol, ev, sess.State)
	}

	lang, ok := languageLabels[text]
	if !ok {
		m.logger.Warn("invalid language", "sender", senderID, "text", text)
		return languageChoice(msgInvalidLanguage), fmt.Errorf("%w: language %q", ErrValidation, text)
	}

	sess.Fields[keyLanguage] = string(lang)

	return m.advance(ctx, senderID, sess, evAdvance)
}

func (m *Machine) handlePhone(ctx context.Context, senderID int64, sess *Session, ev chat.Event) (chat.Response, error) {
	lang := sess.Language()

	contact, ok := ev.(chat.ContactEvent)
	if !ok {
		m.logger.Warn("text sent instead of contact", "sender", senderID)
		return contactRequest(txtPhoneUseButton, lang), fmt.Errorf("%w: %T in %s", ErrProtocol, ev, sess.State)
	}

	phone := strings.TrimSpace(contact.PhoneNumber)
	if phone == "" {
		m.logger.Warn("empty contact", "sender", senderID)
		return contactRequest(txtPhoneEmpty, lang), fmt.Errorf("%w: empty contact", ErrValidation)
	}

	if !IsValidPhone(phone) {
		m.logger.Warn("invalid phone format", "sender", senderID, "phone", phone)
		return contactRequest(txtPhoneInvalid, lang), fmt.Errorf("%w: phone %q", ErrValidation, phone)
	}

	sess.Fields[keyUserPhone] = phone

	return m.advance(ctx, senderID, sess, evAdvance)
}

func (m *Machine) handleInstitution(ctx context.Context, senderID int64, sess *Session, ev chat.Event) (chat.Response, error) {
	retry := institutionChoice(txtInvalidInstitution.In(sess.Language()))

	text, ok := textOf(ev)
	if !ok {
		return retry, fmt.Errorf("%w: %T in %s", ErrProtocol, ev, sess.State)
	}

	institution, ok := institutionLabels[text]
	if !ok {
		m.logger.Warn("invalid institution type", "sender", senderID, "text", text)
		return retry, fmt.Errorf("%w: institution %q", ErrValidation, text)
	}

	sess.Fields[keyInstitutionType] = string(institution)

	return m.advance(ctx, senderID, sess, evAdvance)
}

func (m *Machine) handleSurveyType(ctx context.Context, senderID int64, sess *Session, ev chat.Event) (chat.Response, error) {
	retry := surveyTypeChoice(txtInvalidSurveyType.In(sess.Language()))

	text, ok := textOf(ev)
	if !ok {
		return retry, fmt.Errorf("%w: %T in %s", ErrProtocol, ev, sess.State)
	}

	kind, ok := kindLabels[text]
	if !ok {
		m.logger.Warn("invalid survey type", "sender", senderID, "text", text)
		return retry, fmt.Errorf("%w: survey type %q", ErrValidation, text)
	}

	sess.Fields[keySurveyType] = string(kind)
	sess.Fields[keySubmissionID] = m.newSubmissionID()

	return m.advance(ctx, senderID, sess, string(kind))
}

func (m *Machine) handleField(ctx context.Context, senderID int64, sess *Session, form *Form, idx int, ev chat.Event) (chat.Response, error) {
	field := form.Fields[idx]
	retry := chat.PlainMessage{Text: field.Retry.In(sess.Language())}

	text, ok := textOf(ev)
	if !ok {
		return retry, fmt.Errorf("%w: %T in %s", ErrProtocol, ev, sess.State)
	}

	if !field.Valid(text) {
		m.logger.Warn("invalid field value", "sender", senderID, "field", field.Key)
		return retry, fmt.Errorf("%w: %s", ErrValidation, field.Key)
	}

	sess.Fields[field.Key] = text

	if idx < len(form.Fields)-1 {
		return m.advance(ctx, senderID, sess, evAdvance)
	}

	return m.commit(ctx, senderID, sess, form)
}

// commit writes the record. On failure the session keeps its answers and stays in the
// last field's state, so re-sending the last answer retries the commit.
func (m *Machine) commit(ctx context.Context, senderID int64, sess *Session, form *Form) (chat.Response, error) {
	lang := sess.Language()

	next, err := transition(ctx, sess.State, evComplete)
	if err != nil {
		m.logger.Error("invalid survey transition", "sender", senderID, "err", err)
		return chat.PlainMessage{Text: txtSessionFailed.In(lang)}, err
	}

	id, err := m.appendRecord(ctx, sess, form.Kind)
	m.metrics.Commit(string(form.Kind), err)

	if err != nil {
		m.logger.Error("failed to save record", "sender", senderID, "kind", form.Kind, "err", err)
		if saveErr := m.sessions.Save(ctx, senderID, sess); saveErr != nil {
			m.logger.Error("failed to save session", "sender", senderID, "err", saveErr)
		}
		return chat.PlainMessage{Text: txtSaveFailed.In(lang)}, err
	}

	// an idle sender has no stored session
	sess.State = next
	if err := m.sessions.Delete(ctx, senderID); err != nil {
		m.logger.Error("failed to clear session", "sender", senderID, "err", err)
	}

	m.logger.Info("record saved",
		"sender", senderID,
		"kind", form.Kind,
		"id", id,
		"user_phone", sess.Fields[keyUserPhone],
		"institution_type", sess.Fields[keyInstitutionType],
	)

	return chat.PlainMessage{Text: txtThanks.In(lang)}, nil
}

func (m *Machine) appendRecord(ctx context.Context, sess *Session, kind Kind) (int64, error) {
	switch kind {
	case KindEmployee:
		rec, err := buildEmployee(sess)
		if err != nil {
			return 0, err
		}
		return m.records.AppendEmployee(ctx, rec)
	case KindStudent:
		rec, err := buildStudent(sess)
		if err != nil {
			return 0, err
		}
		return m.records.AppendStudent(ctx, rec)
	default:
		return 0, fmt.Errorf("%w: unknown record kind %q", ErrIncomplete, kind)
	}
}
