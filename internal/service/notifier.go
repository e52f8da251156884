package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/notify"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// NotificationTemplate - шаблон текста оповещения; логика каналов для всех одинаковая,
// кроме relief (см. buildPlan)
type NotificationTemplate string

const (
	TemplateTrigger   NotificationTemplate = "trigger"
	TemplateDeviation NotificationTemplate = "deviation"
	TemplateRelief    NotificationTemplate = "relief"
)

// Верхний приоритетный уровень, которому положен голосовой вызов
const callPriorityThreshold = 2

// Notifier - движок эскалации оповещений: строит план по каналам, выполняет отправки
// с ограниченным параллелизмом и фиксирует итоги. Отказ одной отправки никогда
// не прерывает остальные; единственная жесткая ошибка - отсутствие контактов.
type Notifier struct {
	sender      notify.MessageSender
	logger      *logrus.Logger
	concurrency int
}

// NewNotifier создает новый Notifier
func NewNotifier(sender notify.MessageSender, logger *logrus.Logger, concurrency int) *Notifier {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Notifier{
		sender:      sender,
		logger:      logger,
		concurrency: concurrency,
	}
}

type plannedSend struct {
	contact models.Contact
	channel models.NotificationChannel
}

// Notify выполняет план оповещения по всем контактам подопечного и возвращает журнал
// попыток в порядке плана (по приоритету контактов), независимо от порядка завершения
// отправок
func (n *Notifier) Notify(ctx context.Context, emergency *models.Emergency, subject *models.Subject, tmpl NotificationTemplate) ([]models.NotificationRecord, error) {
	log := n.logger.WithFields(logrus.Fields{
		"service":      "notifier",
		"method":       "Notify",
		"emergency_id": emergency.ID,
		"template":     tmpl,
	})

	if len(subject.Contacts) == 0 {
		log.Warn("Subject has no contacts configured")
		return nil, fmt.Errorf("service: subject %s: %w", subject.ID, ErrNoContacts)
	}

	plan := buildPlan(subject.Contacts, tmpl)
	records := make([]models.NotificationRecord, len(plan))

	var g errgroup.Group
	g.SetLimit(n.concurrency)
	for i, p := range plan {
		i, p := i, p
		g.Go(func() error {
			records[i] = n.dispatch(ctx, emergency, subject, p, tmpl)
			return nil
		})
	}
	// Отправки не возвращают ошибок - ждем только завершения всех попыток
	_ = g.Wait()

	sent := 0
	for _, r := range records {
		if r.Outcome == models.OutcomeSent {
			sent++
		}
	}
	log.WithFields(logrus.Fields{
		"attempts": len(records),
		"sent":     sent,
	}).Info("Notification plan executed")

	return records, nil
}

// NotifyResponder отправляет SMS подобранному ответчику, переиспользуя канальные
// примитивы движка
func (n *Notifier) NotifyResponder(ctx context.Context, emergency *models.Emergency, subject *models.Subject, ranked models.RankedResponder) models.NotificationRecord {
	text := fmt.Sprintf(
		"CPR request: %s needs urgent help at %.5f, %.5f (%.0f m from you, ETA %d min). Emergency ID: %s.",
		subject.Name,
		emergency.Location.Latitude, emergency.Location.Longitude,
		ranked.DistanceMeters, ranked.ETAMinutes, emergency.ID,
	)

	outcome := n.sender.SendSMS(ctx, ranked.Responder.Phone, text)
	return models.NotificationRecord{
		ContactID:   ranked.Responder.ID,
		ContactName: ranked.Responder.Name,
		Channel:     models.ChannelSMS,
		At:          time.Now(),
		Outcome:     outcomeLabel(outcome),
		Detail:      outcomeDetail(outcome),
	}
}

// buildPlan строит план отправок: контакты стабильно сортируются по приоритету,
// затем для каждого определяются каналы. SMS - всегда; email - если задан;
// звонок - только двум верхним приоритетным уровням (правило эскалации).
// Relief-шаблон - сообщение-успокоение: SMS + email всем, без звонков и фильтра приоритета.
func buildPlan(contacts []models.Contact, tmpl NotificationTemplate) []plannedSend {
	sorted := make([]models.Contact, len(contacts))
	copy(sorted, contacts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	plan := make([]plannedSend, 0, len(sorted)*3)
	for _, c := range sorted {
		plan = append(plan, plannedSend{contact: c, channel: models.ChannelSMS})
		if c.Email != "" {
			plan = append(plan, plannedSend{contact: c, channel: models.ChannelEmail})
		}
		if tmpl != TemplateRelief && c.Priority <= callPriorityThreshold {
			plan = append(plan, plannedSend{contact: c, channel: models.ChannelCall})
		}
	}
	return plan
}

func (n *Notifier) dispatch(ctx context.Context, emergency *models.Emergency, subject *models.Subject, p plannedSend, tmpl NotificationTemplate) models.NotificationRecord {
	text := renderText(tmpl, subject.Name, emergency)

	var outcome notify.Outcome
	switch p.channel {
	case models.ChannelSMS:
		outcome = n.sender.SendSMS(ctx, p.contact.Phone, text)
	case models.ChannelCall:
		outcome = n.sender.SendCall(ctx, p.contact.Phone, text)
	case models.ChannelEmail:
		outcome = n.sender.SendEmail(ctx, p.contact.Email, renderEmailSubject(tmpl, subject.Name), text)
	}

	return models.NotificationRecord{
		ContactID:   p.contact.ID,
		ContactName: p.contact.Name,
		Channel:     p.channel,
		At:          time.Now(),
		Outcome:     outcomeLabel(outcome),
		Detail:      outcomeDetail(outcome),
	}
}

// renderText формирует текст оповещения. Обязательные поля: имя подопечного,
// тип тревоги, координаты, идентификатор и время.
func renderText(tmpl NotificationTemplate, subjectName string, e *models.Emergency) string {
	loc := fmt.Sprintf("%.5f, %.5f", e.Location.Latitude, e.Location.Longitude)
	ts := e.TriggeredAt.Format(time.RFC3339)

	switch tmpl {
	case TemplateRelief:
		return fmt.Sprintf("%s is safe. Emergency %s (%s) is closed.", subjectName, e.ID, e.Kind)
	case TemplateDeviation:
		return fmt.Sprintf("ALERT: %s deviated from the expected route. Location: %s. Time: %s. Emergency ID: %s.", subjectName, loc, ts, e.ID)
	default:
		return fmt.Sprintf("EMERGENCY (%s): %s needs help. Location: %s. Time: %s. Emergency ID: %s.", e.Kind, subjectName, loc, ts, e.ID)
	}
}

func renderEmailSubject(tmpl NotificationTemplate, subjectName string) string {
	if tmpl == TemplateRelief {
		return fmt.Sprintf("%s is safe", subjectName)
	}
	return fmt.Sprintf("Emergency alert: %s", subjectName)
}

func outcomeLabel(o notify.Outcome) string {
	if o.OK {
		return models.OutcomeSent
	}
	return models.OutcomeFailed
}

func outcomeDetail(o notify.Outcome) string {
	if o.OK {
		return o.ProviderRef
	}
	return o.ErrorDetail
}
