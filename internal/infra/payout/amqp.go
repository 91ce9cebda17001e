package payout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/commission"

	amqp "github.com/rabbitmq/amqp091-go"
)

const routingKeyRecorded = "payout.recorded"

// recordedMessage is the body of payout.recorded. MessageId is stable per
// professional and period so consumers can drop redeliveries.
type recordedMessage struct {
	PayoutID       string    `json:"payout_id"`
	TenantID       string    `json:"tenant_id"`
	ProfessionalID string    `json:"professional_id"`
	PeriodStart    time.Time `json:"period_start"`
	PeriodEnd      time.Time `json:"period_end"`
	AmountCents    int64     `json:"amount_cents"`
	LineCount      int       `json:"line_count"`
	RecordedAt     time.Time `json:"recorded_at"`
}

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) PayoutRecorded(ctx context.Context, po *commission.Payout) error {
	body, err := json.Marshal(recordedMessage{
		PayoutID:       po.ID.String(),
		TenantID:       po.TenantID.String(),
		ProfessionalID: po.ProfessionalID.String(),
		PeriodStart:    po.Period.Start(),
		PeriodEnd:      po.Period.End(),
		AmountCents:    po.AmountCents,
		LineCount:      po.LineCount,
		RecordedAt:     po.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode payout message: %w", err)
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, routingKeyRecorded, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID(po),
		Timestamp:    po.CreatedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish payout: %w", err)
	}
	slog.Info("payout published", "payout_id", po.ID.String(), "amount_cents", po.AmountCents)
	return nil
}

func messageID(po *commission.Payout) string {
	return fmt.Sprintf("%s:%d:%d", po.ProfessionalID, po.Period.Start().Unix(), po.Period.End().Unix())
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogGateway stands in when no broker is configured.
type LogGateway struct{}

func NewLogGateway() LogGateway {
	return LogGateway{}
}

func (LogGateway) PayoutRecorded(_ context.Context, po *commission.Payout) error {
	slog.Info("payout recorded",
		"payout_id", po.ID.String(),
		"professional_id", po.ProfessionalID.String(),
		"period", po.Period.String(),
		"amount_cents", po.AmountCents)
	return nil
}
