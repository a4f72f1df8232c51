package worker

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kengraphic/tujengane-sacco/internal/events"
	"github.com/kengraphic/tujengane-sacco/internal/notifier"
)

type Config struct {
	RabbitURL   string
	Exchange    string
	Queue       string
	Bindings    []string
	Prefetch    int
	UseDLX      bool
	DLXName     string
	DLXQueue    string
	ServiceName string

	TreasuryPhone string // payee shown in the contribution prompt
}

type Consumer struct {
	cfg      Config
	notifier notifier.Notifier

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg Config, n notifier.Notifier) *Consumer {
	return &Consumer{cfg: cfg, notifier: n}
}

func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.RabbitURL)
	if err != nil {
		return fmt.Errorf("rabbit dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel failed: %w", err)
	}

	// queue first, with DLX routing if configured
	args := amqp.Table{}
	if c.cfg.UseDLX {
		args["x-dead-letter-exchange"] = c.cfg.DLXName
	}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, args)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare queue failed: %w", err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange failed: %w", err)
	}
	for _, key := range c.cfg.Bindings {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind queue key=%s failed: %w", key, err)
		}
	}

	if c.cfg.UseDLX {
		if err := ch.ExchangeDeclare(c.cfg.DLXName, "topic", true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("declare dlx failed: %w", err)
		}
		if _, err := ch.QueueDeclare(c.cfg.DLXQueue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("declare dlq failed: %w", err)
		}
		if err := ch.QueueBind(c.cfg.DLXQueue, "#", c.cfg.DLXName, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind dlq failed: %w", err)
		}
	}

	if c.cfg.Prefetch <= 0 {
		c.cfg.Prefetch = 8
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("set qos failed: %w", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, c.cfg.ServiceName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handleDelivery(d); err != nil {
				log.Printf("[notify] handle error key=%s err=%v -> Nack&requeue", d.RoutingKey, err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleDelivery(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKMemberRegistered:
		ev, err := events.MustUnmarshal[events.MemberRegistered](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("📨 Verify Your Email",
			fmt.Sprintf("Karibu %s! Confirm your email %s with code %s to activate your application.",
				ev.FullName, ev.Email, ev.VerifyToken))

	case events.RKMemberApproved:
		ev, err := events.MustUnmarshal[events.MemberReviewed](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("✅ Membership Approved",
			fmt.Sprintf("%s, your Tujengane membership has been approved. You can now contribute.", ev.FullName))

	case events.RKMemberRejected:
		ev, err := events.MustUnmarshal[events.MemberReviewed](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("❌ Membership Not Approved",
			fmt.Sprintf("%s, your application was not approved. Please contact the admin.", ev.FullName))

	case events.RKContributionSubmitted:
		ev, err := events.MustUnmarshal[events.ContributionSubmitted](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("💰 M-Pesa Request Sent",
			fmt.Sprintf("Check your phone (%s) and enter your M-Pesa PIN to complete the payment of %s to %s.",
				ev.PhoneNumber, notifier.FormatKES(ev.Amount), c.cfg.TreasuryPhone))

	default:
		// unknown key: log and ack
		log.Printf("[notify] skip unknown key=%s", d.RoutingKey)
	}
	return nil
}
