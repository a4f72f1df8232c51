package worker

import (
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kengraphic/tujengane-sacco/internal/events"
)

type captureNotifier struct {
	subjects []string
	messages []string
}

func (c *captureNotifier) Notify(subject, message string) error {
	c.subjects = append(c.subjects, subject)
	c.messages = append(c.messages, message)
	return nil
}

func delivery(t *testing.T, key string, payload any) amqp.Delivery {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return amqp.Delivery{RoutingKey: key, Body: b}
}

func TestHandleDelivery(t *testing.T) {
	n := &captureNotifier{}
	c := NewConsumer(Config{TreasuryPhone: "0700464272"}, n)

	cases := []struct {
		name        string
		d           amqp.Delivery
		wantMessage string
	}{
		{
			"registered",
			delivery(t, events.RKMemberRegistered, events.MemberRegistered{
				FullName: "Amina Wanjiru", Email: "amina@example.com", VerifyToken: "tok-1",
			}),
			"tok-1",
		},
		{
			"approved",
			delivery(t, events.RKMemberApproved, events.MemberReviewed{FullName: "Amina Wanjiru"}),
			"approved",
		},
		{
			"rejected",
			delivery(t, events.RKMemberRejected, events.MemberReviewed{FullName: "Amina Wanjiru"}),
			"not approved",
		},
		{
			"contribution",
			delivery(t, events.RKContributionSubmitted, events.ContributionSubmitted{
				Amount: 150, PhoneNumber: "0712345678",
			}),
			"KES 150.00",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := len(n.messages)
			require.NoError(t, c.handleDelivery(tc.d))
			require.Len(t, n.messages, before+1)
			assert.Contains(t, n.messages[before], tc.wantMessage)
		})
	}

	// contribution prompt names the treasury line
	assert.Contains(t, n.messages[len(n.messages)-1], "0700464272")
}

func TestHandleDeliveryUnknownKeyIsAcked(t *testing.T) {
	n := &captureNotifier{}
	c := NewConsumer(Config{}, n)

	err := c.handleDelivery(amqp.Delivery{RoutingKey: "loan.created", Body: []byte("{}")})
	require.NoError(t, err, "unknown keys are logged and dropped, not requeued")
	assert.Empty(t, n.messages)
}

func TestHandleDeliveryBadPayload(t *testing.T) {
	c := NewConsumer(Config{}, &captureNotifier{})
	err := c.handleDelivery(amqp.Delivery{RoutingKey: events.RKMemberRegistered, Body: []byte("not json")})
	assert.Error(t, err)
}
