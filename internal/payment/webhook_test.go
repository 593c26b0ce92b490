package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testWebhookSecret = "whsec_test"

func TestConstructEvent(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1","payment_status":"paid"}}}`)

	t.Run("Success", func(t *testing.T) {
		header := SignPayload(payload, testWebhookSecret, time.Now())

		event, err := ConstructEvent(payload, header, testWebhookSecret, DefaultWebhookTolerance)
		assert.NoError(t, err)
		assert.Equal(t, "evt_1", event.ID)
		assert.Equal(t, "checkout.session.completed", event.Type)
		assert.Contains(t, string(event.Data.Object), "cs_1")
	})

	t.Run("MissingHeader", func(t *testing.T) {
		_, err := ConstructEvent(payload, "", testWebhookSecret, DefaultWebhookTolerance)
		assert.ErrorIs(t, err, ErrMissingSignature)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		header := SignPayload(payload, "whsec_other", time.Now())

		_, err := ConstructEvent(payload, header, testWebhookSecret, DefaultWebhookTolerance)
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("TamperedPayload", func(t *testing.T) {
		header := SignPayload(payload, testWebhookSecret, time.Now())
		tampered := []byte(`{"id":"evt_2","type":"checkout.session.completed"}`)

		_, err := ConstructEvent(tampered, header, testWebhookSecret, DefaultWebhookTolerance)
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("StaleTimestamp", func(t *testing.T) {
		header := SignPayload(payload, testWebhookSecret, time.Now().Add(-10*time.Minute))

		_, err := ConstructEvent(payload, header, testWebhookSecret, DefaultWebhookTolerance)
		assert.ErrorIs(t, err, ErrSignatureTooOld)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		_, err := ConstructEvent(payload, "t=abc,v1=def", testWebhookSecret, DefaultWebhookTolerance)
		assert.ErrorIs(t, err, ErrMalformedSignature)

		_, err = ConstructEvent(payload, "v1=deadbeef", testWebhookSecret, DefaultWebhookTolerance)
		assert.ErrorIs(t, err, ErrMalformedSignature)
	})
}
