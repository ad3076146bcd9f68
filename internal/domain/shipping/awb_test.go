package shipping

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourier_Prefix(t *testing.T) {
	assert.Equal(t, "FC", CourierFanCourier.Prefix())
	assert.Equal(t, "SD", CourierSameday.Prefix())
	assert.Equal(t, "GLS", CourierGLS.Prefix())
	assert.False(t, Courier("dhl").IsValid())
}

func TestFormatNumber(t *testing.T) {
	t.Run("keeps last ten digits", func(t *testing.T) {
		assert.Equal(t, "SD0123456789", FormatNumber(CourierSameday, 1760123456789))
		assert.Equal(t, "FC0123456789", FormatNumber(CourierFanCourier, 1760123456789))
	})

	t.Run("pads short timestamps", func(t *testing.T) {
		assert.Equal(t, "GLS0000000042", FormatNumber(CourierGLS, 42))
	})

	t.Run("matches expected shape for current time", func(t *testing.T) {
		n := FormatNumber(CourierSameday, time.Now().UnixMilli())
		assert.Regexp(t, regexp.MustCompile(`^SD\d{10}$`), n)
	})
}

func TestNewAWB(t *testing.T) {
	now := time.Now()
	orderID := uuid.New()

	awb, err := NewAWB(orderID, CourierSameday, "SD0123456789", now)

	require.NoError(t, err)
	assert.Equal(t, AWBStatusGenerated, awb.Status)
	assert.Equal(t, "/api/awb/SD0123456789/pdf", awb.PDFURL)
	assert.Equal(t, 1, awb.Version)
	require.Len(t, awb.TrackingHistory, 1)
	assert.Equal(t, AWBStatusGenerated, awb.TrackingHistory[0].Status)
	assert.Equal(t, "AWB generat", awb.TrackingHistory[0].Message)
	assert.Equal(t, now, awb.TrackingHistory[0].Timestamp)

	_, err = NewAWB(orderID, "dhl", "X1", now)
	assert.Error(t, err)
	_, err = NewAWB(uuid.Nil, CourierGLS, "X1", now)
	assert.Error(t, err)
}

func TestAWB_AppendEvent(t *testing.T) {
	start := time.Now()
	awb, err := NewAWB(uuid.New(), CourierFanCourier, "FC0000000001", start)
	require.NoError(t, err)
	first := awb.TrackingHistory[0]

	require.NoError(t, awb.AppendEvent(AWBStatusShipped, "Predat curierului", start.Add(time.Hour)))
	require.NoError(t, awb.AppendEvent(AWBStatusDelivered, "Livrat", start.Add(2*time.Hour)))

	assert.Len(t, awb.TrackingHistory, 3)
	assert.Equal(t, first, awb.TrackingHistory[0])
	assert.Equal(t, AWBStatusShipped, awb.TrackingHistory[1].Status)
	assert.Equal(t, AWBStatusDelivered, awb.Status)

	latest, ok := awb.LatestEvent()
	require.True(t, ok)
	assert.Equal(t, "Livrat", latest.Message)

	t.Run("rejects unknown status without touching history", func(t *testing.T) {
		err := awb.AppendEvent("lost", "", time.Now())

		assert.Error(t, err)
		assert.Len(t, awb.TrackingHistory, 3)
		assert.Equal(t, AWBStatusDelivered, awb.Status)
	})
}
