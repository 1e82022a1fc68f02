package service

import (
	"testing"
	"time"

	"github.com/smallbiznis/txnsight/internal/ingest/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRow_HeaderLiteralMapping(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, 1000).(*Service)

	row := domain.RawRow{
		"MERCHANTCUSTOMERNO": "MC-1",
		"MERCHANTNAME":       "Acme Mart",
		"MID":                "123",
		"LOCATIONNAME":       "Main St",
		"MERCHANT TYPE DES":  "Retail",
		"TXNCURRENCY":        "144",
		"CURRENCYDES":        "LKR",
		"TXNAMOUNT":          "1250.75",
		"TXNDATETIME":        "2024-03-01 10:15:00",
		"TID":                "456",
		"LISTNERDES":         "POS",
		"CHANNELDES":         "CARD",
		"MCC":                "5411",
		"MCCDES":             "Grocery Stores",
		"RESPONSECODE":       "00",
		"ONOFFSTSTUS":        "ON",
		"CAN NUMBER":         "CAN-9",
		"CARDNUMBER MASKED":  "411111******1111",
		"REFFERENCEID":       "REF-7",
		"IRD":                "61",
	}

	record := svc.normalizeRow(row)

	assert.NotZero(t, record.ID)
	assert.Equal(t, "MC-1", record.MerchantCustomerNo)
	assert.Equal(t, "Acme Mart", record.MerchantName)
	assert.Equal(t, "123", record.MID)
	assert.Equal(t, "456", record.TID)
	assert.Equal(t, "Retail", record.MerchantTypeDes)
	assert.InDelta(t, 1250.75, record.TxnAmount, 1e-9)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 15, 0, 0, time.Local), record.TxnDateTime)
	assert.Equal(t, "POS", record.ListenerDes)
	assert.Equal(t, "CARD", record.ChannelDes)
	assert.Equal(t, "5411", record.MCC)
	assert.Equal(t, "ON", record.OnOffStatus)
	assert.Equal(t, "CAN-9", record.CANNumber)
	assert.Equal(t, "411111******1111", record.CardNumberMasked)
	assert.Equal(t, "REF-7", record.ReferenceID)
	assert.Equal(t, "61", record.IRD)
	assert.True(t, record.Approved())
	assert.Nil(t, record.Extra)
}

func TestNormalizeRow_MissingFieldsStayZero(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, 1000).(*Service)

	record := svc.normalizeRow(domain.RawRow{"MERCHANTNAME": "Acme"})

	assert.Equal(t, "Acme", record.MerchantName)
	assert.Empty(t, record.MID)
	assert.Empty(t, record.ResponseCode)
	assert.Zero(t, record.TxnAmount)
	assert.True(t, record.TxnDateTime.IsZero())
}

func TestNormalizeRow_UnknownColumnsGoToExtra(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, 1000).(*Service)

	record := svc.normalizeRow(domain.RawRow{
		"MERCHANTNAME":   "Acme",
		"UNMAPPED FIELD": "value",
	})

	require.NotNil(t, record.Extra)
	assert.Equal(t, "value", record.Extra["UNMAPPED FIELD"])
	assert.NotContains(t, record.Extra, "MERCHANTNAME")
}

func TestParseDateTime_Layouts(t *testing.T) {
	tests := []struct {
		value string
		want  time.Time
	}{
		{"2024-03-01 10:15:00", time.Date(2024, 3, 1, 10, 15, 0, 0, time.Local)},
		{"2024-03-01T10:15:00", time.Date(2024, 3, 1, 10, 15, 0, 0, time.Local)},
		{"01/03/2024 10:15:00", time.Date(2024, 3, 1, 10, 15, 0, 0, time.Local)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)},
		{"not a date", time.Time{}},
		{"", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.True(t, parseDateTime(tt.value).Equal(tt.want))
		})
	}
}
