package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ResponseCodeApproved is the acquirer response code for a successful transaction.
// Every other value is treated as a failure.
const ResponseCodeApproved = "00"

// TransactionRecord is one payment event as parsed from a settlement
// spreadsheet row. Records are immutable once persisted.
type TransactionRecord struct {
	ID                 snowflake.ID      `gorm:"primaryKey" json:"id"`
	MerchantCustomerNo string            `json:"merchantCustomerNo"`
	MerchantName       string            `gorm:"index" json:"merchantName"`
	MID                string            `gorm:"column:mid;index" json:"mid"`
	LocationName       string            `json:"locationName"`
	MerchantTypeDes    string            `json:"merchantTypeDes"`
	TxnCurrency        string            `json:"txnCurrency"`
	CurrencyDes        string            `json:"currencyDes"`
	TxnAmount          float64           `json:"txnAmount"`
	TxnDateTime        time.Time         `gorm:"index" json:"txnDateTime"`
	TxnTypeCode        string            `json:"txnTypeCode"`
	TxnTypeDes         string            `json:"txnTypeDes"`
	TID                string            `gorm:"column:tid;index" json:"tid"`
	ListenerType       string            `json:"listenerType"`
	ListenerDes        string            `json:"listenerDes"`
	ChannelType        string            `json:"channelType"`
	ChannelDes         string            `json:"channelDes"`
	MCC                string            `gorm:"column:mcc" json:"mcc"`
	MCCDes             string            `gorm:"column:mcc_des" json:"mccDes"`
	AuthCode           string            `json:"authCode"`
	RRN                string            `gorm:"column:rrn" json:"rrn"`
	TraceNo            string            `json:"traceNo"`
	ResponseCode       string            `json:"responseCode"`
	OnOffStatus        string            `json:"onOffStatus"`
	BatchNo            string            `json:"batchNo"`
	POSEntryMode       string            `gorm:"column:pos_entry_mode" json:"posEntryMode"`
	POSConditionCode   string            `gorm:"column:pos_condition_code" json:"posConditionCode"`
	CANNumber          string            `gorm:"column:can_number" json:"canNumber"`
	CardNumberMasked   string            `json:"cardNumberMasked"`
	MTI                string            `gorm:"column:mti" json:"mti"`
	ProcessingCode     string            `json:"processingCode"`
	SettlementDate     string            `json:"settlementDate"`
	LastUpdatedTime    string            `json:"lastUpdatedTime"`
	StatusDes          string            `json:"statusDes"`
	Status             string            `json:"status"`
	EODStatus          string            `gorm:"column:eod_status" json:"eodStatus"`
	EODStatusDes       string            `gorm:"column:eod_status_des" json:"eodStatusDes"`
	CreatedTime        string            `json:"createdTime"`
	ReferenceID        string            `json:"referenceId"`
	IRD                string            `gorm:"column:ird" json:"ird"`
	Extra              datatypes.JSONMap `gorm:"type:jsonb" json:"extra,omitempty"`
	CreatedAt          time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (TransactionRecord) TableName() string {
	return "transactions"
}

// Approved reports whether the record carries the acquirer approval code.
func (r TransactionRecord) Approved() bool {
	return r.ResponseCode == ResponseCodeApproved
}

// Filter combines the optional fetch predicates with logical AND.
// Zero-valued predicates are omitted from the query entirely.
type Filter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	MerchantName string // case-insensitive substring
	MID          string // exact match
	TID          string // exact match
}
