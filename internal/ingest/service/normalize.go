package service

import (
	"strconv"
	"time"

	"github.com/smallbiznis/txnsight/internal/ingest/domain"
	txndomain "github.com/smallbiznis/txnsight/internal/transaction/domain"
	"gorm.io/datatypes"
)

// Spreadsheet header literals, exactly as the settlement export writes
// them. LISTNERDES, ONOFFSTSTUS and REFFERENCEID are misspelled in the
// export itself; the keys here must match the file, not English.
const (
	colMerchantCustomerNo = "MERCHANTCUSTOMERNO"
	colMerchantName       = "MERCHANTNAME"
	colMID                = "MID"
	colLocationName       = "LOCATIONNAME"
	colMerchantTypeDes    = "MERCHANT TYPE DES"
	colTxnCurrency        = "TXNCURRENCY"
	colCurrencyDes        = "CURRENCYDES"
	colTxnAmount          = "TXNAMOUNT"
	colTxnDateTime        = "TXNDATETIME"
	colTxnTypeCode        = "TXNTYPECODE"
	colTxnTypeDes         = "TXNTYPEDES"
	colTID                = "TID"
	colListenerType       = "LISTENERTYPE"
	colListenerDes        = "LISTNERDES"
	colChannelType        = "CHANNELTYPE"
	colChannelDes         = "CHANNELDES"
	colMCC                = "MCC"
	colMCCDes             = "MCCDES"
	colAuthCode           = "AUTHCODE"
	colRRN                = "RRN"
	colTraceNo            = "TRACENO"
	colResponseCode       = "RESPONSECODE"
	colOnOffStatus        = "ONOFFSTSTUS"
	colBatchNo            = "BATCHNO"
	colPOSEntryMode       = "POSENTRYMODE"
	colPOSConditionCode   = "POSCONDITIONCODE"
	colMTI                = "MTI"
	colProcessingCode     = "PROCESSINGCODE"
	colSettlementDate     = "SETTLEMENTDATE"
	colLastUpdatedTime    = "LASTUPDATEDTIME"
	colStatusDes          = "STATUSDES"
	colStatus             = "STATUS"
	colEODStatus          = "EODSTATUS"
	colEODStatusDes       = "EODSTATUSDES"
	colCreatedTime        = "CREATEDTIME"
	colReferenceID        = "REFFERENCEID"
	colCANNumber          = "CAN NUMBER"
	colCardNumberMasked   = "CARDNUMBER MASKED"
	colIRD                = "IRD"
)

var knownColumns = map[string]struct{}{
	colMerchantCustomerNo: {}, colMerchantName: {}, colMID: {}, colLocationName: {},
	colMerchantTypeDes: {}, colTxnCurrency: {}, colCurrencyDes: {}, colTxnAmount: {},
	colTxnDateTime: {}, colTxnTypeCode: {}, colTxnTypeDes: {}, colTID: {},
	colListenerType: {}, colListenerDes: {}, colChannelType: {}, colChannelDes: {},
	colMCC: {}, colMCCDes: {}, colAuthCode: {}, colRRN: {}, colTraceNo: {},
	colResponseCode: {}, colOnOffStatus: {}, colBatchNo: {}, colPOSEntryMode: {},
	colPOSConditionCode: {}, colMTI: {}, colProcessingCode: {}, colSettlementDate: {},
	colLastUpdatedTime: {}, colStatusDes: {}, colStatus: {}, colEODStatus: {},
	colEODStatusDes: {}, colCreatedTime: {}, colReferenceID: {}, colCANNumber: {},
	colCardNumberMasked: {}, colIRD: {},
}

// Accepted TXNDATETIME layouts, most common first. Values are interpreted
// in the process-local zone; the export does not carry one.
var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006 15:04:05",
	"2006-01-02",
}

// normalizeRow maps one spreadsheet row field-for-field onto the record
// schema. Missing columns stay zero-valued, never defaulted or rejected;
// unrecognized columns are kept verbatim under Extra.
func (s *Service) normalizeRow(row domain.RawRow) txndomain.TransactionRecord {
	record := txndomain.TransactionRecord{
		ID:                 s.genID.Generate(),
		MerchantCustomerNo: row[colMerchantCustomerNo],
		MerchantName:       row[colMerchantName],
		MID:                row[colMID],
		LocationName:       row[colLocationName],
		MerchantTypeDes:    row[colMerchantTypeDes],
		TxnCurrency:        row[colTxnCurrency],
		CurrencyDes:        row[colCurrencyDes],
		TxnAmount:          parseAmount(row[colTxnAmount]),
		TxnDateTime:        parseDateTime(row[colTxnDateTime]),
		TxnTypeCode:        row[colTxnTypeCode],
		TxnTypeDes:         row[colTxnTypeDes],
		TID:                row[colTID],
		ListenerType:       row[colListenerType],
		ListenerDes:        row[colListenerDes],
		ChannelType:        row[colChannelType],
		ChannelDes:         row[colChannelDes],
		MCC:                row[colMCC],
		MCCDes:             row[colMCCDes],
		AuthCode:           row[colAuthCode],
		RRN:                row[colRRN],
		TraceNo:            row[colTraceNo],
		ResponseCode:       row[colResponseCode],
		OnOffStatus:        row[colOnOffStatus],
		BatchNo:            row[colBatchNo],
		POSEntryMode:       row[colPOSEntryMode],
		POSConditionCode:   row[colPOSConditionCode],
		MTI:                row[colMTI],
		ProcessingCode:     row[colProcessingCode],
		SettlementDate:     row[colSettlementDate],
		LastUpdatedTime:    row[colLastUpdatedTime],
		StatusDes:          row[colStatusDes],
		Status:             row[colStatus],
		EODStatus:          row[colEODStatus],
		EODStatusDes:       row[colEODStatusDes],
		CreatedTime:        row[colCreatedTime],
		ReferenceID:        row[colReferenceID],
		CANNumber:          row[colCANNumber],
		CardNumberMasked:   row[colCardNumberMasked],
		IRD:                row[colIRD],
	}

	for key, value := range row {
		if _, ok := knownColumns[key]; ok {
			continue
		}
		if record.Extra == nil {
			record.Extra = datatypes.JSONMap{}
		}
		record.Extra[key] = value
	}

	return record
}

func parseAmount(value string) float64 {
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return amount
}

func parseDateTime(value string) time.Time {
	for _, layout := range dateTimeLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return ts
		}
	}
	return time.Time{}
}
