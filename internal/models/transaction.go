package models

import "encoding/xml"

// Category labels, in rule priority order.
const (
	CatIncoming      = "Incoming Money"
	CatAirtime       = "Airtime Bill Payments"
	CatCashPower     = "Cash Power Bill Payments"
	CatCodeHolders   = "Payments to Code Holders"
	CatTransfers     = "Transfers to Mobile Numbers"
	CatWithdrawals   = "Withdrawals from Agents"
	CatBankDeposits  = "Bank Deposits"
	CatBundles       = "Internet and Voice Bundle Purchases"
	CatOTP           = "OTP Notification"
	CatThirdParty    = "Transactions Initiated by Third Parties"
	CatUncategorized = "Uncategorized"
)

// Categories lists every label a classified message can carry.
var Categories = []string{
	CatIncoming,
	CatAirtime,
	CatCashPower,
	CatCodeHolders,
	CatTransfers,
	CatWithdrawals,
	CatBankDeposits,
	CatBundles,
	CatOTP,
	CatThirdParty,
	CatUncategorized,
}

// Transaction is the structured record produced for one SMS.
// Amount and Fee are nil when the message did not carry them.
type Transaction struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	Category     string `json:"transaction_type"`
	Amount       *int64 `json:"amount"`
	Counterparty string `json:"recipient"`
	Fee          *int64 `json:"fee"`
	Body         string `json:"body"`
}

// Summary is one aggregate row per category.
type Summary struct {
	Category string `json:"transaction_type"`
	Count    int64  `json:"count"`
	Total    int64  `json:"total"`
}

// CategoryInfo describes a stored category label, including invisible characters.
type CategoryInfo struct {
	Type   string `json:"type"`
	Length int    `json:"length"`
	Repr   string `json:"repr"`
}

// SMS represents a single SMS message from the XML backup
type SMS struct {
	Address      string `xml:"address,attr"`
	Body         string `xml:"body,attr"`
	Date         string `xml:"date,attr"`
	ReadableDate string `xml:"readable_date,attr"`
}

// SMSBackup represents the root of the XML document. The root element name
// varies between backup tools, so only the <sms> children are bound.
type SMSBackup struct {
	XMLName xml.Name
	SMS     []SMS `xml:"sms"`
}
