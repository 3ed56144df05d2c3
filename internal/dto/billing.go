package dto

import "time"

// 計費期間。month 與 startDate/endDate 擇一：
// 給日期區間（含頭尾）優先，否則吃 YYYY-MM 整月
type BillingPeriodDto struct {
	Month     string `form:"month" json:"month,omitempty"`         // YYYY-MM
	StartDate string `form:"startDate" json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate   string `form:"endDate" json:"endDate,omitempty"`     // YYYY-MM-DD
}

// 單日帳目明細行
type BillLineDto struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
	Rate     float64   `json:"rate"`
	Amount   float64   `json:"amount"`
}

// ConsumerBillDto 單一訂奶戶的月帳單
type ConsumerBillDto struct {
	ConsumerID    string        `json:"consumerId"`
	FullName      string        `json:"fullName"`
	MobileNumber  string        `json:"mobileNumber"`
	Area          string        `json:"area"`
	Month         string        `json:"month"` // 期間標籤，月份或日期區間
	TotalQuantity float64       `json:"totalQuantity"`
	TotalAmount   float64       `json:"totalAmount"`
	Deliveries    []BillLineDto `json:"deliveries"`
}

// 月報表裡的單戶彙總行
type ConsumerBillSummaryDto struct {
	ConsumerID    string  `json:"consumerId"`
	FullName      string  `json:"fullName"`
	Area          string  `json:"area"`
	TotalQuantity float64 `json:"totalQuantity"`
	TotalAmount   float64 `json:"totalAmount"`
}

// MonthlyReportDto 全站月報表
type MonthlyReportDto struct {
	Month              string                   `json:"month"` // 期間標籤，月份或日期區間
	Consumers          []ConsumerBillSummaryDto `json:"consumers"`
	GrandTotalQuantity float64                  `json:"grandTotalQuantity"`
	GrandTotalAmount   float64                  `json:"grandTotalAmount"`
}

// OutstandingItemDto 有應收金額的訂奶戶（金額由大到小）
type OutstandingItemDto struct {
	ConsumerID    string  `json:"consumerId"`
	FullName      string  `json:"fullName"`
	MobileNumber  string  `json:"mobileNumber"`
	Area          string  `json:"area"`
	Month         string  `json:"month"` // 期間標籤，月份或日期區間
	TotalQuantity float64 `json:"totalQuantity"`
	TotalAmount   float64 `json:"totalAmount"`
}
