package dto

import (
	"time"

	"milkline/internal/database/mongodb/model"
)

// 記錄配送。配送員身分登入時 EmployeeID 強制為本人，管理員必填
type RecordDeliveryDto struct {
	ConsumerID        string  `json:"consumerId" binding:"required"`
	EmployeeID        string  `json:"employeeId,omitempty"`
	DeliveryDate      string  `json:"deliveryDate,omitempty"` // YYYY-MM-DD，省略為今日
	QuantityDelivered float64 `json:"quantityDelivered" binding:"required,gt=0"`
}

type DeliveryResponseDto struct {
	ID                string    `json:"id"`
	ConsumerID        string    `json:"consumerId"`
	ConsumerName      string    `json:"consumerName,omitempty"`
	EmployeeID        string    `json:"employeeId"`
	DeliveryDate      time.Time `json:"deliveryDate"`
	QuantityDelivered float64   `json:"quantityDelivered"`
	RatePerLiter      float64   `json:"ratePerLiter"`
	RecordedAt        time.Time `json:"recordedAt"`
}

func NewDeliveryResponse(delivery *model.DailyDelivery) DeliveryResponseDto {
	return DeliveryResponseDto{
		ID:                delivery.ID.Hex(),
		ConsumerID:        delivery.ConsumerID.Hex(),
		EmployeeID:        delivery.EmployeeID.Hex(),
		DeliveryDate:      delivery.DeliveryDate,
		QuantityDelivered: delivery.QuantityDelivered,
		RatePerLiter:      delivery.RatePerLiter,
		RecordedAt:        delivery.RecordedAt,
	}
}
