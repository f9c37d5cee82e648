package dto

import (
	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
)

// MovementTypeResponse defines the data returned for a movement type.
type MovementTypeResponse struct {
	MovementTypeID string `json:"movementTypeID"`
	Name           string `json:"name"`
	IsTransfer     bool   `json:"isTransfer"`
}

// ToMovementTypeResponses converts movement types to response DTOs.
func ToMovementTypeResponses(mts []domain.MovementType) []MovementTypeResponse {
	res := make([]MovementTypeResponse, len(mts))
	for i, mt := range mts {
		res[i] = MovementTypeResponse{
			MovementTypeID: mt.MovementTypeID,
			Name:           mt.Name,
			IsTransfer:     mt.IsTransfer,
		}
	}
	return res
}

// PaymentTypeResponse defines the data returned for a payment type.
type PaymentTypeResponse struct {
	PaymentTypeID string `json:"paymentTypeID"`
	Name          string `json:"name"`
}

// ToPaymentTypeResponses converts payment types to response DTOs.
func ToPaymentTypeResponses(pts []domain.PaymentType) []PaymentTypeResponse {
	res := make([]PaymentTypeResponse, len(pts))
	for i, pt := range pts {
		res[i] = PaymentTypeResponse{PaymentTypeID: pt.PaymentTypeID, Name: pt.Name}
	}
	return res
}
