package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ResolveInput - input của resolver, Tx do order service sở hữu
type ResolveInput struct {
	Tx             pgx.Tx
	PromoCodeInput string
	Referral       *Referral
	Subtotal       decimal.Decimal
	Now            time.Time // zero = time.Now()
}

// CreateCommissionInput - CommissionAmount là chuỗi money từ PromoResolution
type CreateCommissionInput struct {
	Tx               pgx.Tx
	InfluencerID     *uuid.UUID
	OrderID          uuid.UUID
	CommissionAmount string
	Now              time.Time
}
