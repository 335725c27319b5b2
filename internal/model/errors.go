package model

import "errors"

var (
	ErrPriceLookup = errors.New("price lookup failed")
	ErrPayment     = errors.New("payment gateway error")
)
