package services

import "github.com/shopspring/decimal"

// oneHundredPct is the upper bound for discount percentages.
var oneHundredPct = decimal.NewFromInt(100)
